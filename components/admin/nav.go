package admin

import "strings"

// DefaultPath is where "/" redirects.
const DefaultPath = "/" + PageDashboard

// MenuParam is the query parameter that carries the mobile menu state.
const MenuParam = "menu"

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Slug   string `json:"slug"`
	Path   string `json:"path"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Active bool   `json:"active"`
}

// NavShell is the header state: ordered items, the active one, and whether the
// mobile menu is open. Navigating always renders it closed.
type NavShell struct {
	Items      []NavItem `json:"items"`
	Active     string    `json:"active"`
	MenuOpen   bool      `json:"menu_open"`
	ToggleHref string    `json:"toggle_href"`
}

// BuildNav lists the data pages followed by the chat entry.
func BuildNav(pages []Page, translate func(string) string, activePath string, menuOpen bool) NavShell {
	if translate == nil {
		translate = func(key string) string { return key }
	}
	active := SlugFromPath(activePath)
	items := make([]NavItem, 0, len(pages)+1)
	for _, page := range pages {
		items = append(items, NavItem{
			Slug:   page.Slug,
			Path:   "/" + page.Slug,
			Label:  translate(page.NavKey()),
			Icon:   page.Icon,
			Active: page.Slug == active,
		})
	}
	items = append(items, NavItem{
		Slug:   PageChat,
		Path:   "/" + PageChat,
		Label:  translate("nav." + PageChat),
		Icon:   "💬",
		Active: active == PageChat,
	})
	shell := NavShell{Items: items, Active: active, MenuOpen: menuOpen}
	base := "/" + active
	if active == "" {
		base = DefaultPath
	}
	if menuOpen {
		shell.ToggleHref = base
	} else {
		shell.ToggleHref = base + "?" + MenuParam + "=open"
	}
	return shell
}

// SlugFromPath extracts the first path segment ("/hoy/_content" → "hoy").
func SlugFromPath(path string) string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		path = path[:idx]
	}
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	return strings.ToLower(path)
}

// MenuOpen reads the menu query parameter.
func MenuOpen(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "open")
}
