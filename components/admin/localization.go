package admin

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLocale is the dashboard's primary language.
const DefaultLocale = "es"

// TranslationService exposes locale-aware lookups to templates and handlers.
type TranslationService interface {
	Translate(ctx context.Context, key, locale string, args map[string]any) (string, error)
}

//go:embed translations.yaml
var embeddedTranslations []byte

// Catalog holds flat key/value messages per locale.
type Catalog struct {
	fallback string
	messages map[string]map[string]string
}

// LoadCatalog decodes a YAML document of the form {locale: {key: message}}.
func LoadCatalog(r io.Reader, fallback string) (*Catalog, error) {
	raw := map[string]map[string]string{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("admin: decode translations: %w", err)
	}
	messages := make(map[string]map[string]string, len(raw))
	for locale, entries := range raw {
		locale = normalizeLocale(locale)
		if locale == "" {
			continue
		}
		messages[locale] = entries
	}
	fallback = normalizeLocale(fallback)
	if fallback == "" {
		fallback = DefaultLocale
	}
	if _, ok := messages[fallback]; !ok {
		return nil, fmt.Errorf("admin: translations missing fallback locale %q", fallback)
	}
	return &Catalog{fallback: fallback, messages: messages}, nil
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the embedded es/en catalogue.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(bytes.NewReader(embeddedTranslations), DefaultLocale)
	})
	return defaultCatalog, defaultCatalogErr
}

// Locales lists the available locales.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether the locale (or its base language) has messages.
func (c *Catalog) Supports(locale string) bool {
	for _, candidate := range localeCandidates(locale) {
		if _, ok := c.messages[candidate]; ok {
			return true
		}
	}
	return false
}

// Translate implements TranslationService. Missing keys fall back to the
// fallback locale and finally return an error.
func (c *Catalog) Translate(_ context.Context, key, locale string, args map[string]any) (string, error) {
	candidates := append(localeCandidates(locale), c.fallback)
	for _, candidate := range candidates {
		if msg, ok := c.messages[candidate][key]; ok && msg != "" {
			return interpolate(msg, args), nil
		}
	}
	return "", fmt.Errorf("admin: missing translation %q", key)
}

// T is the template helper: it never fails and returns the key when nothing matches.
func (c *Catalog) T(locale, key string) string {
	return translateOrFallback(context.Background(), c, key, locale, "", nil)
}

// Func binds a locale so templates can call t("key").
func (c *Catalog) Func(locale string) func(key string) string {
	return func(key string) string {
		return c.T(locale, key)
	}
}

// ResolveLocale picks the first supported locale from an Accept-Language style list.
func (c *Catalog) ResolveLocale(candidates ...string) string {
	for _, raw := range candidates {
		for _, part := range strings.Split(raw, ",") {
			tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
			if tag == "" || tag == "*" {
				continue
			}
			if c.Supports(tag) {
				return baseLanguage(tag)
			}
		}
	}
	return c.fallback
}

func interpolate(msg string, args map[string]any) string {
	if len(args) == 0 {
		return msg
	}
	for key, value := range args {
		msg = strings.ReplaceAll(msg, "{"+key+"}", fmt.Sprint(value))
	}
	return msg
}

func localeCandidates(locale string) []string {
	locale = normalizeLocale(locale)
	if locale == "" {
		return nil
	}
	candidates := []string{locale}
	if base := baseLanguage(locale); base != locale {
		candidates = append(candidates, base)
	}
	return candidates
}

func baseLanguage(locale string) string {
	locale = normalizeLocale(locale)
	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return locale
}

func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(locale)), "_", "-")
}

func translateOrFallback(ctx context.Context, svc TranslationService, key, locale, fallback string, params map[string]any) string {
	if svc != nil {
		if translated, err := svc.Translate(ctx, key, locale, params); err == nil && translated != "" {
			return translated
		}
	}
	if fallback != "" {
		return fallback
	}
	return key
}
