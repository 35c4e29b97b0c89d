package admin

import (
	"errors"
	"testing"
	"time"
)

func TestPageViewLifecycle(t *testing.T) {
	view := NewPageView(PageCustomers)
	if view.Status != PageIdle {
		t.Fatalf("expected idle, got %s", view.Status)
	}

	view.Begin()
	if !view.Loading() || view.RowCount() != 0 {
		t.Fatalf("expected loading with no rows, got %s/%d", view.Status, view.RowCount())
	}

	at := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	view.Resolve(&CustomersData{Customers: []FrequentCustomer{{Name: "Ana"}, {Name: "Luis"}}}, at)
	if !view.Ready() || view.RowCount() != 2 || !view.LoadedAt.Equal(at) {
		t.Fatalf("expected ready with 2 rows, got %s/%d", view.Status, view.RowCount())
	}

	view.Begin()
	if !view.Loading() || view.Data != nil || view.RowCount() != 0 {
		t.Fatalf("expected refresh to drop data")
	}

	cause := errors.New("permission denied for function admin_clientes_frecuentes")
	view.Fail(cause)
	if !view.Failed() || view.RowCount() != 0 || view.Data != nil {
		t.Fatalf("expected error state without rows")
	}
	if view.Error != cause.Error() || view.Err() != cause {
		t.Fatalf("expected verbatim error, got %q", view.Error)
	}

	view.Begin()
	if view.Error != "" || view.Err() != nil {
		t.Fatalf("expected loading to clear the error")
	}
}

func TestPageViewFailWithNilError(t *testing.T) {
	view := NewPageView(PageToday)
	view.Fail(nil)
	if !view.Failed() || view.Error == "" {
		t.Fatalf("expected generic error message")
	}
}

func TestPageRegistryOrderAndDuplicates(t *testing.T) {
	reg := DefaultPages()
	pages := reg.List()
	want := []string{PageDashboard, PageTables, PageReservations, PageToday, PageWeek, PageStatistics, PageCustomers}
	if len(pages) != len(want) {
		t.Fatalf("expected %d pages, got %d", len(want), len(pages))
	}
	for i, slug := range want {
		if pages[i].Slug != slug {
			t.Fatalf("expected %s at %d, got %s", slug, i, pages[i].Slug)
		}
	}
	if err := reg.Register(Page{Slug: PageToday, Loader: loadToday}); err == nil {
		t.Fatalf("expected duplicate slug to be rejected")
	}
	if err := reg.Register(Page{Slug: "extra"}); err == nil {
		t.Fatalf("expected missing loader to be rejected")
	}
	if _, ok := reg.Lookup("HOY"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
}

func TestNormalizeTab(t *testing.T) {
	if NormalizeTab("zones") != TabZones {
		t.Fatalf("expected zones tab")
	}
	if NormalizeTab("nope") != TabDetail {
		t.Fatalf("expected unknown tab to fall back to detail")
	}
}
