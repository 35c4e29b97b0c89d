package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

type stubPageLoader struct {
	calls int
	last  admin.PageRequest
}

func (s *stubPageLoader) Load(_ context.Context, req admin.PageRequest) (*admin.PageView, error) {
	s.calls++
	s.last = req
	view := admin.NewPageView(req.Page)
	view.Begin()
	return view, nil
}

type stubRowFetcher struct {
	procedures []string
	rows       []map[string]any
}

func (s *stubRowFetcher) Rows(_ context.Context, procedure string) ([]map[string]any, error) {
	s.procedures = append(s.procedures, procedure)
	return s.rows, nil
}

func TestPageViewQuery(t *testing.T) {
	service := &stubPageLoader{}
	query := NewPageViewQuery(service)
	req := admin.PageRequest{Page: admin.PageReservations, Options: admin.ViewOptions{Status: "cancelada"}}
	view, err := query.Query(context.Background(), req)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if service.calls != 1 {
		t.Fatalf("expected 1 call, got %d", service.calls)
	}
	if service.last.Options.Status != "cancelada" {
		t.Fatalf("expected options to pass through")
	}
	if view.Page != admin.PageReservations {
		t.Fatalf("unexpected page %s", view.Page)
	}
}

func TestPageViewQueryUnknownPage(t *testing.T) {
	service := admin.NewService(admin.Options{})
	_, err := NewPageViewQuery(service).Query(context.Background(), admin.PageRequest{Page: "nope"})
	if !errors.Is(err, admin.ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestProcedureQueryResolvesAliases(t *testing.T) {
	fetcher := &stubRowFetcher{rows: []map[string]any{{"franja": "Comida"}}}
	query := NewProcedureQuery(fetcher)
	for _, alias := range []string{"admin_ocupacion_franjas", "ocupacion-franjas", "ocupacionFranjas"} {
		rows, err := query.Query(context.Background(), ProcedureInput{Name: alias})
		if err != nil {
			t.Fatalf("Query(%s) returned error: %v", alias, err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected rows for %s", alias)
		}
	}
	for _, name := range fetcher.procedures {
		if name != admin.ProcSlotOccupancy {
			t.Fatalf("expected %s, got %s", admin.ProcSlotOccupancy, name)
		}
	}
}

func TestProcedureQueryUnknown(t *testing.T) {
	fetcher := &stubRowFetcher{}
	_, err := NewProcedureQuery(fetcher).Query(context.Background(), ProcedureInput{Name: "drop_tables"})
	if !errors.Is(err, admin.ErrUnknownProcedure) {
		t.Fatalf("expected ErrUnknownProcedure, got %v", err)
	}
	if len(fetcher.procedures) != 0 {
		t.Fatalf("expected no backend call")
	}
}
