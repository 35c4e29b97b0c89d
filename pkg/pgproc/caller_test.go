package pgproc

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

var _ admin.ProcedureCaller = (*Caller)(nil)

type stubRow struct {
	payload []byte
	err     error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.payload
	return nil
}

type stubQuerier struct {
	lastSQL string
	row     stubRow
}

func (q *stubQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.lastSQL = sql
	return q.row
}

func TestCallerQuotesIdentifiers(t *testing.T) {
	c := New(&stubQuerier{}, WithSchema("reporting"))
	got := c.Query(`admin_reservas_hoy"; drop table x; --`)
	want := `SELECT coalesce(json_agg(t), '[]'::json) FROM "reporting"."admin_reservas_hoy""; drop table x; --"() AS t`
	if got != want {
		t.Fatalf("unexpected query\n got: %s\nwant: %s", got, want)
	}
}

func TestCallerReturnsAggregatedRows(t *testing.T) {
	q := &stubQuerier{row: stubRow{payload: []byte(`[{"franja":"Comida","reservas":3,"comensales":9}]`)}}
	rows, err := admin.NewClient(New(q)).SlotOccupancy(context.Background())
	if err != nil {
		t.Fatalf("SlotOccupancy returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].Diners != 9 {
		t.Fatalf("unexpected rows %#v", rows)
	}
	if q.lastSQL != `SELECT coalesce(json_agg(t), '[]'::json) FROM "public"."admin_ocupacion_franjas"() AS t` {
		t.Fatalf("unexpected sql %s", q.lastSQL)
	}
}

func TestCallerPropagatesErrors(t *testing.T) {
	boom := errors.New(`function public.admin_zonas_populares() does not exist`)
	_, err := New(&stubQuerier{row: stubRow{err: boom}}).Call(context.Background(), admin.ProcPopularZones)
	if err != boom {
		t.Fatalf("expected error verbatim, got %v", err)
	}
}

func TestCallerAgainstDatabase(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := Connect(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()
	if _, err := pool.Exec(ctx, `CREATE OR REPLACE FUNCTION public.pgproc_sample() RETURNS TABLE(n int) AS $$ SELECT 1 $$ LANGUAGE sql`); err != nil {
		t.Skipf("cannot create sample function: %v", err)
	}
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DROP FUNCTION IF EXISTS public.pgproc_sample()`) })
	payload, err := New(pool).Call(ctx, "pgproc_sample")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if string(payload) != `[{"n":1}]` {
		t.Fatalf("unexpected payload %s", payload)
	}
}
