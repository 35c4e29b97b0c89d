package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

// ProcedureInput names a catalogue procedure, by exact name or alias.
type ProcedureInput struct {
	Name string
}

type rowFetcher interface {
	Rows(ctx context.Context, procedure string) ([]map[string]any, error)
}

// ProcedureQuery returns the rows of one procedure in backend order.
type ProcedureQuery struct {
	client rowFetcher
}

// NewProcedureQuery builds the query.
func NewProcedureQuery(client rowFetcher) *ProcedureQuery {
	return &ProcedureQuery{client: client}
}

var _ gocommand.Querier[ProcedureInput, []map[string]any] = (*ProcedureQuery)(nil)

// Query resolves the alias and fetches the rows.
func (q *ProcedureQuery) Query(ctx context.Context, input ProcedureInput) ([]map[string]any, error) {
	proc, err := admin.ResolveProcedure(input.Name)
	if err != nil {
		return nil, err
	}
	return q.client.Rows(ctx, proc.Name)
}
