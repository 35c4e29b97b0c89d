package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

type pageLoader interface {
	Load(ctx context.Context, req admin.PageRequest) (*admin.PageView, error)
}

// PageViewQuery loads a page view. Only an unknown page is returned as an error;
// backend failures come back as an error-state view.
type PageViewQuery struct {
	service pageLoader
}

// NewPageViewQuery builds the query.
func NewPageViewQuery(service pageLoader) *PageViewQuery {
	return &PageViewQuery{service: service}
}

var _ gocommand.Querier[admin.PageRequest, *admin.PageView] = (*PageViewQuery)(nil)

// Query loads the page.
func (q *PageViewQuery) Query(ctx context.Context, req admin.PageRequest) (*admin.PageView, error) {
	return q.service.Load(ctx, req)
}
