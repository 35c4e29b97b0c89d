package admin

import (
	"errors"
	"time"
)

// PageStatus is the lifecycle state of a page view.
type PageStatus string

const (
	PageIdle    PageStatus = "idle"
	PageLoading PageStatus = "loading"
	PageReady   PageStatus = "ready"
	PageError   PageStatus = "error"
)

// PageData is the loaded content of one page.
type PageData interface {
	// RowCount is the number of data rows the page would display.
	RowCount() int
}

// PageView tracks one page through idle → loading → ready|error. Data is only
// populated in the ready state and the error text only in the error state.
// Begin re-enters loading from any state, which is how refresh works.
type PageView struct {
	Page     string     `json:"page"`
	Status   PageStatus `json:"status"`
	Error    string     `json:"error,omitempty"`
	Data     PageData   `json:"data,omitempty"`
	LoadedAt time.Time  `json:"loaded_at,omitzero"`

	err error
}

// NewPageView returns a view in the idle state.
func NewPageView(page string) *PageView {
	return &PageView{Page: page, Status: PageIdle}
}

// Begin enters the loading state and drops any previous data or error.
func (v *PageView) Begin() {
	v.Status = PageLoading
	v.Data = nil
	v.Error = ""
	v.err = nil
}

// Resolve enters the ready state with data.
func (v *PageView) Resolve(data PageData, at time.Time) {
	v.Status = PageReady
	v.Data = data
	v.Error = ""
	v.err = nil
	v.LoadedAt = at
}

// Fail enters the error state; no partial data is kept.
func (v *PageView) Fail(err error) {
	if err == nil {
		err = errors.New("admin: page load failed")
	}
	v.Status = PageError
	v.Data = nil
	v.Error = err.Error()
	v.err = err
}

// Err returns the failure cause in the error state.
func (v *PageView) Err() error { return v.err }

// Loading reports whether the loading indicator should show.
func (v *PageView) Loading() bool { return v.Status == PageLoading }

// Ready reports whether data is available.
func (v *PageView) Ready() bool { return v.Status == PageReady }

// Failed reports whether the error state is active.
func (v *PageView) Failed() bool { return v.Status == PageError }

// RowCount is zero outside the ready state.
func (v *PageView) RowCount() int {
	if v.Status != PageReady || v.Data == nil {
		return 0
	}
	return v.Data.RowCount()
}
