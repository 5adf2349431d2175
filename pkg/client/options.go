package client

import (
	"time"

	"cryptocom/pkg/core"
)

// QueryOption sets an optional parameter of a listing or account call.
// Options a generation does not support are not sent.
type QueryOption func(core.Params)

// WithPageSize limits the number of rows per page.
func WithPageSize(size int) QueryOption {
	return func(p core.Params) {
		if size > 0 {
			p[core.ParamPageSize] = size
		}
	}
}

// WithPage selects a page. Page 0 is the exchange default and is not sent.
func WithPage(page int) QueryOption {
	return func(p core.Params) {
		if page > 0 {
			p[core.ParamPage] = page
		}
	}
}

// WithTimeRange restricts results to [start, end]. A zero time leaves that
// bound open. v1 sends seconds precision dates, v2 unix milliseconds.
func WithTimeRange(start, end time.Time) QueryOption {
	return func(p core.Params) {
		if !start.IsZero() {
			p[core.ParamStart] = start
		}
		if !end.IsZero() {
			p[core.ParamEnd] = end
		}
	}
}

// WithReverse reverses the sort order of executed trades. v1 only.
func WithReverse() QueryOption {
	return func(p core.Params) {
		p[core.ParamSort] = true
	}
}

// WithCurrency restricts a balance query to one currency. v2 only.
func WithCurrency(currency string) QueryOption {
	return func(p core.Params) {
		if currency != "" {
			p[core.ParamCurrency] = currency
		}
	}
}

func applyQuery(p core.Params, opts []QueryOption) core.Params {
	if p == nil {
		p = make(core.Params)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
