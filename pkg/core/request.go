package core

import (
	"maps"
	"slices"
	"time"
)

// Params is a request parameter set. Iteration order is irrelevant: anything
// order-sensitive (signing) goes through SortedKeys.
type Params map[string]any

// SortedKeys returns the parameter names in ascending lexicographic order.
func (p Params) SortedKeys() []string {
	return slices.Sorted(maps.Keys(p))
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Request is a transport-ready HTTP request produced by a Protocol.
type Request struct {
	Operation Operation         `json:"operation"`
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Query     Params            `json:"query,omitempty"`
	Form      Params            `json:"form,omitempty"`
	Body      any               `json:"body,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
	Private   bool              `json:"private"`
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Query:   make(Params),
		Headers: make(map[string]string),
	}
}

func (r *Request) SetOperation(op Operation) *Request {
	r.Operation = op
	return r
}

// SetQuery sets one query parameter.
func (r *Request) SetQuery(key string, value any) *Request {
	if r.Query == nil {
		r.Query = make(Params)
	}
	r.Query[key] = value
	return r
}

func (r *Request) SetQueryParams(params Params) *Request {
	for k, v := range params {
		r.SetQuery(k, v)
	}
	return r
}

func (r *Request) SetForm(params Params) *Request {
	r.Form = params
	return r
}

func (r *Request) SetBody(body any) *Request {
	r.Body = body
	return r
}

func (r *Request) SetHeader(key, value string) *Request {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
	return r
}

func (r *Request) SetPrivate(private bool) *Request {
	r.Private = private
	return r
}

// Response is the raw outcome of a completed HTTP exchange.
type Response struct {
	// StatusCode is the HTTP status code returned by the server.
	StatusCode int
	// Body contains the raw response body bytes.
	Body []byte
	// Header contains the first value of each response header.
	Header map[string]string
	// Elapsed is the wall-clock duration of the exchange.
	Elapsed time.Duration
}
