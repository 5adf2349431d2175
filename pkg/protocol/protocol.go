package protocol

import (
	"fmt"
	"net/http"
	"slices"

	"cryptocom/pkg/core"
)

// Protocol implements core.Protocol for a single API generation.
type Protocol struct {
	gen     core.Generation
	baseURL string
	dialect *dialect
}

// New creates a protocol for gen rooted at the generation's production URL.
func New(gen core.Generation) *Protocol {
	if !gen.Valid() {
		panic(fmt.Sprintf("protocol: unknown generation %d", gen))
	}
	return &Protocol{
		gen:     gen,
		baseURL: gen.Spec().BaseURL,
		dialect: &dialects[gen],
	}
}

// WithBaseURL overrides the API root, e.g. for the UAT sandbox.
func (p *Protocol) WithBaseURL(url string) *Protocol {
	if url != "" {
		p.baseURL = url
	}
	return p
}

func (p *Protocol) Generation() core.Generation {
	return p.gen
}

func (p *Protocol) BaseURL() string {
	return p.baseURL
}

func (p *Protocol) Endpoint(op core.Operation) (core.Endpoint, bool) {
	ep, ok := p.dialect.endpoints[op]
	return ep, ok
}

// SupportedOperations returns the operations of the endpoint table in ascending order.
func (p *Protocol) SupportedOperations() []core.Operation {
	ops := make([]core.Operation, 0, len(p.dialect.endpoints))
	for op := range p.dialect.endpoints {
		ops = append(ops, op)
	}
	slices.Sort(ops)
	return ops
}

// BuildPublic constructs an unsigned GET request with the parameters in the query string.
func (p *Protocol) BuildPublic(op core.Operation, params core.Params) (*core.Request, error) {
	ep, err := p.lookup(op)
	if err != nil {
		return nil, err
	}
	if ep.Private {
		return nil, core.NewError(p.gen, core.KindInvalidRequest, fmt.Sprintf("%s is a private operation", op)).
			WithCode(string(core.ErrCodeInvalidRequest))
	}

	req := core.NewRequest(http.MethodGet, ep.Path).
		SetOperation(op).
		SetQueryParams(p.wireParams(op, ep, params))
	return req, nil
}

// BuildSigned constructs a signed POST. v1 sends a flattened form body, v2 a
// JSON SignedBody whose method is the endpoint path.
func (p *Protocol) BuildSigned(op core.Operation, params core.Params, creds core.Credentials, nonce, id int64) (*core.Request, error) {
	ep, err := p.lookup(op)
	if err != nil {
		return nil, err
	}
	if !creds.Valid() {
		return nil, core.NewError(p.gen, core.KindPublicOnly, "credentials required for "+ep.Path).
			WithCode(string(core.ErrCodePublicOnly))
	}

	wire := p.wireParams(op, ep, params)
	req := core.NewRequest(http.MethodPost, ep.Path).
		SetOperation(op).
		SetPrivate(true)

	if p.gen.Spec().Signing == core.SignSHA256 {
		req.SetForm(legacyEnvelope(p.gen, wire, creds, nonce))
		return req, nil
	}
	req.SetBody(currentEnvelope(p.gen, ep.Path, wire, creds, nonce, id)).
		SetHeader("Content-Type", "application/json")
	return req, nil
}

func (p *Protocol) lookup(op core.Operation) (core.Endpoint, error) {
	ep, ok := p.dialect.endpoints[op]
	if !ok {
		return core.Endpoint{}, core.NewError(p.gen, core.KindUnsupported, fmt.Sprintf("%s is not available on %s", op, p.gen)).
			WithCode(string(core.ErrCodeUnsupported))
	}
	return ep, nil
}

// wireParams renames logical params to the endpoint's wire names and converts
// values to the generation's dialect. Params the endpoint does not know, and
// nil or empty-string values, are dropped.
func (p *Protocol) wireParams(op core.Operation, ep core.Endpoint, params core.Params) core.Params {
	out := make(core.Params, len(params))
	for logical, v := range p.dialect.defaults[op] {
		if isEmpty(params[logical]) {
			if wire, ok := ep.Params[logical]; ok {
				out[wire] = p.dialect.wireValue(v)
			}
		}
	}
	for logical, v := range params {
		wire, ok := ep.Params[logical]
		if !ok || isEmpty(v) {
			continue
		}
		out[wire] = p.dialect.wireValue(v)
	}
	return out
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	}
	return false
}
