package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	"cryptocom/pkg/core"
)

// Normalize maps a raw HTTP outcome to a Result using the generation's
// response field names. It never panics.
func (p *Protocol) Normalize(statusCode int, body []byte) core.Result {
	spec := p.gen.Spec()

	if statusCode != http.StatusOK {
		return core.Failure(p.httpError(spec, statusCode, body))
	}

	var envelope map[string]json.RawMessage
	if err := sonic.Unmarshal(body, &envelope); err != nil || envelope == nil {
		if err == nil {
			err = fmt.Errorf("response is not a JSON object")
		}
		return core.Failure(core.NewError(p.gen, core.KindDecode, "malformed response body").
			WithStatus(statusCode).
			WithCode(string(core.ErrCodeDecode)).
			WithRaw(string(body)).
			WithCause(err))
	}

	code, ok := parseStatus(envelope[spec.CodeField])
	if !ok {
		return core.Failure(core.NewError(p.gen, core.KindDecode, fmt.Sprintf("response has no %q status field", spec.CodeField)).
			WithStatus(statusCode).
			WithCode(string(core.ErrCodeDecode)).
			WithRaw(string(body)))
	}

	if code != "0" {
		e := core.NewError(p.gen, core.KindExchange, messageOf(envelope[spec.MessageField])).
			WithStatus(statusCode).
			WithCode(code)
		if fields, err := decodeFields(body); err == nil {
			e.WithFields(fields)
		}
		return core.Failure(e)
	}

	return core.Success(envelope[spec.ResultField])
}

func (p *Protocol) httpError(spec core.GenerationSpec, statusCode int, body []byte) *core.Error {
	e := core.NewError(p.gen, core.KindHTTP, http.StatusText(statusCode)).WithStatus(statusCode)

	fields, err := decodeFields(body)
	if err != nil {
		return e.WithRaw(string(body))
	}
	e.WithFields(fields)

	var envelope map[string]json.RawMessage
	if sonic.Unmarshal(body, &envelope) == nil {
		if code, ok := parseStatus(envelope[spec.CodeField]); ok {
			e.WithCode(code)
		}
		if msg := messageOf(envelope[spec.MessageField]); msg != "" {
			e.Message = msg
		}
	}
	return e
}

// parseStatus accepts the status field as a JSON number or string.
// parseStatus accepts a number or a string. Numbers are compared by value, so
// 0, 0.0 and 0e3 all read as "0".
func parseStatus(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return "", false
		}
		return s, true
	}
	d, _, err := apd.NewFromString(string(raw))
	if err != nil || d.Form != apd.Finite {
		return "", false
	}
	if d.IsZero() {
		return "0", true
	}
	var reduced apd.Decimal
	reduced.Reduce(d)
	return reduced.Text('f'), true
}

func messageOf(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := sonic.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func decodeFields(body []byte) (map[string]any, error) {
	var fields map[string]any
	if err := sonic.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return fields, nil
}
