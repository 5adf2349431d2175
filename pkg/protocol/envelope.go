package protocol

import (
	"encoding/json"

	"github.com/cockroachdb/apd/v3"

	"cryptocom/pkg/core"
)

// Envelope field names.
const (
	FieldAPIKey = "api_key"
	FieldTime   = "time"
	FieldSign   = "sign"
)

// SignedBody is the v2 JSON envelope of a private call. Business parameters
// are nested under Params and are never repeated at the top level.
type SignedBody struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	APIKey string         `json:"api_key"`
	Params map[string]any `json:"params"`
	Nonce  int64          `json:"nonce"`
	Sig    string         `json:"sig"`
}

// legacyEnvelope flattens key, time and signature into the business params.
// The signature covers api_key and time along with everything else.
func legacyEnvelope(gen core.Generation, params core.Params, creds core.Credentials, nonce int64) core.Params {
	signed := params.Clone()
	signed[FieldAPIKey] = creds.APIKey
	signed[FieldTime] = nonce
	signed[FieldSign] = Sign(gen, signed, creds, "", 0, nonce)
	return signed
}

func currentEnvelope(gen core.Generation, method string, params core.Params, creds core.Credentials, nonce, id int64) *SignedBody {
	return &SignedBody{
		ID:     id,
		Method: method,
		APIKey: creds.APIKey,
		Params: jsonParams(params),
		Nonce:  nonce,
		Sig:    Sign(gen, params, creds, method, id, nonce),
	}
}

// jsonParams renders decimals as JSON numbers carrying the same text that was
// signed. Other values keep their JSON type.
func jsonParams(params core.Params) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		switch val := v.(type) {
		case apd.Decimal:
			out[k] = json.Number(val.Text('f'))
		case *apd.Decimal:
			out[k] = json.Number(val.Text('f'))
		default:
			out[k] = v
		}
	}
	return out
}
