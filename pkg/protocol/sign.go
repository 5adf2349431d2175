package protocol

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"cryptocom/pkg/core"
)

// concatSorted joins key+value for every parameter in ascending key order.
func concatSorted(params core.Params) string {
	var b strings.Builder
	for _, k := range params.SortedKeys() {
		b.WriteString(k)
		b.WriteString(core.FormatValue(params[k]))
	}
	return b.String()
}

// SignLegacy computes the v1 signature: hex SHA-256 of the sorted parameter
// string with the secret appended. params must already contain api_key and time.
func SignLegacy(params core.Params, secret string) string {
	sum := sha256.Sum256([]byte(concatSorted(params) + secret))
	return hex.EncodeToString(sum[:])
}

// SignCurrent computes the v2 signature: hex HMAC-SHA256 keyed by the secret
// over method, id (omitted when zero), api key, the sorted parameter string
// and nonce.
func SignCurrent(params core.Params, apiKey, secret, method string, id, nonce int64) string {
	var b strings.Builder
	b.WriteString(method)
	if id != 0 {
		b.WriteString(strconv.FormatInt(id, 10))
	}
	b.WriteString(apiKey)
	b.WriteString(concatSorted(params))
	b.WriteString(strconv.FormatInt(nonce, 10))

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(b.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// Sign dispatches to the scheme of gen. method, id and nonce are ignored by v1.
func Sign(gen core.Generation, params core.Params, creds core.Credentials, method string, id, nonce int64) string {
	if gen.Spec().Signing == core.SignSHA256 {
		return SignLegacy(params, creds.SecretKey)
	}
	return SignCurrent(params, creds.APIKey, creds.SecretKey, method, id, nonce)
}
