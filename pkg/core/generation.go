package core

import (
	"fmt"
	"strings"
)

// Generation identifies one of the two incompatible REST API dialects
// offered by the exchange. A client is bound to exactly one generation.
type Generation int

// Generation constants.
const (
	// GenerationV1 is the legacy API: SHA-256 signing with the secret appended,
	// flattened form-encoded envelopes and a "data" payload field.
	GenerationV1 Generation = iota
	// GenerationV2 is the current API: HMAC-SHA256 signing, JSON envelopes with
	// nested params and a "result" payload field.
	GenerationV2
)

// String returns the generation label ("v1" or "v2").
func (g Generation) String() string {
	return [...]string{"v1", "v2"}[g]
}

// Valid reports whether g is a known generation.
func (g Generation) Valid() bool {
	return g == GenerationV1 || g == GenerationV2
}

// Spec returns the static description of the generation.
func (g Generation) Spec() GenerationSpec {
	return generationSpecs[g]
}

// ParseGeneration parses "v1"/"v2" (case-insensitive, "1"/"2" accepted).
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return GenerationV1, nil
	case "v2", "2":
		return GenerationV2, nil
	}
	return 0, fmt.Errorf("unknown api generation %q", s)
}

// SignAlgorithm tags the signature scheme used by a generation.
type SignAlgorithm int

// Signature schemes.
const (
	// SignSHA256 hashes the sorted parameter string with the secret appended.
	SignSHA256 SignAlgorithm = iota
	// SignHMACSHA256 keys an HMAC with the secret over method, id, key, params and nonce.
	SignHMACSHA256
)

// String returns the algorithm name.
func (a SignAlgorithm) String() string {
	return [...]string{"SHA256", "HMAC-SHA256"}[a]
}

// GenerationSpec describes the per-generation constants: where requests go,
// how they are signed and which response fields carry the status, message
// and payload.
type GenerationSpec struct {
	BaseURL      string
	CodeField    string
	MessageField string
	ResultField  string
	Signing      SignAlgorithm
}

// Both generations currently share "code" for the status field; it stays a
// per-generation lookup because the dialects have diverged before.
var generationSpecs = [...]GenerationSpec{
	GenerationV1: {
		BaseURL:      "https://api.crypto.com/v1/",
		CodeField:    "code",
		MessageField: "msg",
		ResultField:  "data",
		Signing:      SignSHA256,
	},
	GenerationV2: {
		BaseURL:      "https://api.crypto.com/v2/",
		CodeField:    "code",
		MessageField: "message",
		ResultField:  "result",
		Signing:      SignHMACSHA256,
	},
}
