// Package protocol implements core.Protocol for both crypto.com REST API
// generations. One implementation serves v1 and v2; everything that differs
// between them lives in a per-generation dialect: the endpoint table, the
// signature scheme, the signed envelope layout and the response field names.
//
// API Documentation: https://exchange-docs.crypto.com/spot/index.html
package protocol
