// Package oracle defines the classification oracle port and the typed results
// decoded from its textual replies.
//
// An Oracle is a black box: it receives a Request (system text plus the
// customer-facing prompt) and returns raw text. Callers never look at that text
// directly; they go through DecodeValidation or DecodeTurn, which either yield
// a complete typed result or a *ParseError. A partially valid payload is never
// observable.
package oracle
