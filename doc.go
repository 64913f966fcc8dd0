package senml

// Package senml provides:
//
// - The SenML Record/Pack model with the compact JSON keys (bn, bt, n, v, ...)
// - Validate: a single forward pass enforcing version, name and value rules
// - Normalize: base-field expansion into absolute, self-contained records
// - Decode/Encode over a small format table (JSON today; XML and CBOR are named
//   but report unsupported_format)
// - A stable error model via Issue/Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Localized messages live under i18n/, and the CLI under cmd/senml.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	p, err := senml.Decode(data, senml.JSON)
//	n, err := senml.Normalize(p)
//	out, err := senml.Encode(n, senml.JSON)
//
// Errors are compared by kind:
//
//	if errors.Is(err, senml.ErrBadChar) { ... }
