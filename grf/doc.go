// Package grf implements low-level access to GRF container files.
//
// This includes record framing for container format versions 1 and 2, a
// skipper for real-sprite data, and a bounds-guarded byte cursor over a
// single pseudo-sprite payload. Interpretation of the payloads themselves
// (actions, properties, sprite groups) lives in package newgrf.
package grf
