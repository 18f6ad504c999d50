// Package contract has configuration, validation and shared helpers that
// all parts of riskline agree on.
package contract
