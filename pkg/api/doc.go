// Package api defines the request and response messages of the Cash Crush
// RPC services.
//
// Messages are plain Go structs carried as JSON by the apiconnect codec.
// Money is a decimal string ("12.50"); timestamps are Unix milliseconds.
package api
