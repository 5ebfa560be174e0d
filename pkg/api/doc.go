// Package api defines the request and response messages of the splitapp.v1
// RPC services. Messages travel as JSON with lowerCamel field names; money
// fields accept JSON numbers or decimal strings on input.
package api
