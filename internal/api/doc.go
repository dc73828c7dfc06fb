// Package api exposes the HTTP surface: request decoding, validation,
// error-to-status mapping, and the chi router wiring it all together.
package api
