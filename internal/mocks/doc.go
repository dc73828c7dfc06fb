// Package mocks provides shared mock implementations of the application's
// ports for testing. Mocks follow a common pattern: optional Fn fields
// override behavior per call, default value fields configure canned
// responses, and call counters support interaction verification.
package mocks
