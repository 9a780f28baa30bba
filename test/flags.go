// Package test holds helpers shared by the tests of all packages.
package test

import "testing"

// MarkAsLong skips t when the tests run with -test.short.
// Use it for tests that generate load for several seconds.
func MarkAsLong(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping long running test in short mode")
	}
}
