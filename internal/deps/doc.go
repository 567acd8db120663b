// Package deps checks that the external tools vidtext shells out to can be
// found on PATH.
package deps
