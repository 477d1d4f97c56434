// Package ui renders human-readable lifecycle messages for jj subprocess
// invocations when console logging is enabled.
package ui
