// Package utils bundles shared infrastructure for the jjprompt CLI: a
// Viper-backed configuration loader, a zap logger factory, and a flushing
// writer used when emitting the unterminated prompt line.
package utils
