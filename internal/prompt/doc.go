// Package prompt assembles the single-line jj workspace status string and
// exposes the prompt and detect command builders.
package prompt
