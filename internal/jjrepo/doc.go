// Package jjrepo reads facts about a jj (Jujutsu) workspace.
//
// It locates the repository root, bootstraps the synthetic settings handed to
// the jj subprocess, and queries the working-copy commit through a single
// templated jj invocation. All access is read-only and best-effort free:
// any failure while collecting facts aborts the whole read.
package jjrepo
