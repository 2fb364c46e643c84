// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package current implements the per-goroutine "current runtime handle"
// register. Runtime-bound code installs a handle for a scope and deeper
// calls retrieve it without explicit parameter threading.
//
// Installations nest and must be released in exact reverse order; each
// goroutine owns an independent cell, and guards never cross goroutines.
package current
