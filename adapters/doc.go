// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package adapters bridges ordinary readers, writers and file
// descriptors into the poll-mode source/sink contracts consumed by the
// relay engine.
package adapters
