// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package relay implements a buffered, resumable byte relay between a
// poll-mode source and sink. A single reusable buffer alternates between
// fill and drain phases across an arbitrary number of suspend/resume
// cycles without losing or duplicating bytes, cooperating with a budget
// gate so one relay cannot starve its driver.
package relay
