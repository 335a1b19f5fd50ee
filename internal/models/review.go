package models

import "time"

// Review is one submitted review. A single author may submit several;
// only their chronologically latest one is semantically live.
type Review struct {
	// Author is the reviewer's login
	Author string
	// Verdict is the review state
	Verdict ReviewVerdict
	// SubmittedAt is when the review was submitted
	SubmittedAt time.Time
}
