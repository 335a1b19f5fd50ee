package models

// StatusCheck is the verdict of one named status context on a commit
type StatusCheck struct {
	// Context is the status context name (e.g. "ci/build")
	Context string
	// State is the check's verdict
	State CheckState
}

// CombinedStatus is the rollup the platform reports for a commit: an
// aggregate verdict plus the individual checks behind it.
type CombinedStatus struct {
	// Overall is the aggregate verdict across all checks
	Overall CheckState
	// Checks are the individual status contexts
	Checks []StatusCheck
}
