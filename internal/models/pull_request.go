package models

// PullRequest is a snapshot of the PR fields the gate reasons about.
// Snapshots are fetched fresh by each phase that needs current truth and
// never cached across a polling boundary.
type PullRequest struct {
	// Number is the PR number within the repository
	Number int
	// HeadSHA is the commit id of the PR's head
	HeadSHA string
	// State is the lifecycle state (open, closed, merged)
	State LifecycleState
	// Draft marks a PR explicitly not ready for merge
	Draft bool
	// Mergeable is the platform's conflict verdict, Unknown until computed
	Mergeable MergeableState
}
