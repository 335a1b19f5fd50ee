package models

// LifecycleState is the platform-reported state of a pull request
type LifecycleState string

const (
	// LifecycleOpen means the PR is open and a candidate for merging
	LifecycleOpen LifecycleState = "open"
	// LifecycleClosed means the PR was closed without merging
	LifecycleClosed LifecycleState = "closed"
	// LifecycleMerged means the PR has already been merged
	LifecycleMerged LifecycleState = "merged"
)

// MergeableState is the platform-computed verdict on whether a PR can be
// merged cleanly. It starts out Unknown right after a push and resolves
// asynchronously.
type MergeableState string

const (
	// MergeableUnknown means the platform has not computed mergeability yet
	MergeableUnknown MergeableState = "unknown"
	// MergeableClean means the PR can be merged
	MergeableClean MergeableState = "mergeable"
	// MergeableConflicting means the PR has merge conflicts
	MergeableConflicting MergeableState = "conflicting"
	// MergeableBlocked means branch protection blocks the merge
	MergeableBlocked MergeableState = "blocked"
)

// ReviewVerdict is the state of a single submitted review
type ReviewVerdict string

const (
	VerdictApproved         ReviewVerdict = "approved"
	VerdictChangesRequested ReviewVerdict = "changes_requested"
	VerdictCommented        ReviewVerdict = "commented"
	VerdictDismissed        ReviewVerdict = "dismissed"
)

// CheckState is the verdict of an individual status check, or of the
// commit's combined rollup.
type CheckState string

const (
	CheckSuccess CheckState = "success"
	CheckPending CheckState = "pending"
	CheckFailure CheckState = "failure"
	CheckError   CheckState = "error"
)
