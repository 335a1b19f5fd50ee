package models

// Outcome is the terminal result of a gate run that reached the merge
// phase without error
type Outcome interface {
	isOutcome()
}

type outcomeMerged struct{ SHA string }
type outcomeNotMerged struct{ Reason string }
type outcomeDryRun struct{}

func (outcomeMerged) isOutcome()    {}
func (outcomeNotMerged) isOutcome() {}
func (outcomeDryRun) isOutcome()    {}

// Merged creates an Outcome for a merge the platform confirmed completed
func Merged(sha string) Outcome {
	return outcomeMerged{SHA: sha}
}

// NotMerged creates an Outcome for a merge call that returned cleanly
// but reported the PR as not merged
func NotMerged(reason string) Outcome {
	return outcomeNotMerged{Reason: reason}
}

// DryRunPass is the Outcome of a dry run whose phases all passed; the
// merge itself was deliberately skipped
var DryRunPass Outcome = outcomeDryRun{}

// IsDryRunPass returns true if the outcome is a passed dry run
func IsDryRunPass(o Outcome) bool {
	_, ok := o.(outcomeDryRun)
	return ok
}

// IsMerged returns true if the outcome is a confirmed merge
func IsMerged(o Outcome) bool {
	_, ok := o.(outcomeMerged)
	return ok
}

// MergedSHA returns the merge commit id for a Merged outcome, "" otherwise
func MergedSHA(o Outcome) string {
	if m, ok := o.(outcomeMerged); ok {
		return m.SHA
	}
	return ""
}

// NotMergedReason returns the platform's message for a NotMerged outcome,
// "" otherwise
func NotMergedReason(o Outcome) string {
	if n, ok := o.(outcomeNotMerged); ok {
		return n.Reason
	}
	return ""
}
