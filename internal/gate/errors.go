package gate

import (
	"fmt"
	"time"
)

// Phase names used in errors, logs and progress events
const (
	PhaseStateCheck   = "draft-and-state"
	PhaseMergeability = "mergeability"
	PhaseChecks       = "required-checks"
	PhaseApprovals    = "approvals"
	PhaseMerge        = "merge"
)

// StateError means the pull request is in a state that definitively
// fails the gate (draft, closed, conflicting, insufficient approvals).
// It is never retried.
type StateError struct {
	Phase  string
	Reason string
}

func (e *StateError) Error() string {
	return e.Phase + ": " + e.Reason
}

// TimeoutError means a polling phase exhausted its deadline without
// reaching a resolution
type TimeoutError struct {
	Phase  string
	Budget time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: no resolution within %s", e.Phase, e.Budget)
}

// AuthError means a token could not be obtained for the repository
type AuthError struct {
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return "auth: " + e.Reason + ": " + e.Err.Error()
	}
	return "auth: " + e.Reason
}

func (e *AuthError) Unwrap() error { return e.Err }

// NotFoundError means the pull request does not exist or is inaccessible
type NotFoundError struct {
	Repo   string
	Number int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pull request %s#%d not found", e.Repo, e.Number)
}

// ApiError is any other failure surfaced by the remote API
type ApiError struct {
	Op  string
	Err error
}

func (e *ApiError) Error() string {
	return "api: " + e.Op + ": " + e.Err.Error()
}

func (e *ApiError) Unwrap() error { return e.Err }
