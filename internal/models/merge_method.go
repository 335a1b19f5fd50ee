package models

import "fmt"

// MergeMethod is the merge strategy requested from the platform
type MergeMethod string

const (
	// MethodMerge creates a merge commit
	MethodMerge MergeMethod = "merge"
	// MethodSquash collapses the PR's commits into one
	MethodSquash MergeMethod = "squash"
	// MethodRebase rebases the PR's commits onto the base branch
	MethodRebase MergeMethod = "rebase"
)

// DefaultMergeMethod is used when no method is configured
const DefaultMergeMethod = MethodSquash

// ParseMergeMethod parses a merge method string. An empty string yields
// the default method.
func ParseMergeMethod(s string) (MergeMethod, error) {
	switch MergeMethod(s) {
	case MethodMerge, MethodSquash, MethodRebase:
		return MergeMethod(s), nil
	case "":
		return DefaultMergeMethod, nil
	default:
		return "", fmt.Errorf("unknown merge method %q (want merge, squash or rebase)", s)
	}
}
