package github

import (
	gh "github.com/google/go-github/v71/github"

	"github.com/wahlandcase/mergegate/internal/models"
)

func mapPullRequest(pr *gh.PullRequest) models.PullRequest {
	return models.PullRequest{
		Number:    pr.GetNumber(),
		HeadSHA:   pr.GetHead().GetSHA(),
		State:     mapLifecycle(pr),
		Draft:     pr.GetDraft(),
		Mergeable: mapMergeableState(pr.GetMergeableState()),
	}
}

// mapLifecycle folds GitHub's state+merged pair into one lifecycle value:
// a merged PR reports state "closed" with the merged flag set
func mapLifecycle(pr *gh.PullRequest) models.LifecycleState {
	if pr.GetMerged() {
		return models.LifecycleMerged
	}
	if pr.GetState() == "open" {
		return models.LifecycleOpen
	}
	return models.LifecycleClosed
}

// mapMergeableState folds GitHub's mergeable_state vocabulary into the
// gate's four-way verdict. "unstable" means failing checks, which the
// checks phase judges, so it still counts as mergeable here.
func mapMergeableState(s string) models.MergeableState {
	switch s {
	case "clean", "unstable", "has_hooks":
		return models.MergeableClean
	case "dirty":
		return models.MergeableConflicting
	case "blocked", "behind", "draft":
		return models.MergeableBlocked
	default:
		return models.MergeableUnknown
	}
}

func mapReview(r *gh.PullRequestReview) models.Review {
	return models.Review{
		Author:      r.GetUser().GetLogin(),
		Verdict:     mapReviewState(r.GetState()),
		SubmittedAt: r.GetSubmittedAt().Time,
	}
}

func mapReviewState(s string) models.ReviewVerdict {
	switch s {
	case "APPROVED":
		return models.VerdictApproved
	case "CHANGES_REQUESTED":
		return models.VerdictChangesRequested
	case "DISMISSED":
		return models.VerdictDismissed
	default:
		return models.VerdictCommented
	}
}

func mapCombinedStatus(cs *gh.CombinedStatus) models.CombinedStatus {
	out := models.CombinedStatus{Overall: mapCheckState(cs.GetState())}
	for _, st := range cs.Statuses {
		out.Checks = append(out.Checks, models.StatusCheck{
			Context: st.GetContext(),
			State:   mapCheckState(st.GetState()),
		})
	}
	return out
}

func mapCheckState(s string) models.CheckState {
	switch s {
	case "success":
		return models.CheckSuccess
	case "failure":
		return models.CheckFailure
	case "error":
		return models.CheckError
	default:
		return models.CheckPending
	}
}
