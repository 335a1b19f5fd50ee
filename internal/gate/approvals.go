package gate

import "github.com/wahlandcase/mergegate/internal/models"

// CountApprovals reduces a review list to one live review per author and
// counts the authors whose latest verdict is approved. A later review
// from the same author shadows earlier ones, so a dismissal or a
// changes-requested after an approval withdraws that author's vote.
func CountApprovals(reviews []models.Review) int {
	latest := make(map[string]models.Review, len(reviews))
	for _, r := range reviews {
		prev, seen := latest[r.Author]
		// Equal timestamps keep the later list entry, matching the
		// platform's submission ordering.
		if !seen || !r.SubmittedAt.Before(prev.SubmittedAt) {
			latest[r.Author] = r
		}
	}

	count := 0
	for _, r := range latest {
		if r.Verdict == models.VerdictApproved {
			count++
		}
	}
	return count
}
