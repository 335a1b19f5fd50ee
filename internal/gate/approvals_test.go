package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/mergegate/internal/models"
)

func review(author string, verdict models.ReviewVerdict, minute int) models.Review {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.Review{Author: author, Verdict: verdict, SubmittedAt: base.Add(time.Duration(minute) * time.Minute)}
}

func TestCountApprovals(t *testing.T) {
	tests := []struct {
		name    string
		reviews []models.Review
		want    int
	}{
		{
			name: "distinct approvers each count once",
			reviews: []models.Review{
				review("alice", models.VerdictApproved, 1),
				review("bob", models.VerdictApproved, 2),
			},
			want: 2,
		},
		{
			name: "duplicate approvals from one author count once",
			reviews: []models.Review{
				review("alice", models.VerdictApproved, 1),
				review("alice", models.VerdictApproved, 5),
			},
			want: 1,
		},
		{
			name: "later changes-requested shadows earlier approval",
			reviews: []models.Review{
				review("alice", models.VerdictApproved, 1),
				review("alice", models.VerdictChangesRequested, 2),
			},
			want: 0,
		},
		{
			name: "later dismissal shadows earlier approval",
			reviews: []models.Review{
				review("alice", models.VerdictApproved, 1),
				review("alice", models.VerdictDismissed, 3),
			},
			want: 0,
		},
		{
			name: "later approval overrides earlier changes-requested",
			reviews: []models.Review{
				review("alice", models.VerdictChangesRequested, 1),
				review("alice", models.VerdictApproved, 4),
			},
			want: 1,
		},
		{
			name: "out-of-order list still uses latest by time",
			reviews: []models.Review{
				review("alice", models.VerdictApproved, 9),
				review("alice", models.VerdictChangesRequested, 2),
			},
			want: 1,
		},
		{
			name: "equal timestamps keep the later list entry",
			reviews: []models.Review{
				review("alice", models.VerdictApproved, 3),
				review("alice", models.VerdictDismissed, 3),
			},
			want: 0,
		},
		{
			name: "comments never count as approvals",
			reviews: []models.Review{
				review("alice", models.VerdictCommented, 1),
				review("bob", models.VerdictApproved, 2),
			},
			want: 1,
		},
		{
			name:    "empty list",
			reviews: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CountApprovals(tt.reviews))
		})
	}
}
