package gate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wahlandcase/mergegate/internal/models"
)

func TestChecksSatisfied(t *testing.T) {
	tests := []struct {
		name     string
		status   models.CombinedStatus
		required []string
		want     bool
	}{
		{
			name: "no required contexts, aggregate success wins despite pending check",
			status: models.CombinedStatus{
				Overall: models.CheckSuccess,
				Checks:  []models.StatusCheck{{Context: "lint", State: models.CheckPending}},
			},
			want: true,
		},
		{
			name:   "no required contexts, aggregate pending is not done",
			status: models.CombinedStatus{Overall: models.CheckPending},
			want:   false,
		},
		{
			name:   "no required contexts, aggregate failure is not done",
			status: models.CombinedStatus{Overall: models.CheckFailure},
			want:   false,
		},
		{
			name: "required context success passes while unlisted context pending",
			status: models.CombinedStatus{
				Overall: models.CheckPending,
				Checks: []models.StatusCheck{
					{Context: "ci/build", State: models.CheckSuccess},
					{Context: "lint", State: models.CheckPending},
				},
			},
			required: []string{"ci/build"},
			want:     true,
		},
		{
			name: "required context still pending",
			status: models.CombinedStatus{
				Overall: models.CheckPending,
				Checks:  []models.StatusCheck{{Context: "ci/build", State: models.CheckPending}},
			},
			required: []string{"ci/build"},
			want:     false,
		},
		{
			name: "missing required context counts as not yet succeeded",
			status: models.CombinedStatus{
				Overall: models.CheckSuccess,
				Checks:  []models.StatusCheck{{Context: "lint", State: models.CheckSuccess}},
			},
			required: []string{"ci/build"},
			want:     false,
		},
		{
			name: "every required context must be green",
			status: models.CombinedStatus{
				Overall: models.CheckPending,
				Checks: []models.StatusCheck{
					{Context: "ci/build", State: models.CheckSuccess},
					{Context: "ci/test", State: models.CheckFailure},
				},
			},
			required: []string{"ci/build", "ci/test"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ChecksSatisfied(tt.status, tt.required))
		})
	}
}
