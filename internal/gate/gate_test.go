package gate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wahlandcase/mergegate/internal/models"
)

// fakeAPI replays scripted snapshots: successive GetPullRequest calls
// walk prs, successive GetCombinedStatus calls walk statuses, and the
// last entry of each script repeats once exhausted.
type fakeAPI struct {
	prs      []models.PullRequest
	statuses []models.CombinedStatus
	reviews  []models.Review

	prErr     error
	statusErr error
	reviewErr error

	mergeOutcome models.Outcome
	mergeErr     error

	prCalls     int
	statusCalls int
	mergeCalls  int
	mergeMethod models.MergeMethod
	statusRef   string
}

func (f *fakeAPI) GetPullRequest(ctx context.Context, number int) (models.PullRequest, error) {
	if f.prErr != nil {
		return models.PullRequest{}, f.prErr
	}
	i := f.prCalls
	if i >= len(f.prs) {
		i = len(f.prs) - 1
	}
	f.prCalls++
	return f.prs[i], nil
}

func (f *fakeAPI) ListReviews(ctx context.Context, number int) ([]models.Review, error) {
	return f.reviews, f.reviewErr
}

func (f *fakeAPI) GetCombinedStatus(ctx context.Context, ref string) (models.CombinedStatus, error) {
	if f.statusErr != nil {
		return models.CombinedStatus{}, f.statusErr
	}
	i := f.statusCalls
	if i >= len(f.statuses) {
		i = len(f.statuses) - 1
	}
	f.statusCalls++
	f.statusRef = ref
	return f.statuses[i], nil
}

func (f *fakeAPI) MergePullRequest(ctx context.Context, number int, method models.MergeMethod, subject string) (models.Outcome, error) {
	f.mergeCalls++
	f.mergeMethod = method
	if f.mergeErr != nil {
		return nil, f.mergeErr
	}
	return f.mergeOutcome, nil
}

func openPR(mergeable models.MergeableState) models.PullRequest {
	return models.PullRequest{
		Number:    42,
		HeadSHA:   "cafe42",
		State:     models.LifecycleOpen,
		Mergeable: mergeable,
	}
}

func greenStatus() models.CombinedStatus {
	return models.CombinedStatus{Overall: models.CheckSuccess}
}

func testConfig() Config {
	return Config{
		RequiredApprovals: 1,
		Method:            models.MethodSquash,
		PollInterval:      time.Second,
		PollTimeout:       10 * time.Second,
	}
}

func newTestGate(api *fakeAPI, cfg Config) *Gate {
	return New(api, cfg, zap.NewNop().Sugar()).WithClock(newFakeClock())
}

func TestGateDraftNeverMerges(t *testing.T) {
	pr := openPR(models.MergeableClean)
	pr.Draft = true
	api := &fakeAPI{prs: []models.PullRequest{pr}}

	_, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	var state *StateError
	require.ErrorAs(t, err, &state)
	require.Equal(t, PhaseStateCheck, state.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateClosedPRFails(t *testing.T) {
	pr := openPR(models.MergeableClean)
	pr.State = models.LifecycleClosed
	api := &fakeAPI{prs: []models.PullRequest{pr}}

	_, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	var state *StateError
	require.ErrorAs(t, err, &state)
	require.Equal(t, PhaseStateCheck, state.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateMergeabilityResolvesOnThirdPoll(t *testing.T) {
	api := &fakeAPI{
		prs: []models.PullRequest{
			openPR(models.MergeableUnknown), // state check
			openPR(models.MergeableUnknown),
			openPR(models.MergeableUnknown),
			openPR(models.MergeableClean),
		},
		statuses:     []models.CombinedStatus{greenStatus()},
		reviews:      []models.Review{review("alice", models.VerdictApproved, 1)},
		mergeOutcome: models.Merged("deadbeef"),
	}
	cfg := testConfig()
	cfg.PollTimeout = 3 * time.Second

	outcome, err := newTestGate(api, cfg).Run(context.Background(), 42)

	require.NoError(t, err)
	require.True(t, models.IsMerged(outcome))
	require.Equal(t, 4, api.prCalls)
}

func TestGateMergeabilityTimeout(t *testing.T) {
	api := &fakeAPI{prs: []models.PullRequest{openPR(models.MergeableUnknown)}}
	cfg := testConfig()
	cfg.PollTimeout = 3 * time.Second

	_, err := newTestGate(api, cfg).Run(context.Background(), 42)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, PhaseMergeability, timeout.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateConflictingFails(t *testing.T) {
	api := &fakeAPI{prs: []models.PullRequest{openPR(models.MergeableConflicting)}}

	_, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	var state *StateError
	require.ErrorAs(t, err, &state)
	require.Equal(t, PhaseMergeability, state.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateBlockedFails(t *testing.T) {
	api := &fakeAPI{prs: []models.PullRequest{openPR(models.MergeableBlocked)}}

	_, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	var state *StateError
	require.ErrorAs(t, err, &state)
	require.Equal(t, PhaseMergeability, state.Phase)
}

func TestGateChecksTimeoutOnMissingRequiredContext(t *testing.T) {
	api := &fakeAPI{
		prs: []models.PullRequest{openPR(models.MergeableClean)},
		statuses: []models.CombinedStatus{{
			Overall: models.CheckSuccess,
			Checks:  []models.StatusCheck{{Context: "lint", State: models.CheckSuccess}},
		}},
		reviews: []models.Review{review("alice", models.VerdictApproved, 1)},
	}
	cfg := testConfig()
	cfg.RequiredContexts = []string{"ci/build"}
	cfg.PollTimeout = 3 * time.Second

	_, err := newTestGate(api, cfg).Run(context.Background(), 42)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	require.Equal(t, PhaseChecks, timeout.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateInsufficientApprovals(t *testing.T) {
	api := &fakeAPI{
		prs:      []models.PullRequest{openPR(models.MergeableClean)},
		statuses: []models.CombinedStatus{greenStatus()},
	}

	_, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	var state *StateError
	require.ErrorAs(t, err, &state)
	require.Equal(t, PhaseApprovals, state.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateMergeIdempotence(t *testing.T) {
	// Merging an already-merged PR reports NotMerged, not a crash.
	api := &fakeAPI{
		prs:          []models.PullRequest{openPR(models.MergeableClean)},
		statuses:     []models.CombinedStatus{greenStatus()},
		reviews:      []models.Review{review("alice", models.VerdictApproved, 1)},
		mergeOutcome: models.NotMerged("Pull Request is not mergeable"),
	}

	outcome, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	require.NoError(t, err)
	require.False(t, models.IsMerged(outcome))
	require.Equal(t, "Pull Request is not mergeable", models.NotMergedReason(outcome))
	require.Equal(t, 1, api.mergeCalls)
}

func TestGateDryRunSkipsMerge(t *testing.T) {
	api := &fakeAPI{
		prs:      []models.PullRequest{openPR(models.MergeableClean)},
		statuses: []models.CombinedStatus{greenStatus()},
		reviews:  []models.Review{review("alice", models.VerdictApproved, 1)},
	}
	cfg := testConfig()
	cfg.DryRun = true

	outcome, err := newTestGate(api, cfg).Run(context.Background(), 42)

	require.NoError(t, err)
	require.True(t, models.IsDryRunPass(outcome))
	require.Zero(t, api.mergeCalls)
}

func TestGateEndToEndMerges(t *testing.T) {
	// PR #42: mergeability resolves on the 2nd poll, required context
	// ci/build green while lint is still pending, two approvals with one
	// required. Every phase passes and the merge is confirmed.
	api := &fakeAPI{
		prs: []models.PullRequest{
			openPR(models.MergeableUnknown), // state check
			openPR(models.MergeableUnknown),
			openPR(models.MergeableClean),
		},
		statuses: []models.CombinedStatus{{
			Overall: models.CheckPending,
			Checks: []models.StatusCheck{
				{Context: "ci/build", State: models.CheckSuccess},
				{Context: "lint", State: models.CheckPending},
			},
		}},
		reviews: []models.Review{
			review("alice", models.VerdictApproved, 1),
			review("bob", models.VerdictApproved, 2),
		},
		mergeOutcome: models.Merged("deadbeef"),
	}
	cfg := testConfig()
	cfg.RequiredContexts = []string{"ci/build"}

	var passed []string
	g := newTestGate(api, cfg).WithProgress(func(ev Event) {
		if ev.Done {
			passed = append(passed, ev.Phase)
		}
	})

	outcome, err := g.Run(context.Background(), 42)

	require.NoError(t, err)
	require.True(t, models.IsMerged(outcome))
	require.Equal(t, "deadbeef", models.MergedSHA(outcome))
	require.Equal(t, 1, api.mergeCalls)
	require.Equal(t, models.MethodSquash, api.mergeMethod)
	require.Equal(t, "cafe42", api.statusRef)
	require.Equal(t, []string{PhaseStateCheck, PhaseMergeability, PhaseChecks, PhaseApprovals, PhaseMerge}, passed)
}

func TestGateChecksFollowHeadPushedDuringMergeability(t *testing.T) {
	// A new commit lands while mergeability is still computing. The
	// checks phase must verify the head the verdict came from, not the
	// one seen during the state check.
	moved := openPR(models.MergeableClean)
	moved.HeadSHA = "beef99"
	api := &fakeAPI{
		prs: []models.PullRequest{
			openPR(models.MergeableUnknown), // state check, head cafe42
			moved,
		},
		statuses:     []models.CombinedStatus{greenStatus()},
		reviews:      []models.Review{review("alice", models.VerdictApproved, 1)},
		mergeOutcome: models.Merged("beef99"),
	}

	outcome, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	require.NoError(t, err)
	require.True(t, models.IsMerged(outcome))
	require.Equal(t, "beef99", api.statusRef)
}

func TestGateEndToEndZeroApprovals(t *testing.T) {
	// Same PR, zero approvals, one required: approvals phase fails and
	// the merge is never invoked.
	api := &fakeAPI{
		prs: []models.PullRequest{
			openPR(models.MergeableUnknown),
			openPR(models.MergeableUnknown),
			openPR(models.MergeableClean),
		},
		statuses: []models.CombinedStatus{{
			Overall: models.CheckPending,
			Checks:  []models.StatusCheck{{Context: "ci/build", State: models.CheckSuccess}},
		}},
		mergeOutcome: models.Merged("deadbeef"),
	}
	cfg := testConfig()
	cfg.RequiredContexts = []string{"ci/build"}

	_, err := newTestGate(api, cfg).Run(context.Background(), 42)

	var state *StateError
	require.ErrorAs(t, err, &state)
	require.Equal(t, PhaseApprovals, state.Phase)
	require.Zero(t, api.mergeCalls)
}

func TestGateAbortsOnAPIError(t *testing.T) {
	api := &fakeAPI{prErr: &ApiError{Op: "get pull request", Err: context.DeadlineExceeded}}

	_, err := newTestGate(api, testConfig()).Run(context.Background(), 42)

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Zero(t, api.mergeCalls)
}
