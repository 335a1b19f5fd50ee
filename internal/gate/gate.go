// Package gate implements the merge-readiness state machine: a linear
// sequence of phases with early exit on failure, ending in at most one
// merge attempt.
package gate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wahlandcase/mergegate/internal/models"
)

// API is the capability set the gate needs from the code-hosting
// platform. The real implementation lives in internal/github; tests
// drive the gate with a scripted fake.
type API interface {
	// GetPullRequest fetches a fresh snapshot of the pull request
	GetPullRequest(ctx context.Context, number int) (models.PullRequest, error)
	// ListReviews lists all submitted reviews for the pull request
	ListReviews(ctx context.Context, number int) ([]models.Review, error)
	// GetCombinedStatus fetches the status rollup for a commit
	GetCombinedStatus(ctx context.Context, ref string) (models.CombinedStatus, error)
	// MergePullRequest performs the merge. A clean API response that
	// reports the PR as not merged is a NotMerged outcome, not an error.
	MergePullRequest(ctx context.Context, number int, method models.MergeMethod, subject string) (models.Outcome, error)
}

// Config tunes a single gate run
type Config struct {
	// RequiredApprovals is the minimum count of distinct approving reviewers
	RequiredApprovals int
	// RequiredContexts are status contexts that must all be successful.
	// Empty defers entirely to the commit's aggregate verdict.
	RequiredContexts []string
	// Method is the merge strategy
	Method models.MergeMethod
	// Subject is an optional merge commit title ("" = platform default)
	Subject string
	// PollInterval is the delay between polling attempts
	PollInterval time.Duration
	// PollTimeout is the elapsed-time budget of each polling phase
	PollTimeout time.Duration
	// DryRun runs every phase except the merge itself
	DryRun bool
}

// Event is a progress notification emitted as the gate moves through
// phases. Done marks the phase as passed; otherwise the phase has just
// started or posted an intermediate note.
type Event struct {
	Phase string
	Done  bool
	Note  string
}

// Gate runs the readiness state machine against one pull request
type Gate struct {
	api      API
	cfg      Config
	log      *zap.SugaredLogger
	clock    Clock
	progress func(Event)
}

// New creates a Gate over the given platform capabilities
func New(api API, cfg Config, log *zap.SugaredLogger) *Gate {
	return &Gate{api: api, cfg: cfg, log: log, clock: realClock{}}
}

// WithClock replaces the wall clock, used by tests
func (g *Gate) WithClock(c Clock) *Gate {
	g.clock = c
	return g
}

// WithProgress registers a callback invoked as phases start and pass
func (g *Gate) WithProgress(fn func(Event)) *Gate {
	g.progress = fn
	return g
}

func (g *Gate) emit(ev Event) {
	if g.progress != nil {
		g.progress(ev)
	}
}

// Run executes the state machine for one pull request. It returns a
// terminal outcome when the run reached the merge phase, or the first
// phase error otherwise. The merge is attempted at most once.
func (g *Gate) Run(ctx context.Context, number int) (models.Outcome, error) {
	if err := g.checkDraftAndState(ctx, number); err != nil {
		return nil, err
	}

	// The mergeability loop re-fetches the PR, so its last snapshot
	// carries the freshest head. Checks must run against that commit,
	// not the one seen during the state check.
	pr, err := g.resolveMergeability(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := g.awaitRequiredChecks(ctx, pr.HeadSHA); err != nil {
		return nil, err
	}

	if err := g.checkApprovals(ctx, number); err != nil {
		return nil, err
	}

	return g.merge(ctx, number)
}

// checkDraftAndState fails on a draft or non-open PR. No retries: a
// draft or closed PR is not a transient condition.
func (g *Gate) checkDraftAndState(ctx context.Context, number int) error {
	g.emit(Event{Phase: PhaseStateCheck})

	pr, err := g.api.GetPullRequest(ctx, number)
	if err != nil {
		return err
	}
	if pr.Draft {
		return &StateError{Phase: PhaseStateCheck, Reason: "pull request is a draft"}
	}
	if pr.State != models.LifecycleOpen {
		return &StateError{Phase: PhaseStateCheck, Reason: fmt.Sprintf("pull request is %s", pr.State)}
	}

	g.log.Infow("pull request is open and not a draft", "pr", number, "head", pr.HeadSHA)
	g.emit(Event{Phase: PhaseStateCheck, Done: true})
	return nil
}

// resolveMergeability polls until the platform resolves the mergeable
// state away from unknown. Once resolved the verdict is final for this
// run; conflicting or blocked fails the gate. It returns the snapshot
// the verdict was read from so later phases act on the same head.
func (g *Gate) resolveMergeability(ctx context.Context, number int) (models.PullRequest, error) {
	g.emit(Event{Phase: PhaseMergeability})

	attempt := 0
	pr, err := poll(ctx, g.clock, PhaseMergeability, g.cfg.PollInterval, g.cfg.PollTimeout,
		func(ctx context.Context) (models.PullRequest, bool, error) {
			attempt++
			pr, err := g.api.GetPullRequest(ctx, number)
			if err != nil {
				return models.PullRequest{}, false, err
			}
			if pr.Mergeable == models.MergeableUnknown {
				g.log.Debugw("mergeability not computed yet", "pr", number, "attempt", attempt)
				g.emit(Event{Phase: PhaseMergeability, Note: "waiting for mergeability"})
				return models.PullRequest{}, false, nil
			}
			return pr, true, nil
		})
	if err != nil {
		return models.PullRequest{}, err
	}

	if pr.Mergeable != models.MergeableClean {
		return models.PullRequest{}, &StateError{Phase: PhaseMergeability, Reason: fmt.Sprintf("pull request is %s", pr.Mergeable)}
	}

	g.log.Infow("mergeability resolved", "pr", number, "state", pr.Mergeable, "attempts", attempt)
	g.emit(Event{Phase: PhaseMergeability, Done: true})
	return pr, nil
}

// awaitRequiredChecks polls the head commit's combined status until the
// required-context rule is satisfied. A failing check keeps the phase
// polling rather than failing it: checks can be re-run while the gate
// waits, and a verdict never downgrades the phase.
func (g *Gate) awaitRequiredChecks(ctx context.Context, headSHA string) error {
	g.emit(Event{Phase: PhaseChecks})

	_, err := poll(ctx, g.clock, PhaseChecks, g.cfg.PollInterval, g.cfg.PollTimeout,
		func(ctx context.Context) (struct{}, bool, error) {
			status, err := g.api.GetCombinedStatus(ctx, headSHA)
			if err != nil {
				return struct{}{}, false, err
			}
			if !ChecksSatisfied(status, g.cfg.RequiredContexts) {
				g.log.Debugw("required checks not green yet", "head", headSHA, "overall", status.Overall)
				g.emit(Event{Phase: PhaseChecks, Note: "waiting for checks"})
				return struct{}{}, false, nil
			}
			return struct{}{}, true, nil
		})
	if err != nil {
		return err
	}

	g.log.Infow("required checks passed", "head", headSHA)
	g.emit(Event{Phase: PhaseChecks, Done: true})
	return nil
}

// checkApprovals is a single check, not polled: approvals are not
// expected to change mid-run.
func (g *Gate) checkApprovals(ctx context.Context, number int) error {
	g.emit(Event{Phase: PhaseApprovals})

	reviews, err := g.api.ListReviews(ctx, number)
	if err != nil {
		return err
	}

	count := CountApprovals(reviews)
	if count < g.cfg.RequiredApprovals {
		return &StateError{
			Phase:  PhaseApprovals,
			Reason: fmt.Sprintf("%d of %d required approvals", count, g.cfg.RequiredApprovals),
		}
	}

	g.log.Infow("approvals satisfied", "pr", number, "approvals", count, "required", g.cfg.RequiredApprovals)
	g.emit(Event{Phase: PhaseApprovals, Done: true})
	return nil
}

func (g *Gate) merge(ctx context.Context, number int) (models.Outcome, error) {
	g.emit(Event{Phase: PhaseMerge})

	if g.cfg.DryRun {
		g.log.Infow("dry run, skipping merge", "pr", number)
		g.emit(Event{Phase: PhaseMerge, Done: true, Note: "dry run"})
		return models.DryRunPass, nil
	}

	outcome, err := g.api.MergePullRequest(ctx, number, g.cfg.Method, g.cfg.Subject)
	if err != nil {
		return nil, err
	}

	if models.IsMerged(outcome) {
		g.log.Infow("merge completed", "pr", number, "sha", models.MergedSHA(outcome))
	} else {
		g.log.Warnw("merge not performed", "pr", number, "reason", models.NotMergedReason(outcome))
	}
	g.emit(Event{Phase: PhaseMerge, Done: true})
	return outcome, nil
}
