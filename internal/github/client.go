package github

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v71/github"
	"go.uber.org/zap"

	"github.com/wahlandcase/mergegate/internal/gate"
	"github.com/wahlandcase/mergegate/internal/models"
)

var _ gate.API = (*Client)(nil)

// Client implements gate.API for one repository using an installation
// token
type Client struct {
	gh    *gh.Client
	owner string
	name  string
	log   *zap.SugaredLogger
}

// NewClient builds a repository-scoped client from an installation token
func NewClient(token, owner, name string, log *zap.SugaredLogger) *Client {
	return &Client{
		gh:    gh.NewClient(nil).WithAuthToken(token),
		owner: owner,
		name:  name,
		log:   log,
	}
}

// GetPullRequest fetches a fresh snapshot of the pull request
func (c *Client) GetPullRequest(ctx context.Context, number int) (models.PullRequest, error) {
	pr, resp, err := c.gh.PullRequests.Get(ctx, c.owner, c.name, number)
	if err != nil {
		if isNotFound(resp) {
			return models.PullRequest{}, &gate.NotFoundError{Repo: c.owner + "/" + c.name, Number: number}
		}
		return models.PullRequest{}, &gate.ApiError{Op: "get pull request", Err: err}
	}
	return mapPullRequest(pr), nil
}

// ListReviews lists every submitted review, following pagination
func (c *Client) ListReviews(ctx context.Context, number int) ([]models.Review, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var reviews []models.Review
	for {
		page, resp, err := c.gh.PullRequests.ListReviews(ctx, c.owner, c.name, number, opts)
		if err != nil {
			if isNotFound(resp) {
				return nil, &gate.NotFoundError{Repo: c.owner + "/" + c.name, Number: number}
			}
			return nil, &gate.ApiError{Op: "list reviews", Err: err}
		}
		for _, r := range page {
			reviews = append(reviews, mapReview(r))
		}
		if resp.NextPage == 0 {
			return reviews, nil
		}
		opts.Page = resp.NextPage
	}
}

// GetCombinedStatus fetches the status rollup for a commit
func (c *Client) GetCombinedStatus(ctx context.Context, ref string) (models.CombinedStatus, error) {
	combined, _, err := c.gh.Repositories.GetCombinedStatus(ctx, c.owner, c.name, ref, &gh.ListOptions{PerPage: 100})
	if err != nil {
		return models.CombinedStatus{}, &gate.ApiError{Op: "get combined status", Err: err}
	}
	return mapCombinedStatus(combined), nil
}

// MergePullRequest performs the merge call. GitHub signals "cannot merge"
// with a 405/409 response; that is a NotMerged outcome for the gate, not
// an error, which also makes a second run against an already-merged PR
// harmless.
func (c *Client) MergePullRequest(ctx context.Context, number int, method models.MergeMethod, subject string) (models.Outcome, error) {
	opts := &gh.PullRequestOptions{MergeMethod: string(method)}
	if subject != "" {
		opts.CommitTitle = subject
	}

	result, resp, err := c.gh.PullRequests.Merge(ctx, c.owner, c.name, number, "", opts)
	if err != nil {
		if reason, ok := mergeRefusal(resp, err); ok {
			c.log.Debugw("merge refused by platform", "pr", number, "reason", reason)
			return models.NotMerged(reason), nil
		}
		if isNotFound(resp) {
			return nil, &gate.NotFoundError{Repo: c.owner + "/" + c.name, Number: number}
		}
		return nil, &gate.ApiError{Op: "merge pull request", Err: err}
	}

	if !result.GetMerged() {
		return models.NotMerged(result.GetMessage()), nil
	}
	return models.Merged(result.GetSHA()), nil
}

func isNotFound(resp *gh.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

// mergeRefusal classifies merge responses that mean "the platform
// declined to merge" as opposed to transport or auth failures
func mergeRefusal(resp *gh.Response, err error) (string, bool) {
	if resp == nil {
		return "", false
	}
	switch resp.StatusCode {
	case http.StatusMethodNotAllowed, http.StatusConflict:
		if ghErr, ok := err.(*gh.ErrorResponse); ok && ghErr.Message != "" {
			return ghErr.Message, true
		}
		return "pull request is not mergeable", true
	}
	return "", false
}
