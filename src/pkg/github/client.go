package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v66/github"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/awslabs/smithy-rs/src/pkg/models"
	"github.com/awslabs/smithy-rs/src/pkg/template"
)

var logger = log.WithField("package", "github")

const CommentMarker = template.ToolCommentSignature

// PRClient defines the interface for GitHub pull request operations
type PRClient interface {
	// GetPR retrieves pull request information
	GetPR(ctx context.Context, owner, repo string, number int) (*models.PullRequest, error)
	// GetComments retrieves all comments for a pull request
	GetComments(ctx context.Context, owner, repo string, number int) ([]*models.Comment, error)
	// CreateComment creates a new comment on a pull request
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (*models.Comment, error)
	// UpdateComment updates an existing comment
	UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error
	// FindBotComment finds the latest pipeline-generated comment, or nil
	FindBotComment(ctx context.Context, owner, repo string, number int) (*models.Comment, error)
	// PostBotMessage creates or updates the pipeline comment on a PR
	PostBotMessage(ctx context.Context, repoSpec string, number int, message string) error
}

// Client handles GitHub API interactions using go-github
type Client struct {
	client *github.Client
}

// Ensure Client implements PRClient
var _ PRClient = (*Client)(nil)

// NewClient creates a new GitHub client
func NewClient() (*Client, error) {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("GitHub token not found. Set GH_TOKEN or GITHUB_TOKEN environment variable")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{client: github.NewClient(tc)}, nil
}

// GetPR retrieves pull request information
func (c *Client) GetPR(ctx context.Context, owner, repo string, number int) (*models.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get PR: %w", err)
	}

	return &models.PullRequest{
		Number:  pr.GetNumber(),
		BaseRef: pr.GetBase().GetRef(),
		BaseSHA: pr.GetBase().GetSHA(),
		HeadRef: pr.GetHead().GetRef(),
		HeadSHA: pr.GetHead().GetSHA(),
	}, nil
}

// GetComments retrieves all comments for a pull request
func (c *Client) GetComments(ctx context.Context, owner, repo string, number int) ([]*models.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*models.Comment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		for _, comment := range comments {
			all = append(all, &models.Comment{
				ID:   comment.GetID(),
				Body: comment.GetBody(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return all, nil
}

// CreateComment creates a new comment on a pull request
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) (*models.Comment, error) {
	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &models.Comment{ID: comment.GetID(), Body: comment.GetBody()}, nil
}

// UpdateComment updates an existing comment
func (c *Client) UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := c.client.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return nil
}

// FindBotComment finds the latest pipeline-generated comment, or nil when
// there is none
func (c *Client) FindBotComment(ctx context.Context, owner, repo string, number int) (*models.Comment, error) {
	comments, err := c.GetComments(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	// When the marker appears more than once, the latest comment wins
	var found *models.Comment
	for _, comment := range comments {
		if strings.Contains(comment.Body, CommentMarker) {
			found = comment
		}
	}
	return found, nil
}

// PostBotMessage creates or updates the pipeline comment on a PR
func (c *Client) PostBotMessage(ctx context.Context, repoSpec string, number int, message string) error {
	owner, repo, err := ParseOwnerRepo(repoSpec)
	if err != nil {
		return fmt.Errorf("failed to parse repository: %w", err)
	}

	body := CommentMarker + "\n\n" + message

	existing, err := c.FindBotComment(ctx, owner, repo, number)
	if err != nil {
		logger.Warnf("failed to search for existing comment, creating a new one: %v", err)
	}

	if existing != nil {
		logger.Infof("updating existing comment %d on %s#%d", existing.ID, repoSpec, number)
		return c.UpdateComment(ctx, owner, repo, existing.ID, body)
	}

	comment, err := c.CreateComment(ctx, owner, repo, number, body)
	if err != nil {
		return err
	}
	logger.Infof("created comment %d on %s#%d", comment.ID, repoSpec, number)
	return nil
}
