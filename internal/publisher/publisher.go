// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package publisher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v75/github"

	"github.com/tfctl/apidiff/internal/log"
)

const (
	// Marker identifies the report comment among all comments of a pull
	// request. GitHub does not render it.
	Marker = "\r\n<hidden value=\"api-diff-report-comment\"></hidden>\r\n"

	// Label flags pull requests whose report contains changes.
	Label = "public-api-change"

	// NoChangesBody is published when a report is empty.
	NoChangesBody = "## API Diff Report\n\nNo public API changes detected.\n"

	commentsPerPage = 100
)

// Publisher maintains the report comment and label of pull requests.
type Publisher struct {
	client *github.Client
	owner  string
	repo   string
}

// New returns a Publisher for the repository named in opts. Zero retry, timeout
// and backoff values take their defaults.
func New(opts Options) (*Publisher, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("repository owner and name are required")
	}
	if opts.Retries == 0 {
		opts.Retries = defaultRetries
	}
	if opts.Timeout == 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Backoff == 0 {
		opts.Backoff = defaultBackoff
	}

	client, err := newGitHubClient(opts)
	if err != nil {
		return nil, err
	}
	return &Publisher{client: client, owner: opts.Owner, repo: opts.Repo}, nil
}

// Publish syncs the label of pr with report and upserts the report comment.
// A blank report publishes NoChangesBody.
func (p *Publisher) Publish(ctx context.Context, pr int, report string) error {
	changed := strings.TrimSpace(report) != ""
	if err := p.SyncLabel(ctx, pr, changed); err != nil {
		return err
	}
	if !changed {
		report = NoChangesBody
	}
	return p.Upsert(ctx, pr, report)
}

// Upsert edits the comment of pr that carries Marker, or creates it.
func (p *Publisher) Upsert(ctx context.Context, pr int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(Marker + body)}

	id, err := p.FindComment(ctx, pr)
	if err != nil {
		return err
	}

	if id == 0 {
		created, _, err := p.client.Issues.CreateComment(ctx, p.owner, p.repo, pr, comment)
		if err != nil {
			return p.friendly(err, "create comment", pr)
		}
		log.Infof("created comment %d on #%d", created.GetID(), pr)
		return nil
	}

	if _, _, err := p.client.Issues.EditComment(ctx, p.owner, p.repo, id, comment); err != nil {
		return p.friendly(err, "update comment", pr)
	}
	log.Infof("updated comment %d on #%d", id, pr)
	return nil
}

// FindComment returns the id of the first comment of pr that carries Marker,
// or 0 when there is none.
func (p *Publisher) FindComment(ctx context.Context, pr int) (int64, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: commentsPerPage},
	}
	for {
		comments, resp, err := p.client.Issues.ListComments(ctx, p.owner, p.repo, pr, opts)
		if err != nil {
			return 0, p.friendly(err, "list comments", pr)
		}
		for _, c := range comments {
			if strings.Contains(c.GetBody(), Marker) {
				log.Debugf("found report comment %d on #%d", c.GetID(), pr)
				return c.GetID(), nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return 0, nil
		}
		opts.Page = resp.NextPage
	}
}

// SyncLabel adds Label to pr when changed is set and removes it otherwise.
// Removing a label that is not present is not an error.
func (p *Publisher) SyncLabel(ctx context.Context, pr int, changed bool) error {
	if changed {
		if _, _, err := p.client.Issues.AddLabelsToIssue(ctx, p.owner, p.repo, pr, []string{Label}); err != nil {
			return p.friendly(err, "add label", pr)
		}
		log.Debugf("labeled #%d %s", pr, Label)
		return nil
	}

	resp, err := p.client.Issues.RemoveLabelForIssue(ctx, p.owner, p.repo, pr, Label)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			log.Debugf("#%d has no %s label", pr, Label)
			return nil
		}
		return p.friendly(err, "remove label", pr)
	}
	log.Debugf("unlabeled #%d %s", pr, Label)
	return nil
}

// friendly rewrites GitHub API errors into short messages that keep the
// original error reachable through errors.As.
func (p *Publisher) friendly(err error, op string, pr int) error {
	target := fmt.Sprintf("%s/%s#%d", p.owner, p.repo, pr)

	var ge *github.ErrorResponse
	if !errors.As(err, &ge) || ge.Response == nil {
		return fmt.Errorf("%s on %s: %w", op, target, err)
	}

	switch ge.Response.StatusCode {
	case http.StatusUnauthorized:
		return fmt.Errorf("%s on %s: authentication failed (401), check GITHUB_TOKEN: %w", op, target, err)
	case http.StatusForbidden:
		return fmt.Errorf("%s on %s: token lacks permission or is rate limited (403): %w", op, target, err)
	case http.StatusNotFound:
		return fmt.Errorf("%s on %s: pull request or repository not found (404): %w", op, target, err)
	}
	return fmt.Errorf("%s on %s (%d): %w", op, target, ge.Response.StatusCode, err)
}
