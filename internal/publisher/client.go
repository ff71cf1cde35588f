// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package publisher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/tfctl/apidiff/internal/log"
	"github.com/tfctl/apidiff/internal/version"
)

const (
	defaultRetries = 3
	defaultTimeout = 5 * time.Second
	defaultBackoff = 5 * time.Second
)

// retryStatuses are the response codes that are worth another attempt.
var retryStatuses = []int{
	http.StatusForbidden,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusGatewayTimeout,
}

// Options configures the GitHub client behind a Publisher.
type Options struct {
	// Owner and Repo name the repository whose pull requests are commented on.
	Owner string
	Repo  string
	Token string
	// BaseURL overrides the GitHub REST endpoint, e.g. for GitHub Enterprise.
	BaseURL string
	Retries int
	Timeout time.Duration
	// Backoff is the minimum wait between attempts.
	Backoff time.Duration
}

// SplitRepo splits an "owner/repo" slug.
func SplitRepo(slug string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/repo", slug)
	}
	return owner, repo, nil
}

// newHTTPClient returns a retrying http.Client. Exhausted retries hand the
// last response back to the caller so go-github can turn it into an
// *github.ErrorResponse.
func newHTTPClient(opts Options) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.Retries
	rc.RetryWaitMin = opts.Backoff
	rc.RetryWaitMax = 4 * opts.Backoff //nolint:mnd
	rc.HTTPClient.Timeout = opts.Timeout
	rc.Logger = leveledLogger{}
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc.StandardClient()
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	return slices.Contains(retryStatuses, resp.StatusCode), nil
}

func newGitHubClient(opts Options) (*github.Client, error) {
	client := github.NewClient(newHTTPClient(opts))
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}
	client.UserAgent = version.UserAgent()

	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub url %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}
	return client, nil
}

// leveledLogger routes retryablehttp messages into the apidiff log.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) { log.Errorf("%s%s", msg, pairs(kv)) }
func (leveledLogger) Warn(msg string, kv ...interface{})  { log.Warnf("%s%s", msg, pairs(kv)) }
func (leveledLogger) Info(msg string, kv ...interface{})  { log.Debugf("%s%s", msg, pairs(kv)) }
func (leveledLogger) Debug(msg string, kv ...interface{}) { log.Tracef("%s%s", msg, pairs(kv)) }

func pairs(kv []interface{}) string {
	var b strings.Builder
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(&b, " %v=%v", kv[i], kv[i+1])
	}
	return b.String()
}
