// Package notify posts the daily rollup summary to Slack.
package notify

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/shopmetrics/schedconform/internal/pipeline"
	"github.com/shopmetrics/schedconform/internal/workorder"
)

// maxRetries is the max number of retries for rate-limited API calls.
const maxRetries = 3

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier posts run summaries to a single Slack channel.
type Notifier struct {
	client  slackClient
	channel string
}

// Opts holds parameters for creating a Notifier.
type Opts struct {
	Token   string // xoxb-... Slack bot token
	Channel string // channel to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// New creates a Notifier.
func New(opts Opts) (*Notifier, error) {
	if opts.Client == nil && opts.Token == "" {
		return nil, fmt.Errorf("notify: slack token is required")
	}
	if opts.Channel == "" {
		return nil, fmt.Errorf("notify: slack channel is required")
	}

	n := &Notifier{channel: opts.Channel}
	if opts.Client != nil {
		n.client = opts.Client
	} else {
		n.client = slackapi.New(opts.Token)
	}
	return n, nil
}

// PostSummary posts the day's per-unit progress summary.
func (n *Notifier) PostSummary(ctx context.Context, result *pipeline.Result) error {
	text := Summary(result)
	err := retryOnRateLimit(ctx, func() error {
		_, _, postErr := n.client.PostMessage(n.channel, slackapi.MsgOptionText(text, false))
		return postErr
	})
	if err != nil {
		return fmt.Errorf("notify: post summary: %w", err)
	}
	return nil
}

// Summary renders the result as a plain-text Slack message: one line per
// unit with remaining counts and percent complete where available.
func Summary(result *pipeline.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule conformance, week %d, %s\n", result.Week, result.Weekday)

	for _, unit := range workorder.Units() {
		rows := result.Status[unit]
		if len(rows) == 0 {
			fmt.Fprintf(&b, "%s: no scheduled work\n", unit)
			continue
		}
		last := rows[len(rows)-1]
		line := fmt.Sprintf("%s: %d MOs, %.1f hrs remaining", unit, last.MOCount, last.Hours)
		if last.HasProgress && len(rows) > 1 {
			if pipeline.Numeric(last.PctMOsComplete) {
				line += fmt.Sprintf(" (%.0f%% MOs, %.0f%% hrs complete)",
					last.PctMOsComplete, last.PctHrsComplete)
			} else {
				line += " (no Monday baseline)"
			}
		}
		if off := len(result.NotScheduled[unit]); off > 0 {
			line += fmt.Sprintf(", %d off-plan", off)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// retryOnRateLimit calls fn and retries with backoff on Slack rate limit
// errors, respecting context cancellation and the RetryAfter duration.
func retryOnRateLimit(ctx context.Context, fn func() error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		var rle *slackapi.RateLimitedError
		if !errors.As(err, &rle) {
			return err
		}
		if attempt == maxRetries {
			return err
		}

		wait := rle.RetryAfter
		if wait <= 0 {
			wait = time.Duration(math.Pow(2, float64(attempt))) * time.Second
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil // unreachable
}
