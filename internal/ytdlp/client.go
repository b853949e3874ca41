package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

const (
	DefaultInfoTimeout   = 30 * time.Second
	DefaultUpdateTimeout = 2 * time.Minute
)

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

func WithUpdateTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.updateTimeout = d
		}
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary        string
	infoTimeout   time.Duration
	updateTimeout time.Duration
	exec          Executor
}

// New constructs a yt-dlp client. A non-positive infoTimeout uses the 30s default.
func New(binary string, infoTimeout time.Duration, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	if infoTimeout <= 0 {
		infoTimeout = DefaultInfoTimeout
	}
	c := &Client{
		binary:        binary,
		infoTimeout:   infoTimeout,
		updateTimeout: DefaultUpdateTimeout,
		exec:          commandExecutor{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch describes url. Tool failures, timeouts and bad JSON all come back as
// one error wrapping domain.ErrMetadataLookupFailed.
func (c *Client) Fetch(ctx context.Context, url string) (*domain.MediaInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.infoTimeout)
	defer cancel()

	stdout, stderr, err := c.exec.Output(ctx, c.binary, infoArgs(url))
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, domain.NewJobError(domain.ErrMetadataLookupFailed, errors.New("request timed out"))
	}
	if err != nil {
		detail := strings.TrimSpace(string(stderr))
		if detail == "" {
			detail = err.Error()
		}
		return nil, domain.NewJobError(domain.ErrMetadataLookupFailed,
			fmt.Errorf("failed to fetch media info: %s", detail))
	}

	info, err := parseInfo(stdout)
	if err != nil {
		return nil, domain.NewJobError(domain.ErrMetadataLookupFailed, err)
	}
	return info, nil
}

// Download runs one download, forwarding every output line to onLine.
// No timeout applies; ctx is the only way to stop it.
func (c *Client) Download(ctx context.Context, inv domain.ToolInvocation, onLine func(string)) error {
	err := c.exec.Stream(ctx, c.binary, downloadArgs(inv), onLine)
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	switch {
	case errors.As(err, &exitErr):
		return domain.NewJobError(domain.ErrProcessExitedNonZero, err)
	case errors.Is(err, errStart):
		return domain.NewJobError(domain.ErrProcessLaunchFailed, err)
	default:
		return domain.NewJobError(domain.ErrUnexpectedWorker, err)
	}
}

// Update asks yt-dlp to replace itself with the latest release and returns
// the tool's last status line.
func (c *Client) Update(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.updateTimeout)
	defer cancel()

	stdout, stderr, err := c.exec.Output(ctx, c.binary, []string{"-U"})
	if err != nil {
		detail := lastLine(stderr)
		if detail == "" {
			detail = lastLine(stdout)
		}
		if detail == "" {
			return "", fmt.Errorf("yt-dlp update failed: %w", err)
		}
		return "", fmt.Errorf("yt-dlp update failed: %s", detail)
	}

	msg := lastLine(stdout)
	if msg == "" {
		msg = "yt-dlp updated successfully"
	}
	return msg, nil
}

func infoArgs(url string) []string {
	return []string{"--dump-json", "--no-download", "--no-playlist", url}
}

func downloadArgs(inv domain.ToolInvocation) []string {
	args := []string{
		"-f", inv.FormatID,
		"-o", inv.OutputTemplate,
		"--no-playlist",
		"--newline",
	}
	if inv.ExtractAudio {
		format := inv.AudioFormat
		if format == "" {
			format = "mp3"
		}
		args = append(args,
			"--extract-audio",
			"--audio-format", format,
			"--audio-quality", "0",
		)
	}
	return append(args, inv.URL)
}

func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
