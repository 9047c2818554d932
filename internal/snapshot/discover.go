package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Discover scans dir once and renames the first entry matching pattern to
// target. It returns the source name, or "" when nothing matched; no match
// is not an error and leaves dir untouched.
func Discover(dir, pattern, target string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == target {
			continue
		}
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return "", fmt.Errorf("match %q: %w", pattern, err)
		}
		if !ok {
			continue
		}
		if err := os.Rename(filepath.Join(dir, name), filepath.Join(dir, target)); err != nil {
			return "", fmt.Errorf("rename %s: %w", name, err)
		}
		return name, nil
	}
	return "", nil
}

// PollOptions bounds AwaitArtifact.
type PollOptions struct {
	Timeout     time.Duration
	Interval    time.Duration // first wait between scans
	MaxInterval time.Duration // backoff cap
}

// AwaitArtifact repeats Discover with exponential backoff until a file
// arrives or opts.Timeout elapses, in which case it returns ErrArtifactTimeout.
func AwaitArtifact(ctx context.Context, dir, pattern, target string, opts PollOptions) (string, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	maxInterval := opts.MaxInterval
	if maxInterval < interval {
		maxInterval = interval
	}
	deadline := time.Now().Add(opts.Timeout)

	for {
		src, err := Discover(dir, pattern, target)
		if err != nil || src != "" {
			return src, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", fmt.Errorf("%w after %v", ErrArtifactTimeout, opts.Timeout)
		}
		wait := interval
		if wait > remaining {
			wait = remaining
		}
		if err := sleep(ctx, wait); err != nil {
			return "", err
		}
		interval *= 2
		if interval > maxInterval {
			interval = maxInterval
		}
	}
}

// sleep blocks for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
