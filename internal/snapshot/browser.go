// Package snapshot downloads the daily IBOV theoretical portfolio by driving
// a headless browser against the B3 portal.
package snapshot

import (
	"context"
	"errors"
)

var (
	// ErrSessionSetup means the download dir or the browser could not be
	// prepared. A run always fails with it.
	ErrSessionSetup = errors.New("browser session setup failed")
	// ErrElementNotFound means the download control is not in the rendered DOM.
	ErrElementNotFound = errors.New("download element not found")
	// ErrTriggerFailed means the download control was found but clicking it failed.
	ErrTriggerFailed = errors.New("download trigger failed")
	// ErrArtifactTimeout means no downloaded file appeared before the deadline.
	ErrArtifactTimeout = errors.New("timed out waiting for downloaded file")
)

// Browser is one automation session.
//
//go:generate mockgen -source=browser.go -destination=mocks/browser.go -package=mocks
type Browser interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, xpath string) error
	Close() error
}

// Launcher starts a session whose downloads land in downloadDir without prompting.
type Launcher interface {
	Launch(ctx context.Context, downloadDir string) (Browser, error)
}
