package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// ChromeLauncher starts Chrome through the DevTools protocol.
type ChromeLauncher struct {
	Headless        bool
	ExecPath        string // empty uses the chromedp lookup
	NavigateTimeout time.Duration
	LookupTimeout   time.Duration
}

// NewChromeLauncher returns a headless launcher with default timeouts.
func NewChromeLauncher() *ChromeLauncher {
	return &ChromeLauncher{
		Headless:        true,
		NavigateTimeout: 60 * time.Second,
		LookupTimeout:   5 * time.Second,
	}
}

// Launch starts the browser and routes downloads into downloadDir.
func (l *ChromeLauncher) Launch(ctx context.Context, downloadDir string) (Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if !l.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if l.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	cancel := func() {
		cancelTab()
		cancelAlloc()
	}

	// The first Run starts the browser process.
	err := chromedp.Run(tabCtx,
		browser.SetDownloadBehavior(browser.SetDownloadBehaviorBehaviorAllow).
			WithDownloadPath(downloadDir).
			WithEventsEnabled(true),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("start chrome: %w", err)
	}
	return &chromeSession{
		ctx:             tabCtx,
		cancel:          cancel,
		navigateTimeout: l.NavigateTimeout,
		lookupTimeout:   l.LookupTimeout,
	}, nil
}

type chromeSession struct {
	ctx             context.Context
	cancel          context.CancelFunc
	navigateTimeout time.Duration
	lookupTimeout   time.Duration
}

// bounded derives a child of the session context that also ends with ctx.
func (s *chromeSession) bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	c, cancel := context.WithTimeout(s.ctx, d)
	stop := context.AfterFunc(ctx, cancel)
	return c, func() {
		stop()
		cancel()
	}
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	c, cancel := s.bounded(ctx, s.navigateTimeout)
	defer cancel()
	return chromedp.Run(c, chromedp.Navigate(url))
}

// Click looks the node up once, without waiting for it to appear.
func (s *chromeSession) Click(ctx context.Context, xpath string) error {
	c, cancel := s.bounded(ctx, s.lookupTimeout)
	defer cancel()

	var nodes []*cdp.Node
	if err := chromedp.Run(c, chromedp.Nodes(xpath, &nodes, chromedp.BySearch, chromedp.AtLeast(0))); err != nil {
		return fmt.Errorf("%w: %w", ErrElementNotFound, err)
	}
	if len(nodes) == 0 {
		return fmt.Errorf("%w: %s", ErrElementNotFound, xpath)
	}
	if err := chromedp.Run(c, chromedp.MouseClickNode(nodes[0])); err != nil {
		return fmt.Errorf("%w: %w", ErrTriggerFailed, err)
	}
	return nil
}

func (s *chromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancel()
	return err
}
