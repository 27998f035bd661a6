// Package cloudsync pulls the shared library and itinerary templates from
// remote JSON documents and merges them into the local library.
//
// There are two channels. "main" carries the master library, whose keys are
// laid over the local ones; "templates" carries itinerary templates, which
// are appended when their name is new. A channel is stale when it never
// synced or its last successful sync is older than the staleness window.
package cloudsync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/logging"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/netx"
)

// Channel names one remote document.
type Channel string

const (
	Main      Channel = "main"
	Templates Channel = "templates"
)

// DefaultCheckInterval is how often Watch looks for stale channels when no
// usable interval is given.
const DefaultCheckInterval = 30 * time.Minute

// Channels lists every channel in sync order.
var Channels = []Channel{Main, Templates}

var (
	ErrHTTPStatus       = netx.ErrHTTPStatus
	ErrMalformedPayload = common.ErrMalformedPayload
	ErrNoURL            = errors.New("no remote URL configured")
	ErrUnknownChannel   = errors.New("unknown sync channel")
)

// ParseChannel accepts "main" (or "library") and "templates".
func ParseChannel(s string) (Channel, error) {
	switch s {
	case "main", "library":
		return Main, nil
	case "templates":
		return Templates, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// State stores per-channel URLs and last successful sync times.
type State interface {
	ChannelURL(ctx context.Context, channel string) (string, error)
	SetChannelURL(ctx context.Context, channel, url string) error
	LastSync(ctx context.Context, channel string) (time.Time, bool, error)
	SetLastSync(ctx context.Context, channel string, t time.Time) error
}

// Merger applies remote content to the library.
type Merger interface {
	MergeRemoteLibrary(ctx context.Context, raw []byte) error
	MergeRemoteTemplates(ctx context.Context, list []models.ItineraryTemplate) (int, error)
}

type Options struct {
	LibraryURL   string
	TemplatesURL string
	Staleness    time.Duration
	Timeout      time.Duration
	HTTPClient   *http.Client
}

// Result describes one successful sync.
type Result struct {
	Channel Channel
	URL     string
	// Added counts the templates appended; always zero for Main.
	Added int
}

type Syncer struct {
	state  State
	merger Merger
	opts   Options
	log    logging.Logger
	now    func() time.Time

	locks map[Channel]*sync.Mutex
}

func New(state State, merger Merger, opts Options, log logging.Logger) *Syncer {
	if opts.Staleness <= 0 {
		opts.Staleness = 24 * time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Syncer{
		state:  state,
		merger: merger,
		opts:   opts,
		log:    log,
		now:    time.Now,
		locks:  map[Channel]*sync.Mutex{Main: {}, Templates: {}},
	}
}

func (s *Syncer) defaultURL(ch Channel) string {
	if ch == Templates {
		return s.opts.TemplatesURL
	}
	return s.opts.LibraryURL
}

// URL returns the URL configured for ch, falling back to the default.
func (s *Syncer) URL(ctx context.Context, ch Channel) (string, error) {
	if _, ok := s.locks[ch]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	u, err := s.state.ChannelURL(ctx, string(ch))
	if err != nil {
		return "", err
	}
	if u == "" {
		u = s.defaultURL(ch)
	}
	return u, nil
}

// SetURL stores the URL for ch as entered; it is normalized when used.
func (s *Syncer) SetURL(ctx context.Context, ch Channel, url string) error {
	if _, ok := s.locks[ch]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	return s.state.SetChannelURL(ctx, string(ch), url)
}

// Stale reports whether ch is due for an automatic sync.
func (s *Syncer) Stale(ctx context.Context, ch Channel) (bool, error) {
	last, ok, err := s.state.LastSync(ctx, string(ch))
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return s.now().Sub(last) > s.opts.Staleness, nil
}

// SyncNow fetches ch and merges it. Errors are returned so the caller can
// report them; nothing is merged and the timestamp is not moved on failure.
func (s *Syncer) SyncNow(ctx context.Context, ch Channel) (Result, error) {
	mu, ok := s.locks[ch]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	mu.Lock()
	defer mu.Unlock()

	raw, err := s.URL(ctx, ch)
	if err != nil {
		return Result{}, err
	}
	url := NormalizeURL(raw)
	if url == "" {
		return Result{}, fmt.Errorf("%s: %w", ch, ErrNoURL)
	}
	res := Result{Channel: ch, URL: url}

	fctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	body, err := netx.FetchUncached(fctx, s.opts.HTTPClient, url, 0)
	cancel()
	if err != nil {
		return res, fmt.Errorf("fetch %s: %w", ch, err)
	}

	switch ch {
	case Main:
		doc, err := LibraryDocument(body)
		if err != nil {
			return res, err
		}
		if err := s.merger.MergeRemoteLibrary(ctx, doc); err != nil {
			return res, err
		}
	case Templates:
		list, err := TemplateList(body)
		if err != nil {
			return res, err
		}
		if res.Added, err = s.merger.MergeRemoteTemplates(ctx, list); err != nil {
			return res, err
		}
	}

	if err := s.state.SetLastSync(ctx, string(ch), s.now()); err != nil {
		return res, err
	}
	s.log.Info(ctx, "remote sync done", "channel", ch, "url", url, "added", res.Added)
	return res, nil
}

// AutoSync syncs every stale channel. Failures are only logged.
func (s *Syncer) AutoSync(ctx context.Context) []Result {
	var done []Result
	for _, ch := range Channels {
		stale, err := s.Stale(ctx, ch)
		if err != nil {
			s.log.Warn(ctx, "cannot read sync state", "channel", ch, "error", err)
			continue
		}
		if !stale {
			continue
		}
		res, err := s.SyncNow(ctx, ch)
		if err != nil {
			if errors.Is(err, ErrNoURL) {
				s.log.Debug(ctx, "auto sync skipped", "channel", ch)
			} else {
				s.log.Warn(ctx, "auto sync failed", "channel", ch, "error", err)
			}
			continue
		}
		done = append(done, res)
	}
	return done
}

// Watch runs AutoSync every interval until ctx is done. A non-positive
// interval falls back to DefaultCheckInterval.
func (s *Syncer) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.log.Warn(ctx, "invalid sync check interval, using default", "interval", interval, "default", DefaultCheckInterval)
		interval = DefaultCheckInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.AutoSync(ctx)
		case <-ctx.Done():
			return
		}
	}
}
