package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/cloudsync"
	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/config"
	"github.com/dmitrijs2005/tripquote/internal/export"
	"github.com/dmitrijs2005/tripquote/internal/library"
	"github.com/dmitrijs2005/tripquote/internal/logging"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/quotes"
	"github.com/dmitrijs2005/tripquote/internal/storage"
	"github.com/dmitrijs2005/tripquote/internal/suggest"
)

var (
	ErrNoOpenQuote       = errors.New("no quote is open; use 'new' or 'open <id>'")
	ErrSuggestDisabled   = errors.New("suggestions are disabled; set OPENAI_API_KEY")
	ErrAmbiguousQuoteRef = errors.New("quote reference matches more than one quote")
)

type App struct {
	config    *config.Config
	log       logging.Logger
	state     *storage.State
	quotes    *quotes.Store
	library   *library.Store
	syncer    *cloudsync.Syncer
	suggester suggest.Suggester
	http      *http.Client

	editor *quotes.Editor
	dirty  bool

	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
	cmds   map[string]command
	order  []string
}

// NewApp opens the database named in c and loads the stores.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(c.LogLevel, c.LogFile)

	st, err := storage.Open(ctx, c.DatabasePath, log)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var sug suggest.Suggester
	if c.OpenAIToken != "" {
		opts := []suggest.Option{suggest.WithToken(c.OpenAIToken), suggest.WithModel(c.OpenAIModel)}
		if c.OpenAIBaseURL != "" {
			opts = append(opts, suggest.WithBaseURL(c.OpenAIBaseURL))
		}
		if sug, err = suggest.NewOpenAI(opts...); err != nil {
			_ = st.Close()
			return nil, err
		}
	}

	a, err := newApp(ctx, c, st, log, sug, os.Stdin, os.Stdout)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, st *storage.State, log logging.Logger, sug suggest.Suggester, in io.Reader, out io.Writer) (*App, error) {
	a := &App{
		config:    c,
		log:       log,
		state:     st,
		suggester: sug,
		http:      &http.Client{Timeout: c.HTTPTimeout},
		reader:    bufio.NewReader(in),
		out:       out,
		now:       time.Now,
	}
	if err := a.load(ctx); err != nil {
		return nil, err
	}
	a.registerCommands()
	return a, nil
}

// load builds the stores and the syncer from the database.
func (a *App) load(ctx context.Context) error {
	qs, lib, err := a.readState(ctx)
	if err != nil {
		return err
	}

	a.quotes = quotes.NewStore(qs, a.state, a.log)
	a.library = library.NewStore(lib, a.state, a.log)
	a.syncer = cloudsync.New(a.state, a.library, cloudsync.Options{
		LibraryURL:   a.config.LibraryURL,
		TemplatesURL: a.config.TemplatesURL,
		Staleness:    a.config.SyncInterval,
		Timeout:      a.config.HTTPTimeout,
		HTTPClient:   a.http,
	}, a.log)
	return nil
}

// readState reads the quotes and the library. A corrupt stored document is
// reported and replaced by an empty one.
func (a *App) readState(ctx context.Context) ([]models.Quote, models.Library, error) {
	qs, err := a.state.LoadQuotes(ctx)
	if errors.Is(err, common.ErrMalformedPayload) {
		a.log.Warn(ctx, "stored quotes are unreadable, starting empty", "error", err)
		qs, err = []models.Quote{}, nil
	}
	if err != nil {
		return nil, models.Library{}, err
	}

	lib, err := a.state.LoadLibrary(ctx)
	if errors.Is(err, common.ErrMalformedPayload) {
		a.log.Warn(ctx, "stored library is unreadable, using defaults", "error", err)
		lib, err = models.DefaultLibrary(), nil
	}
	if err != nil {
		return nil, models.Library{}, err
	}
	return qs, lib, nil
}

// Run syncs stale channels in the background, keeps watching them while the
// session lasts and serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.state.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		a.syncer.AutoSync(ctx)
		a.syncer.Watch(ctx, a.config.SyncCheckInterval)
	}()

	interactive := isTerminal()
	if interactive {
		printlnFn("Welcome to tripquote (type 'help' for commands)")
	}
	runREPL(ctx, a, interactive, a.reader)
}

func (a *App) status() string {
	if a.editor == nil {
		return ""
	}
	s := a.editor.Quote().DisplayTitle()
	if a.dirty {
		s += "*"
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) s3Options() export.S3Options {
	return export.S3Options{
		Region:    a.config.S3Region,
		AccessKey: a.config.S3AccessKey,
		SecretKey: a.config.S3SecretKey,
		Endpoint:  a.config.S3Endpoint,
	}
}

func (a *App) write(ctx context.Context, target string, data []byte) error {
	sink, err := export.NewSink(ctx, target, a.config.ExportDir, a.s3Options())
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, data); err != nil {
		return err
	}
	a.printf("written to %s\n", sink.Location())
	return nil
}

func (a *App) requireEditor() (*quotes.Editor, error) {
	if a.editor == nil {
		return nil, ErrNoOpenQuote
	}
	return a.editor, nil
}

// edit runs fn on the open quote and marks it as having unsaved changes.
func (a *App) edit(fn func(e *quotes.Editor) error) error {
	e, err := a.requireEditor()
	if err != nil {
		return err
	}
	if err := fn(e); err != nil {
		return err
	}
	a.dirty = true
	return nil
}
