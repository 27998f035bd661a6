// Package storage persists the application state (quotes, the library, the
// remote sync settings) in the local SQLite key/value table.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/dbx"
	"github.com/dmitrijs2005/tripquote/internal/library"
	"github.com/dmitrijs2005/tripquote/internal/logging"
	"github.com/dmitrijs2005/tripquote/internal/migrations"
	"github.com/dmitrijs2005/tripquote/internal/models"
	"github.com/dmitrijs2005/tripquote/internal/repositories/kv"
)

// Storage keys. They match the keys of the documents users already have.
const (
	KeyQuotes             = "wanderlust_quotes"
	KeyLibrary            = "wanderlust_library"
	KeyRemoteURL          = "wanderlust_remote_url"
	KeyRemoteTemplatesURL = "wanderlust_remote_templates_url"
	KeyLastSyncMain       = "wanderlust_last_sync_main"
	KeyLastSyncTemplates  = "wanderlust_last_sync_templates"
)

// Sync channel names.
const (
	ChannelMain      = "main"
	ChannelTemplates = "templates"
)

var knownKeys = map[string]struct{}{
	KeyQuotes: {}, KeyLibrary: {}, KeyRemoteURL: {}, KeyRemoteTemplatesURL: {},
	KeyLastSyncMain: {}, KeyLastSyncTemplates: {},
}

type State struct {
	db   *sql.DB
	repo kv.Repository
	log  logging.Logger
}

// Open opens (creating if needed) the database at dsn.
func Open(ctx context.Context, dsn string, log logging.Logger) (*State, error) {
	db, err := dbx.OpenSQLite(ctx, dsn, migrations.Migrations)
	if err != nil {
		return nil, err
	}
	return New(db, log), nil
}

// New wraps an already migrated database.
func New(db *sql.DB, log logging.Logger) *State {
	if log == nil {
		log = logging.Nop()
	}
	return &State{db: db, repo: kv.NewSQLiteRepository(db), log: log}
}

func (s *State) Close() error {
	return s.db.Close()
}

// LoadQuotes returns the saved quotes; none are stored on first run.
func (s *State) LoadQuotes(ctx context.Context) ([]models.Quote, error) {
	raw, err := s.repo.Get(ctx, KeyQuotes)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []models.Quote{}, nil
	}
	var quotes []models.Quote
	if err := json.Unmarshal(raw, &quotes); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedPayload, KeyQuotes, err)
	}
	if quotes == nil {
		quotes = []models.Quote{}
	}
	return quotes, nil
}

func (s *State) SaveQuotes(ctx context.Context, quotes []models.Quote) error {
	if quotes == nil {
		quotes = []models.Quote{}
	}
	raw, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("encode quotes: %w", err)
	}
	return s.repo.Set(ctx, KeyQuotes, raw)
}

// LoadLibrary returns the stored library laid over the built-in catalog, or
// the built-in catalog when nothing is stored yet.
func (s *State) LoadLibrary(ctx context.Context) (models.Library, error) {
	raw, err := s.repo.Get(ctx, KeyLibrary)
	if err != nil {
		return models.Library{}, err
	}
	if raw == nil {
		return models.DefaultLibrary(), nil
	}
	return library.Overlay(models.DefaultLibrary(), raw)
}

func (s *State) SaveLibrary(ctx context.Context, lib models.Library) error {
	raw, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	return s.repo.Set(ctx, KeyLibrary, raw)
}

func urlKey(channel string) (string, error) {
	switch channel {
	case ChannelMain:
		return KeyRemoteURL, nil
	case ChannelTemplates:
		return KeyRemoteTemplatesURL, nil
	}
	return "", fmt.Errorf("unknown sync channel %q", channel)
}

func syncKey(channel string) (string, error) {
	switch channel {
	case ChannelMain:
		return KeyLastSyncMain, nil
	case ChannelTemplates:
		return KeyLastSyncTemplates, nil
	}
	return "", fmt.Errorf("unknown sync channel %q", channel)
}

// ChannelURL returns the URL configured for a channel, or "" when unset.
func (s *State) ChannelURL(ctx context.Context, channel string) (string, error) {
	key, err := urlKey(channel)
	if err != nil {
		return "", err
	}
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SetChannelURL stores the URL of a channel. An empty url removes the stored
// value, so the channel falls back to its configured default.
func (s *State) SetChannelURL(ctx context.Context, channel, url string) error {
	key, err := urlKey(channel)
	if err != nil {
		return err
	}
	if url == "" {
		return s.repo.Delete(ctx, key)
	}
	return s.repo.Set(ctx, key, []byte(url))
}

// LastSync returns when a channel last synced successfully. ok is false when
// there is no usable timestamp.
func (s *State) LastSync(ctx context.Context, channel string) (t time.Time, ok bool, err error) {
	key, err := syncKey(channel)
	if err != nil {
		return time.Time{}, false, err
	}
	raw, err := s.repo.Get(ctx, key)
	if err != nil || raw == nil {
		return time.Time{}, false, err
	}
	ms, perr := strconv.ParseInt(string(raw), 10, 64)
	if perr != nil {
		s.log.Warn(ctx, "ignoring unreadable sync timestamp", "key", key, "value", string(raw))
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

// SetLastSync stores t as epoch milliseconds.
func (s *State) SetLastSync(ctx context.Context, channel string, t time.Time) error {
	key, err := syncKey(channel)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, key, []byte(strconv.FormatInt(t.UnixMilli(), 10)))
}

// Backup renders every stored key as one JSON object of strings.
func (s *State) Backup(ctx context.Context) ([]byte, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	doc := make(map[string]string, len(all))
	for k, v := range all {
		doc[k] = string(v)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Restore replaces the whole state with a document produced by Backup. It
// runs in one transaction; unknown keys reject the document.
func (s *State) Restore(ctx context.Context, data []byte) error {
	var doc map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: backup: %v", common.ErrMalformedPayload, err)
	}
	for k := range doc {
		if _, ok := knownKeys[k]; !ok {
			return fmt.Errorf("%w: backup has unknown key %q", common.ErrMalformedPayload, k)
		}
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for k, v := range doc {
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}
