package config

import (
	"time"

	"github.com/dmitrijs2005/tripquote/internal/common"
	"github.com/dmitrijs2005/tripquote/internal/proposal"
)

const (
	defaultLibraryURL   = "https://gist.githubusercontent.com/sujeeto1/fa0bc084410880740412aa58a8ae26df/raw/master_library_quotation.json"
	defaultTemplatesURL = "https://gist.githubusercontent.com/sujeeto1/6cb9e32711372fa7affccfb8c71b2f70/raw/quotation_saved_trips.json"
)

// Config holds runtime settings for the tripquote CLI.
//
// SyncInterval is the staleness window of a remote channel; SyncCheckInterval
// is how often a running session checks whether a channel went stale.
type Config struct {
	DatabasePath string

	LibraryURL        string
	TemplatesURL      string
	SyncInterval      time.Duration
	SyncCheckInterval time.Duration
	HTTPTimeout       time.Duration

	ExportDir       string
	AgencyName      string
	AgencyAddress   string
	AgencyPhone     string
	Consultant      string
	DefaultCurrency string

	OpenAIToken   string
	OpenAIModel   string
	OpenAIBaseURL string

	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string

	LogLevel string
	LogFile  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	agency := proposal.DefaultAgency()

	c.DatabasePath = "tripquote.db"
	c.LibraryURL = defaultLibraryURL
	c.TemplatesURL = defaultTemplatesURL
	c.SyncInterval = 24 * time.Hour
	c.SyncCheckInterval = 30 * time.Minute
	c.HTTPTimeout = 15 * time.Second
	c.ExportDir = "exports"
	c.AgencyName = agency.Name
	c.AgencyAddress = agency.Address
	c.AgencyPhone = agency.Phone
	c.DefaultCurrency = common.DefaultCurrency
	c.OpenAIModel = "gpt-4o-mini"
	c.S3Region = "us-east-1"
	c.LogLevel = "info"
}

// Agency returns the letterhead described by c.
func (c *Config) Agency() proposal.Agency {
	return proposal.Agency{Name: c.AgencyName, Address: c.AgencyAddress, Phone: c.AgencyPhone}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	loadEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
