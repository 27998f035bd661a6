package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tripquote/internal/flagx"
	"github.com/dmitrijs2005/tripquote/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DatabasePath      string         `json:"database_path"`
	LibraryURL        string         `json:"library_url"`
	TemplatesURL      string         `json:"templates_url"`
	SyncInterval      timex.Duration `json:"sync_interval"`
	SyncCheckInterval timex.Duration `json:"sync_check_interval"`
	HTTPTimeout       timex.Duration `json:"http_timeout"`
	ExportDir         string         `json:"export_dir"`
	AgencyName        string         `json:"agency_name"`
	AgencyAddress     string         `json:"agency_address"`
	AgencyPhone       string         `json:"agency_phone"`
	Consultant        string         `json:"consultant"`
	DefaultCurrency   string         `json:"default_currency"`
	OpenAIToken       string         `json:"openai_token"`
	OpenAIModel       string         `json:"openai_model"`
	OpenAIBaseURL     string         `json:"openai_base_url"`
	S3Region          string         `json:"s3_region"`
	S3AccessKey       string         `json:"s3_access_key"`
	S3SecretKey       string         `json:"s3_secret_key"`
	S3Endpoint        string         `json:"s3_endpoint"`
	LogLevel          string         `json:"log_level"`
	LogFile           string         `json:"log_file"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LibraryURL, jc.LibraryURL)
	setString(&cfg.TemplatesURL, jc.TemplatesURL)
	if jc.SyncInterval.Duration > 0 {
		cfg.SyncInterval = jc.SyncInterval.Duration
	}
	if jc.SyncCheckInterval.Duration > 0 {
		cfg.SyncCheckInterval = jc.SyncCheckInterval.Duration
	}
	if jc.HTTPTimeout.Duration > 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	setString(&cfg.ExportDir, jc.ExportDir)
	setString(&cfg.AgencyName, jc.AgencyName)
	setString(&cfg.AgencyAddress, jc.AgencyAddress)
	setString(&cfg.AgencyPhone, jc.AgencyPhone)
	setString(&cfg.Consultant, jc.Consultant)
	setString(&cfg.DefaultCurrency, jc.DefaultCurrency)
	setString(&cfg.OpenAIToken, jc.OpenAIToken)
	setString(&cfg.OpenAIModel, jc.OpenAIModel)
	setString(&cfg.OpenAIBaseURL, jc.OpenAIBaseURL)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFile, jc.LogFile)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
