// Package config loads the bot configuration: a config.json in the base
// directory merged over defaults, with secrets taken from the environment.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds application configuration. Relative file and directory
// fields are resolved against BaseDir.
type Config struct {
	// BaseDir is the installation root holding data and state files.
	// Set by Load, not read from the config file.
	BaseDir string `json:"-"`

	// CardsFile is the bundled card reference file.
	CardsFile string `json:"cards_file,omitempty"`

	// TopicsFile is the optional topic overlay file. It may be absent on a
	// deployment; topic data is then derived from CardsFile.
	TopicsFile string `json:"topics_file,omitempty"`

	// CombinationsFile holds the three-card combinations by topic.
	CombinationsFile string `json:"combinations_file,omitempty"`

	// UsageFile is the daily usage ledger.
	UsageFile string `json:"usage_file,omitempty"`

	// StatsDir holds one JSON file of event counters per UTC date.
	StatsDir string `json:"stats_dir,omitempty"`

	// ImagesDir holds card images, <card name>.png.
	ImagesDir string `json:"images_dir,omitempty"`

	// TwoCardURL is the upstream two-card combinations feed, fetched once
	// at startup.
	TwoCardURL string `json:"two_card_url,omitempty"`

	// TwoCardTimeoutSecs bounds the startup fetch.
	TwoCardTimeoutSecs int `json:"two_card_timeout_secs,omitempty"`

	// WebAppURL is the interactive card-picking page linked from the
	// two-card reading. Empty disables the link.
	WebAppURL string `json:"webapp_url,omitempty"`

	// ConsultationURL is the chat the user is sent to after paying.
	ConsultationURL string `json:"consultation_url,omitempty"`

	// ConsultationPriceStars is the consultation price in Telegram Stars.
	ConsultationPriceStars int `json:"consultation_price_stars,omitempty"`

	// AdminID is the Telegram user id exempt from daily limits and allowed
	// to run /stats. Zero disables admin features. Overridable via the
	// TAROBOT_ADMIN_ID environment variable.
	AdminID int64 `json:"admin_id,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CardsFile:              "tarot_cards.json",
		TopicsFile:             "tarot_cards_topics.json",
		CombinationsFile:       "combinations.json",
		UsageFile:              "single_card_usage.json",
		StatsDir:               "stats",
		ImagesDir:              "images",
		TwoCardURL:             "https://raw.githubusercontent.com/nimixiss/tarot-webapp/main/two_card_combinations_full.json",
		TwoCardTimeoutSecs:     15,
		WebAppURL:              "https://nimixiss.github.io/tarot-webapp/",
		ConsultationURL:        "https://t.me/helenatarotbot",
		ConsultationPriceStars: 100,
	}
}

// Load loads configuration from baseDir/config.json, merged over defaults,
// then applies environment overrides. A missing file yields the defaults.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	merged := Merge(DefaultConfig(), cfg)
	merged.BaseDir = baseDir
	merged.applyEnv()
	return merged, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns a zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs; overlay values win when non-zero.
func Merge(base, overlay *Config) *Config {
	result := *overlay

	pick := func(dst *string, from string) {
		if *dst == "" {
			*dst = from
		}
	}
	pick(&result.CardsFile, base.CardsFile)
	pick(&result.TopicsFile, base.TopicsFile)
	pick(&result.CombinationsFile, base.CombinationsFile)
	pick(&result.UsageFile, base.UsageFile)
	pick(&result.StatsDir, base.StatsDir)
	pick(&result.ImagesDir, base.ImagesDir)
	pick(&result.TwoCardURL, base.TwoCardURL)
	pick(&result.WebAppURL, base.WebAppURL)
	pick(&result.ConsultationURL, base.ConsultationURL)

	if result.TwoCardTimeoutSecs == 0 {
		result.TwoCardTimeoutSecs = base.TwoCardTimeoutSecs
	}
	if result.ConsultationPriceStars == 0 {
		result.ConsultationPriceStars = base.ConsultationPriceStars
	}
	if result.AdminID == 0 {
		result.AdminID = base.AdminID
	}

	return &result
}

// applyEnv overrides secret-ish fields from the environment.
func (c *Config) applyEnv() {
	if v := os.Getenv("TAROBOT_ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.AdminID = id
		}
	}
}

// resolve turns a possibly-relative path into one rooted at BaseDir.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// CardsPath returns the absolute card reference file path.
func (c *Config) CardsPath() string { return c.resolve(c.CardsFile) }

// TopicsPath returns the absolute topic overlay file path.
func (c *Config) TopicsPath() string { return c.resolve(c.TopicsFile) }

// CombinationsPath returns the absolute three-card combinations file path.
func (c *Config) CombinationsPath() string { return c.resolve(c.CombinationsFile) }

// UsagePath returns the absolute usage ledger path.
func (c *Config) UsagePath() string { return c.resolve(c.UsageFile) }

// StatsPath returns the absolute stats directory path.
func (c *Config) StatsPath() string { return c.resolve(c.StatsDir) }

// ImagePath returns the absolute path of a card's image.
func (c *Config) ImagePath(card string) string {
	return filepath.Join(c.resolve(c.ImagesDir), card+".png")
}
