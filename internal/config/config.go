package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Rule maps substring needles to a display tag. The tag table and remote
// indicators are config data, not code: they have no canonical source and
// users tune them.
type Rule struct {
	Tag string   `yaml:"tag" json:"tag"`
	Any []string `yaml:"any" json:"any"`
}

// Preset is a quick-search shortcut the UI renders as a button.
type Preset struct {
	Label        string `yaml:"label" json:"label"`
	Keywords     string `yaml:"keywords" json:"keywords"`
	Location     string `yaml:"location" json:"location,omitempty"`
	Role         string `yaml:"role" json:"role"`
	Season       string `yaml:"season" json:"season"`
	LocationMode string `yaml:"location_mode" json:"location_mode"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Provider struct {
		Host           string  `yaml:"host" json:"host"`
		NumPages       int     `yaml:"num_pages" json:"num_pages"`
		DatePosted     string  `yaml:"date_posted" json:"date_posted"` // all | today | 3days | week | month
		RequestsPerSec float64 `yaml:"requests_per_sec" json:"requests_per_sec"`
		Burst          int     `yaml:"burst" json:"burst"`
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		Retries        int     `yaml:"retries" json:"retries"`
	} `yaml:"provider" json:"provider"`

	Session struct {
		TTLMinutes int `yaml:"ttl_minutes" json:"ttl_minutes"`
	} `yaml:"session" json:"session"`

	Filters struct {
		RemoteIndicators []string `yaml:"remote_indicators" json:"remote_indicators"`
		MaxResults       int      `yaml:"max_results" json:"max_results"`
	} `yaml:"filters" json:"filters"`

	Tagging struct {
		MaxTags     int    `yaml:"max_tags" json:"max_tags"`
		FallbackTag string `yaml:"fallback_tag" json:"fallback_tag"`
		Rules       []Rule `yaml:"rules" json:"rules"`
	} `yaml:"tagging" json:"tagging"`

	Digest struct {
		Enabled     bool   `yaml:"enabled" json:"enabled"`
		SMTPHost    string `yaml:"smtp_host" json:"smtp_host"`
		SMTPPort    int    `yaml:"smtp_port" json:"smtp_port"`
		From        string `yaml:"from" json:"from"`
		Username    string `yaml:"username" json:"username"`
		MaxListings int    `yaml:"max_listings" json:"max_listings"`
	} `yaml:"digest" json:"digest"`

	Presets []Preset `yaml:"presets" json:"presets"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyDefaults(&cfg)
	return cfg, nil
}

func ApplyDefaults(cfg *Config) {
	if cfg.App.Port == 0 {
		cfg.App.Port = 38474
	}
	if cfg.Provider.Host == "" {
		cfg.Provider.Host = "jsearch.p.rapidapi.com"
	}
	if cfg.Provider.NumPages == 0 {
		cfg.Provider.NumPages = 1
	}
	if cfg.Provider.DatePosted == "" {
		cfg.Provider.DatePosted = "all"
	}
	if cfg.Provider.RequestsPerSec == 0 {
		cfg.Provider.RequestsPerSec = 2
	}
	if cfg.Provider.Burst == 0 {
		cfg.Provider.Burst = 4
	}
	if cfg.Provider.TimeoutSeconds == 0 {
		cfg.Provider.TimeoutSeconds = 15
	}
	if cfg.Session.TTLMinutes == 0 {
		cfg.Session.TTLMinutes = 60
	}
	if len(cfg.Filters.RemoteIndicators) == 0 {
		cfg.Filters.RemoteIndicators = []string{
			"remote", "work from home", "wfh", "telecommute", "virtual", "anywhere",
		}
	}
	if cfg.Filters.MaxResults == 0 {
		cfg.Filters.MaxResults = 25
	}
	if cfg.Tagging.MaxTags == 0 {
		cfg.Tagging.MaxTags = 3
	}
	if cfg.Tagging.FallbackTag == "" {
		cfg.Tagging.FallbackTag = "General Tech"
	}
	if cfg.Digest.MaxListings == 0 {
		cfg.Digest.MaxListings = 10
	}
	if cfg.Digest.SMTPPort == 0 {
		cfg.Digest.SMTPPort = 587
	}
}
