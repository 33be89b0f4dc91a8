// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// DatasetConfig describes one government source archive. URL points straight
// at the archive; when PageURL is set instead, the archive link is discovered
// by scraping the landing page for an anchor matching LinkText.
type DatasetConfig struct {
	URL      string `yaml:"url"`
	PageURL  string `yaml:"page_url"`
	LinkText string `yaml:"link_text"`
	Member   string `yaml:"member"` // zip member to extract; empty = the only file
}

type DatasetsConfig struct {
	Cars            DatasetConfig `yaml:"cars"`
	COEResults      DatasetConfig `yaml:"coe_results"`
	COEPQP          DatasetConfig `yaml:"coe_pqp"`
	Deregistrations DatasetConfig `yaml:"deregistrations"`
}

type RevalidationConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"` // env: REVALIDATE_TOKEN
}

type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"` // env: DISCORD_WEBHOOK_URL
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"` // env: TELEGRAM_BOT_TOKEN
	ChatID   string `yaml:"chat_id"`   // env: TELEGRAM_CHAT_ID
}

type TwitterConfig struct {
	Enabled           bool   `yaml:"enabled"`
	ConsumerKey       string `yaml:"consumer_key"`        // env: TWITTER_CONSUMER_KEY
	ConsumerSecret    string `yaml:"consumer_secret"`     // env: TWITTER_CONSUMER_SECRET
	AccessToken       string `yaml:"access_token"`        // env: TWITTER_ACCESS_TOKEN
	AccessTokenSecret string `yaml:"access_token_secret"` // env: TWITTER_ACCESS_TOKEN_SECRET
}

type LinkedInConfig struct {
	Enabled        bool   `yaml:"enabled"`
	ClientID       string `yaml:"client_id"`       // env: LINKEDIN_CLIENT_ID
	ClientSecret   string `yaml:"client_secret"`   // env: LINKEDIN_CLIENT_SECRET
	RefreshToken   string `yaml:"refresh_token"`   // env: LINKEDIN_REFRESH_TOKEN
	OrganisationID string `yaml:"organisation_id"` // env: LINKEDIN_ORGANISATION_ID
	PersonID       string `yaml:"person_id"`       // env: LINKEDIN_PERSON_ID
}

type SocialConfig struct {
	Discord  DiscordConfig  `yaml:"discord"`
	Telegram TelegramConfig `yaml:"telegram"`
	Twitter  TwitterConfig  `yaml:"twitter"`
	LinkedIn LinkedInConfig `yaml:"linkedin"`
}

type AlertConfig struct {
	DiscordWebhookURL string `yaml:"discord_webhook_url"` // env: ALERT_DISCORD_WEBHOOK_URL
}

type Config struct {
	Env          string             `yaml:"env"` // "production" enables checksum reads and all platforms
	SiteURL      string             `yaml:"site_url"`
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Datasets     DatasetsConfig     `yaml:"datasets"`
	Revalidation RevalidationConfig `yaml:"revalidation"`
	Social       SocialConfig       `yaml:"social"`
	Alert        AlertConfig        `yaml:"alert"`
	TriggerToken string             `yaml:"trigger_token"` // env: WORKFLOW_TRIGGER_TOKEN

	HTTPTimeoutStr string        `yaml:"http_timeout"`
	HTTPTimeout    time.Duration `yaml:"-"`
}

// LoadConfig reads the YAML config file and overlays secrets from the
// environment. It is called once at startup; the resulting struct is passed by
// reference into the orchestrators and publishers so the enable/disable matrix
// stays testable.
func LoadConfig(configPath string) (*Config, error) {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyEnvOverrides()

	if cfg.HTTPTimeoutStr != "" {
		cfg.HTTPTimeout, err = time.ParseDuration(cfg.HTTPTimeoutStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse http_timeout: %w", err)
		}
	} else {
		cfg.HTTPTimeout = 30 * time.Second
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	return &cfg, nil
}

// applyEnvOverrides lets deployment environments supply secrets without
// writing them into the config file. A set variable always wins over YAML.
func (c *Config) applyEnvOverrides() {
	override(&c.Env, "APP_ENV")
	override(&c.Database.Host, "DATABASE_HOST")
	override(&c.Database.User, "DATABASE_USER")
	override(&c.Database.Password, "DATABASE_PASSWORD")
	override(&c.Database.DBName, "DATABASE_NAME")
	override(&c.Revalidation.URL, "REVALIDATE_URL")
	override(&c.Revalidation.Token, "REVALIDATE_TOKEN")
	override(&c.Social.Discord.WebhookURL, "DISCORD_WEBHOOK_URL")
	override(&c.Social.Telegram.BotToken, "TELEGRAM_BOT_TOKEN")
	override(&c.Social.Telegram.ChatID, "TELEGRAM_CHAT_ID")
	override(&c.Social.Twitter.ConsumerKey, "TWITTER_CONSUMER_KEY")
	override(&c.Social.Twitter.ConsumerSecret, "TWITTER_CONSUMER_SECRET")
	override(&c.Social.Twitter.AccessToken, "TWITTER_ACCESS_TOKEN")
	override(&c.Social.Twitter.AccessTokenSecret, "TWITTER_ACCESS_TOKEN_SECRET")
	override(&c.Social.LinkedIn.ClientID, "LINKEDIN_CLIENT_ID")
	override(&c.Social.LinkedIn.ClientSecret, "LINKEDIN_CLIENT_SECRET")
	override(&c.Social.LinkedIn.RefreshToken, "LINKEDIN_REFRESH_TOKEN")
	override(&c.Social.LinkedIn.OrganisationID, "LINKEDIN_ORGANISATION_ID")
	override(&c.Social.LinkedIn.PersonID, "LINKEDIN_PERSON_ID")
	override(&c.Alert.DiscordWebhookURL, "ALERT_DISCORD_WEBHOOK_URL")
	override(&c.TriggerToken, "WORKFLOW_TRIGGER_TOKEN")
}

func override(dst *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*dst = v
	}
}

// IsProduction reports whether checksum short-circuiting and the full social
// platform matrix should be active. Local runs always re-fetch fresh data.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
