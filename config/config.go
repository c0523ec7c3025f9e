package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"pantherasmp/core/log"
	"pantherasmp/models"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

// IsConfigured returns true if a Gemini API key is present
func (c GeminiConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

// IsConfigured returns true if an Anthropic API key is present
func (c AnthropicConfig) IsConfigured() bool {
	return c.APIKey != ""
}

type DiscordConfig struct {
	BotToken  string
	ChannelID string
}

// IsConfigured returns true if the kill-feed Discord mirror has a bot and a channel
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" && c.ChannelID != ""
}

type SlackAlertConfig struct {
	WebhookURL string
}

// IsConfigured returns true if error alerts can be posted
func (c SlackAlertConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

// CommonConfig is shared by both binaries.
type CommonConfig struct {
	ServerHost         string
	ServerPort         int
	BotName            string
	Port               string
	BridgeURL          string
	ReconnectDelay     time.Duration
	ActionTimeout      time.Duration
	CORSAllowedOrigins string
	Environment        string

	SlackAlertConfig SlackAlertConfig
}

type BotConfig struct {
	CommonConfig

	GeminiConfig    GeminiConfig
	AnthropicConfig AnthropicConfig
}

// AdvisorEnabled is true when at least one LLM provider has a key
func (c *BotConfig) AdvisorEnabled() bool {
	return c.GeminiConfig.IsConfigured() || c.AnthropicConfig.IsConfigured()
}

func (c *BotConfig) ConnectOptions() models.ConnectOptions {
	return models.ConnectOptions{
		Host:     c.ServerHost,
		Port:     c.ServerPort,
		Username: c.BotName,
	}
}

type WatcherConfig struct {
	CommonConfig

	Auth          string
	Version       string
	DiscordConfig DiscordConfig
}

func (c *WatcherConfig) ConnectOptions() models.ConnectOptions {
	return models.ConnectOptions{
		Host:     c.ServerHost,
		Port:     c.ServerPort,
		Username: c.BotName,
		Auth:     c.Auth,
		Version:  c.Version,
	}
}

func LoadBotConfig() (*BotConfig, error) {
	loadDotEnv()

	host, err := getEnvRequired("SERVER_IP")
	if err != nil {
		return nil, err
	}
	rawPort, err := getEnvRequired("SERVER_PORT")
	if err != nil {
		return nil, err
	}

	common, err := loadCommon(host, rawPort, "PantherBot", "3000")
	if err != nil {
		return nil, err
	}

	config := &BotConfig{
		CommonConfig: *common,
		GeminiConfig: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		},
		AnthropicConfig: AnthropicConfig{
			APIKey: os.Getenv("ANTHROPIC_API_KEY"),
			Model:  getEnvWithDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		},
	}

	if config.GeminiConfig.IsConfigured() {
		log.Info("✅ Gemini advisor configured")
	} else {
		log.Warn("⚠️ Gemini not configured - Gemini advisor will be disabled")
	}
	if config.AnthropicConfig.IsConfigured() {
		log.Info("✅ Anthropic advisor configured")
	} else {
		log.Warn("⚠️ Anthropic not configured - Claude advisor will be disabled")
	}
	if !config.AdvisorEnabled() {
		log.Warn("⚠️ No LLM key configured - free-text commands will get a fallback reply")
	}
	logSlackAlerts(config.SlackAlertConfig)

	return config, nil
}

func LoadWatcherConfig() (*WatcherConfig, error) {
	loadDotEnv()

	host := getEnvWithDefault("SERVER_IP", "pantherasmp.falixsrv.me")
	rawPort := getEnvWithDefault("SERVER_PORT", "55635")

	common, err := loadCommon(host, rawPort, "PantheraWatcher", "8080")
	if err != nil {
		return nil, err
	}

	config := &WatcherConfig{
		CommonConfig: *common,
		Auth:         getEnvWithDefault("MC_AUTH", "offline"),
		Version:      os.Getenv("MC_VERSION"),
		DiscordConfig: DiscordConfig{
			BotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
			ChannelID: os.Getenv("DISCORD_KILLFEED_CHANNEL_ID"),
		},
	}

	if config.DiscordConfig.IsConfigured() {
		log.Info("✅ Discord kill-feed mirror configured")
	} else {
		log.Warn("⚠️ Discord kill-feed mirror not configured - Discord posts will be disabled")
	}
	logSlackAlerts(config.SlackAlertConfig)

	return config, nil
}

func loadCommon(host, rawPort, defaultBotName, defaultHTTPPort string) (*CommonConfig, error) {
	serverPort, err := strconv.Atoi(rawPort)
	if err != nil || serverPort <= 0 || serverPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be a valid port number, got %q", rawPort)
	}

	reconnectDelay, err := getDurationWithDefault("RECONNECT_DELAY", 5*time.Second)
	if err != nil {
		return nil, err
	}
	actionTimeout, err := getDurationWithDefault("ACTION_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}

	return &CommonConfig{
		ServerHost:         host,
		ServerPort:         serverPort,
		BotName:            getEnvWithDefault("BOT_NAME", defaultBotName),
		Port:               getEnvWithDefault("PORT", defaultHTTPPort),
		BridgeURL:          getEnvWithDefault("BRIDGE_URL", "ws://localhost:3001/bridge"),
		ReconnectDelay:     reconnectDelay,
		ActionTimeout:      actionTimeout,
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		SlackAlertConfig: SlackAlertConfig{
			WebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
		},
	}, nil
}

func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ Could not load .env file, continuing with system env vars")
	}
}

func logSlackAlerts(c SlackAlertConfig) {
	if c.IsConfigured() {
		log.Info("✅ Slack error alerts configured")
	} else {
		log.Warn("⚠️ Slack alerts not configured - errors will only be logged")
	}
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}
