package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig    `toml:"general" yaml:"general"`
	OpenAI     OpenAIConfig     `toml:"openai" yaml:"openai"`
	Assistant  AssistantConfig  `toml:"assistant" yaml:"assistant"`
	Audio      AudioConfig      `toml:"audio" yaml:"audio"`
	Storage    StorageConfig    `toml:"storage" yaml:"storage"`
	Credential CredentialConfig `toml:"credential" yaml:"credential"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name string `toml:"name" yaml:"name"`
	// BaseDir anchors every relative path below. Defaults to the directory
	// of the running executable.
	BaseDir   string `toml:"base_dir" yaml:"base_dir"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// OpenAIConfig holds the hosted chat and speech service configuration
type OpenAIConfig struct {
	APIKey       string   `toml:"api_key" yaml:"api_key"`
	BaseURL      string   `toml:"base_url" yaml:"base_url"`
	Organization string   `toml:"organization" yaml:"organization"`
	ChatModel    string   `toml:"chat_model" yaml:"chat_model"`
	SpeechModel  string   `toml:"speech_model" yaml:"speech_model"`
	SpeechFormat string   `toml:"speech_format" yaml:"speech_format"`
	StatusCheck  Duration `toml:"status_check" yaml:"status_check"`
}

// AssistantConfig holds the persona strings shown in the transcript
type AssistantConfig struct {
	Name          string `toml:"name" yaml:"name"`
	UserLabel     string `toml:"user_label" yaml:"user_label"`
	ErrorLabel    string `toml:"error_label" yaml:"error_label"`
	Welcome       string `toml:"welcome" yaml:"welcome"`
	ConsolePrompt string `toml:"console_prompt" yaml:"console_prompt"`
	ConsoleVoice  string `toml:"console_voice" yaml:"console_voice"`
}

// AudioConfig holds speech artifact and playback settings
type AudioConfig struct {
	Dir          string `toml:"dir" yaml:"dir"`
	FileBase     string `toml:"file_base" yaml:"file_base"`
	Backend      string `toml:"backend" yaml:"backend"`
	Command      string `toml:"command" yaml:"command"`
	BufferFrames int    `toml:"buffer_frames" yaml:"buffer_frames"`
}

// StorageConfig holds local file locations
type StorageConfig struct {
	SettingsFile string `toml:"settings_file" yaml:"settings_file"`
	// Journal is the SQLite turn journal; "off" disables it
	Journal string `toml:"journal" yaml:"journal"`
}

// CredentialConfig selects where the API key is persisted
type CredentialConfig struct {
	Backend        string `toml:"backend" yaml:"backend"`
	DotFile        string `toml:"dot_file" yaml:"dot_file"`
	KeyringService string `toml:"keyring_service" yaml:"keyring_service"`
	KeyringUser    string `toml:"keyring_user" yaml:"keyring_user"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.expandEnvVars()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Apply defaults
	cfg.applyDefaults()

	// Expand environment variables in sensitive fields
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the NINJACHAT_CONFIG environment
// variable or the first default location that exists. Without any file the
// defaults are returned.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("NINJACHAT_CONFIG")
	if path == "" {
		for _, p := range defaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

func defaultPaths() []string {
	paths := []string{
		"./ninjachat.toml",
		"./configs/ninjachat.toml",
		"./ninjachat.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "ninjachat", "config.toml"),
			filepath.Join(home, ".config", "ninjachat", "config.yaml"),
		)
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "ninjachat"
	}
	if c.General.BaseDir == "" {
		c.General.BaseDir = executableDir()
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}
	if c.General.LogFile == "" {
		c.General.LogFile = "logs/ninjachat.log"
	}

	// OpenAI
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = "${OPENAI_API_KEY}"
	}
	if c.OpenAI.ChatModel == "" {
		c.OpenAI.ChatModel = "gpt-4"
	}
	if c.OpenAI.SpeechModel == "" {
		c.OpenAI.SpeechModel = "tts-1"
	}
	if c.OpenAI.SpeechFormat == "" {
		c.OpenAI.SpeechFormat = "mp3"
	}
	if c.OpenAI.StatusCheck.Duration == 0 {
		c.OpenAI.StatusCheck.Duration = 10 * time.Second
	}

	// Assistant
	if c.Assistant.Name == "" {
		c.Assistant.Name = "Cyber Ninja AI"
	}
	if c.Assistant.UserLabel == "" {
		c.Assistant.UserLabel = "You"
	}
	if c.Assistant.ErrorLabel == "" {
		c.Assistant.ErrorLabel = "Error"
	}
	if c.Assistant.Welcome == "" {
		c.Assistant.Welcome = "Welcome, user. I am your cyber ninja assistant. How may I assist you today?"
	}
	if c.Assistant.ConsolePrompt == "" {
		c.Assistant.ConsolePrompt = "You are a cyber ninja AI assistant with advanced capabilities. Respond in a high-tech, professional manner."
	}
	if c.Assistant.ConsoleVoice == "" {
		c.Assistant.ConsoleVoice = "alloy"
	}

	// Audio
	if c.Audio.Dir == "" {
		c.Audio.Dir = "audio"
	}
	if c.Audio.FileBase == "" {
		c.Audio.FileBase = "response.mp3"
	}
	if c.Audio.Backend == "" {
		c.Audio.Backend = "portaudio"
	}
	if c.Audio.BufferFrames == 0 {
		c.Audio.BufferFrames = 1024
	}

	// Storage
	if c.Storage.SettingsFile == "" {
		c.Storage.SettingsFile = "settings.json"
	}
	if c.Storage.Journal == "" {
		c.Storage.Journal = "data/journal.db"
	}

	// Credential
	if c.Credential.Backend == "" {
		c.Credential.Backend = "dotfile"
	}
	if c.Credential.DotFile == "" {
		c.Credential.DotFile = ".env"
	}
	if c.Credential.KeyringService == "" {
		c.Credential.KeyringService = "ninjachat"
	}
	if c.Credential.KeyringUser == "" {
		c.Credential.KeyringUser = "openai"
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.OpenAI.APIKey = os.ExpandEnv(c.OpenAI.APIKey)
	c.OpenAI.BaseURL = os.ExpandEnv(c.OpenAI.BaseURL)
	c.General.BaseDir = os.ExpandEnv(c.General.BaseDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.Audio.Dir = os.ExpandEnv(c.Audio.Dir)
	c.Storage.SettingsFile = os.ExpandEnv(c.Storage.SettingsFile)
	c.Storage.Journal = os.ExpandEnv(c.Storage.Journal)
	c.Credential.DotFile = os.ExpandEnv(c.Credential.DotFile)
}

// Resolve returns path anchored at the base directory unless it is absolute
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.General.BaseDir, path)
}

// JournalEnabled reports whether the turn journal should be opened
func (c *Config) JournalEnabled() bool {
	return c.Storage.Journal != "" && c.Storage.Journal != "off"
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
