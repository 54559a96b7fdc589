package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all brewkit settings.
type Config struct {
	Server    ServerConfig    `json:"server"`
	Ollama    OllamaConfig    `json:"ollama"`
	Retrieval RetrievalConfig `json:"retrieval"`
	Chat      ChatConfig      `json:"chat"`
	Menu      MenuConfig      `json:"menu"`
	Storage   StorageConfig   `json:"storage"`
	Log       LogConfig       `json:"log"`
}

type ServerConfig struct {
	Port int `json:"port"`
}

type OllamaConfig struct {
	BaseURL    string `json:"base_url"`
	ChatModel  string `json:"chat_model"`
	EmbedModel string `json:"embed_model"`
	// RequestTimeout bounds every chat/embed call, e.g. "90s".
	RequestTimeout string `json:"request_timeout"`
}

type RetrievalConfig struct {
	TopK int `json:"top_k"`
}

type ChatConfig struct {
	MaxToolDepth int `json:"max_tool_depth"`
}

type MenuConfig struct {
	// Path to a menu JSON file; empty uses the embedded default menu.
	Path string `json:"path"`
}

type StorageConfig struct {
	DataDir string `json:"data_dir"`
}

type LogConfig struct {
	Level string `json:"level"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4700,
		},
		Ollama: OllamaConfig{
			BaseURL:        "http://localhost:11434",
			ChatModel:      "qwen2.5",
			EmbedModel:     "nomic-embed-text",
			RequestTimeout: "90s",
		},
		Retrieval: RetrievalConfig{TopK: 4},
		Chat:      ChatConfig{MaxToolDepth: 5},
		Storage:   StorageConfig{DataDir: defaultDataDir()},
		Log:       LogConfig{Level: "info"},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".local", "share", "brewkit")
	}
	return "./brewkit-data"
}

func defaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "brewkit", "config.json")
}

// Load reads configuration from the default config file (when present) with
// BREWKIT_* environment variables overriding file values.
func Load() (Config, error) {
	return loadFromPath(defaultConfigPath())
}

func loadFromPath(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyFile overlays values from a JSON config file. A missing file is fine;
// a malformed one is not.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt("BREWKIT_PORT", &cfg.Server.Port)
	setString("BREWKIT_OLLAMA_URL", &cfg.Ollama.BaseURL)
	setString("BREWKIT_CHAT_MODEL", &cfg.Ollama.ChatModel)
	setString("BREWKIT_EMBED_MODEL", &cfg.Ollama.EmbedModel)
	setString("BREWKIT_REQUEST_TIMEOUT", &cfg.Ollama.RequestTimeout)
	setInt("BREWKIT_TOP_K", &cfg.Retrieval.TopK)
	setInt("BREWKIT_MAX_TOOL_DEPTH", &cfg.Chat.MaxToolDepth)
	setString("BREWKIT_MENU_PATH", &cfg.Menu.Path)
	setString("BREWKIT_DATA_DIR", &cfg.Storage.DataDir)
	setString("BREWKIT_LOG_LEVEL", &cfg.Log.Level)
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Ollama.BaseURL == "" {
		return fmt.Errorf("ollama base URL must not be empty")
	}
	if _, err := time.ParseDuration(c.Ollama.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request timeout %q: %w", c.Ollama.RequestTimeout, err)
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval top_k must be at least 1, got %d", c.Retrieval.TopK)
	}
	if c.Chat.MaxToolDepth < 1 {
		return fmt.Errorf("max tool depth must be at least 1, got %d", c.Chat.MaxToolDepth)
	}
	return nil
}

// RequestTimeout returns the parsed per-call timeout. Call only after Load
// has validated the config.
func (c Config) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Ollama.RequestTimeout)
	return d
}
