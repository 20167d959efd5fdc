package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	AppName    = "ArticlePrompts"
	AppVersion = "1.2.0"
)

// Chrome headers for TLS fingerprinting (must match azuretls Chrome profile version)
const (
	ChromeUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
	ChromeSecChUa   = `"Google Chrome";v="135", "Chromium";v="135", "Not-A.Brand";v="8"`
)

// Defaults used when neither the environment nor stored settings say otherwise.
const (
	DefaultAIProvider = "openai"
	DefaultAIModel    = "gpt-4o-mini"
)

type Config struct {
	Addr      string
	DBPath    string
	DataDir   string
	StaticDir string
	LogLevel  string
	NodeID    int64

	// AI defaults. Stored settings take precedence.
	AIProvider string
	AIModel    string
	AIBaseURL  string
}

func Load() Config {
	addr := os.Getenv("APP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("APP_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("APP_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "articleprompts.db")
	}
	staticDir := os.Getenv("APP_STATIC_DIR")
	if staticDir != "" {
		staticDir = filepath.Clean(staticDir)
	}
	logLevel := os.Getenv("APP_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	var nodeID int64 = 1
	if val := os.Getenv("APP_NODE_ID"); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			nodeID = parsed
		}
	}

	provider := os.Getenv("APP_AI_PROVIDER")
	if provider == "" {
		provider = DefaultAIProvider
	}
	model := os.Getenv("APP_AI_MODEL")
	if model == "" {
		model = DefaultAIModel
	}

	return Config{
		Addr:       addr,
		DBPath:     filepath.Clean(path),
		DataDir:    filepath.Clean(dataDir),
		StaticDir:  staticDir,
		LogLevel:   logLevel,
		NodeID:     nodeID,
		AIProvider: provider,
		AIModel:    model,
		AIBaseURL:  os.Getenv("APP_AI_BASE_URL"),
	}
}
