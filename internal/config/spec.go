// Package config defines and loads inkgate configuration.
package config

import "time"

// Config is the complete inkgate configuration.
type Config struct {
	API    APIConfig    `koanf:"api"`
	Store  StoreConfig  `koanf:"store"`
	Web    WebConfig    `koanf:"web"`
	Events EventsConfig `koanf:"events"`
	Stub   StubConfig   `koanf:"stub"`
	Log    LogConfig    `koanf:"log"`
}

// APIConfig locates the remote application and auth endpoints.
type APIConfig struct {
	BaseURL      string        `koanf:"base_url"`
	Timeout      time.Duration `koanf:"timeout"`
	LoginPath    string        `koanf:"login_path"`
	RegisterPath string        `koanf:"register_path"`
}

// StoreConfig selects the Token Store backend.
type StoreConfig struct {
	Backend   string `koanf:"backend"` // memory, file, redis, badger
	Key       string `koanf:"key"`
	FilePath  string `koanf:"file_path"`
	RedisURL  string `koanf:"redis_url"`
	BadgerDir string `koanf:"badger_dir"`
}

// WebConfig configures the local web companion.
type WebConfig struct {
	Addr      string `koanf:"addr"`
	LoginPath string `koanf:"login_path"`
	RootPath  string `koanf:"root_path"`
	Metrics   bool   `koanf:"metrics"`
}

// EventsConfig selects where auth events are published.
type EventsConfig struct {
	Backend  string `koanf:"backend"` // none, gochannel, redisstream
	Topic    string `koanf:"topic"`
	RedisURL string `koanf:"redis_url"`
}

// StubConfig configures the development auth backend.
type StubConfig struct {
	Addr string `koanf:"addr"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:      "http://localhost:5000",
			Timeout:      30 * time.Second,
			LoginPath:    "/auth/login",
			RegisterPath: "/auth/register",
		},
		Store: StoreConfig{
			Backend: "file",
			Key:     "token",
		},
		Web: WebConfig{
			Addr:      "127.0.0.1:5173",
			LoginPath: "/login",
			RootPath:  "/",
			Metrics:   true,
		},
		Events: EventsConfig{
			Backend: "none",
			Topic:   "inkgate.auth",
		},
		Stub: StubConfig{
			Addr: "127.0.0.1:5000",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
