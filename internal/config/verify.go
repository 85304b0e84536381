package config

import (
	"fmt"
	"net/url"
	"strings"
)

var (
	storeBackends = []string{"memory", "file", "redis", "badger"}
	eventBackends = []string{"none", "gochannel", "redisstream"}
	logFormats    = []string{"text", "json"}
)

// Validate checks the configuration for values the runtime cannot use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url: %q is not an http(s) URL", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout: must be positive, got %s", c.API.Timeout)
	}
	for name, p := range map[string]string{
		"api.login_path":    c.API.LoginPath,
		"api.register_path": c.API.RegisterPath,
		"web.login_path":    c.Web.LoginPath,
		"web.root_path":     c.Web.RootPath,
	} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%s: %q must start with /", name, p)
		}
	}

	if c.Web.LoginPath == c.Web.RootPath {
		return fmt.Errorf("web.login_path: must differ from web.root_path %q", c.Web.RootPath)
	}
	for name, p := range map[string]string{
		"web.login_path": c.Web.LoginPath,
		"web.root_path":  c.Web.RootPath,
	} {
		if oneOf(p, reservedWebPaths) || strings.HasPrefix(p, "/app/") {
			return fmt.Errorf("%s: %q is already routed by the web companion", name, p)
		}
	}

	if !oneOf(c.Store.Backend, storeBackends) {
		return fmt.Errorf("store.backend: %q is not one of %v", c.Store.Backend, storeBackends)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("store.key: must not be empty")
	}
	if c.Store.Backend == "redis" && c.Store.RedisURL == "" {
		return fmt.Errorf("store.redis_url: required for redis backend")
	}

	if !oneOf(c.Events.Backend, eventBackends) {
		return fmt.Errorf("events.backend: %q is not one of %v", c.Events.Backend, eventBackends)
	}
	if c.Events.Backend == "redisstream" && c.Events.RedisURL == "" {
		return fmt.Errorf("events.redis_url: required for redisstream backend")
	}

	if !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("log.format: %q is not one of %v", c.Log.Format, logFormats)
	}

	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
