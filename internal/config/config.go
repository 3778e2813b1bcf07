// Package config loads process-wide configuration from the environment
// once, at startup. The resulting value is immutable and shared by every
// request.
package config

import (
	"fmt"
	"os"

	"github.com/mkuchak/get-youtube-transcription/internal/proxy"
)

type Config struct {
	// Port the HTTP server listens on.
	Port string
	// SecretKey decrypts per-request encrypted proxy credentials. Optional;
	// without it any request carrying a proxy field is rejected as a server
	// configuration error.
	SecretKey string
	// StaticProxy is the always-on proxy used when a request carries no
	// encrypted proxy of its own. Optional.
	StaticProxy *proxy.Credential
}

// Load reads configuration from the environment and validates it. Static
// proxy settings are all-or-nothing: a partial set is a startup error, not
// something to fail on deep inside a request.
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "5000"),
		SecretKey: os.Getenv("SECRET_KEY"),
	}

	staticVars := map[string]string{
		"PROXY_USERNAME": os.Getenv("PROXY_USERNAME"),
		"PROXY_PASSWORD": os.Getenv("PROXY_PASSWORD"),
		"PROXY_HOST":     os.Getenv("PROXY_HOST"),
		"PROXY_PORT":     os.Getenv("PROXY_PORT"),
	}

	anySet := false
	for _, v := range staticVars {
		if v != "" {
			anySet = true
			break
		}
	}

	if anySet {
		for name, v := range staticVars {
			if v == "" {
				return Config{}, fmt.Errorf("static proxy configuration is incomplete: %s is not set", name)
			}
		}
		cred := proxy.Parse(fmt.Sprintf("%s:%s@%s:%s",
			staticVars["PROXY_USERNAME"], staticVars["PROXY_PASSWORD"],
			staticVars["PROXY_HOST"], staticVars["PROXY_PORT"]))
		if cred == nil {
			return Config{}, fmt.Errorf("static proxy configuration is invalid")
		}
		cfg.StaticProxy = cred
	}

	return cfg, nil
}

func getenv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
