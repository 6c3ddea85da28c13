package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	prerrors "prchain.dev/prchain/internal/errors"
)

// TokenSource describes where a GitHub token may be found
type TokenSource struct {
	// Host is the GitHub hostname, github.com unless Enterprise
	Host string
	// Getenv reads environment variables. Defaults to os.Getenv.
	Getenv func(string) string
	// ConfigDir overrides $XDG_CONFIG_HOME (or ~/.config)
	ConfigDir string
	// GHToken asks the gh CLI for a token. Optional.
	GHToken func(ctx context.Context, host string) (string, error)
}

func (s *TokenSource) getenv(key string) string {
	if s.Getenv != nil {
		return s.Getenv(key)
	}
	return os.Getenv(key)
}

func (s *TokenSource) host() string {
	if s.Host == "" {
		return "github.com"
	}
	return s.Host
}

func (s *TokenSource) configDir() string {
	if s.ConfigDir != "" {
		return s.ConfigDir
	}
	if dir := s.getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return ""
}

// Find returns the first token found in, in order: GITHUB_TOKEN, GH_TOKEN,
// `gh auth token`, gh's hosts.yml and config.yml, and hub's config.
func (s *TokenSource) Find(ctx context.Context) (string, error) {
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := strings.TrimSpace(s.getenv(key)); token != "" {
			return token, nil
		}
	}

	if s.GHToken != nil {
		if token, err := s.GHToken(ctx, s.host()); err == nil && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), nil
		}
	}

	if dir := s.configDir(); dir != "" {
		for _, path := range []string{
			filepath.Join(dir, "gh", "hosts.yml"),
			filepath.Join(dir, "gh", "config.yml"),
			filepath.Join(dir, "hub"),
		} {
			token, err := tokenFromFile(path, s.host())
			if err != nil {
				return "", err
			}
			if token != "" {
				return token, nil
			}
		}
	}

	return "", fmt.Errorf("%w\nSet GITHUB_TOKEN or run `gh auth login`", prerrors.ErrNoToken)
}

// tokenFromFile reads <host>.oauth_token or <host>[0].oauth_token from a
// gh or hub YAML file. gh's older config.yml nests hosts under "hosts".
func tokenFromFile(path, host string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if token := hostToken(doc[host]); token != "" {
		return token, nil
	}
	if hosts, ok := doc["hosts"].(map[string]interface{}); ok {
		return hostToken(hosts[host]), nil
	}
	return "", nil
}

func hostToken(entry interface{}) string {
	switch v := entry.(type) {
	case map[string]interface{}:
		if token, ok := v["oauth_token"].(string); ok {
			return strings.TrimSpace(token)
		}
	case []interface{}:
		if len(v) > 0 {
			return hostToken(v[0])
		}
	}
	return ""
}
