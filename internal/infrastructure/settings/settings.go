// Package settings loads the user-facing settings file: login credentials
// and theme options.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"

	"github.com/iho/splitnest/internal/domain"
)

// EnvPrefix marks environment variables that override the settings file,
// e.g. SPLITNEST_THEME_PRIMARYCOLOR.
const EnvPrefix = "SPLITNEST_"

// ErrCredentialsMismatch is returned when usernames and passwords differ in length.
var ErrCredentialsMismatch = errors.New("credentials: usernames and passwords must have the same length")

// Settings is the parsed settings file.
type Settings struct {
	Credentials Credentials `koanf:"credentials"`
	Theme       Theme       `koanf:"theme"`
}

// Credentials are parallel lists: passwords[i] belongs to usernames[i].
type Credentials struct {
	Usernames []string `koanf:"usernames"`
	Passwords []string `koanf:"passwords"`
}

// Theme holds display options for clients.
type Theme struct {
	PrimaryColor             string `koanf:"primaryColor"             json:"primaryColor"`
	BackgroundColor          string `koanf:"backgroundColor"          json:"backgroundColor"`
	SecondaryBackgroundColor string `koanf:"secondaryBackgroundColor" json:"secondaryBackgroundColor"`
	TextColor                string `koanf:"textColor"                json:"textColor"`
	Font                     string `koanf:"font"                     json:"font"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		PrimaryColor:             "#4CAF50",
		BackgroundColor:          "#f0f2f6",
		SecondaryBackgroundColor: "#ffffff",
		TextColor:                "#000000",
		Font:                     "sans serif",
	}
}

// envKeys restores the camelCase keys lost when env names are lowercased.
var envKeys = map[string]string{
	"theme.primarycolor":             "theme.primaryColor",
	"theme.backgroundcolor":          "theme.backgroundColor",
	"theme.secondarybackgroundcolor": "theme.secondaryBackgroundColor",
	"theme.textcolor":                "theme.textColor",
}

// Load reads defaults, then the file at path (TOML or YAML by extension),
// then SPLITNEST_ environment variables. A missing file is not an error.
func Load(path string, logger zerolog.Logger) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Settings{Theme: DefaultTheme()}, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load default settings: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}

		if err := k.Load(file.Provider(path), parser); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load settings file %s: %w", path, err)
			}
			logger.Info().Str("path", path).Msg("settings file not found, using defaults and environment variables")
		} else {
			logger.Info().Str("path", path).Msg("loaded settings file")
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			if canonical, ok := envKeys[k]; ok {
				k = canonical
			}
			if strings.HasPrefix(k, "credentials.") {
				return k, strings.Split(v, ",")
			}
			return k, v
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load settings from environment: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported settings file format %q", filepath.Ext(path))
	}
}

// Validate checks the credential lists line up.
func (s *Settings) Validate() error {
	c := s.Credentials
	if len(c.Usernames) != len(c.Passwords) {
		return fmt.Errorf("%w: %d usernames, %d passwords", ErrCredentialsMismatch, len(c.Usernames), len(c.Passwords))
	}
	for i, u := range c.Usernames {
		if strings.TrimSpace(u) == "" {
			return fmt.Errorf("credentials: username %d is empty", i)
		}
	}
	return nil
}

// Lookup implements usecase.CredentialStore. When a username is listed more
// than once the first entry wins.
func (s *Settings) Lookup(username string) (domain.Credential, bool) {
	for i, u := range s.Credentials.Usernames {
		if u == username {
			return domain.Credential{Username: u, Password: s.Credentials.Passwords[i]}, true
		}
	}
	return domain.Credential{}, false
}

// HasCredentials reports whether any login is configured.
func (s *Settings) HasCredentials() bool {
	return len(s.Credentials.Usernames) > 0
}
