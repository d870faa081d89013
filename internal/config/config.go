// Package config loads kitium-lint settings from the environment, an
// optional .env file and an optional kitium-lint.yaml in the project root.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables
const (
	EnvSetupESLint         = "SETUP_ESLINT"
	EnvSetupTSLint         = "SETUP_TSLINT"
	EnvSetupPrettier       = "SETUP_PRETTIER"
	EnvSetupSecurity       = "SETUP_SECURITY"
	EnvSetupReplaceScripts = "SETUP_REPLACE_SCRIPTS"
	EnvSetupProjectType    = "SETUP_PROJECT_TYPE"
	EnvMigrateAutoYes      = "MIGRATE_AUTO_YES"
	EnvMigrateAutoNo       = "MIGRATE_AUTO_NO"
	EnvLogLevel            = "KITIUM_LINT_LOG_LEVEL"
	EnvNoColor             = "KITIUM_LINT_NO_COLOR"
	EnvLifecycleEvent      = "npm_lifecycle_event"
	EnvInitCwd             = "INIT_CWD"
)

// bindings maps viper keys to the variables that set them.
var bindings = []struct {
	key string
	env string
}{
	{"setup.eslint", EnvSetupESLint},
	{"setup.tslint", EnvSetupTSLint},
	{"setup.prettier", EnvSetupPrettier},
	{"setup.security", EnvSetupSecurity},
	{"setup.replace_scripts", EnvSetupReplaceScripts},
	{"setup.project_type", EnvSetupProjectType},
	{"migrate.auto_yes", EnvMigrateAutoYes},
	{"migrate.auto_no", EnvMigrateAutoNo},
	{"log.level", EnvLogLevel},
	{"log.no_color", EnvNoColor},
	{"lifecycle_event", EnvLifecycleEvent},
	{"init_cwd", EnvInitCwd},
}

// SetupAnswers are preset answers to the setup wizard. A nil field means
// the question is asked.
type SetupAnswers struct {
	ESLint         *bool
	TSLint         *bool
	Prettier       *bool
	Security       *bool
	ReplaceScripts *bool
	ProjectType    string
}

// Settings is the resolved configuration of one invocation.
type Settings struct {
	Setup SetupAnswers

	// MigrateAutoYes answers every migration question with yes.
	MigrateAutoYes bool
	// MigrateAutoNo answers every migration question with no.
	MigrateAutoNo bool

	// LogLevel is one of debug, info, warn or error.
	// Default: warn
	LogLevel string
	NoColor  bool

	// LifecycleEvent is the package-manager hook running us, if any.
	LifecycleEvent string
	// InitCwd is the directory the package manager was invoked from.
	InitCwd string
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{LogLevel: "warn"}
}

// Load reads settings for a project directory. Priority, highest first:
// process environment, dir/.env, dir/kitium-lint.yaml, defaults.
func Load(dir string) (*Settings, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("kitium-lint")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	for _, b := range bindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", b.env, err)
		}
	}
	v.SetDefault("log.level", Default().LogLevel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	s := Default()
	var err error
	optional := []struct {
		key  string
		dest **bool
	}{
		{"setup.eslint", &s.Setup.ESLint},
		{"setup.tslint", &s.Setup.TSLint},
		{"setup.prettier", &s.Setup.Prettier},
		{"setup.security", &s.Setup.Security},
		{"setup.replace_scripts", &s.Setup.ReplaceScripts},
	}
	for _, o := range optional {
		if *o.dest, err = optionalBool(v, o.key); err != nil {
			return nil, err
		}
	}
	if s.MigrateAutoYes, err = strictTrue(v, "migrate.auto_yes"); err != nil {
		return nil, err
	}
	if s.MigrateAutoNo, err = strictTrue(v, "migrate.auto_no"); err != nil {
		return nil, err
	}
	if s.NoColor, err = strictTrue(v, "log.no_color"); err != nil {
		return nil, err
	}
	s.Setup.ProjectType = strings.TrimSpace(v.GetString("setup.project_type"))
	s.LogLevel = strings.ToLower(strings.TrimSpace(v.GetString("log.level")))
	s.LifecycleEvent = v.GetString("lifecycle_event")
	s.InitCwd = v.GetString("init_cwd")

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

// optionalBool returns nil for an unset key.
func optionalBool(v *viper.Viper, key string) (*bool, error) {
	if !v.IsSet(key) {
		return nil, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %q is not a boolean", envFor(key), raw)
	}
	return &b, nil
}

func strictTrue(v *viper.Viper, key string) (bool, error) {
	b, err := optionalBool(v, key)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

func envFor(key string) string {
	for _, b := range bindings {
		if b.key == key {
			return b.env
		}
	}
	return key
}

// Validate checks if the settings are consistent.
func (s Settings) Validate() error {
	if s.MigrateAutoYes && s.MigrateAutoNo {
		return fmt.Errorf("%s and %s cannot both be true", EnvMigrateAutoYes, EnvMigrateAutoNo)
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%s must be debug, info, warn or error (got %q)", EnvLogLevel, name)
}

// MigrateAnswer returns the preset answer to migration questions, if any.
func (s Settings) MigrateAnswer() *bool {
	switch {
	case s.MigrateAutoYes:
		yes := true
		return &yes
	case s.MigrateAutoNo:
		no := false
		return &no
	}
	return nil
}

// String returns a human-readable representation of the settings
func (s Settings) String() string {
	return fmt.Sprintf(
		"Settings{ESLint: %s, TSLint: %s, Prettier: %s, Security: %s, ReplaceScripts: %s, "+
			"ProjectType: %q, AutoYes: %t, AutoNo: %t, LogLevel: %s, NoColor: %t}",
		fmtOptional(s.Setup.ESLint), fmtOptional(s.Setup.TSLint), fmtOptional(s.Setup.Prettier),
		fmtOptional(s.Setup.Security), fmtOptional(s.Setup.ReplaceScripts),
		s.Setup.ProjectType, s.MigrateAutoYes, s.MigrateAutoNo, s.LogLevel, s.NoColor,
	)
}

func fmtOptional(b *bool) string {
	if b == nil {
		return "unset"
	}
	return strconv.FormatBool(*b)
}
