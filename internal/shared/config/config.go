package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"starforge/internal/rules"
	"starforge/internal/shared/utils"
)

type Config struct {
	Logging    LoggingConfig
	Generation GenerationConfig
	Settings   SettingsConfig
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type GenerationConfig struct {
	Seed   uint64
	Seeded bool
}

// SettingsConfig is the host settings as read from the environment and the
// optional settings file. It is converted to rules.Settings by Rules.
type SettingsConfig struct {
	EnabledBooks   []string
	XenosSources   []string
	ShowReferences bool
	File           string
}

// settingsFile is the YAML document named by STARFORGE_SETTINGS_FILE
type settingsFile struct {
	Books          map[string]bool `yaml:"books"`
	XenosSources   map[string]bool `yaml:"xenosSources"`
	ShowReferences *bool           `yaml:"showReferences"`
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() (*Config, error) {
	generation, err := loadGenerationConfig()
	if err != nil {
		return nil, err
	}
	settings, err := loadSettingsConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		Logging:    loadLoggingConfig(),
		Generation: generation,
		Settings:   settings,
	}
	return config, nil
}

func loadLoggingConfig() LoggingConfig {
	format := strings.ToLower(utils.GetEnv("LOG_FORMAT", "text"))

	return LoggingConfig{
		Level:      strings.ToLower(utils.GetEnv("LOG_LEVEL", "info")),
		Format:     format,
		JSONFormat: format == "json",
	}
}

func loadGenerationConfig() (GenerationConfig, error) {
	raw := utils.GetEnv("STARFORGE_SEED", "")
	if raw == "" {
		return GenerationConfig{}, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return GenerationConfig{}, fmt.Errorf("STARFORGE_SEED must be an unsigned integer: %w", err)
	}
	return GenerationConfig{Seed: seed, Seeded: true}, nil
}

func loadSettingsConfig() (SettingsConfig, error) {
	var books []string
	for _, b := range rules.AllBooks() {
		books = append(books, string(b))
	}
	var sources []string
	for _, x := range rules.AllXenosSources() {
		sources = append(sources, string(x))
	}

	settings := SettingsConfig{
		EnabledBooks:   utils.GetEnvList("STARFORGE_ENABLED_BOOKS", books),
		XenosSources:   utils.GetEnvList("STARFORGE_XENOS_SOURCES", sources),
		ShowReferences: utils.GetEnvBool("STARFORGE_SHOW_REFERENCES", true),
		File:           utils.GetEnv("STARFORGE_SETTINGS_FILE", ""),
	}

	if settings.File != "" {
		if err := settings.overlayFile(settings.File); err != nil {
			return SettingsConfig{}, err
		}
	}
	return settings, nil
}

// overlayFile applies the switches found in a YAML settings file on top of
// the environment values
func (s *SettingsConfig) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	s.EnabledBooks = overlay(s.EnabledBooks, file.Books)
	s.XenosSources = overlay(s.XenosSources, file.XenosSources)
	if file.ShowReferences != nil {
		s.ShowReferences = *file.ShowReferences
	}
	return nil
}

// overlay switches keys on or off in a list, keeping its order
func overlay(list []string, switches map[string]bool) []string {
	out := make([]string, 0, len(list)+len(switches))
	for _, item := range list {
		if enabled, ok := switches[item]; !ok || enabled {
			out = append(out, item)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(switches)) {
		if switches[key] && !slices.Contains(out, key) {
			out = append(out, key)
		}
	}
	return out
}

func (c *Config) validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Logging.Format)
	}

	for _, b := range c.Settings.EnabledBooks {
		if _, err := rules.ParseBook(b); err != nil {
			return fmt.Errorf("STARFORGE_ENABLED_BOOKS: %w", err)
		}
	}
	for _, x := range c.Settings.XenosSources {
		if _, err := rules.ParseXenosSource(x); err != nil {
			return fmt.Errorf("STARFORGE_XENOS_SOURCES: %w", err)
		}
	}
	return nil
}

// Rules converts the validated settings to what the generator consumes.
// Books and sources absent from the lists are disabled.
func (c *Config) Rules() rules.Settings {
	settings := rules.Settings{
		Books:          make(map[rules.Book]bool),
		XenosSources:   make(map[rules.XenosSource]bool),
		ShowReferences: c.Settings.ShowReferences,
	}
	for _, raw := range c.Settings.EnabledBooks {
		if b, err := rules.ParseBook(raw); err == nil {
			settings.Books[b] = true
		}
	}
	for _, raw := range c.Settings.XenosSources {
		if x, err := rules.ParseXenosSource(raw); err == nil {
			settings.XenosSources[x] = true
		}
	}
	return settings
}
