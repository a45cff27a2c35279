package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/uetools/propscan/engine"
	"github.com/uetools/propscan/profile"
	"github.com/uetools/propscan/props/lexer"
	"github.com/uetools/propscan/props/parser"
	"github.com/uetools/propscan/source"
	"github.com/uetools/propscan/storage"
	"go.yaml.in/yaml/v3"
)

type Config struct {
	Logger               LoggerConfig    `yaml:"logger"`
	Storage              StorageConfig   `yaml:"storage"`
	Parser               ParserConfig    `yaml:"parser"`
	Profiles             []ProfileConfig `yaml:"profiles"`
	Sources              []SourceConfig  `yaml:"sources"`
	FilesBufferSize      uint            `yaml:"files_buffer_size"`
	RecordsBufferSize    uint            `yaml:"records_buffer_size"`
	StorageFlushInterval time.Duration   `yaml:"storage_flush_interval"`
	StorageBufferSize    uint            `yaml:"storage_buffer_size"`
	ScanWorkersCount     uint            `yaml:"scan_workers_count"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Type   string `yaml:"type"`
	Output string `yaml:"output"`
}

type StorageConfig struct {
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

// ParserConfig selects the dump dialect every source is parsed with.
// UModel versions disagree on lexical rules, so the dialect is an
// explicit choice rather than a default baked into the binary.
type ParserConfig struct {
	Dialect  string `yaml:"dialect"`
	MaxDepth int    `yaml:"max_depth"`
}

type ProfileConfig struct {
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Config any    `yaml:"config"`
}

type SourceConfig struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Profile string `yaml:"profile"`
	Config  any    `yaml:"config"`
}

// Parse builds the engine configuration. ctx bounds the storage
// connection attempt.
func (cfg Config) Parse(ctx context.Context) (*engine.Config, *slog.Logger, error) {
	logger, err := parseLoggerConfig(cfg.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create logger: %w", err)
	}

	st, err := parseStorageConfig(ctx, cfg.Storage)
	if err != nil {
		return nil, logger, fmt.Errorf("cannot create storage: %w", err)
	}

	parserOpts, err := parseParserConfig(cfg.Parser)
	if err != nil {
		return nil, logger, fmt.Errorf("cannot configure parser: %w", err)
	}

	profiles := make(map[string]engine.Profile, len(cfg.Profiles))
	for _, pc := range cfg.Profiles {
		p, err := parseProfileConfig(pc)
		if err != nil {
			return nil, logger, fmt.Errorf("cannot create profile `%s`: %w", pc.Name, err)
		}
		profiles[pc.Name] = p
	}

	sources := make(map[string]engine.AssetSource, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		s, err := parseSourceConfig(logger, sc)
		if err != nil {
			return nil, logger, fmt.Errorf("cannot create source `%s`: %w", sc.Name, err)
		}
		sources[sc.Name] = s
	}

	return &engine.Config{
		Sources:              sources,
		Profiles:             profiles,
		Storage:              st,
		Parser:               parserOpts,
		StorageFlushInterval: cfg.StorageFlushInterval,
		StorageBufferMaxSize: cfg.StorageBufferSize,
		FilesBufferMaxSize:   cfg.FilesBufferSize,
		RecordsBufferMaxSize: cfg.RecordsBufferSize,
		ScanWorkersCount:     cfg.ScanWorkersCount,
	}, logger, nil
}

func parseLoggerConfig(cfg LoggerConfig) (*slog.Logger, error) {
	var logger *slog.Logger
	var handler slog.Handler

	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	w := os.Stdout
	switch cfg.Type {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "colored-text":
		handler = tint.NewHandler(w, &tint.Options{Level: level, AddSource: true})
	default:
		return nil, fmt.Errorf("invalid log type: %s", cfg.Type)
	}

	logger = slog.New(handler)

	return logger, nil
}

func parseStorageConfig(ctx context.Context, cfg StorageConfig) (engine.Storage, error) {
	switch cfg.Type {
	case "clickhouse":
		var clickHouseConfig storage.ClickHouseStorageConfig

		if err := remarshal(cfg.Config, &clickHouseConfig); err != nil {
			return nil, fmt.Errorf("cannot parse clickhouse storage config: %w", err)
		}

		s, err := storage.NewClickHouseStorage(clickHouseConfig)
		if err != nil {
			return nil, fmt.Errorf("cannot create clickhouse storage: %w", err)
		}

		if err := s.Connect(ctx); err != nil {
			return nil, fmt.Errorf("cannot connect clickhouse storage: %w", err)
		}

		return s, nil

	default:
		return nil, fmt.Errorf("invalid storage type: %s", cfg.Type)
	}
}

func parseParserConfig(cfg ParserConfig) (parser.Options, error) {
	name := cfg.Dialect
	if name == "" {
		name = "modern"
	}

	dialect, ok := lexer.ByName(name)
	if !ok {
		return parser.Options{}, fmt.Errorf("invalid dump dialect: %s", name)
	}

	return parser.Options{Dialect: dialect, MaxDepth: cfg.MaxDepth}, nil
}

func parseProfileConfig(cfg ProfileConfig) (engine.Profile, error) {
	switch cfg.Type {
	case "generic":
		var genericConfig profile.GenericConfig

		if err := remarshal(cfg.Config, &genericConfig); err != nil {
			return nil, fmt.Errorf("cannot parse generic profile config: %w", err)
		}

		genericConfig.Name = cfg.Name

		return profile.NewGeneric(genericConfig)
	case "hogwarts-legacy":
		var hogwartsConfig profile.HogwartsLegacyConfig

		if err := remarshal(cfg.Config, &hogwartsConfig); err != nil {
			return nil, fmt.Errorf("cannot parse hogwarts-legacy profile config: %w", err)
		}

		hogwartsConfig.Name = cfg.Name

		return profile.NewHogwartsLegacy(hogwartsConfig)
	case "lua":
		var luaConfig profile.LuaConfig

		if err := remarshal(cfg.Config, &luaConfig); err != nil {
			return nil, fmt.Errorf("cannot parse lua profile config: %w", err)
		}

		luaConfig.Name = cfg.Name

		return profile.NewLua(luaConfig)
	default:
		return nil, fmt.Errorf("invalid profile type: %s", cfg.Type)
	}
}

type dirSourceConfig struct {
	Root  string `yaml:"root"`
	Watch bool   `yaml:"watch"`
}

func parseSourceConfig(logger *slog.Logger, cfg SourceConfig) (engine.AssetSource, error) {
	switch cfg.Type {
	case "dir":
		var dirConfig dirSourceConfig
		if err := remarshal(cfg.Config, &dirConfig); err != nil {
			return nil, fmt.Errorf("cannot create dir source: %w", err)
		}

		if dirConfig.Root == "" {
			return nil, fmt.Errorf("dir source needs a root directory")
		}

		return source.NewDirSource(logger, cfg.Name, dirConfig.Root, cfg.Profile, dirConfig.Watch), nil
	default:
		return nil, fmt.Errorf("invalid asset source type: %s", cfg.Type)
	}
}

// remarshal takes an input value, marshals it to YAML, and then unmarshals it into a new value of the same type.
// This is useful for converting generic interfaces (like map[string]any) into concrete struct types.
// The output parameter must be a pointer to the target type.
func remarshal(input any, output any) error {
	// Marshal the input to YAML
	yamlBytes, err := yaml.Marshal(input)
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}

	// Unmarshal the YAML into the output
	if err := yaml.Unmarshal(yamlBytes, output); err != nil {
		return fmt.Errorf("failed to unmarshal from YAML: %w", err)
	}

	return nil
}
