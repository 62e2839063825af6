package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zephyrtronium/relplot"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"
)

type loggerConfig struct {
	LogLevel   string `yaml:"log_level"`
	IncludeSrc bool   `yaml:"include_src"`
	LogToFile  bool   `yaml:"log_to_file"`
	Filename   string `yaml:"filename"`
	MaxSize    int    `yaml:"max_size"`
	MaxAge     int    `yaml:"max_age"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress_old_logs"`
}

type config struct {
	Logging loggerConfig `yaml:"logging"`

	// MaxDepth bounds the nesting of parsed relations. Zero means the
	// library default.
	MaxDepth int `yaml:"max_depth"`
	// Aliases gives extra names to default functions, e.g. "sen: sin".
	Aliases map[string]string `yaml:"aliases"`
	// History is the REPL history file. Empty means ~/.relplot_history.
	History string `yaml:"history"`
}

func loadConfig(path string) (config, error) {
	var conf config
	if path == "" {
		return conf, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := yaml.UnmarshalStrict(b, &conf); err != nil {
		return conf, fmt.Errorf("reading %s: %w", path, err)
	}
	if conf.MaxDepth < 0 {
		return conf, fmt.Errorf("reading %s: max_depth (%d) must not be negative", path, conf.MaxDepth)
	}
	return conf, nil
}

// parseOptions converts the configuration to parser options.
func (c *config) parseOptions() ([]relplot.ParseOption, error) {
	var opts []relplot.ParseOption
	if c.MaxDepth > 0 {
		opts = append(opts, relplot.MaxDepth(c.MaxDepth))
	}
	if len(c.Aliases) != 0 {
		fns := make(map[string]relplot.Func, len(c.Aliases))
		for name, to := range c.Aliases {
			f, ok := relplot.LookupFunc(to)
			if !ok {
				return nil, fmt.Errorf("alias %s: no function named %q", name, to)
			}
			fns[name] = f
		}
		opts = append(opts, relplot.ParseFuncs(fns))
	}
	return opts, nil
}

func (c *config) historyPath() string {
	if c.History != "" {
		return c.History
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".relplot_history")
}

func initLogger(c loggerConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     logLevelFromString(c.LogLevel),
		AddSource: c.IncludeSrc,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if src, _ := a.Value.Any().(*slog.Source); src != nil {
					src.File = filepath.Base(src.File)
				}
			}
			return a
		},
	}
	var w io.Writer = os.Stderr
	if c.LogToFile && c.Filename != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   c.Filename,
			MaxSize:    c.MaxSize, // megabytes
			MaxAge:     c.MaxAge,  // days
			MaxBackups: c.MaxBackups,
			Compress:   c.Compress,
		})
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func logLevelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
