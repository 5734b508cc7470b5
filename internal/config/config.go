package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/product-catalog/internal/app"
	"github.com/atomicstack/product-catalog/internal/catalog"
	"github.com/atomicstack/product-catalog/internal/seed"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Output   Output
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

// Output controls the non-interactive list command.
type Output struct {
	Format seed.Format
}

const (
	envSeedPath   = "PRODUCT_CATALOG_SEED"
	envWatch      = "PRODUCT_CATALOG_WATCH"
	envSearch     = "PRODUCT_CATALOG_SEARCH"
	envCategory   = "PRODUCT_CATALOG_CATEGORY"
	envSort       = "PRODUCT_CATALOG_SORT"
	envNode       = "PRODUCT_CATALOG_NODE"
	envWidth      = "PRODUCT_CATALOG_WIDTH"
	envHeight     = "PRODUCT_CATALOG_HEIGHT"
	envShowFooter = "PRODUCT_CATALOG_FOOTER"
	envVerbose    = "PRODUCT_CATALOG_VERBOSE"
	envTrace      = "PRODUCT_CATALOG_TRACE"
	envLogFile    = "PRODUCT_CATALOG_LOG_FILE"
	envFormat     = "PRODUCT_CATALOG_FORMAT"
)

const maxSnowflakeNode = 1023

// Binding holds the flag values registered by Bind until they are resolved
// into a Config after parsing.
type Binding struct {
	seedPath   *string
	watch      *bool
	search     *string
	categories *[]string
	sort       *string
	node       *int64
	width      *int
	height     *int
	footer     *bool
	trace      *bool
	verbose    *bool
	logFile    *string
	format     *string
}

// Bind registers the shared flags on fs, with defaults taken from environ.
func Bind(fs *pflag.FlagSet, environ []string) *Binding {
	env := parseEnv(environ)
	b := &Binding{}
	b.seedPath = fs.String("seed", envOrDefault(env, envSeedPath, ""), "YAML or CSV file to load the catalog from")
	b.watch = fs.Bool("watch", envOrBool(env, envWatch, false), "watch the seed file and offer to reload it when it changes")
	b.search = fs.String("search", envOrDefault(env, envSearch, ""), "initial title search")
	b.categories = fs.StringArray("category", envOrList(env, envCategory), "category to filter by (repeatable)")
	b.sort = fs.String("sort", envOrDefault(env, envSort, "none"), "price sort: none, asc or desc")
	b.node = fs.Int64("node", envOrInt64(env, envNode, 1), "snowflake node number used for product ids (0-1023)")
	b.width = fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	b.height = fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	b.footer = fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer key help (disabled by default)")
	b.trace = fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	b.verbose = fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	b.logFile = fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	return b
}

// BindFormat registers the list command's --format flag.
func (b *Binding) BindFormat(fs *pflag.FlagSet, environ []string) {
	env := parseEnv(environ)
	b.format = fs.String("format", envOrDefault(env, envFormat, string(seed.FormatTable)), "output format: table, csv or yaml")
}

// Config resolves parsed flag values. args are the positional arguments left
// after parsing.
func (b *Binding) Config(args []string) (Config, error) {
	if *b.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *b.width)
	}
	if *b.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *b.height)
	}
	sortMode, err := catalog.ParseSortMode(*b.sort)
	if err != nil {
		return Config{}, err
	}
	format := seed.FormatTable
	if b.format != nil {
		format, err = seed.ParseFormat(*b.format)
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		App: app.Config{
			SeedPath:   *b.seedPath,
			Watch:      *b.watch,
			Search:     *b.search,
			Categories: append([]string(nil), (*b.categories)...),
			Sort:       sortMode,
			Node:       *b.node,
			Width:      *b.width,
			Height:     *b.height,
			ShowFooter: *b.footer,
			Verbose:    *b.verbose,
		},
		Logging: Logging{
			FilePath: *b.logFile,
			Trace:    *b.trace,
		},
		Features: Features{
			Verbose: *b.verbose,
		},
		Output: Output{Format: format},
		Flags: map[string]string{
			"seed":     *b.seedPath,
			"watch":    strconv.FormatBool(*b.watch),
			"search":   *b.search,
			"category": strings.Join(*b.categories, ","),
			"sort":     sortMode.String(),
			"node":     strconv.FormatInt(*b.node, 10),
			"width":    strconv.Itoa(*b.width),
			"height":   strconv.Itoa(*b.height),
			"footer":   strconv.FormatBool(*b.footer),
			"trace":    strconv.FormatBool(*b.trace),
			"verbose":  strconv.FormatBool(*b.verbose),
			"logFile":  *b.logFile,
			"format":   string(format),
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("product-catalog", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	b := Bind(fs, environ)
	b.BindFormat(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return b.Config(fs.Args())
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrInt64(env map[string]string, key string, fallback int64) int64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := cast.ToBoolE(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrList(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

var ErrWatchWithoutSeed = errors.New("--watch requires --seed")

// Validate checks option combinations that individual flags cannot.
func Validate(cfg Config) error {
	if cfg.App.Watch && strings.TrimSpace(cfg.App.SeedPath) == "" {
		return ErrWatchWithoutSeed
	}
	if cfg.App.Node < 0 || cfg.App.Node > maxSnowflakeNode {
		return fmt.Errorf("node must be between 0 and %d (got %d)", maxSnowflakeNode, cfg.App.Node)
	}
	if cfg.App.SeedPath != "" {
		if _, err := seed.FormatFromPath(cfg.App.SeedPath); err != nil {
			return err
		}
	}
	return nil
}
