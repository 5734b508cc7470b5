package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/product-catalog/internal/app"
	"github.com/atomicstack/product-catalog/internal/config"
	"github.com/atomicstack/product-catalog/internal/logging"
	"github.com/atomicstack/product-catalog/internal/logging/events"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	exitRuntime = 1
	exitConfig  = 2
)

// configError marks failures that should exit with exitConfig.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

func main() {
	os.Exit(execute(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

func execute(args, environ []string, stdout, stderr io.Writer) int {
	root := newRootCommand(environ, stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.Execute()
	defer logging.Close()
	if err == nil {
		return 0
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return exitConfig
	}
	logging.Error(err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitRuntime
}

func newRootCommand(environ []string, stdout io.Writer) *cobra.Command {
	var (
		binding *config.Binding
		cfg     config.Config
	)
	resolve := func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = binding.Config(args)
		if err != nil {
			return configError{err}
		}
		if err := config.Validate(cfg); err != nil {
			return configError{err}
		}
		logging.Configure(cfg.Logging.FilePath)
		logging.SetTraceEnabled(cfg.Logging.Trace)
		traceStartup(cfg)
		return nil
	}

	root := &cobra.Command{
		Use:   "product-catalog",
		Short: "Browse and edit a product catalog in the terminal",
		Long: `product-catalog is an in-memory product dashboard.

Products can be added, edited and deleted, searched by title, filtered by
category and sorted by price. A YAML or CSV seed file may be loaded at start;
nothing is written back to it.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: resolve,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cfg.App)
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return configError{err}
	})
	binding = config.Bind(root.PersistentFlags(), environ)

	list := &cobra.Command{
		Use:   "list",
		Short: "Print the filtered catalog and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.List(cfg.App, stdout, cfg.Output.Format)
		},
	}
	binding.BindFormat(list.Flags(), environ)
	root.AddCommand(list)
	return root
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails records which standard descriptors are terminals and
// their sizes, so a trace shows why the UI picked the dimensions it did.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd < 0 || !term.IsTerminal(fd) {
			results = append(results, entry)
			continue
		}
		entry.IsTerminal = true
		width, height, err := term.GetSize(fd)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Width, entry.Height = width, height
			if detected == nil {
				detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
