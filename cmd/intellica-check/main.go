package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"intellica/pkg/config"
	"intellica/pkg/log"
	"intellica/pkg/page"
	"intellica/pkg/probe"
	"intellica/pkg/status"
)

const defaultWait = 10 * time.Second

// Exit codes.
const (
	exitConnected   = 0
	exitUnavailable = 1
	exitChecking    = 2
	exitUsage       = 3
)

//go:embed VERSION
var Version string

type options struct {
	probe    config.ProbeConfig
	logLevel string
	wait     time.Duration
	quiet    bool
	version  bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitConnected
		}
		return exitUsage
	}

	if opts.version {
		fmt.Fprintln(stdout, strings.TrimSpace(Version))
		return exitConnected
	}

	level := opts.logLevel
	if opts.quiet {
		level = "error"
	}
	if err := log.SetLevel(level); err != nil {
		fmt.Fprintf(stderr, "intellica-check: invalid log level: %v\n", err)
		return exitUsage
	}

	client, err := probe.New(opts.probe.BackendURL, probe.Options{
		Timeout:      opts.probe.Timeout,
		RetryMax:     opts.probe.RetryMax,
		RetryWaitMin: opts.probe.RetryWaitMin,
		RetryWaitMax: opts.probe.RetryWaitMax,
	})
	if err != nil {
		fmt.Fprintf(stderr, "intellica-check: %v\n", err)
		return exitUsage
	}

	snap := check(context.Background(), client, opts.wait)
	fmt.Fprintln(stdout, "Backend Status: "+snap.Text())

	switch snap.State {
	case status.StateConnected:
		return exitConnected
	case status.StateUnavailable:
		return exitUnavailable
	default:
		return exitChecking
	}
}

// check mounts a page, waits for its health check to settle or for wait to
// elapse, and unmounts it.
func check(ctx context.Context, checker page.Checker, wait time.Duration) status.Snapshot {
	statusPage := page.New(checker)
	statusPage.Mount(ctx)
	defer statusPage.Unmount()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-statusPage.Done():
	case <-timer.C:
		log.Warn().Dur("wait", wait).Msg("Health check still pending")
	}

	return statusPage.Status()
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("intellica-check", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := options{}
	configPath := fs.String("config", "", "Optional YAML config file")
	backendURL := fs.String("backend", config.DefaultBackendURL, "Backend URL to health check")
	timeout := fs.Duration("timeout", 0, "Request timeout (0 disables)")
	retries := fs.Int("retries", 0, "Retries on connection errors")
	fs.DurationVar(&opts.wait, "wait", defaultWait, "Maximum time to wait for the check to settle")
	fs.BoolVar(&opts.quiet, "quiet", false, "Only log errors")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "intellica-check: %v\n", err)
		return opts, err
	}

	// Explicit flags win over file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Probe.BackendURL = strings.TrimSpace(*backendURL)
		case "timeout":
			cfg.Probe.Timeout = *timeout
		case "retries":
			cfg.Probe.RetryMax = *retries
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "intellica-check: %v\n", err)
		return opts, err
	}
	if opts.wait <= 0 {
		fmt.Fprintln(stderr, "intellica-check: -wait must be positive")
		return opts, errors.New("invalid wait")
	}

	opts.probe = cfg.Probe
	opts.logLevel = cfg.Log.Level
	return opts, nil
}
