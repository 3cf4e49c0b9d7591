package main

import (
	_ "embed"
	"flag"
	"os"
	"strings"

	"intellica/pkg/config"
	"intellica/pkg/log"
	"intellica/pkg/page"
	"intellica/pkg/probe"
	"intellica/pkg/server"
)

//go:embed VERSION
var Version string

func main() {
	// Initialize logger first
	_ = log.Logger

	configPath := flag.String("config", "", "Optional YAML config file")
	addr := flag.String("addr", config.DefaultAddr, "Listen address")
	backendURL := flag.String("backend", config.DefaultBackendURL, "Backend URL to health check once at startup")
	probeTimeout := flag.Duration("probe-timeout", 0, "Health check timeout (0 disables)")
	probeRetries := flag.Int("probe-retries", 0, "Health check retries on connection errors")
	shutdownTimeout := flag.Duration("shutdown-timeout", config.DefaultShutdownTimeout, "Graceful shutdown timeout")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("Failed to load configuration")
	}

	// Explicit flags win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "backend":
			cfg.Probe.BackendURL = strings.TrimSpace(*backendURL)
		case "probe-timeout":
			cfg.Probe.Timeout = *probeTimeout
		case "probe-retries":
			cfg.Probe.RetryMax = *probeRetries
		case "shutdown-timeout":
			cfg.Server.ShutdownTimeout = *shutdownTimeout
		}
	})

	if err := log.SetLevel(cfg.Log.Level); err != nil {
		log.Fatal().Err(err).Str("level", cfg.Log.Level).Msg("Invalid log level")
	}
	if *debug {
		log.SetDebugMode()
		log.Debug().Msg("Debug mode enabled")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	client, err := probe.New(cfg.Probe.BackendURL, probe.Options{
		Timeout:      cfg.Probe.Timeout,
		RetryMax:     cfg.Probe.RetryMax,
		RetryWaitMin: cfg.Probe.RetryWaitMin,
		RetryWaitMax: cfg.Probe.RetryWaitMax,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create health check client")
	}

	log.Info().
		Str("backend", client.URL()).
		Dur("probe_timeout", cfg.Probe.Timeout).
		Int("probe_retries", cfg.Probe.RetryMax).
		Msg("Configured backend health check")

	statusServer := server.NewStatusServer(page.New(client), strings.TrimSpace(Version), cfg.Server.ShutdownTimeout)
	if err := statusServer.Start(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}

	os.Exit(0)
}
