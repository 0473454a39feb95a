package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"recommendi/internal/api"
	"recommendi/internal/config"
	"recommendi/internal/domain"
	"recommendi/internal/eventbus"
	"recommendi/internal/fetcher"
	"recommendi/internal/history"
	"recommendi/internal/nav"
	"recommendi/internal/ui"
)

var version = "dev"

type options struct {
	Server  string `long:"server" short:"s" description:"Recommendation backend base URL"`
	Config  string `long:"config" short:"c" description:"Path to the config file"`
	DataDir string `long:"data-dir" description:"Directory for the session history database"`
	Version bool   `long:"version" short:"V" description:"Print the version and exit"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS]"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Println("recommendi " + version)
		return
	}

	cfg := loadConfig(opts)

	log := openLogger(cfg.LogFile)
	log.Info().Str("version", version).Str("server", cfg.ServerURL).Msg("starting")

	bus := eventbus.New(log)
	defer bus.Close()

	client := api.NewClient(cfg.ServerURL, time.Duration(cfg.UISettings.RequestTimeout)*time.Second)

	store, err := history.Open(cfg.DataDir, bus, client, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open history store")
		fmt.Fprintf(os.Stderr, "Error opening history store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	bridge := nav.NewBridge(store, log)
	fetches := fetcher.NewService(client, log)

	model := ui.NewModel(cfg, client, store, bridge, fetches, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	// Forward domain events into the update loop
	eventChan := make(chan domain.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Warn().Str("type", string(e.Type())).Msg("event channel full, dropping event")
		}
	}
	bus.Subscribe(domain.EventHistoryChanged, forward)
	bus.Subscribe(domain.EventHistoryCleared, forward)
	bus.Subscribe(domain.EventSyncFailed, forward)
	bus.Subscribe(domain.EventError, forward)
	go func() {
		for event := range eventChan {
			p.Send(ui.NewBusEventMsg(event))
		}
	}()

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	// eventChan is left open: the bus dispatcher may still be delivering
	// into forward() until the deferred bus.Close runs, and the process is
	// exiting anyway
	log.Info().Msg("exited")
}

// loadConfig loads the config file, creating a default one on first run,
// and applies command line overrides
func loadConfig(opts options) *config.Config {
	svc := config.NewService()

	var cfg *config.Config
	var err error
	if opts.Config != "" {
		cfg, err = svc.LoadFromPath(opts.Config)
	} else {
		cfg, err = svc.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load config: %v; using defaults\n", err)
		cfg = config.DefaultConfig()
	}

	if opts.Server != "" {
		cfg.ServerURL = opts.Server
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	return cfg
}

// openLogger sets up the file logger. Logging to the terminal would fight
// the alternate screen, so failures fall back to discarding.
func openLogger(path string) zerolog.Logger {
	if path == "" {
		path = "recommendi.log"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil && filepath.Dir(path) != "." {
		return zerolog.Nop()
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(logFile).With().Timestamp().Logger()
}
