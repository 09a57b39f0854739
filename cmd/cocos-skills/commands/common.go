package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/libovin/cocos-skills/internal/config"
	"github.com/libovin/cocos-skills/internal/editor"
	"github.com/libovin/cocos-skills/internal/eventstore"
	"github.com/libovin/cocos-skills/internal/logfields"
	"github.com/libovin/cocos-skills/internal/metrics"
)

// Global carries state shared by every subcommand, prepared in AfterApply.
type Global struct {
	Config    *config.Config
	ServerURL string
	Registry  *prom.Registry
	Recorder  metrics.Recorder
	// Out receives command output; it defaults to stdout.
	Out io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: ./cocos-skills.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Server  string           `name:"server" help:"Editor HTTP bridge URL (overrides env, config and registry)"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Prefab  PrefabCmd  `cmd:"" help:"Build prefabs and save them into the editor asset database"`
	Exec    ExecCmd    `cmd:"" help:"Send a raw editor message"`
	Health  HealthCmd  `cmd:"" help:"Check the editor bridge"`
	History HistoryCmd `cmd:"" help:"Show recent prefab saves"`
}

// AfterApply runs after flag parsing; sets up logging, configuration and
// metrics once for all subcommands.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	config.LoadEnv()
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	serverURL, source := config.ResolveServerURL(c.Server, cfg)
	slog.Debug("Resolved editor server", logfields.ServerURL(serverURL), slog.String("source", source))

	if g.Out == nil {
		g.Out = os.Stdout
	}
	g.Config = cfg
	g.ServerURL = serverURL
	g.Recorder = metrics.NoopRecorder{}
	if cfg.MetricsFile != "" {
		g.Registry = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(g.Registry)
	}
	return nil
}

// Client returns an editor client configured from the global settings.
func (g *Global) Client() *editor.Client {
	return editor.NewClient(g.ServerURL,
		editor.WithTimeout(g.Config.Timeout),
		editor.WithValidation(g.Config.Validate),
		editor.WithRecorder(g.Recorder),
	)
}

// OpenHistory opens the save history store, or returns nil when history is
// disabled.
func (g *Global) OpenHistory() (eventstore.Store, error) {
	if g.Config == nil || g.Config.HistoryDB == "" {
		return nil, nil
	}
	store, err := eventstore.NewSQLiteStore(g.Config.HistoryDB)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Close flushes metrics to the configured textfile.
func (g *Global) Close() {
	if g.Registry == nil || g.Config == nil || g.Config.MetricsFile == "" {
		return
	}
	if err := metrics.WriteTextfile(g.Config.MetricsFile, g.Registry); err != nil {
		slog.Warn("Failed to write metrics file", logfields.Path(g.Config.MetricsFile), logfields.Error(err))
	}
}

// requestContext bounds one-shot commands.
func (g *Global) requestContext() (context.Context, context.CancelFunc) {
	timeout := editor.DefaultTimeout
	if g.Config != nil && g.Config.Timeout > 0 {
		timeout = g.Config.Timeout
	}
	// Save issues three requests in sequence.
	return context.WithTimeout(context.Background(), 3*timeout+time.Second)
}
