package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"assassins/internal/agent"
	"assassins/internal/app"
	"assassins/internal/config"
	"assassins/internal/event"
	"assassins/internal/game"
	"assassins/internal/observe"
	"assassins/internal/transcript"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config error", "error", err)
		return 1
	}

	players := flag.Int("players", cfg.Game.Players, "number of players (5-20)")
	seed := flag.Int64("seed", cfg.Game.Seed, "random seed (0 = random)")
	delay := flag.Duration("delay", cfg.Game.Delay, "pause between phases")
	gameFile := flag.String("game-file", cfg.Game.GameFile, "YAML cast sheet")
	transcriptPath := flag.String("transcript", cfg.Game.TranscriptPath, "SQLite transcript path")
	observeFeed := flag.Bool("observe", cfg.Observe.Enabled, "serve the spectator WebSocket feed")
	scripted := flag.Bool("scripted", cfg.Game.Scripted, "use scripted agents instead of the LLM")
	chaos := flag.Bool("chaos", false, "force every event modifier on")

	forcedEvents := make(map[string]bool)
	eventFlags := make(map[string]*bool)
	for _, name := range []string{
		"zombie", "ghost", "sleepwalker", "insomniac", "gun_nut",
		"suicidal", "drunk", "jester", "priest", "lovers", "bodyguard",
	} {
		eventFlags[name] = flag.Bool(strings.ReplaceAll(name, "_", "-"), false, "force the "+name+" event on")
	}
	flag.Parse()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	for name, on := range eventFlags {
		if *on || *chaos {
			forcedEvents[name] = true
		}
	}

	if *seed == 0 {
		*seed = game.NewSeed()
	}
	rng := game.NewRand(*seed)
	logger.Info("starting assassins", "seed", *seed, "players", *players)

	cast := config.DefaultCast(*players)
	if *gameFile != "" {
		gf, err := config.LoadGameFile(*gameFile)
		if err != nil {
			logger.Error("game file error", "error", err)
			return 1
		}
		cast = gf.Players
		for _, name := range gf.Events {
			forcedEvents[name] = true
		}
	}

	st, err := game.CreateGame(cast, rng, logger)
	if err != nil {
		logger.Error("setup error", "error", err)
		return 1
	}

	registry := event.NewRegistry(rng, logger)
	if err := registry.Activate(st, forcedEvents); err != nil {
		logger.Error("event setup error", "error", err)
		return 1
	}

	agents := buildAgents(cfg, st, *scripted, logger)
	g := app.New(st, registry, agents, logger)
	g.Delay = *delay

	if *transcriptPath != "" {
		store, err := transcript.Open(*transcriptPath)
		if err != nil {
			logger.Error("transcript error", "error", err)
			return 1
		}
		defer store.Close()
		g.SetRecorder(store)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *observeFeed {
		hub := observe.NewHub(logger)
		hub.Start(ctx, cfg.Observe.Addr)
		g.Observer = hub
	}

	if err := g.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("game interrupted")
			return 0
		}
		logger.Error("game error", "error", err)
		return 1
	}
	return 0
}

// buildAgents wires one agent per player: scripted stand-ins for
// deterministic runs, otherwise the LLM-backed agents.
func buildAgents(cfg *config.Config, st *game.State, scripted bool, logger *slog.Logger) map[string]agent.Agent {
	agents := make(map[string]agent.Agent, len(st.Players))
	for _, name := range st.Order {
		p := st.Players[name]
		if scripted || cfg.OpenAI.APIKey == "" {
			if !scripted {
				logger.Warn("OPENAI_API_KEY not set, falling back to scripted agents")
				scripted = true
			}
			agents[name] = agent.NewScriptedAgent(nil, nil)
			continue
		}
		agents[name] = agent.NewOpenAIAgent(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.BaseURL,
			cfg.OpenAI.Model,
			app.SystemPrompt(p, st.Order),
		)
	}
	return agents
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Logging.Level)}
	if cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
