package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/clog"

	"lifecoach/internal/analytics"
	"lifecoach/internal/api"
	"lifecoach/internal/coach"
	"lifecoach/internal/config"
	"lifecoach/internal/llm"
	"lifecoach/internal/memory"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log.Level)

	store := memory.NewFileStore(cfg.Memory.File)
	mem, err := memory.NewManager(store, cfg.Memory.RecentEvents)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Memory init error: %v\n", err)
		os.Exit(1)
	}

	var completer llm.Completer
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		completer = llm.NewClient(
			cfg.Coach.URL,
			apiKey,
			cfg.Coach.Model,
			cfg.Coach.MaxTokens,
			cfg.Coach.Temperature,
			time.Duration(cfg.Coach.TimeoutSeconds)*time.Second,
		)
	} else {
		slog.Warn("OPENAI_API_KEY not set, using fallback responses")
	}

	engine := coach.NewEngine(mem, completer)
	reporter := analytics.NewReporter(mem)

	r := api.SetupRouter(cfg, mem, engine, reporter)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(level string) {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn", "warning":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}

	handler := clog.New(
		clog.WithWriter(os.Stdout),
		clog.WithLevel(lv),
		clog.WithTimeFmt("15:04:05"),
		clog.WithSource(false),
		clog.WithAttrHook(clog.GoerrHook),
	)
	slog.SetDefault(slog.New(handler))
}
