package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"pantherasmp/clients"
	"pantherasmp/clients/claude"
	"pantherasmp/clients/gemini"
	"pantherasmp/clients/world"
	"pantherasmp/config"
	"pantherasmp/core/log"
	"pantherasmp/handlers"
	"pantherasmp/middleware"
	"pantherasmp/services/advisor"
	"pantherasmp/services/classifier"
	"pantherasmp/usecases/bot"
	"pantherasmp/usecases/connection"
	"pantherasmp/utils"
)

type Options struct {
	Verbose bool `short:"v" long:"verbose" description:"Enable debug logging"`
	NoLock  bool `long:"no-lock" description:"Allow more than one process for the same bot name"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.SetLevel(slog.LevelInfo)
	if opts.Verbose {
		log.SetLevel(slog.LevelDebug)
	}

	if err := run(opts); err != nil {
		log.Error("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadBotConfig()
	if err != nil {
		return err
	}

	if !opts.NoLock {
		lock, err := utils.NewInstanceLock("", cfg.BotName)
		if err != nil {
			return err
		}
		if err := lock.TryLock(); err != nil {
			return err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				log.Warn("⚠️ Failed to release instance lock: %v", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alerter := middleware.NewErrorAlerter(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackAlertConfig.WebhookURL,
		Environment: cfg.Environment,
		AppName:     "pantherbot",
	})
	defer alerter.Wait()

	advisorService := advisor.NewAdvisorService(cfg.BotName, llmProviders(ctx, cfg)...)
	classifierService := classifier.NewClassifierService(advisorService)

	dialer := world.NewBridgeDialer(cfg.BridgeURL, cfg.ConnectOptions())
	supervisor := connection.NewSupervisor(dialer, cfg.ReconnectDelay, bot.NewSession(classifierService, cfg.ActionTimeout, alerter))

	status := handlers.NewStatusHandler(fmt.Sprintf("%s alive 🐆", cfg.BotName), nil)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(status, cfg.CORSAllowedOrigins, alerter),
		ReadHeaderTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handlers.ListenAndServe(gctx, server)
	})
	g.Go(alerter.WrapBackgroundTask("world supervisor", func() error {
		return supervisor.Run(gctx)
	}))
	return g.Wait()
}

// llmProviders returns the configured advisor backends in priority order.
func llmProviders(ctx context.Context, cfg *config.BotConfig) []clients.LLMClient {
	var providers []clients.LLMClient

	if cfg.GeminiConfig.IsConfigured() {
		client, err := gemini.NewClient(ctx, cfg.GeminiConfig.APIKey, cfg.GeminiConfig.Model)
		if err != nil {
			log.Error("❌ Gemini advisor unavailable: %v", err)
		} else {
			log.Info("✅ Gemini AI loaded")
			providers = append(providers, client)
		}
	}

	if cfg.AnthropicConfig.IsConfigured() {
		client, err := claude.NewClient(cfg.AnthropicConfig.APIKey, cfg.AnthropicConfig.Model)
		if err != nil {
			log.Error("❌ Claude advisor unavailable: %v", err)
		} else {
			log.Info("✅ Claude advisor loaded")
			providers = append(providers, client)
		}
	}

	return providers
}
