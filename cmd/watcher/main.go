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
	"pantherasmp/clients/broadcast"
	"pantherasmp/clients/discord"
	"pantherasmp/clients/world"
	"pantherasmp/config"
	"pantherasmp/core/log"
	"pantherasmp/handlers"
	"pantherasmp/middleware"
	"pantherasmp/services/killfeed"
	"pantherasmp/usecases/connection"
	"pantherasmp/usecases/watcher"
	"pantherasmp/utils"
)

const livenessText = "Panthera Watcher Uplink is Online."

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
	cfg, err := config.LoadWatcherConfig()
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
		AppName:     "watcher",
	})
	defer alerter.Wait()

	hub := broadcast.NewHub()
	defer hub.Close()

	sinks := []clients.KillFeedSink{hub}
	if cfg.DiscordConfig.IsConfigured() {
		channel, err := discord.NewKillFeedChannel(nil, cfg.DiscordConfig.BotToken, cfg.DiscordConfig.ChannelID)
		if err != nil {
			log.Error("❌ Discord kill-feed mirror unavailable: %v", err)
		} else {
			sinks = append(sinks, channel)
		}
	}
	killFeedService := killfeed.NewKillFeedService(sinks...)

	dialer := world.NewBridgeDialer(cfg.BridgeURL, cfg.ConnectOptions())
	supervisor := connection.NewSupervisor(dialer, cfg.ReconnectDelay, watcher.NewSession(killFeedService, alerter))

	status := handlers.NewStatusHandler(livenessText, hub)
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
