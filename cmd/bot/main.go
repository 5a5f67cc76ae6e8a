package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/config"
	"sefariabot/internal/bot"
	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/clients/openrouter"
	"sefariabot/internal/clients/sefaria"
	"sefariabot/internal/holiday"
	"sefariabot/internal/router"
	"sefariabot/internal/scheduler"
	"sefariabot/internal/service"
	"sefariabot/internal/storage"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if cfg.TelegramToken == "" {
		logrus.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		logrus.Fatalf("Failed to init storage: %v", err)
	}
	defer store.Close()

	hebcalClient := hebcal.NewClient(cfg.HebcalLang)
	sefariaClient := sefaria.NewClient()
	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)

	bridge := calendar.NewBridge(storage.NewCachedConverter(hebcalClient, store))

	chat := service.NewChatService(
		router.New(llm),
		bridge,
		holiday.NewResolver(hebcalClient),
		llm,
		sefariaClient,
		hebcalClient,
		func() time.Time { return time.Now().In(cfg.Timezone) },
	)

	tgBot, err := bot.New(cfg, chat, store)
	if err != nil {
		logrus.Fatalf("Failed to init bot: %v", err)
	}

	if cfg.WebhookURL != "" {
		if err := tgBot.SetupWebhook(); err != nil {
			logrus.Fatalf("Failed to setup webhook: %v", err)
		}
	}

	sched := scheduler.New(cfg, store, bridge, hebcalClient)
	sched.SetSender(tgBot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := sched.Start(ctx); err != nil {
			logrus.Errorf("Scheduler error: %v", err)
		}
	}()

	go func() {
		if err := tgBot.Start(ctx); err != nil {
			logrus.Errorf("Bot error: %v", err)
		}
	}()

	logrus.Info("SefariaBot started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logrus.Info("Shutting down...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := tgBot.Stop(shutdownCtx); err != nil {
		logrus.Errorf("Error stopping bot: %v", err)
	}

	logrus.Info("SefariaBot stopped")
}
