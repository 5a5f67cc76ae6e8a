package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"sefariabot/config"
	"sefariabot/internal/calendar"
	"sefariabot/internal/clients/hebcal"
	"sefariabot/internal/clients/openrouter"
	"sefariabot/internal/clients/sefaria"
	"sefariabot/internal/holiday"
	"sefariabot/internal/router"
	"sefariabot/internal/service"
	"sefariabot/internal/web"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	hebcalClient := hebcal.NewClient(cfg.HebcalLang)
	sefariaClient := sefaria.NewClient()
	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)

	chat := service.NewChatService(
		router.New(llm),
		calendar.NewBridge(hebcalClient),
		holiday.NewResolver(hebcalClient),
		llm,
		sefariaClient,
		hebcalClient,
		func() time.Time { return time.Now().In(cfg.Timezone) },
	)

	server := web.NewServer(cfg.ServerPort, chat, sefariaClient)

	go func() {
		if err := server.Start(); err != nil {
			logrus.Fatalf("HTTP server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logrus.Errorf("Error stopping server: %v", err)
	}
}
