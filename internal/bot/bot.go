package bot

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"sefariabot/config"
	"sefariabot/internal/service"
	"sefariabot/internal/storage"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    *config.Config
	chat   *service.ChatService
	store  *storage.Storage
	server *http.Server
	log    *logrus.Entry
}

func New(cfg *config.Config, chat *service.ChatService, store *storage.Storage) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log := logrus.WithField("component", "bot")
	log.WithField("username", api.Self.UserName).Info("authorized")

	bot := &Bot{
		api:   api,
		cfg:   cfg,
		chat:  chat,
		store: store,
		log:   log,
	}

	bot.setCommands()

	return bot, nil
}

func (b *Bot) setCommands() {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Начать работу с ботом"},
		{Command: "help", Description: "Справка и примеры вопросов"},
		{Command: "subscribe", Description: "Утренний дайджест еврейской даты"},
		{Command: "unsubscribe", Description: "Отключить утренний дайджест"},
	}

	cfg := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(cfg); err != nil {
		b.log.WithError(err).Warn("failed to set commands")
	}
}

// SetupWebhook registers the webhook with Telegram. Only used when
// WEBHOOK_URL is configured; otherwise the bot long-polls.
func (b *Bot) SetupWebhook() error {
	webhookURL := b.cfg.WebhookURL + "/bot"

	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("create webhook: %w", err)
	}

	if _, err = b.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}

	info, err := b.api.GetWebhookInfo()
	if err != nil {
		return fmt.Errorf("get webhook info: %w", err)
	}
	if info.LastErrorDate != 0 {
		b.log.WithField("error", info.LastErrorMessage).Warn("webhook last error")
	}

	b.log.WithField("url", webhookURL).Info("webhook set")
	return nil
}

// Start consumes updates until ctx is cancelled. Webhook mode also serves a
// health endpoint on the same port.
func (b *Bot) Start(ctx context.Context) error {
	var updates tgbotapi.UpdatesChannel

	if b.cfg.WebhookURL != "" {
		updates = b.api.ListenForWebhook("/bot")

		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})

		b.server = &http.Server{
			Addr:    ":" + b.cfg.ServerPort,
			Handler: nil, // use DefaultServeMux
		}

		go func() {
			b.log.WithField("port", b.cfg.ServerPort).Info("starting webhook server")
			if err := b.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				b.log.WithError(err).Error("http server error")
			}
		}()
	} else {
		// stale webhooks block getUpdates
		if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
			b.log.WithError(err).Warn("failed to delete webhook")
		}

		u := tgbotapi.NewUpdate(0)
		u.Timeout = 30
		updates = b.api.GetUpdatesChan(u)
		b.log.Info("long polling started")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	if b.server != nil {
		return b.server.Shutdown(ctx)
	}
	return nil
}
