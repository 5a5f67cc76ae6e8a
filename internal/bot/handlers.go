package bot

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's hard limit per message.
const maxMessageLength = 4096

// queryTimeout bounds one query end to end, including the model call.
const queryTimeout = 90 * time.Second

const startMessage = `Шалом! Я отвечаю на вопросы о еврейских текстах, традициях и календаре.

Спросите меня, например:
• Когда будет Песах?
• Какое сегодня число по еврейскому календарю?
• 15 июля какой день по еврейски?
• 5 сиван конвертируй в григорианский
• Что такое шаббат?`

const helpMessage = `Я понимаю вопросы на русском языке о:

<b>Календаре</b>
• сегодняшняя и завтрашняя еврейская дата
• даты праздников и сколько дней до них осталось
• конвертация дат между григорианским и еврейским календарями
• разница между двумя датами

<b>Текстах и традициях</b>
• источники, законы, комментарии
• объяснение понятий и терминов

Просто напишите вопрос обычным языком.`

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	// typing indicator while the pipeline runs
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.WithError(err).Debug("failed to send typing action")
	}

	queryCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	answer := b.chat.HandleQuery(queryCtx, text)
	if err := b.SendMessage(chatID, answer); err != nil {
		b.log.WithError(err).Error("failed to send answer")
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	var reply string
	switch msg.Command() {
	case "start":
		reply = startMessage
	case "help":
		reply = helpMessage
	case "subscribe":
		if err := b.store.Subscribe(msg.Chat.ID); err != nil {
			b.log.WithError(err).Error("subscribe failed")
			reply = "Не удалось оформить подписку, попробуйте позже."
		} else {
			reply = "Готово! Каждое утро буду присылать еврейскую дату и праздники дня."
		}
	case "unsubscribe":
		if err := b.store.Unsubscribe(msg.Chat.ID); err != nil {
			b.log.WithError(err).Error("unsubscribe failed")
			reply = "Не удалось отключить подписку, попробуйте позже."
		} else {
			reply = "Подписка на утренний дайджест отключена."
		}
	default:
		reply = "Неизвестная команда. Наберите /help для справки."
	}

	if err := b.SendMessage(msg.Chat.ID, reply); err != nil {
		b.log.WithError(err).Error("failed to send command reply")
	}
}

// SendMessage sends text in HTML parse mode, splitting messages over the
// Telegram limit on line boundaries. When Telegram rejects the markup the
// message is retried as plain text so the user still gets an answer.
func (b *Bot) SendMessage(chatID int64, text string) error {
	for _, part := range splitMessage(text, maxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Send(msg); err != nil {
			b.log.WithError(err).Warn("html send failed, retrying as plain text")
			plain := tgbotapi.NewMessage(chatID, part)
			if _, err := b.api.Send(plain); err != nil {
				return err
			}
		}
	}
	return nil
}

// splitMessage cuts text into chunks of at most limit bytes, preferring
// newline boundaries so tags and sentences stay intact.
func splitMessage(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var parts []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}
