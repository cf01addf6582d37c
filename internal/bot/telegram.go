package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's cap on a single message's text.
const maxMessageLength = 4096

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, snapshots SnapshotReader) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(snapshots),
		chatID:  chatID,
	}, nil
}

// Start answers commands until ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			slog.Info("Handling command", "command", update.Message.Command(), "chat_id", update.Message.Chat.ID)
			if err := t.send(t.handler.HandleCommand(update)); err != nil {
				slog.Error("Error sending message", "chat_id", update.Message.Chat.ID, "error", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// SendMessage posts Markdown text to the configured chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if err := t.send(msg); err != nil {
		slog.Error("Error sending message", "chat_id", t.chatID, "error", err)
		return err
	}
	return nil
}

// send delivers msg, split into several messages when the text is too long.
func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	for _, part := range splitMessage(msg.Text, maxMessageLength) {
		msg.Text = part
		if _, err := t.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// splitMessage cuts text on line boundaries into pieces of at most limit
// runes. A single line longer than limit is cut mid-line.
func splitMessage(text string, limit int) []string {
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var parts []string
	var sb strings.Builder
	n := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		l := utf8.RuneCountInString(line)
		if n > 0 && n+l > limit {
			parts = append(parts, sb.String())
			sb.Reset()
			n = 0
		}
		for l > limit {
			r := []rune(line)
			parts = append(parts, string(r[:limit]))
			line = string(r[limit:])
			l -= limit
		}
		sb.WriteString(line)
		n += l
	}
	if n > 0 {
		parts = append(parts, sb.String())
	}
	return parts
}
