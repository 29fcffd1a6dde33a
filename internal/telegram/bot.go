// Optional Telegram notifier: announces listings that were not seen in
// earlier runs plus a run status line. The scrape itself never depends on
// it.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-hrmos-automation/internal/scraper"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:    api,
		chatID: chatID,
	}, nil
}

func (b *Bot) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

// SendListing posts one new job listing to the configured chat.
func (b *Bot) SendListing(l scraper.JobListing) error {
	msgText := fmt.Sprintf("💼 *%s*\n", b.escapeMarkdown(l.Title))
	msgText += fmt.Sprintf("🔗 [求人を見る](%s)\n", l.URL)
	msgText += fmt.Sprintf("📊 ステータス: %s\n", b.escapeMarkdown(string(l.Status)))
	if l.LastUpdated != "" {
		msgText += fmt.Sprintf("📅 %s\n", b.escapeMarkdown(l.LastUpdated))
	}
	if l.CompanyID != "" {
		msgText += fmt.Sprintf("🏢 企業ID: %s\n", b.escapeMarkdown(l.CompanyID))
	}
	if l.JobID != "" {
		msgText += fmt.Sprintf("🆔 求人ID: %s\n", b.escapeMarkdown(l.JobID))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 求人を見る", l.URL),
		),
	)

	msg := tgbotapi.NewMessage(b.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, fmt.Sprintf("❌ Error: %v", err))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
