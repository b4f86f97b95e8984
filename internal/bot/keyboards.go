package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// consultationLabel builds the main-menu consultation button text for the
// configured price.
func (b *Bot) consultationLabel() string {
	return fmt.Sprintf("💫 Расклад с тарологом за %d⭐️", b.cfg.ConsultationPriceStars)
}

// mainMenu builds the main reply keyboard: the reading modes plus the
// consultation offer.
func (b *Bot) mainMenu() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonSingleCard),
			tgbotapi.NewKeyboardButton(buttonThreeCards),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonTwoCards),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(b.consultationLabel()),
		),
	)
}

// webAppKeyboard links the interactive card-picking page. The reply
// keyboard stays in place; this only adds an inline link under the message.
func (b *Bot) webAppKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🧿 Выбрать карты самостоятельно", b.cfg.WebAppURL),
		),
	)
}

// topicKeyboard builds the topic-selection reply keyboard.
func topicKeyboard() tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(topicLayout)+1)
	for _, layoutRow := range topicLayout {
		row := make([]tgbotapi.KeyboardButton, 0, len(layoutRow))
		for _, title := range layoutRow {
			row = append(row, tgbotapi.NewKeyboardButton(title))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(buttonBackToMenu),
	))
	return tgbotapi.NewReplyKeyboard(rows...)
}

// consultationKeyboard builds the inline buy button.
func (b *Bot) consultationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Получить консультацию за %d⭐️", b.cfg.ConsultationPriceStars),
				callbackBuyConsultation,
			),
		),
	)
}

// consultationLinkKeyboard builds the post-payment link to the consultation
// chat.
func (b *Bot) consultationLinkKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Перейти к консультации", b.cfg.ConsultationURL),
		),
	)
}
