package bot

import (
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackBuyConsultation = "buy_consultation"

	// Telegram Stars currency code. One star is one minimal unit.
	starsCurrency = "XTR"

	consultationPayload        = "consultation_stars_100"
	consultationTitle          = "Личная консультация"
	consultationStartParameter = "consultation"

	msgConsultationPaid = "✨ Благодарю за оплату! Чтобы продолжить, напиши в бот @helenatarotbot."
	msgInvoiceFailed    = "Не удалось открыть оплату. Попробуй ещё раз чуть позже."
	msgPaymentRejected  = "Не удалось обработать оплату. Попробуй позже."
)

// sendConsultationOffer upsells the paid consultation.
func (b *Bot) sendConsultationOffer(chatID int64) {
	text := fmt.Sprintf(
		"💫 Хочешь разобрать вопрос глубже? Доступна личная консультация "+
			"с тарологом за %d звёзд Telegram.",
		b.cfg.ConsultationPriceStars,
	)
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.consultationKeyboard()
	b.send(msg)
}

// handleBuyConsultation sends the Stars invoice. For digital services the
// provider token may be empty; Stars payments are allowed without one.
func (b *Bot) handleBuyConsultation(q *tgbotapi.CallbackQuery) {
	if q.Message == nil {
		return
	}

	description := fmt.Sprintf(
		"Оплата консультации с тарологом за %d звёзд Telegram. "+
			"После успешной оплаты ты получишь инструкцию, как продолжить.",
		b.cfg.ConsultationPriceStars,
	)

	invoice := tgbotapi.NewInvoice(
		q.Message.Chat.ID,
		consultationTitle,
		description,
		consultationPayload,
		os.Getenv("STARS_PROVIDER_TOKEN"),
		consultationStartParameter,
		starsCurrency,
		[]tgbotapi.LabeledPrice{
			{Label: "Личная консультация", Amount: b.cfg.ConsultationPriceStars},
		},
	)

	if _, err := b.api.Request(invoice); err != nil {
		b.log.Warn().Err(err).Msg("failed to send invoice")
		alert := tgbotapi.NewCallbackWithAlert(q.ID, msgInvoiceFailed)
		if _, err := b.api.Request(alert); err != nil {
			b.log.Warn().Err(err).Msg("failed to answer callback")
		}
		return
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		b.log.Warn().Err(err).Msg("failed to answer callback")
	}
}

// handlePreCheckout approves the checkout when the payload matches.
func (b *Bot) handlePreCheckout(q *tgbotapi.PreCheckoutQuery) {
	answer := tgbotapi.PreCheckoutConfig{
		PreCheckoutQueryID: q.ID,
		OK:                 q.InvoicePayload == consultationPayload,
	}
	if !answer.OK {
		answer.ErrorMessage = msgPaymentRejected
	}
	if _, err := b.api.Request(answer); err != nil {
		b.log.Warn().Err(err).Msg("failed to answer pre-checkout query")
	}
}

// handleSuccessfulPayment verifies the payment parameters and sends the
// consultation link.
func (b *Bot) handleSuccessfulPayment(m *tgbotapi.Message) {
	payment := m.SuccessfulPayment
	if payment.InvoicePayload != consultationPayload {
		return
	}
	if payment.Currency != starsCurrency || payment.TotalAmount != b.cfg.ConsultationPriceStars {
		b.log.Warn().
			Str("currency", payment.Currency).
			Int("amount", payment.TotalAmount).
			Msg("successful payment with unexpected parameters")
		return
	}

	msg := tgbotapi.NewMessage(m.Chat.ID, msgConsultationPaid)
	msg.ReplyMarkup = b.consultationLinkKeyboard()
	b.send(msg)
}
