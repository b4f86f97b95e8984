package bot

import (
	"os"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/nimixiss/tarobot/internal/stats"
	"github.com/nimixiss/tarobot/internal/usage"
)

// askSingleCardTopic starts the single-card flow: limit gate, then the
// topic keyboard.
func (b *Bot) askSingleCardTopic(m *tgbotapi.Message) {
	b.stats.Increment(stats.EventSingleCardButton)
	userID := m.From.ID

	if !b.isAdmin(userID) && b.usage.HasUsedToday(userID, usage.ReadingSingle) {
		b.sendDailyLimit(m.Chat.ID, usage.ReadingSingle)
		return
	}

	msg := tgbotapi.NewMessage(m.Chat.ID, msgChooseTopic)
	msg.ReplyMarkup = topicKeyboard()
	b.send(msg)
	b.setPending(m.Chat.ID, usage.ReadingSingle)
}

// askThreeCardsTopic starts the three-card flow.
func (b *Bot) askThreeCardsTopic(m *tgbotapi.Message) {
	b.stats.Increment(stats.EventThreeCardsButton)
	userID := m.From.ID

	if !b.isAdmin(userID) && b.usage.HasUsedToday(userID, usage.ReadingThreeCards) {
		b.sendDailyLimit(m.Chat.ID, usage.ReadingThreeCards)
		return
	}

	msg := tgbotapi.NewMessage(m.Chat.ID, msgChooseTopic3)
	msg.ReplyMarkup = topicKeyboard()
	b.send(msg)
	b.setPending(m.Chat.ID, usage.ReadingThreeCards)
}

// handleTopicSelection consumes the message following a topic keyboard.
func (b *Bot) handleTopicSelection(m *tgbotapi.Message, rt usage.ReadingType) {
	topic := m.Text

	if topic == buttonBackToMenu {
		b.sendMenuText(m.Chat.ID, msgBackToMenu)
		return
	}

	topicKey, known := topicToKey[topic]
	if !known {
		if rt == usage.ReadingThreeCards {
			// Re-prompt and keep waiting for a valid topic.
			msg := tgbotapi.NewMessage(m.Chat.ID, msgUnknownTopic)
			msg.ReplyMarkup = topicKeyboard()
			b.send(msg)
			b.setPending(m.Chat.ID, rt)
			return
		}
		b.sendText(m.Chat.ID, msgUnknownTopic)
		return
	}

	switch rt {
	case usage.ReadingSingle:
		b.sendSingleCard(m, topic, topicKey)
	case usage.ReadingThreeCards:
		b.sendThreeCards(m, topic, topicKey)
	}
}

// sendSingleCard draws a card, marks usage and replies with the card image
// when the asset exists.
func (b *Bot) sendSingleCard(m *tgbotapi.Message, topic, topicKey string) {
	userID := m.From.ID

	card, ok := b.cards.Draw()
	if !ok {
		b.sendMenuText(m.Chat.ID, msgNoCards)
		return
	}

	b.usage.MarkUsedToday(userID, usage.ReadingSingle)
	b.stats.Increment(stats.EventSingleCardReading)

	meaning, ok := b.deck.RandomTopicMeaning(card, topicKey)
	if !ok {
		meaning = msgMeaningMissing
	}

	caption := formatSingleCard(card, topic, meaning)
	imagePath := b.cfg.ImagePath(card)
	if _, err := os.Stat(imagePath); err == nil {
		photo := tgbotapi.NewPhoto(m.Chat.ID, tgbotapi.FilePath(imagePath))
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeMarkdown
		photo.ReplyMarkup = b.mainMenu()
		b.send(photo)
	} else {
		msg := tgbotapi.NewMessage(m.Chat.ID, caption)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = b.mainMenu()
		b.send(msg)
	}

	if !b.isAdmin(userID) {
		b.sendConsultationOffer(m.Chat.ID)
	}
}

// sendThreeCards selects a topic combination and replies with it.
func (b *Bot) sendThreeCards(m *tgbotapi.Message, topic, topicKey string) {
	userID := m.From.ID

	// The limit is re-checked here: the topic prompt may sit unanswered
	// while another reading consumes today's allowance.
	if !b.isAdmin(userID) && b.usage.HasUsedToday(userID, usage.ReadingThreeCards) {
		b.sendDailyLimit(m.Chat.ID, usage.ReadingThreeCards)
		return
	}

	cards, meaning, ok := b.three.Select(topicKey)
	if !ok {
		b.sendMenuText(m.Chat.ID, msgNoThreeCards)
		return
	}

	b.usage.MarkUsedToday(userID, usage.ReadingThreeCards)
	b.stats.Increment(stats.EventThreeCardsReading)

	msg := tgbotapi.NewMessage(m.Chat.ID, formatThreeCards(topic, cards, meaning))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = b.mainMenu()
	b.send(msg)

	if !b.isAdmin(userID) {
		b.sendConsultationOffer(m.Chat.ID)
	}
}

// handleTwoCards runs the two-card flow: limit gate, draw a distinct pair,
// then read it from the combination table.
func (b *Bot) handleTwoCards(m *tgbotapi.Message) {
	userID := m.From.ID

	if !b.isAdmin(userID) && b.usage.HasUsedToday(userID, usage.ReadingTwoCards) {
		b.sendDailyLimit(m.Chat.ID, usage.ReadingTwoCards)
		return
	}

	card1, card2, ok := b.deck.SamplePair()
	if !ok {
		b.sendMenuText(m.Chat.ID, msgNoCards)
		return
	}

	meaning, ok := b.two.Lookup(card1, card2)
	if !ok {
		// The feed does not cover every pair; fall back to a random covered
		// combination.
		if c1, c2, random, found := b.two.Random(); found {
			card1, card2, meaning, ok = c1, c2, random, true
		}
	}
	if ok {
		b.sendTwoCardReading(m.Chat.ID, userID, card1, card2, meaning)
		return
	}

	// Empty table: the startup fetch failed. Admins get a reserve reading
	// assembled from the cards' own meanings; everyone else a plain miss.
	if !b.isAdmin(userID) {
		b.sendMenuText(m.Chat.ID, msgNoMeaning)
		return
	}
	b.sendTwoCardReading(m.Chat.ID, userID, card1, card2, b.twoCardFallbackMeaning(card1, card2))
}

// twoCardFallbackMeaning builds the reserve reading from per-card meanings.
func (b *Bot) twoCardFallbackMeaning(card1, card2 string) string {
	lines := []string{msgFallbackLabel}
	for _, card := range []string{card1, card2} {
		if meaning, ok := b.deck.RandomMeaning(card); ok {
			lines = append(lines, "• "+card+": "+meaning)
		} else {
			lines = append(lines, "• "+card+": значение не найдено.")
		}
	}
	return strings.Join(lines, "\n")
}

// sendTwoCardReading marks usage, counts the event and replies.
func (b *Bot) sendTwoCardReading(chatID, userID int64, card1, card2, meaning string) {
	b.usage.MarkUsedToday(userID, usage.ReadingTwoCards)
	b.stats.Increment(stats.EventTwoCardsReading)

	msg := tgbotapi.NewMessage(chatID, formatTwoCards(card1, card2, meaning))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if b.cfg.WebAppURL != "" {
		msg.ReplyMarkup = b.webAppKeyboard()
	}
	b.send(msg)

	if !b.isAdmin(userID) {
		b.sendConsultationOffer(chatID)
	}
}
