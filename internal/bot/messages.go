package bot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nimixiss/tarobot/internal/stats"
	"github.com/nimixiss/tarobot/internal/usage"
)

// Main menu button labels.
const (
	buttonSingleCard = "🃏 Одна карта"
	buttonThreeCards = "🔮 Три карты"
	buttonTwoCards   = "🧿 Две карты"
	buttonBackToMenu = "⬅️ Назад"
)

// topicLayout is the topic-selection keyboard, row by row.
var topicLayout = [][]string{
	{"❤️ Любовь", "💼 Карьера"},
	{"💰 Финансы", "🧘‍♀️ Здоровье"},
	{"🧿 Совет дня"},
}

// topicToKey maps a topic button label to its data key.
var topicToKey = map[string]string{
	"❤️ Любовь":     "love",
	"💼 Карьера":    "career",
	"💰 Финансы":    "finance",
	"🧘‍♀️ Здоровье": "health",
	"🧿 Совет дня":  "advice",
}

const (
	msgWelcome        = "🌙 Привет! Я Таро-бот. Выбери расклад:"
	msgChooseTopic    = "Выбери сферу, о которой хочешь спросить:"
	msgChooseTopic3   = "Выбери сферу для расклада из трёх карт:"
	msgBackToMenu     = "Возвращаемся в главное меню 🌙"
	msgUnknownTopic   = "Я жду выбор одной из сфер: любовь, карьера, финансы, здоровье или совет дня 💫"
	msgNoThreeCards   = "Не удалось подобрать расклад. Попробуй ещё раз чуть позже."
	msgNoCards        = "Ошибка: не удалось получить карты."
	msgNoMeaning      = "❌ Трактовка не найдена. Попробуй ещё раз чуть позже."
	msgMeaningMissing = "Значение не найдено — доверься своей интуиции."
	msgAdminsOnly     = "Команда доступна только администратору."
	msgBadStatsDate   = "Не понял дату. Используй формат ГГГГ-ММ-ДД или команды export/today/yesterday."
	msgNothingExport  = "Выгрузить нечего — нет файлов статистики."
	msgFallbackLabel  = "(Резервное толкование по отдельным картам)"
)

// dailyLimitMessages maps a reading type to its limit-reached text.
var dailyLimitMessages = map[usage.ReadingType]string{
	usage.ReadingSingle: "✨ Вселенная уже ответила тебе сегодня. Приходи завтра, когда " +
		"энергия обновится 🌙",
	usage.ReadingTwoCards: "✨ Сегодня лимит на расклад из двух карт уже исчерпан. Приходи " +
		"завтра за новой энергией 🌙",
	usage.ReadingThreeCards: "✨ Сегодня лимит на расклад из трёх карт уже исчерпан. Приходи " +
		"завтра за новой энергией 🌙",
}

const msgDailyLimitDefault = "✨ На сегодня лимит раскладов исчерпан. Попробуй снова завтра."

// eventLabels translates event names for stats summaries.
var eventLabels = map[string]string{
	stats.EventStart:             "Команда /start",
	stats.EventSingleCardButton:  "Нажатия «Одна карта»",
	stats.EventSingleCardReading: "Расклады на одну карту",
	stats.EventTwoCardsReading:   "Расклады на две карты",
	stats.EventThreeCardsButton:  "Нажатия «Три карты»",
	stats.EventThreeCardsReading: "Расклады на три карты",
}

// eventLabel returns the human label for an event, falling back to the raw
// name for unknown events.
func eventLabel(event string) string {
	if label, ok := eventLabels[event]; ok {
		return label
	}
	return event
}

// formatDailyStats renders one day's counters as a summary message.
func formatDailyStats(date string, counts map[string]int) string {
	if len(counts) == 0 {
		return fmt.Sprintf("За %s пока нет записей.", date)
	}

	events := make([]string, 0, len(counts))
	for event := range counts {
		events = append(events, event)
	}
	sort.Strings(events)

	lines := []string{fmt.Sprintf("📊 Статистика за %s:", date)}
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("• %s: %d", eventLabel(event), counts[event]))
	}
	return strings.Join(lines, "\n")
}

// formatExportCaption renders the caption for the CSV export document.
func formatExportCaption(filename string, totals map[string]int) string {
	lines := []string{fmt.Sprintf("📈 %s готов.", filename)}

	if len(totals) > 0 {
		events := make([]string, 0, len(totals))
		for event := range totals {
			events = append(events, event)
		}
		sort.Strings(events)

		lines = append(lines, "", "Итоги по всем дням:")
		for _, event := range events {
			lines = append(lines, fmt.Sprintf("• %s: %d", eventLabel(event), totals[event]))
		}
	}
	return strings.Join(lines, "\n")
}

// formatSingleCard renders the single-card reading caption.
func formatSingleCard(card, topic, meaning string) string {
	return fmt.Sprintf("🃏 *%s*\nСфера: %s\n_%s_", card, topic, meaning)
}

// formatTwoCards renders the two-card reading message.
func formatTwoCards(card1, card2, meaning string) string {
	return fmt.Sprintf("🧿 *Две карты:*\n\n• %s\n• %s\n\n%s", card1, card2, meaning)
}

// formatThreeCards renders the three-card reading message.
func formatThreeCards(topic string, cards []string, meaning string) string {
	names := make([]string, len(cards))
	for i, card := range cards {
		names[i] = "• " + card
	}
	return fmt.Sprintf("🔮 *Три карты — %s:*\n\n%s\n\n%s", topic, strings.Join(names, "\n"), meaning)
}

// dailyLimitMessage returns the limit text for a reading type.
func dailyLimitMessage(rt usage.ReadingType) string {
	if text, ok := dailyLimitMessages[rt]; ok {
		return text
	}
	return msgDailyLimitDefault
}
