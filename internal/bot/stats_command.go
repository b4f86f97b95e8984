package bot

import (
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	apperrors "github.com/nimixiss/tarobot/internal/errors"
)

// handleStatsCommand serves the admin /stats command. Arguments:
// none or "today" for today's counters, "yesterday" for the previous day,
// "export" for the CSV artifact, or an explicit YYYY-MM-DD date.
func (b *Bot) handleStatsCommand(m *tgbotapi.Message) {
	if !b.isAdmin(m.From.ID) {
		b.sendText(m.Chat.ID, msgAdminsOnly)
		return
	}

	arg := strings.ToLower(strings.TrimSpace(m.CommandArguments()))
	today := time.Now().UTC()

	switch arg {
	case "", "today", "сегодня":
		b.sendDailyStats(m.Chat.ID, today.Format("2006-01-02"))
	case "yesterday", "вчера":
		b.sendDailyStats(m.Chat.ID, today.AddDate(0, 0, -1).Format("2006-01-02"))
	case "export", "csv", "выгрузка":
		b.sendStatsExport(m.Chat.ID)
	default:
		date, err := time.Parse("2006-01-02", arg)
		if err != nil {
			b.sendText(m.Chat.ID, msgBadStatsDate)
			return
		}
		b.sendDailyStats(m.Chat.ID, date.Format("2006-01-02"))
	}
}

// sendDailyStats replies with one day's counter summary.
func (b *Bot) sendDailyStats(chatID int64, date string) {
	b.sendText(chatID, formatDailyStats(date, b.stats.Get(date)))
}

// sendStatsExport replies with the CSV document and per-event totals.
func (b *Bot) sendStatsExport(chatID int64) {
	export, err := b.stats.ExportCSV()
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			b.sendText(chatID, msgNothingExport)
			return
		}
		b.log.Warn().Err(err).Msg("stats export failed")
		b.sendText(chatID, msgNothingExport)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  export.Filename,
		Bytes: export.Data,
	})
	doc.Caption = formatExportCaption(export.Filename, export.Totals)
	b.send(doc)
}
