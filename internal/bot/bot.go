// Package bot is the Telegram gateway: it wires chat updates to the content
// and state components. The components have no knowledge of the transport;
// everything they need is injected here.
package bot

import (
	"context"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/nimixiss/tarobot/internal/combos"
	"github.com/nimixiss/tarobot/internal/config"
	"github.com/nimixiss/tarobot/internal/deck"
	"github.com/nimixiss/tarobot/internal/stats"
	"github.com/nimixiss/tarobot/internal/usage"
)

// Bot handles Telegram updates over long polling.
type Bot struct {
	api   *tgbotapi.BotAPI
	cfg   *config.Config
	log   zerolog.Logger
	deck  *deck.Deck
	cards *deck.Cycler
	two   *combos.TwoCardTable
	three *combos.ThreeCardSet
	usage *usage.Limiter
	stats *stats.Store

	// pending tracks which chats were shown the topic keyboard and for
	// which reading type, so the next message is routed to the topic step.
	mu      sync.Mutex
	pending map[int64]usage.ReadingType
}

// Deps bundles the injected state and content components.
type Deps struct {
	Deck    *deck.Deck
	TwoCard *combos.TwoCardTable
	Three   *combos.ThreeCardSet
	Usage   *usage.Limiter
	Stats   *stats.Store
}

// New authorizes against the Bot API and builds the gateway.
func New(token string, cfg *config.Config, d Deps, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization: %w", err)
	}
	log.Info().Str("username", api.Self.UserName).Msg("authorized on Telegram")

	return &Bot{
		api:     api,
		cfg:     cfg,
		log:     log,
		deck:    d.Deck,
		cards:   deck.NewCycler(d.Deck),
		two:     d.TwoCard,
		three:   d.Three,
		usage:   d.Usage,
		stats:   d.Stats,
		pending: make(map[int64]usage.ReadingType),
	}, nil
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		b.handleUpdate(update)
	}
	return ctx.Err()
}

// handleUpdate dispatches one update. A panicking handler is logged and the
// loop keeps running.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Any("panic", r).Msg("handler panicked")
		}
	}()

	switch {
	case update.PreCheckoutQuery != nil:
		b.handlePreCheckout(update.PreCheckoutQuery)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

// handleMessage routes an inbound chat message.
func (b *Bot) handleMessage(m *tgbotapi.Message) {
	if m.From == nil {
		return
	}

	if m.SuccessfulPayment != nil {
		b.handleSuccessfulPayment(m)
		return
	}

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			b.handleStart(m)
		case "stats":
			b.handleStatsCommand(m)
		}
		return
	}

	switch m.Text {
	case buttonSingleCard:
		b.askSingleCardTopic(m)
		return
	case buttonThreeCards:
		b.askThreeCardsTopic(m)
		return
	case buttonTwoCards:
		b.handleTwoCards(m)
		return
	case b.consultationLabel():
		b.sendConsultationOffer(m.Chat.ID)
		return
	}

	if rt, ok := b.takePending(m.Chat.ID); ok {
		b.handleTopicSelection(m, rt)
	}
}

// handleStart greets the user with the main menu.
func (b *Bot) handleStart(m *tgbotapi.Message) {
	b.stats.Increment(stats.EventStart)
	msg := tgbotapi.NewMessage(m.Chat.ID, msgWelcome)
	msg.ReplyMarkup = b.mainMenu()
	b.send(msg)
}

// handleCallback routes inline button presses.
func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) {
	if q.Data == callbackBuyConsultation {
		b.handleBuyConsultation(q)
	}
}

// isAdmin reports whether the user id is the configured admin. A zero
// configured id disables admin features.
func (b *Bot) isAdmin(userID int64) bool {
	return b.cfg.AdminID != 0 && userID == b.cfg.AdminID
}

// setPending records that the chat's next message selects a topic.
func (b *Bot) setPending(chatID int64, rt usage.ReadingType) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[chatID] = rt
}

// takePending removes and returns the chat's pending topic step, if any.
func (b *Bot) takePending(chatID int64) (usage.ReadingType, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rt, ok := b.pending[chatID]
	if ok {
		delete(b.pending, chatID)
	}
	return rt, ok
}

// sendText sends a plain text message with no keyboard change.
func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// sendMenuText sends a text message that restores the main menu keyboard.
func (b *Bot) sendMenuText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = b.mainMenu()
	b.send(msg)
}

// send delivers a prepared message, logging delivery failures.
func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Warn().Err(err).Msg("failed to send message")
	}
}

// sendDailyLimit tells the user the limit is reached and offers the paid
// consultation instead.
func (b *Bot) sendDailyLimit(chatID int64, rt usage.ReadingType) {
	b.sendText(chatID, dailyLimitMessage(rt))
	b.sendConsultationOffer(chatID)
}
