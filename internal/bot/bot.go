// Package bot wires the conversation surface: inline keyboards walk the
// user through category, platform, language and minimum views, then a
// search runs with a progress message edited in place and results are
// delivered in pages of five.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"viralscout/internal/analytics"
	"viralscout/internal/delivery"
	"viralscout/internal/metrics"
	"viralscout/internal/search"
	"viralscout/internal/session"
	"viralscout/internal/tracking"
)

const defaultLanguage = "en"

// Bot is the Telegram front end over the orchestration engine.
type Bot struct {
	api     *tgbotapi.BotAPI
	orch    *search.Orchestrator
	store   *session.Store
	pages   *delivery.Controller
	tracker *tracking.Tracker
	events  *analytics.Emitter
	log     *zap.Logger
}

// New authenticates against the Telegram API and assembles the bot.
func New(
	token string,
	orch *search.Orchestrator,
	store *session.Store,
	pages *delivery.Controller,
	tracker *tracking.Tracker,
	events *analytics.Emitter,
	log *zap.Logger,
) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("bot: TELEGRAM_BOT_TOKEN is not set")
	}
	if log == nil {
		log = zap.NewNop()
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("bot: authenticate: %w", err)
	}

	return &Bot{
		api:     api,
		orch:    orch,
		store:   store,
		pages:   pages,
		tracker: tracker,
		events:  events,
		log:     log,
	}, nil
}

// Run consumes updates until the context ends. Each inbound action is
// handled on its own goroutine so one chat's search never stalls
// another chat's taps.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("bot running", zap.String("username", b.api.Self.UserName))

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}
	b.store.Upsert(msg.Chat.ID, session.Patch{})
	b.sendKeyboard(msg.Chat.ID, texts.askCategory, categoryKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	data := cq.Data
	b.log.Debug("callback received", zap.Int64("chat", chatID), zap.String("data", data))

	b.clearKeyboard(chatID, cq.Message.MessageID)
	b.answer(cq)

	switch {
	case strings.HasPrefix(data, "cat_"), strings.HasPrefix(data, "sub_"):
		b.handleCategory(chatID, data)
	case strings.HasPrefix(data, "plat_"):
		platform := strings.TrimPrefix(data, "plat_")
		b.store.Upsert(chatID, session.Patch{Platform: &platform})
		b.sendKeyboard(chatID, texts.askLanguage, languageKeyboard())
	case data == "lang_fa" || data == "lang_en":
		lang := strings.TrimPrefix(data, "lang_")
		b.store.Upsert(chatID, session.Patch{Language: &lang})
		b.sendKeyboard(chatID, texts.askMinViews, viewKeyboard())
	case strings.HasPrefix(data, "view_"):
		b.handleMinViews(ctx, chatID, data)
	case data == "next_batch":
		b.handleNextBatch(chatID)
	case data == "stop":
		b.handleStop(chatID, cq)
	}
}

func (b *Bot) handleCategory(chatID int64, data string) {
	b.store.Upsert(chatID, session.Patch{Category: &data})

	switch data {
	case "cat_cream":
		b.sendKeyboard(chatID, texts.chooseCream, creamSubmenu())
	case "cat_cleanser":
		b.sendKeyboard(chatID, texts.chooseCleanser, cleanserSubmenu())
	default:
		b.sendKeyboard(chatID, texts.askPlatform, platformKeyboard())
	}
}

func (b *Bot) handleMinViews(ctx context.Context, chatID int64, data string) {
	minViews, ok := viewMap[data]
	if !ok {
		return
	}

	state := b.store.Upsert(chatID, session.Patch{MinViews: &minViews})
	if state.Category == "" {
		b.sendKeyboard(chatID, texts.askCategory, categoryKeyboard())
		return
	}

	b.runSearch(ctx, chatID, state)
}

// runSearch executes the orchestration for a fully specified session,
// with a progress message edited in place while the job is in flight.
func (b *Bot) runSearch(ctx context.Context, chatID int64, state session.State) {
	keyword := keywordMap[state.Category]
	if keyword == "" {
		keyword = state.Category
	}
	lang := state.Language
	if lang == "" {
		lang = defaultLanguage
	}
	query := search.Query{
		Platform: search.Platform(state.Platform),
		Category: keyword,
		Language: lang,
		MinViews: state.MinViews,
	}
	platform := string(query.Platform)
	if platform == "" {
		platform = string(search.PlatformInstagram)
	}

	progress := b.send(tgbotapi.NewMessage(chatID, texts.searching))
	sink := func(ctx context.Context, stage string) {
		if progress == nil || ctx.Err() != nil {
			return
		}
		b.edit(chatID, progress.MessageID, progressStage(stage))
	}

	b.events.Emit(analytics.Event{
		EventType:  analytics.EventSearchStarted,
		Platform:   platform,
		TelegramID: chatID,
		Keyword:    keyword,
		Language:   lang,
		MinViews:   state.MinViews,
	})

	results := b.orch.SearchWithProgress(ctx, query, sink)

	if progress != nil {
		b.edit(chatID, progress.MessageID, texts.resultsReady)
	}

	status := tracking.StatusSuccess
	if len(results) == 0 {
		status = tracking.StatusNoResults
	}
	b.tracker.Track(tracking.Request{
		UserID:       chatID,
		Platform:     platform,
		Category:     state.Category,
		Language:     lang,
		MinViews:     state.MinViews,
		ResultsCount: len(results),
		Status:       status,
	})
	b.events.Emit(analytics.Event{
		EventType:    analytics.EventResultsReady,
		Platform:     platform,
		TelegramID:   chatID,
		Keyword:      keyword,
		Language:     lang,
		MinViews:     state.MinViews,
		TotalResults: len(results),
	})

	if len(results) == 0 {
		b.send(tgbotapi.NewMessage(chatID, texts.noPosts))
		return
	}

	page := b.pages.FirstPage(chatID, results)
	b.sendPage(chatID, page)
	metrics.PagesDeliveredTotal.WithLabelValues("first").Inc()

	if page.HasMore {
		b.sendKeyboard(chatID, continuePrompt(page.Sent, page.Total), continueKeyboard())
	} else {
		b.send(tgbotapi.NewMessage(chatID, texts.done))
		b.emitFinished(chatID, page)
	}
}

func (b *Bot) handleNextBatch(chatID int64) {
	page, ok := b.pages.NextPage(chatID)
	if !ok {
		// Duplicate or late tap after exhaustion: the terminal notice
		// repeats without touching the session.
		b.send(tgbotapi.NewMessage(chatID, texts.done))
		return
	}

	b.sendPage(chatID, page)
	metrics.PagesDeliveredTotal.WithLabelValues("continuation").Inc()
	b.events.Emit(analytics.Event{
		EventType:    analytics.EventBatchSent,
		Platform:     b.sessionPlatform(chatID),
		TelegramID:   chatID,
		TotalResults: page.Total,
		SentSoFar:    page.Sent,
		Remaining:    page.Total - page.Sent,
	})

	if page.HasMore {
		b.sendKeyboard(chatID, continuePrompt(page.Sent, page.Total), continueKeyboard())
	} else {
		b.send(tgbotapi.NewMessage(chatID, texts.done))
		b.emitFinished(chatID, page)
	}
}

func (b *Bot) handleStop(chatID int64, cq *tgbotapi.CallbackQuery) {
	firstName := ""
	if cq.From != nil {
		firstName = cq.From.FirstName
	}
	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(texts.farewell, firstName)))
	b.events.Emit(analytics.Event{
		EventType:  analytics.EventSearchCancelled,
		Platform:   b.sessionPlatform(chatID),
		TelegramID: chatID,
	})
}

func (b *Bot) emitFinished(chatID int64, page delivery.Page) {
	b.events.Emit(analytics.Event{
		EventType:    analytics.EventSearchFinished,
		Platform:     b.sessionPlatform(chatID),
		TelegramID:   chatID,
		TotalResults: page.Total,
		SentSoFar:    page.Sent,
	})
}

func (b *Bot) sessionPlatform(chatID int64) string {
	if state, ok := b.store.Get(chatID); ok && state.Platform != "" {
		return state.Platform
	}
	return string(search.PlatformInstagram)
}

func (b *Bot) sendPage(chatID int64, page delivery.Page) {
	for i, post := range page.Posts {
		msg := tgbotapi.NewMessage(chatID, formatPost(post, page.Start+i))
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = false
		b.send(msg)
	}
}

func (b *Bot) send(msg tgbotapi.MessageConfig) *tgbotapi.Message {
	sent, err := b.api.Send(msg)
	if err != nil {
		b.log.Warn("send failed", zap.Int64("chat", msg.ChatID), zap.Error(err))
		return nil
	}
	return &sent
}

func (b *Bot) sendKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	b.send(msg)
}

func (b *Bot) edit(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		// Progress edits are cosmetic; a failed edit never matters.
		b.log.Debug("edit failed", zap.Int64("chat", chatID), zap.Error(err))
	}
}

func (b *Bot) clearKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: make([][]tgbotapi.InlineKeyboardButton, 0),
	})
	// Ignored when the message carries no keyboard.
	_, _ = b.api.Send(edit)
}

func (b *Bot) answer(cq *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		b.log.Debug("callback ack failed", zap.Error(err))
	}
}
