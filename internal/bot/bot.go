package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ChiChi812/course-recommendation-bot/internal/config"
	"github.com/ChiChi812/course-recommendation-bot/internal/events"
	"github.com/ChiChi812/course-recommendation-bot/internal/prefs"
	"github.com/ChiChi812/course-recommendation-bot/internal/recommend"
	"github.com/ChiChi812/course-recommendation-bot/internal/telegram"
)

// Bot wires Telegram updates to the recommendation engine. It owns no engine
// state: every query is a pure read, and the only mutable state is the
// per-chat preference store.
type Bot struct {
	TG     *telegram.Client
	Engine *recommend.Engine
	Prefs  *prefs.Store
	Hub    *events.Hub
	Cfg    config.Config
}

const (
	pollBackoffMin = time.Second
	pollBackoffMax = 30 * time.Second
)

// Run long-polls for updates until ctx is cancelled. Each update is handled
// behind a recover wrapper so one bad update never kills the loop. Poll
// failures back off exponentially, honoring Telegram's retry_after hint, so
// a revoked token or an outage never turns into a hot loop.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64
	backoff := pollBackoffMin
	log.Printf("[bot] long-poll loop started")

	for {
		updates, err := b.TG.GetUpdates(ctx, offset, b.Cfg.Telegram.PollSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			delay := backoff
			var apiErr *telegram.APIError
			if errors.As(err, &apiErr) && apiErr.RetryAfter > 0 {
				delay = apiErr.RetryAfter
			}
			log.Printf("[bot] getUpdates error: %v (retrying in %s)", err, delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			if backoff < pollBackoffMax {
				backoff *= 2
			}
			continue
		}
		backoff = pollBackoffMin
		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			b.handleSafely(ctx, u)
		}
	}
}

func (b *Bot) handleSafely(ctx context.Context, u telegram.Update) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("level=error msg=\"panic in update handler\" update_id=%d err=%v", u.UpdateID, rec)
			if chatID := chatOf(u); chatID != 0 {
				_, _ = b.TG.SendMessage(ctx, telegram.SendMessageRequest{
					ChatID: chatID,
					Text:   "Oops, something went wrong. Try again.",
				})
			}
		}
	}()

	switch {
	case u.CallbackQuery != nil:
		b.handleCallback(ctx, u.CallbackQuery)
	case u.Message != nil:
		b.handleMessage(ctx, u.Message)
	}
}

func chatOf(u telegram.Update) int64 {
	if u.Message != nil {
		return u.Message.Chat.ID
	}
	if u.CallbackQuery != nil && u.CallbackQuery.Message != nil {
		return u.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func (b *Bot) handleMessage(ctx context.Context, m *telegram.Message) {
	text := strings.TrimSpace(m.Text)
	if text == "" {
		return
	}

	switch {
	case strings.HasPrefix(text, "/start"):
		b.cmdStart(ctx, m.Chat.ID)
	case strings.HasPrefix(text, "/help"):
		b.cmdHelp(ctx, m.Chat.ID)
	case strings.HasPrefix(text, "/top"):
		b.cmdTop(ctx, m.Chat.ID)
	case strings.HasPrefix(text, "/setprefs"):
		b.cmdSetPrefs(ctx, m.Chat.ID)
	case strings.HasPrefix(text, "/"):
		b.send(ctx, m.Chat.ID, "Unknown command. Try /help.")
	default:
		b.onQuery(ctx, m.Chat.ID, text)
	}
}

func (b *Bot) cmdStart(ctx context.Context, chatID int64) {
	msg := "<b>Hi! I’m your course recommender 🤖</b>\n\n" +
		"Just type what you want to learn, e.g.:\n" +
		"• python for beginners\n" +
		"• data science with python\n\n" +
		"Commands:\n" +
		"/setprefs – set your level & certificate via buttons\n" +
		"/top – show trending courses\n" +
		"/help – quick tips"
	b.sendHTML(ctx, chatID, msg, nil)
}

func (b *Bot) cmdHelp(ctx context.Context, chatID int64) {
	b.send(ctx, chatID,
		"Tips:\n"+
			"• Send a topic (e.g., 'machine learning', 'excel basics').\n"+
			"• Use /setprefs to choose difficulty and certificate type.\n"+
			"• Use /top to see popular picks.")
}

func (b *Bot) cmdTop(ctx context.Context, chatID int64) {
	n := b.Cfg.Telegram.ResultsPerReply
	p := b.Prefs.Get(chatID)

	pool := b.Engine.Trending(2 * n)
	picked := prefs.Apply(pool, p)
	if len(picked) == 0 {
		// nothing matches the saved prefs; show the unfiltered top instead
		picked = pool
	}
	if len(picked) > n {
		picked = picked[:n]
	}

	b.Hub.Publish(events.MakeEvent("", events.TypeTrendingServed, 1,
		map[string]any{"chat_id": chatID, "results": len(picked)}))

	b.send(ctx, chatID, "🔥 Trending courses:")
	for _, c := range picked {
		b.sendHTML(ctx, chatID, formatCourse(c), nil)
	}
}

func (b *Bot) cmdSetPrefs(ctx context.Context, chatID int64) {
	b.sendHTML(ctx, chatID,
		"Step 1 of 3 — choose your preferred <b>difficulty level</b>:",
		levelMenu())
}

func (b *Bot) onQuery(ctx context.Context, chatID int64, text string) {
	n := b.Cfg.Telegram.ResultsPerReply
	p := b.Prefs.Get(chatID)

	// Ask the engine for a larger pool, then post-filter by saved prefs.
	pool := b.Engine.Recommend(text, b.Cfg.Scoring.PoolSize)
	picked := prefs.Apply(pool, p)
	if len(picked) == 0 {
		// fallback: top relevant when nothing survives the pref filter
		picked = pool
	}
	if len(picked) > n {
		picked = picked[:n]
	}

	b.Hub.Publish(events.MakeEvent("", events.TypeQueryServed, 1,
		map[string]any{"chat_id": chatID, "results": len(picked)}))

	if len(picked) == 0 {
		b.send(ctx, chatID, "No courses matched that topic. Try a broader one, e.g. 'python' or 'marketing'.")
		return
	}

	b.send(ctx, chatID, "Here are your recommendations:")
	for _, c := range picked {
		b.sendHTML(ctx, chatID, formatCourse(c), nil)
	}
}

func (b *Bot) handleCallback(ctx context.Context, q *telegram.CallbackQuery) {
	_ = b.TG.AnswerCallbackQuery(ctx, telegram.AnswerCallbackQueryRequest{CallbackQueryID: q.ID})
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID
	msgID := q.Message.MessageID

	switch {
	case strings.HasPrefix(q.Data, cbLevelPrefix):
		level := strings.TrimPrefix(q.Data, cbLevelPrefix)
		b.Prefs.SetDifficulty(chatID, level)
		b.edit(ctx, chatID, msgID,
			fmt.Sprintf("Step 2 of 3 — level set to <b>%s</b>.\nNow pick a <b>certificate type</b>:", escapeHTML(level)),
			certMenu())

	case strings.HasPrefix(q.Data, cbCertPrefix):
		cert := strings.TrimPrefix(q.Data, cbCertPrefix)
		b.Prefs.SetCertificateType(chatID, cert)
		p := b.Prefs.Get(chatID)
		b.edit(ctx, chatID, msgID,
			fmt.Sprintf(
				"Step 3 of 3 — review your choices:\n\n<b>Difficulty:</b> %s\n<b>Certificate:</b> %s\n\n"+
					"You can go back and change anything, or press <b>Save &amp; Close</b>.",
				escapeHTML(orNA(p.Difficulty)), escapeHTML(cert)),
			confirmMenu())

	case q.Data == cbConfirmSave:
		p := b.Prefs.Get(chatID)
		b.Hub.Publish(events.MakeEvent("", events.TypePrefsSaved, 1,
			map[string]any{"chat_id": chatID, "difficulty": p.Difficulty, "certificate_type": p.CertificateType}))
		b.edit(ctx, chatID, msgID,
			fmt.Sprintf(
				"✅ <b>Preferences saved!</b>\n\n<b>Difficulty:</b> %s\n<b>Certificate:</b> %s\n\n"+
					"Now type a topic (e.g., 'data science') or use /top 🔥",
				escapeHTML(orNA(p.Difficulty)), escapeHTML(orNA(p.CertificateType))),
			nil)

	case q.Data == cbBackToCert:
		b.edit(ctx, chatID, msgID,
			"🔙 Back to Step 2 — choose your <b>certificate type</b>:", certMenu())

	case q.Data == cbBackToLevel:
		b.edit(ctx, chatID, msgID,
			"🔙 Back to Step 1 — choose your preferred <b>difficulty level</b>:", levelMenu())

	case q.Data == cbBackHome:
		b.Prefs.Clear(chatID)
		b.edit(ctx, chatID, msgID,
			"❌ Preferences setup cancelled. Use /setprefs to start again.", nil)
	}
}

func (b *Bot) send(ctx context.Context, chatID int64, text string) {
	if _, err := b.TG.SendMessage(ctx, telegram.SendMessageRequest{ChatID: chatID, Text: text}); err != nil {
		log.Printf("[bot] send failed chat=%d: %v", chatID, err)
	}
}

func (b *Bot) sendHTML(ctx context.Context, chatID int64, text string, kb *telegram.InlineKeyboardMarkup) {
	_, err := b.TG.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             "HTML",
		DisableWebPagePreview: true,
		ReplyMarkup:           kb,
	})
	if err != nil {
		log.Printf("[bot] send failed chat=%d: %v", chatID, err)
	}
}

func (b *Bot) edit(ctx context.Context, chatID, msgID int64, text string, kb *telegram.InlineKeyboardMarkup) {
	err := b.TG.EditMessageText(ctx, telegram.EditMessageTextRequest{
		ChatID:      chatID,
		MessageID:   msgID,
		Text:        text,
		ParseMode:   "HTML",
		ReplyMarkup: kb,
	})
	if err != nil {
		log.Printf("[bot] edit failed chat=%d: %v", chatID, err)
	}
}
