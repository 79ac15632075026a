package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/raine/telegram-sushi-bot/internal/assign"
	"github.com/raine/telegram-sushi-bot/internal/menu"
	"github.com/raine/telegram-sushi-bot/internal/storage"
	"github.com/rs/zerolog/log"
)

// BotAPI defines the interface for Telegram bot API operations.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// CatalogSource hands out the current menu catalog.
type CatalogSource interface {
	Catalog() (menu.Catalog, error)
}

// RunHistory reports when the catalog was last rebuilt.
type RunHistory interface {
	LastSuccessfulRun() (*storage.ScrapeRun, error)
}

// Bot handles Telegram updates.
type Bot struct {
	tg      BotAPI
	roster  storage.RosterStore
	catalog CatalogSource
	runs    RunHistory

	// seed returns the random seed for each draw.
	seed func() int64
}

// NewBot creates a new Bot instance. runs may be nil.
func NewBot(tg BotAPI, roster storage.RosterStore, catalog CatalogSource, runs RunHistory) *Bot {
	return &Bot{
		tg:      tg,
		roster:  roster,
		catalog: catalog,
		runs:    runs,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

// HandleUpdate processes one update. It is safe to call concurrently; a
// panic while handling an update is logged and does not escape.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Int64("chatID", message.Chat.ID).Msg("recovered from panic while handling update")
			b.reply(message.Chat.ID, MsgUnexpectedErr)
		}
	}()

	b.trackMembers(message)

	if strings.HasPrefix(message.Text, "/") {
		b.handleCommand(ctx, message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command, _ := parseCommand(message.Text)
	log.Info().Str("command", command).Int64("chatID", message.Chat.ID).Msg("got command")

	switch command {
	case "/start", "/help":
		b.reply(message.Chat.ID, formatReplyText(MsgHelp))
	case "/sushi":
		b.handleSushiCommand(message.Chat.ID)
	case "/menu":
		b.handleMenuCommand(message.Chat.ID)
	}
}

// handleSushiCommand draws one dish for every human in the chat.
func (b *Bot) handleSushiCommand(chatID int64) {
	members, err := b.roster.Members(chatID)
	if err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to list chat members")
		b.reply(chatID, MsgRosterUnavailable)
		return
	}
	participants := humans(members)

	catalog, err := b.catalog.Catalog()
	if err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to load menu catalog")
		b.reply(chatID, MsgCatalogUnavailable)
		return
	}

	ids := make([]string, len(participants))
	for i, p := range participants {
		ids[i] = strconv.FormatInt(p.UserID, 10)
	}

	result, err := assign.Assign(catalog, ids, b.seed())
	if errors.Is(err, assign.ErrEmptyCatalog) {
		log.Warn().Int64("chatID", chatID).Msg("draw requested with empty menu catalog")
		b.reply(chatID, MsgCatalogEmpty)
		return
	}
	if err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to draw menu entries")
		b.reply(chatID, fmt.Sprintf(MsgDrawFailed, err))
		return
	}

	if len(participants) == 0 {
		b.reply(chatID, MsgNoParticipants)
		return
	}

	b.reply(chatID, renderAssignments(participants, result))
}

// renderAssignments formats one "name: dish" line per participant.
func renderAssignments(participants []storage.Member, result assign.Result) string {
	lines := make([]string, 0, len(participants))
	for _, p := range participants {
		entry, ok := result.Lookup(strconv.FormatInt(p.UserID, 10))
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.DisplayName, entry.Name))
	}
	return strings.Join(lines, "\n")
}

// handleMenuCommand shows how many dishes each category holds.
func (b *Bot) handleMenuCommand(chatID int64) {
	catalog, err := b.catalog.Catalog()
	if err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to load menu catalog")
		b.reply(chatID, MsgCatalogUnavailable)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, MsgMenuSummary, len(catalog))
	counts := catalog.CountByCategory()
	for _, c := range menu.Categories {
		fmt.Fprintf(&sb, "\n%s: %d", c.Label(), counts[c])
	}

	if b.runs != nil {
		run, err := b.runs.LastSuccessfulRun()
		if err != nil {
			log.Warn().Err(err).Msg("failed to query last scrape run")
		} else if run != nil {
			sb.WriteString("\n\n")
			fmt.Fprintf(&sb, MsgMenuUpdatedAt, run.FinishedAt.Local().Format("2006-01-02 15:04"))
		}
	}

	b.reply(chatID, sb.String())
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.tg.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Msg("failed to send message")
	}
}

// NewAdminAlert returns a function that reports catalog build failures to
// the admin's chat.
func NewAdminAlert(tg BotAPI, adminID int64) func(err error) {
	return func(err error) {
		msg := tgbotapi.NewMessage(adminID, fmt.Sprintf(MsgBuildFailed, err))
		if _, sendErr := tg.Send(msg); sendErr != nil {
			log.Error().Err(sendErr).Msg("failed to alert admin")
		}
	}
}
