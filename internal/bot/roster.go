package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/raine/telegram-sushi-bot/internal/storage"
	"github.com/rs/zerolog/log"
)

// trackMembers keeps the chat roster up to date from a message: the sender
// and anyone who joined are recorded, anyone who left is forgotten.
func (b *Bot) trackMembers(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if message.From != nil {
		b.recordMember(chatID, message.From)
	}
	for i := range message.NewChatMembers {
		b.recordMember(chatID, &message.NewChatMembers[i])
	}
	if left := message.LeftChatMember; left != nil {
		if err := b.roster.RemoveMember(chatID, left.ID); err != nil {
			log.Error().Err(err).Int64("chatID", chatID).Int64("userID", left.ID).Msg("failed to remove chat member")
		}
	}
}

func (b *Bot) recordMember(chatID int64, user *tgbotapi.User) {
	err := b.roster.UpsertMember(storage.Member{
		ChatID:      chatID,
		UserID:      user.ID,
		DisplayName: displayName(user),
		IsBot:       user.IsBot,
	})
	if err != nil {
		log.Error().Err(err).Int64("chatID", chatID).Int64("userID", user.ID).Msg("failed to record chat member")
	}
}

// displayName prefers the user's full name, then the username.
func displayName(user *tgbotapi.User) string {
	if name := strings.TrimSpace(user.FirstName + " " + user.LastName); name != "" {
		return name
	}
	if user.UserName != "" {
		return user.UserName
	}
	return strconv.FormatInt(user.ID, 10)
}

// humans drops automated accounts from a roster.
func humans(members []storage.Member) []storage.Member {
	var out []storage.Member
	for _, m := range members {
		if !m.IsBot {
			out = append(out, m)
		}
	}
	return out
}
