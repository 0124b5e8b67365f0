package bot

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

// parseCommand splits a prefixed message into a lowered command token
// and its arguments. Returns ok=false for messages without the prefix.
func parseCommand(content, prefix string) (string, []string, bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}

	return strings.ToLower(fields[0]), fields[1:], true
}

// handleMessageCreate is the single entry point for chat traffic: it
// applies the guild and bot guards, grants the cooldown-gated chat
// point, then dispatches prefixed commands. Unmatched tokens are
// ignored silently.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.GuildID != b.config.GuildID || m.Author.Bot {
		return
	}

	ctx := context.Background()

	// Chat grant runs before command parsing, so command messages earn
	// the point too
	if _, _, err := b.activityService.RecordChatActivity(ctx, m.Author.ID); err != nil {
		log.Errorf("Failed to record chat activity for %s: %v", m.Author.ID, err)
	}

	command, args, ok := parseCommand(m.Content, b.config.Prefix)
	if !ok {
		return
	}

	switch command {
	case "ban":
		b.handleBan(ctx, s, m, args)
	case "kick":
		b.handleKick(ctx, s, m, args)
	case "mute":
		b.handleMute(ctx, s, m, args)
	case "points":
		b.handlePoints(ctx, s, m)
	case "daily":
		b.handleDaily(ctx, s, m)
	case "monthly":
		b.handleMonthly(ctx, s, m)
	case "user":
		b.handleUser(ctx, s, m)
	case "server":
		b.handleServer(ctx, s, m)
	case "banner":
		b.handleBanner(ctx, s, m)
	case "gamble", "casino":
		b.handleGamble(ctx, s, m, args)
	case "lb", "leaderboard":
		b.handleLeaderboard(ctx, s, m, args)
	}
}
