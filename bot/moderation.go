package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/bwmarrin/discordgo"
)

const defaultMuteDuration = 10 * time.Minute

// hasPermission reports whether the message author holds the given
// permission in the channel. Errors count as no permission.
func (b *Bot) hasPermission(s *discordgo.Session, m *discordgo.MessageCreate, permission int64) bool {
	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.Errorf("Failed to resolve permissions for %s: %v", m.Author.ID, err)
		return false
	}
	return perms&permission != 0
}

// mentionedUser returns the first mentioned user, or nil
func mentionedUser(m *discordgo.MessageCreate) *discordgo.User {
	if len(m.Mentions) == 0 {
		return nil
	}
	return m.Mentions[0]
}

// reasonFrom joins the arguments after the mention into a reason string
func reasonFrom(args []string) string {
	if len(args) < 2 {
		return "No reason provided"
	}
	return strings.Join(args[1:], " ")
}

// Moderation commands no-op silently when the author lacks the
// required permission. The confirmation embed is only sent after the
// gateway action resolves without error.

func (b *Bot) handleBan(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.hasPermission(s, m, discordgo.PermissionBanMembers) {
		return
	}

	target := mentionedUser(m)
	if target == nil {
		b.replyText(s, m, "Mention a user to ban.")
		return
	}
	reason := reasonFrom(args)

	if err := s.GuildBanCreateWithReason(m.GuildID, target.ID, reason, 0); err != nil {
		log.Errorf("Failed to ban %s: %v", target.ID, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(
		fmt.Sprintf("**%s** was banned for %s.", target.String(), reason)))
}

func (b *Bot) handleKick(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.hasPermission(s, m, discordgo.PermissionKickMembers) {
		return
	}

	target := mentionedUser(m)
	if target == nil {
		b.replyText(s, m, "Mention a user to kick.")
		return
	}
	reason := reasonFrom(args)

	if err := s.GuildMemberDeleteWithReason(m.GuildID, target.ID, reason); err != nil {
		log.Errorf("Failed to kick %s: %v", target.ID, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(
		fmt.Sprintf("**%s** was kicked for %s.", target.String(), reason)))
}

func (b *Bot) handleMute(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if !b.hasPermission(s, m, discordgo.PermissionVoiceMuteMembers) {
		return
	}

	target := mentionedUser(m)
	if target == nil {
		b.replyText(s, m, "Mention a user to mute.")
		return
	}

	duration := defaultMuteDuration
	durationText := "10m"
	if len(args) > 1 {
		parsed, err := time.ParseDuration(args[1])
		if err != nil || parsed <= 0 {
			b.replyText(s, m, "Enter a valid duration like 10m.")
			return
		}
		duration = parsed
		durationText = args[1]
	}

	until := time.Now().Add(duration)
	if err := s.GuildMemberTimeout(m.GuildID, target.ID, &until); err != nil {
		log.Errorf("Failed to mute %s: %v", target.ID, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(
		fmt.Sprintf("**%s** was muted for %s.", target.String(), durationText)))
}
