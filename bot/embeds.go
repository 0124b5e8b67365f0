package bot

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"pointsbot/models"
	"pointsbot/service"

	"github.com/bwmarrin/discordgo"
)

// embedColor is the accent color used on every embed
const embedColor = 0x3498db

func descriptionEmbed(description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Color:       embedColor,
		Description: description,
	}
}

// sendEmbed sends a confirmation embed; failures are logged and
// otherwise swallowed
func (b *Bot) sendEmbed(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Errorf("Failed to send embed: %v", err)
	}
}

// replyText sends a corrective reply to the triggering message
func (b *Bot) replyText(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		log.Errorf("Failed to send reply: %v", err)
	}
}

// medal returns the leaderboard rank marker: medals for the podium,
// plain rank numbers below it
func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// formatLeaderboard renders leaderboard rows as mention + metric lines
func formatLeaderboard(users []*models.User, kind service.LeaderboardKind) string {
	var sb strings.Builder
	for i, user := range users {
		value := user.ChatMessages
		if kind == service.LeaderboardVoice {
			value = user.VoiceMinutes
		}
		fmt.Fprintf(&sb, "%s — <@%s> • %d\n", medal(i+1), user.UserID, value)
	}
	return sb.String()
}

// formatProfile renders the record summary shown by the user command
func formatProfile(name string, user *models.User) string {
	return fmt.Sprintf("**%s**\nPoints: %d\nChat messages: %d\nVC time: %dm\nVC Tier: %s",
		name, user.Points, user.ChatMessages, user.VoiceMinutes, user.VoiceTier)
}
