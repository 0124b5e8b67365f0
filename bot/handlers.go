package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"

	"pointsbot/service"

	"github.com/bwmarrin/discordgo"
)

// handleServiceError maps validation failures to corrective replies.
// Anything else is a persistence failure: it is logged and the user
// gets no confirmation.
func (b *Bot) handleServiceError(s *discordgo.Session, m *discordgo.MessageCreate, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidBet):
		b.replyText(s, m, "Enter a valid bet.")
	case errors.Is(err, service.ErrInsufficientPoints):
		b.replyText(s, m, "You don't have enough points.")
	case errors.Is(err, service.ErrDailyNotReady):
		b.replyText(s, m, "You already claimed daily.")
	case errors.Is(err, service.ErrMonthlyNotReady):
		b.replyText(s, m, "You already claimed monthly.")
	default:
		log.Errorf("Command failed for %s: %v", m.Author.ID, err)
	}
}

func (b *Bot) handlePoints(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	user, err := b.userService.GetOrCreateUser(ctx, m.Author.ID)
	if err != nil {
		b.handleServiceError(s, m, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(
		fmt.Sprintf("**%s** has %d points.", m.Author.String(), user.Points)))
}

func (b *Bot) handleDaily(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := b.economyService.ClaimDaily(ctx, m.Author.ID); err != nil {
		b.handleServiceError(s, m, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(
		fmt.Sprintf("**%s** claimed %d points!", m.Author.String(), service.DailyReward)))
}

func (b *Bot) handleMonthly(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	if _, err := b.economyService.ClaimMonthly(ctx, m.Author.ID); err != nil {
		b.handleServiceError(s, m, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(
		fmt.Sprintf("**%s** claimed %d monthly points!", m.Author.String(), service.MonthlyReward)))
}

func (b *Bot) handleUser(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	target := m.Author
	if len(m.Mentions) > 0 {
		target = m.Mentions[0]
	}

	user, err := b.userService.GetOrCreateUser(ctx, target.ID)
	if err != nil {
		b.handleServiceError(s, m, err)
		return
	}

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(formatProfile(target.String(), user)))
}

func (b *Bot) handleServer(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	guild, err := s.State.Guild(b.config.GuildID)
	if err != nil {
		guild, err = s.Guild(b.config.GuildID)
		if err != nil {
			log.Errorf("Failed to fetch guild info: %v", err)
			return
		}
	}

	createdAt, _ := discordgo.SnowflakeTimestamp(guild.ID)

	b.sendEmbed(s, m.ChannelID, descriptionEmbed(fmt.Sprintf(
		"Server Name: %s\nServer ID: %s\nOwner: %s\nMembers: %d\nBoosts: %d\nCreated: %s\nRoles: %d",
		guild.Name, guild.ID, guild.OwnerID, guild.MemberCount,
		guild.PremiumSubscriptionCount, createdAt.UTC().Format("Mon, 02 Jan 2006 15:04:05 MST"),
		len(guild.Roles))))
}

func (b *Bot) handleBanner(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	target := m.Author
	if len(m.Mentions) > 0 {
		target = m.Mentions[0]
	}

	// Banner is only present on a full user fetch
	user, err := s.User(target.ID)
	if err != nil {
		log.Errorf("Failed to fetch user %s: %v", target.ID, err)
		return
	}

	bannerURL := user.BannerURL("1024")
	if bannerURL == "" {
		if _, err := s.ChannelMessageSend(m.ChannelID,
			fmt.Sprintf("**%s** does not have a banner.", user.String())); err != nil {
			log.Errorf("Failed to send message: %v", err)
		}
		return
	}

	b.sendEmbed(s, m.ChannelID, &discordgo.MessageEmbed{
		Color: embedColor,
		Title: fmt.Sprintf("Banner for %s", user.String()),
		Image: &discordgo.MessageEmbedImage{URL: bannerURL},
	})
}

func (b *Bot) handleGamble(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.replyText(s, m, "Enter a valid bet.")
		return
	}

	bet, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		b.replyText(s, m, "Enter a valid bet.")
		return
	}

	result, err := b.economyService.Gamble(ctx, m.Author.ID, bet)
	if err != nil {
		b.handleServiceError(s, m, err)
		return
	}

	if result.Won {
		b.sendEmbed(s, m.ChannelID, descriptionEmbed(
			fmt.Sprintf("🎉 You won **%d** points! Total: **%d**", result.BetAmount, result.NewPoints)))
	} else {
		b.sendEmbed(s, m.ChannelID, descriptionEmbed(
			fmt.Sprintf("💀 You lost **%d** points! Total: **%d**", result.BetAmount, result.NewPoints)))
	}
}

func (b *Bot) handleLeaderboard(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	kind := service.LeaderboardChat
	if len(args) > 0 {
		switch args[0] {
		case "chat":
			kind = service.LeaderboardChat
		case "vc":
			kind = service.LeaderboardVoice
		default:
			b.replyText(s, m, fmt.Sprintf("Use %slb chat or %slb vc", b.config.Prefix, b.config.Prefix))
			return
		}
	}

	top, err := b.leaderboardService.Top(ctx, kind)
	if err != nil {
		b.handleServiceError(s, m, err)
		return
	}

	title := "Top 10 Chat Messages"
	if kind == service.LeaderboardVoice {
		title = "Top 10 VC Time"
	}

	b.sendEmbed(s, m.ChannelID, &discordgo.MessageEmbed{
		Color:       embedColor,
		Title:       title,
		Description: formatLeaderboard(top, kind),
	})
}
