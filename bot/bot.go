package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"pointsbot/service"

	"github.com/bwmarrin/discordgo"
)

// cooldownSweepInterval controls how often elapsed chat cooldown
// entries are dropped
const cooldownSweepInterval = time.Minute

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
	Prefix  string
}

// Bot connects the Discord gateway to the engagement services. Every
// inbound event is discarded before any handler logic unless it belongs
// to the configured guild.
type Bot struct {
	config             Config
	session            *discordgo.Session
	userService        service.UserService
	activityService    service.ActivityService
	economyService     service.EconomyService
	leaderboardService service.LeaderboardService
	cooldown           *service.ChatCooldown
	done               chan struct{}
}

// New creates the Discord session, registers the gateway handlers and
// opens the connection
func New(config Config, userService service.UserService, activityService service.ActivityService, economyService service.EconomyService, leaderboardService service.LeaderboardService, cooldown *service.ChatCooldown) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentMessageContent

	bot := &Bot{
		config:             config,
		session:            dg,
		userService:        userService,
		activityService:    activityService,
		economyService:     economyService,
		leaderboardService: leaderboardService,
		cooldown:           cooldown,
		done:               make(chan struct{}),
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleVoiceStateUpdate)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Periodically drop elapsed cooldown entries
	go bot.startCooldownSweep()

	return bot, nil
}

// Close stops the sweep loop and closes the gateway connection
func (b *Bot) Close() error {
	close(b.done)
	return b.session.Close()
}

func (b *Bot) startCooldownSweep() {
	ticker := time.NewTicker(cooldownSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.cooldown.Sweep()
		case <-b.done:
			return
		}
	}
}

// handleReady logs in and evicts the bot from every guild other than
// the authorized one
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Infof("Logged in as %s", r.User.String())

	for _, guild := range r.Guilds {
		if guild.ID == b.config.GuildID {
			continue
		}
		log.WithField("guildID", guild.ID).Info("Leaving unauthorized guild")
		if err := s.GuildLeave(guild.ID); err != nil {
			log.Errorf("Failed to leave guild %s: %v", guild.ID, err)
		}
	}
}

// handleGuildCreate evicts the bot from unauthorized guilds it is
// invited to while running
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if g.ID == b.config.GuildID {
		return
	}

	log.WithField("guildID", g.ID).Info("Leaving unauthorized guild")
	if err := s.GuildLeave(g.ID); err != nil {
		log.Errorf("Failed to leave guild %s: %v", g.ID, err)
	}
}

// handleVoiceStateUpdate tracks voice sessions. Only transitions
// between "no channel" and "some channel" matter; moves between voice
// channels keep the running session untouched.
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.GuildID != b.config.GuildID {
		return
	}
	if v.Member != nil && v.Member.User != nil && v.Member.User.Bot {
		return
	}

	ctx := context.Background()

	hadChannel := v.BeforeUpdate != nil && v.BeforeUpdate.ChannelID != ""
	hasChannel := v.ChannelID != ""

	switch {
	case !hadChannel && hasChannel:
		if err := b.activityService.HandleVoiceJoin(ctx, v.UserID); err != nil {
			log.Errorf("Failed to open voice session for %s: %v", v.UserID, err)
		}
	case hadChannel && !hasChannel:
		user, minutes, err := b.activityService.HandleVoiceLeave(ctx, v.UserID)
		if err != nil {
			log.Errorf("Failed to close voice session for %s: %v", v.UserID, err)
			return
		}
		if user != nil {
			log.WithFields(log.Fields{
				"userID":  v.UserID,
				"minutes": minutes,
				"tier":    user.VoiceTier,
			}).Debug("Voice session closed")
		}
	}
}
