// Package notify announces notable game events to external channels
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/RewardEngine_Go/internal/domain"
	"github.com/osse101/RewardEngine_Go/internal/logger"
)

const (
	LogMsgNotificationSent    = "Jackpot notification sent"
	LogMsgNotificationSkipped = "Jackpot notification skipped, no channel configured"

	jackpotColor = 0xFFD700 // Gold
)

// Noop discards notifications
type Noop struct{}

// NotifyJackpot implements slots.JackpotNotifier
func (Noop) NotifyJackpot(context.Context, string, domain.JackpotDraw) error {
	return nil
}

// embedSender is the part of *discordgo.Session used to post messages
type embedSender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts jackpot announcements to a Discord channel
type Discord struct {
	session   *discordgo.Session
	sender    embedSender
	channelID string
	printer   *message.Printer
	title     cases.Caser
}

// NewDiscord creates a notifier using a bot token. Messages are sent over
// the REST API, so no gateway connection is opened.
func NewDiscord(token, channelID string) (*Discord, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	d := newDiscord(s, channelID)
	d.session = s
	return d, nil
}

func newDiscord(sender embedSender, channelID string) *Discord {
	return &Discord{
		sender:    sender,
		channelID: channelID,
		printer:   message.NewPrinter(language.English),
		title:     cases.Title(language.English),
	}
}

// NotifyJackpot posts an embed describing the draw
func (d *Discord) NotifyJackpot(ctx context.Context, userID string, draw domain.JackpotDraw) error {
	log := logger.FromContext(ctx)
	if d.channelID == "" {
		log.Debug(LogMsgNotificationSkipped)
		return nil
	}

	embed := d.jackpotEmbed(userID, draw)
	if _, err := d.sender.ChannelMessageSendEmbed(d.channelID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to send jackpot notification: %w", err)
	}
	log.Info(LogMsgNotificationSent, "user_id", userID, "kind", draw.Reward.Kind)
	return nil
}

func (d *Discord) jackpotEmbed(userID string, draw domain.JackpotDraw) *discordgo.MessageEmbed {
	description := draw.Description
	if description == "" {
		description = d.rewardText(draw.Reward)
	}

	return &discordgo.MessageEmbed{
		Title:       "Jackpot!",
		Description: fmt.Sprintf("**%s** hit the jackpot and won **%s**", userID, description),
		Color:       jackpotColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Reward",
				Value:  d.rewardText(draw.Reward),
				Inline: true,
			},
			{
				Name:   "Pool",
				Value:  d.printer.Sprintf("%d", int64(draw.Pool)),
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Jackpot",
		},
	}
}

func (d *Discord) rewardText(r domain.RewardSpec) string {
	kind := d.title.String(strings.ReplaceAll(string(r.Kind), "_", " "))
	switch r.Kind {
	case domain.RewardPoolPercentage:
		return d.printer.Sprintf("%g%% of the pool", r.Amount)
	case domain.RewardItem:
		if r.Item != nil {
			return d.title.String(strings.ReplaceAll(string(r.Item.Rarity), "_", " ")) + " item"
		}
		return kind
	default:
		return d.printer.Sprintf("%d %s", int64(r.Amount), kind)
	}
}

// Close releases the Discord session
func (d *Discord) Close() error {
	if d.session == nil {
		return nil
	}
	return d.session.Close()
}
