package cogs

import (
	"context"
	"errors"
	"sync"
	"time"

	"jackpot-go/games/jackpot"
	"jackpot-go/models"
	"jackpot-go/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Messenger is the part of *discordgo.Session the jackpot handlers use.
type Messenger interface {
	utils.InteractionResponder
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// PlayLedger stores finished games and reads them back for /jackpotstats.
type PlayLedger interface {
	RecordPlay(ctx context.Context, rec models.PlayRecord) error
	PlayStats(ctx context.Context, userID int64) (*models.PlayStats, error)
}

// JackpotCog wires the slot machine to Discord commands and buttons.
type JackpotCog struct {
	router    *jackpot.Router
	locks     *utils.MessageLocks
	scheduler *utils.Scheduler
	ledger    PlayLedger
	metrics   *utils.DeliveryMetrics
	log       *zap.Logger

	// pending ledger writes
	wg sync.WaitGroup
}

// NewJackpotCog creates the cog. ledger may be nil.
func NewJackpotCog(router *jackpot.Router, scheduler *utils.Scheduler, ledger PlayLedger, metrics *utils.DeliveryMetrics) *JackpotCog {
	return &JackpotCog{
		router:    router,
		locks:     utils.NewMessageLocks(),
		scheduler: scheduler,
		ledger:    ledger,
		metrics:   metrics,
		log:       utils.Log.Named("cogs.jackpot"),
	}
}

// RegisterJackpotCommands returns the slash commands served by the cog
func RegisterJackpotCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "jackpot",
			Description: "Challenge someone to pull the jackpot levers",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "player",
					Description: "Who gets to play",
					Required:    true,
				},
			},
		},
		{
			Name:        "jackpotstats",
			Description: "Show finished jackpot games",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "player",
					Description: "Whose stats to show (defaults to you)",
					Required:    false,
				},
			},
		},
	}
}

// HandleCommand routes the cog's slash commands. It returns false for
// commands it does not own.
func (c *JackpotCog) HandleCommand(s Messenger, i *discordgo.InteractionCreate) bool {
	switch i.ApplicationCommandData().Name {
	case "jackpot":
		c.HandleJackpotCommand(s, i)
	case "jackpotstats":
		c.HandleStatsCommand(s, i)
	default:
		return false
	}
	return true
}

// HandleJackpotCommand posts a fresh machine inviting the chosen player
func (c *JackpotCog) HandleJackpotCommand(s Messenger, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	invitee := userOption(data, "player")
	if invitee == nil || invitee.ID == "" {
		c.respondError(s, i, "Pick someone to challenge: `/jackpot player:@someone`")
		return
	}
	if invitee.Bot {
		c.respondError(s, i, "Bots can't pull levers. Pick a human!")
		return
	}

	msg := c.router.NewGame(invitee.ID)
	embed, components := EncodeMessage(msg, utils.ColorIdle)
	if err := utils.SendInteractionResponse(s, i, "<@"+invitee.ID+">", embed, components, false); err != nil {
		c.log.Error("post jackpot",
			zap.String("invitee", invitee.ID),
			zap.String("kind", utils.ClassifyDeliveryError(err)),
			zap.Error(err))
		return
	}
	c.log.Info("jackpot posted",
		zap.String("invitee", invitee.ID),
		zap.String("by", utils.InteractionUserID(i)),
		zap.String("channel", i.ChannelID))
}

// HandleStatsCommand shows a user's finished games, visible only to the caller
func (c *JackpotCog) HandleStatsCommand(s Messenger, i *discordgo.InteractionCreate) {
	target := userOption(i.ApplicationCommandData(), "player")
	if target == nil {
		if i.Member != nil && i.Member.User != nil {
			target = i.Member.User
		} else {
			target = i.User
		}
	}
	if target == nil || c.ledger == nil {
		c.respondError(s, i, "Jackpot stats are not available right now.")
		return
	}

	userID, err := utils.ParseUserID(target.ID)
	if err != nil {
		c.respondError(s, i, "That doesn't look like a Discord user.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.LedgerTimeout)
	defer cancel()
	stats, err := c.ledger.PlayStats(ctx, userID)
	if err != nil {
		if !errors.Is(err, utils.ErrNoDatabase) {
			c.log.Error("load play stats", zap.Int64("user", userID), zap.Error(err))
		}
		c.respondError(s, i, "Jackpot stats are not available right now.")
		return
	}

	if err := utils.SendInteractionResponse(s, i, "", utils.PlayStatsEmbed(target, stats), nil, true); err != nil {
		c.log.Warn("send play stats", zap.Error(err))
	}
}

// HandleJackpotInteraction applies one button press to the game in the
// pressed message. Presses on the same message are handled one at a time
// against the latest version of the message.
func (c *JackpotCog) HandleJackpotInteraction(s Messenger, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	if err := utils.AcknowledgeComponentInteraction(s, i); err != nil {
		c.log.Warn("acknowledge button",
			zap.String("custom_id", customID),
			zap.String("kind", utils.ClassifyDeliveryError(err)),
			zap.Error(err))
	}

	if i.Message == nil {
		return
	}
	channelID := i.ChannelID
	if channelID == "" {
		channelID = i.Message.ChannelID
	}
	messageID := i.Message.ID
	actorID := utils.InteractionUserID(i)

	log := c.log.With(
		zap.String("message", messageID),
		zap.String("actor", actorID),
		zap.String("custom_id", customID))

	action, ok := jackpot.ParseAction(customID)
	if !ok {
		c.metrics.RecordAction(true)
		log.Debug("ignoring unknown control")
		return
	}

	unlock := c.locks.Lock(messageID)
	defer unlock()

	current, err := DecodeMessage(c.fetchLive(s, channelID, i.Message, log))
	if err != nil {
		c.metrics.RecordAction(true)
		log.Warn("decode game message", zap.Error(err))
		return
	}

	res, err := c.router.Handle(actorID, action, current)
	if err != nil {
		c.metrics.RecordAction(true)
		var extractErr *jackpot.ExtractionError
		if errors.As(err, &extractErr) {
			log.Warn("unreadable game state", zap.Error(err))
		} else {
			log.Debug("action ignored", zap.Error(err))
		}
		return
	}
	c.metrics.RecordAction(false)

	for idx, render := range res.Renders {
		c.deliver(s, channelID, messageID, render, renderColor(res, idx), log)
	}

	if res.Outcome != nil && res.Outcome.Terminal {
		log.Info("jackpot finished",
			zap.String("owner", res.OwnerID),
			zap.Stringer("class", res.Outcome.Class))
		c.recordPlay(i.GuildID, channelID, messageID, res)
	}

	if res.RemoveAfter > 0 {
		c.scheduleRemoval(s, channelID, messageID, res.RemoveAfter)
	}
}

// Wait blocks until pending ledger writes finish.
func (c *JackpotCog) Wait() {
	c.wg.Wait()
}

// fetchLive reloads the message so a press is applied on top of the edits of
// the presses before it. The interaction's copy is used when that fails.
func (c *JackpotCog) fetchLive(s Messenger, channelID string, fallback *discordgo.Message, log *zap.Logger) *discordgo.Message {
	ctx, cancel := context.WithTimeout(context.Background(), utils.FetchTimeout)
	defer cancel()

	live, err := s.ChannelMessage(channelID, fallback.ID, discordgo.WithContext(ctx))
	if err != nil || live == nil {
		log.Debug("using interaction copy of message", zap.Error(err))
		return fallback
	}
	return live
}

func (c *JackpotCog) deliver(s Messenger, channelID, messageID string, render jackpot.Message, color int, log *zap.Logger) {
	embed, components := EncodeMessage(render, color)
	embeds := []*discordgo.MessageEmbed{embed}
	edit := &discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &embeds,
		Components: &components,
	}

	ctx, cancel := context.WithTimeout(context.Background(), utils.EditTimeout)
	defer cancel()

	start := time.Now()
	_, err := s.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	c.metrics.RecordEdit(time.Since(start), err)
	if err != nil {
		log.Error("deliver render",
			zap.String("kind", utils.ClassifyDeliveryError(err)),
			zap.Error(err))
	}
}

func (c *JackpotCog) scheduleRemoval(s Messenger, channelID, messageID string, delay time.Duration) {
	c.scheduler.Schedule(messageID, delay, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, utils.DeleteTimeout)
		defer cancel()

		err := s.ChannelMessageDelete(channelID, messageID, discordgo.WithContext(ctx))
		c.metrics.RecordDelete(err)
		if err != nil {
			c.log.Warn("remove lost game",
				zap.String("message", messageID),
				zap.String("kind", utils.ClassifyDeliveryError(err)),
				zap.Error(err))
		}
	})
}

func (c *JackpotCog) recordPlay(guildID, channelID, messageID string, res *jackpot.Result) {
	if c.ledger == nil {
		return
	}
	userID, err := utils.ParseUserID(res.OwnerID)
	if err != nil {
		c.log.Warn("owner is not a user id", zap.String("owner", res.OwnerID))
		return
	}

	rec := models.PlayRecord{
		MessageID: messageID,
		ChannelID: channelID,
		GuildID:   guildID,
		UserID:    userID,
		Outcome:   res.Outcome.Class.String(),
		Matches:   res.Outcome.Class.Multiplicity(),
		Symbols:   append([]string(nil), res.Outcome.Next.Slots[:]...),
		PlayedAt:  time.Now().UTC(),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), utils.LedgerTimeout)
		defer cancel()
		if err := c.ledger.RecordPlay(ctx, rec); err != nil {
			c.log.Error("record play", zap.String("message", messageID), zap.Error(err))
		}
	}()
}

func (c *JackpotCog) respondError(s Messenger, i *discordgo.InteractionCreate, message string) {
	if err := utils.RespondEphemeral(s, i, "❌ "+message); err != nil {
		c.log.Warn("respond error", zap.Error(err))
	}
}

// renderColor picks the embed color for the idx-th render of res.
func renderColor(res *jackpot.Result, idx int) int {
	if res.Outcome == nil || !res.Outcome.Terminal || idx < len(res.Renders)-1 {
		return utils.ColorPlaying
	}
	if res.Outcome.Class == jackpot.Lose {
		return utils.ColorLose
	}
	return utils.ColorWin
}

func userOption(data discordgo.ApplicationCommandInteractionData, name string) *discordgo.User {
	for _, opt := range data.Options {
		if opt == nil || opt.Name != name || opt.Type != discordgo.ApplicationCommandOptionUser {
			continue
		}
		id, ok := opt.Value.(string)
		if !ok || id == "" {
			return nil
		}
		if data.Resolved != nil {
			if u, exists := data.Resolved.Users[id]; exists && u != nil {
				return u
			}
		}
		return &discordgo.User{ID: id}
	}
	return nil
}
