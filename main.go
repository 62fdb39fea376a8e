package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jackpot-go/cogs"
	"jackpot-go/games/jackpot"
	"jackpot-go/utils"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const statsCacheTTL = 2 * time.Minute

var (
	botStatus = utils.NewBotStatus()
	metrics   = utils.NewDeliveryMetrics()
	guildID   string
	slots     *cogs.JackpotCog
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := utils.InitLogger(cfg.LogLevel, cfg.LogDev); err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer utils.SyncLogger()

	if err := run(cfg); err != nil {
		utils.Log.Error("bot stopped", zap.Error(err))
		utils.SyncLogger()
		os.Exit(1)
	}
}

func run(cfg utils.Config) error {
	gameCfg, err := loadGameConfig(cfg.JackpotConfig)
	if err != nil {
		return err
	}
	guildID = cfg.GuildID

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ledger cogs.PlayLedger
	if err := utils.SetupDatabase(ctx, cfg.DatabaseURL); err != nil {
		utils.Log.Warn("database setup failed, stats are disabled", zap.Error(err))
	} else if utils.DB != nil {
		utils.Log.Info("database connected")
		defer utils.CloseDatabase()
		cache := utils.NewStatsCache(statsCacheTTL)
		go cache.RunCleanup(ctx, statsCacheTTL)
		ledger = utils.DatabaseLedger{Cache: cache}
	}

	scheduler := utils.NewScheduler(ctx)
	slots = cogs.NewJackpotCog(jackpot.NewRouter(gameCfg, jackpot.NewSource()), scheduler, ledger, metrics)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return utils.RunHealthServer(gctx, cfg.Addr(), utils.NewHealthRouter(botStatus, metrics))
	})
	g.Go(func() error {
		return runBot(gctx, cfg.BotToken)
	})

	err = g.Wait()
	scheduler.Stop()
	slots.Wait()
	return err
}

func loadGameConfig(path string) (jackpot.Config, error) {
	if path == "" {
		return jackpot.DefaultConfig(), nil
	}
	cfg, err := jackpot.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("jackpot config: %w", err)
	}
	utils.Log.Info("loaded jackpot config", zap.String("path", path), zap.Int("symbols", len(cfg.Symbols)))
	return cfg, nil
}

// runBot keeps the gateway session open until ctx is done. Without a token
// only the health server runs.
func runBot(ctx context.Context, token string) error {
	if token == "" {
		utils.Log.Warn("BOT_TOKEN not set - Discord bot will not connect")
		botStatus.Set("no_token")
		<-ctx.Done()
		return nil
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		botStatus.Set("error")
		return fmt.Errorf("create Discord session: %w", err)
	}

	// Games live entirely in interactions
	session.Identify.Intents = discordgo.IntentsGuilds

	session.AddHandler(onReady)
	session.AddHandler(onInteractionCreate)
	session.AddHandler(onButtonInteraction)

	botStatus.Set("connecting")
	if err := session.Open(); err != nil {
		botStatus.Set("connection_failed")
		return fmt.Errorf("open Discord connection: %w", err)
	}
	utils.Log.Info("bot is now running")
	botStatus.Set("running")

	<-ctx.Done()

	utils.Log.Info("gracefully shutting down")
	botStatus.Set("shutting_down")
	if err := session.Close(); err != nil {
		return fmt.Errorf("close Discord session: %w", err)
	}
	return nil
}

func onReady(s *discordgo.Session, event *discordgo.Ready) {
	utils.Log.Info("logged in",
		zap.String("user", event.User.Username),
		zap.String("id", event.User.ID))
	botStatus.Set("online")

	if err := s.UpdateStatusComplex(discordgo.UpdateStatusData{
		Activities: []*discordgo.Activity{
			{
				Name: "Jackpot - /jackpot",
				Type: discordgo.ActivityTypeGame,
			},
		},
		Status: "online",
	}); err != nil {
		utils.Log.Warn("failed to update status", zap.Error(err))
	}

	if err := registerSlashCommands(s); err != nil {
		utils.Log.Error("failed to register slash commands", zap.Error(err))
	}
}

func registerSlashCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check bot latency and status",
		},
	}
	commands = append(commands, cogs.RegisterJackpotCommands()...)

	created, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, guildID, commands)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	utils.Log.Info("registered slash commands", zap.Int("count", len(created)), zap.String("guild", guildID))
	return nil
}

func onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if i.ApplicationCommandData().Name == "ping" {
		handlePingCommand(s, i)
		return
	}
	slots.HandleCommand(s, i)
}

func onButtonInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	customID := i.MessageComponentData().CustomID

	// Route button interactions to appropriate handlers
	if strings.HasPrefix(customID, jackpot.CustomIDPrefix) {
		slots.HandleJackpotInteraction(s, i)
	}
}

func handlePingCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	stats := metrics.Stats()

	embed := utils.CreateBrandedEmbed("🏓 Pong!", "", utils.BotColor)
	embed.Fields = []*discordgo.MessageEmbedField{
		{
			Name:   "Latency",
			Value:  fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()),
			Inline: true,
		},
		{
			Name:   "Status",
			Value:  botStatus.Get(),
			Inline: true,
		},
		{
			Name:   "Edits",
			Value:  fmt.Sprintf("%s ok / %s failed (avg %dms)", utils.FormatNumber(stats.Edits), utils.FormatNumber(stats.EditFailures), stats.AverageLatency),
			Inline: false,
		},
	}
	embed.Timestamp = time.Now().Format(time.RFC3339)

	if err := utils.SendInteractionResponse(s, i, "", embed, nil, true); err != nil {
		utils.Log.Warn("ping response failed", zap.Error(err))
	}
}
