package utils

import (
	"fmt"
	"strings"
	"time"

	"jackpot-go/models"

	"github.com/bwmarrin/discordgo"
)

// CreateBrandedEmbed creates a basic embed with bot branding
func CreateBrandedEmbed(title, description string, color int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: BotName,
		},
	}

	return embed
}

// PlayStatsEmbed shows a user's jackpot history
func PlayStatsEmbed(user *discordgo.User, stats *models.PlayStats) *discordgo.MessageEmbed {
	name := "Your"
	if user != nil {
		name = user.Username + "'s"
	}
	embed := CreateBrandedEmbed(fmt.Sprintf("🎰 %s Jackpot Stats", name), "", BotColor)

	if stats == nil || stats.Plays == 0 {
		embed.Description = "No finished games yet. Ask someone to challenge you with `/jackpot`!"
		return embed
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "🎮 Games", Value: FormatNumber(int64(stats.Plays)), Inline: true},
		{Name: "🏆 Wins", Value: FormatNumber(int64(stats.Wins)), Inline: true},
		{Name: "📊 Win Rate", Value: fmt.Sprintf("%.1f%%", stats.WinRate()), Inline: true},
		{Name: "🔥 Best", Value: fmt.Sprintf("%d matching", stats.Best), Inline: true},
	}
	if breakdown := outcomeBreakdown(stats.ByOutcome); breakdown != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Outcomes",
			Value: breakdown,
		})
	}
	if stats.LastPlayed != nil {
		embed.Timestamp = stats.LastPlayed.Format(time.RFC3339)
	}
	return embed
}

var outcomeOrder = []struct {
	key   string
	label string
}{
	{"jackpot", "🤑 Jackpot"},
	{"match4", "4️⃣ Four of a kind"},
	{"match3", "3️⃣ Three of a kind"},
	{"match2", "2️⃣ Pair"},
	{"lose", "😂 No match"},
}

func outcomeBreakdown(byOutcome map[string]int) string {
	var lines []string
	for _, o := range outcomeOrder {
		if n := byOutcome[o.key]; n > 0 {
			lines = append(lines, fmt.Sprintf("%s: **%s**", o.label, FormatNumber(int64(n))))
		}
	}
	return strings.Join(lines, "\n")
}

// FormatNumber formats numbers with commas
func FormatNumber(num int64) string {
	str := fmt.Sprintf("%d", num)
	if num < 0 {
		return "-" + FormatNumber(-num)
	}
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(char)
	}
	return result.String()
}
