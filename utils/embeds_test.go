package utils

import (
	"strings"
	"testing"
	"time"

	"jackpot-go/models"

	"github.com/bwmarrin/discordgo"
)

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
		-1234:   "-1,234",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("Expected FormatNumber(%d) = '%s', got '%s'", in, want, got)
		}
	}
}

func TestPlayStatsEmbedEmpty(t *testing.T) {
	embed := PlayStatsEmbed(&discordgo.User{Username: "sam"}, models.NewPlayStats(1))
	if !strings.Contains(embed.Title, "sam's") {
		t.Errorf("Expected title to name the user, got '%s'", embed.Title)
	}
	if len(embed.Fields) != 0 {
		t.Errorf("Expected no fields for an empty history, got %d", len(embed.Fields))
	}
	if embed.Description == "" {
		t.Error("Expected a hint for an empty history")
	}
}

func TestPlayStatsEmbed(t *testing.T) {
	stats := models.NewPlayStats(1)
	stats.Add("lose", 1, 3, time.Now())
	stats.Add("jackpot", 5, 1, time.Now())

	embed := PlayStatsEmbed(nil, stats)
	if len(embed.Fields) != 5 {
		t.Fatalf("Expected 5 fields, got %d", len(embed.Fields))
	}
	breakdown := embed.Fields[4].Value
	if strings.Index(breakdown, "Jackpot") > strings.Index(breakdown, "No match") {
		t.Errorf("Expected best outcomes first, got '%s'", breakdown)
	}
	if embed.Timestamp == "" {
		t.Error("Expected timestamp of the last game")
	}
}
