package models

import (
	"time"
)

// PlayRecord is one finished jackpot game
type PlayRecord struct {
	MessageID string    `json:"message_id"`
	ChannelID string    `json:"channel_id"`
	GuildID   string    `json:"guild_id"`
	UserID    int64     `json:"user_id"`
	Outcome   string    `json:"outcome"`
	Matches   int       `json:"matches"`
	Symbols   []string  `json:"symbols"`
	PlayedAt  time.Time `json:"played_at"`
}

// IsWin reports whether the game paid anything
func (r PlayRecord) IsWin() bool {
	return r.Matches >= 2
}

// PlayStats is a user's jackpot history
type PlayStats struct {
	UserID     int64          `json:"user_id"`
	Plays      int            `json:"plays"`
	Wins       int            `json:"wins"`
	Best       int            `json:"best"`
	ByOutcome  map[string]int `json:"by_outcome"`
	LastPlayed *time.Time     `json:"last_played,omitempty"`
}

// NewPlayStats creates empty stats for a user
func NewPlayStats(userID int64) *PlayStats {
	return &PlayStats{
		UserID:    userID,
		ByOutcome: make(map[string]int),
	}
}

// Add folds count games with the given outcome and match count into the stats
func (s *PlayStats) Add(outcome string, matches, count int, lastPlayed time.Time) {
	if count <= 0 {
		return
	}
	s.Plays += count
	s.ByOutcome[outcome] += count
	if matches >= 2 {
		s.Wins += count
	}
	if matches > s.Best {
		s.Best = matches
	}
	if s.LastPlayed == nil || lastPlayed.After(*s.LastPlayed) {
		t := lastPlayed
		s.LastPlayed = &t
	}
}

// WinRate returns the share of games won, in percent
func (s *PlayStats) WinRate() float64 {
	if s.Plays == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Plays) * 100
}
