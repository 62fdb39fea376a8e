package utils

import "time"

// General Configuration
const (
	BotName  = "Jackpot"
	BotColor = 0x5865F2
)

// Embed colors by game state
const (
	ColorIdle    = 0x5865F2
	ColorPlaying = 0xF1C40F
	ColorWin     = 0x2ECC71
	ColorLose    = 0xE74C3C
)

// Discord request timeouts
const (
	FetchTimeout  = 3 * time.Second
	EditTimeout   = 5 * time.Second
	DeleteTimeout = 5 * time.Second
	LedgerTimeout = 5 * time.Second
)
