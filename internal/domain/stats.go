package domain

import "math"

type GameStats struct {
	DrawnCount              int     `json:"drawn_count"`
	PlayerCount             int     `json:"player_count"`
	DurationSeconds         int     `json:"duration_seconds"`
	Efficiency              int     `json:"efficiency"`
	AverageNumbersPerMinute float64 `json:"average_numbers_per_minute"`
	CompletionRate          int     `json:"completion_rate"`
}

// averageGameLength is the number of draws a typical game takes.
const averageGameLength = 25

// CalculateStats summarises a game from its history and duration.
func CalculateStats(drawn []string, durationSeconds, playerCount int) GameStats {
	count := len(drawn)
	stats := GameStats{
		DrawnCount:      count,
		PlayerCount:     playerCount,
		DurationSeconds: durationSeconds,
		Efficiency:      int(math.Round(float64(count) / TotalNumbers * 100)),
		CompletionRate:  int(math.Round(float64(count) / averageGameLength * 100)),
	}

	minutes := float64(durationSeconds) / 60
	if minutes > 0 {
		stats.AverageNumbersPerMinute = math.Round(float64(count)/minutes*10) / 10
	}

	return stats
}
