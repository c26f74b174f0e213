package reward

// Level is a named band of experience values.
type Level struct {
	Level int    `json:"level"`
	MinXP int    `json:"minXP"`
	MaxXP int    `json:"maxXP"`
	Title string `json:"title"`
}

// Levels is the static tier table. Ranges are contiguous and non-overlapping,
// so exactly one tier matches any non-negative XP value. The last tier is
// effectively unbounded.
var Levels = []Level{
	{Level: 1, MinXP: 0, MaxXP: 100, Title: "Novice Assessor"},
	{Level: 2, MinXP: 101, MaxXP: 300, Title: "Apprentice Assessor"},
	{Level: 3, MinXP: 301, MaxXP: 600, Title: "Skilled Assessor"},
	{Level: 4, MinXP: 601, MaxXP: 1000, Title: "Expert Assessor"},
	{Level: 5, MinXP: 1001, MaxXP: 1500, Title: "Master Assessor"},
	{Level: 6, MinXP: 1501, MaxXP: 999999, Title: "CE Champion"},
}

// LevelFor returns the tier whose range contains xp. Falls back to the top
// tier if xp exceeds the table.
func LevelFor(xp int) Level {
	for _, lv := range Levels {
		if xp >= lv.MinXP && xp <= lv.MaxXP {
			return lv
		}
	}
	return Levels[len(Levels)-1]
}

// ProgressPercent returns how far through the current tier xp is, 0-100.
// The top tier always reports 100.
func ProgressPercent(xp int) int {
	lv := LevelFor(xp)
	if lv.Level == Levels[len(Levels)-1].Level {
		return 100
	}
	inLevel := xp - lv.MinXP
	needed := lv.MaxXP - lv.MinXP + 1
	return int(float64(inLevel)/float64(needed)*100 + 0.5)
}

// StreakEmoji maps a streak length to its display tier.
func StreakEmoji(streak int) string {
	switch {
	case streak == 0:
		return "❄️"
	case streak < 3:
		return "🔥"
	case streak < 7:
		return "🔥🔥"
	case streak < 14:
		return "🔥🔥🔥"
	case streak < 30:
		return "🔥🔥🔥🔥"
	default:
		return "🔥🔥🔥🔥🔥"
	}
}
