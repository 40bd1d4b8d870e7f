package economy

// Achievement is a one-time goal over cumulative profile counters.
type Achievement struct {
	ID     AchievementID
	Name   string
	Reward int // coins, paid once on unlock
	Met    func(p Profile) bool
}

// Unlock reports an achievement unlocked by EvaluateAchievements.
type Unlock struct {
	ID     AchievementID
	Reward int
}

// DefaultAchievements returns the stock achievement table in evaluation order.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{ID: "first_blood", Name: "First Blood", Reward: 10,
			Met: func(p Profile) bool { return p.TotalBladesThrown >= 1 }},
		{ID: "sharpshooter", Name: "Sharpshooter", Reward: 50,
			Met: func(p Profile) bool { return p.TotalBladesThrown >= 100 }},
		{ID: "blade_storm", Name: "Blade Storm", Reward: 200,
			Met: func(p Profile) bool { return p.TotalBladesThrown >= 1000 }},
		{ID: "apple_picker", Name: "Apple Picker", Reward: 50,
			Met: func(p Profile) bool { return p.TotalPickupsCollected >= 10 }},
		{ID: "orchard", Name: "Orchard", Reward: 250,
			Met: func(p Profile) bool { return p.TotalPickupsCollected >= 100 }},
		{ID: "boss_slayer", Name: "Boss Slayer", Reward: 100,
			Met: func(p Profile) bool { return p.BestStage >= 6 }},
		{ID: "veteran", Name: "Veteran", Reward: 75,
			Met: func(p Profile) bool { return p.TotalGamesPlayed >= 25 }},
		{ID: "legend", Name: "Legend", Reward: 500,
			Met: func(p Profile) bool { return p.BestStage >= 25 }},
	}
}
