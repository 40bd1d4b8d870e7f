package economy

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// SkinID identifies a cosmetic blade skin.
type SkinID string

// AchievementID identifies an achievement definition.
type AchievementID string

// DefaultSkin is owned and equipped by every fresh profile.
const DefaultSkin SkinID = "classic"

// Profile is the durable player record.
type Profile struct {
	Coins                 int
	BestStage             int
	TotalGamesPlayed      int
	TotalPickupsCollected int
	TotalBladesThrown     int
	UnlockedSkins         map[SkinID]bool
	EquippedSkin          SkinID
	Achievements          map[AchievementID]bool

	// LastDailyRewardDate is a calendar date (midnight UTC); zero means never claimed.
	LastDailyRewardDate time.Time
	DailyStreak         int
}

// DefaultProfile returns the first-run profile.
func DefaultProfile() Profile {
	return Profile{
		BestStage:     1,
		UnlockedSkins: map[SkinID]bool{DefaultSkin: true},
		EquippedSkin:  DefaultSkin,
		Achievements:  map[AchievementID]bool{},
	}
}

// Clone returns a deep copy; the sets are not shared.
func (p Profile) Clone() Profile {
	out := p
	out.UnlockedSkins = make(map[SkinID]bool, len(p.UnlockedSkins))
	for k, v := range p.UnlockedSkins {
		out.UnlockedSkins[k] = v
	}
	out.Achievements = make(map[AchievementID]bool, len(p.Achievements))
	for k, v := range p.Achievements {
		out.Achievements[k] = v
	}
	return out
}

// OwnsSkin reports whether the skin is unlocked.
func (p Profile) OwnsSkin(id SkinID) bool {
	return p.UnlockedSkins[NormalizeSkin(string(id))]
}

// HasAchievement reports whether the achievement is unlocked.
func (p Profile) HasAchievement(id AchievementID) bool {
	return p.Achievements[AchievementID(NormalizeID(string(id)))]
}

// SkinList returns unlocked skins in sorted order.
func (p Profile) SkinList() []SkinID {
	out := make([]SkinID, 0, len(p.UnlockedSkins))
	for id, ok := range p.UnlockedSkins {
		if ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AchievementList returns unlocked achievements in sorted order.
func (p Profile) AchievementList() []AchievementID {
	out := make([]AchievementID, 0, len(p.Achievements))
	for id, ok := range p.Achievements {
		if ok {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NormalizeID canonicalizes an identifier: NFC, trimmed, lower-case.
func NormalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// NormalizeSkin is NormalizeID typed for skins.
func NormalizeSkin(s string) SkinID {
	return SkinID(NormalizeID(s))
}

// civilDay truncates t to its calendar date in t's own location,
// expressed as midnight UTC so dates compare with Equal.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
