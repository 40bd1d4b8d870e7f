package economy

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record is the flat keyed form of a Profile at the storage boundary.
type Record map[string]string

// Record keys.
const (
	KeyCoins                 = "coins"
	KeyBestStage             = "best_stage"
	KeyTotalGamesPlayed      = "total_games_played"
	KeyTotalPickupsCollected = "total_pickups_collected"
	KeyTotalBladesThrown     = "total_blades_thrown"
	KeyUnlockedSkins         = "unlocked_skins"
	KeyEquippedSkin          = "equipped_skin"
	KeyAchievements          = "achievements"
	KeyLastDailyRewardDate   = "last_daily_reward_date"
	KeyDailyStreak           = "daily_streak"
)

// RecordKeys lists every key EncodeProfile writes, in a stable order.
var RecordKeys = []string{
	KeyCoins,
	KeyBestStage,
	KeyTotalGamesPlayed,
	KeyTotalPickupsCollected,
	KeyTotalBladesThrown,
	KeyUnlockedSkins,
	KeyEquippedSkin,
	KeyAchievements,
	KeyLastDailyRewardDate,
	KeyDailyStreak,
}

// dateLayout stores calendar dates without a time component.
const dateLayout = "2006-01-02"

// FieldError reports a stored field that could not be used.
// The field was replaced by its default.
type FieldError struct {
	Key   string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("profile field %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// EncodeProfile flattens a profile. Sets are written sorted and comma separated.
func EncodeProfile(p Profile) Record {
	skins := p.SkinList()
	skinStrs := make([]string, len(skins))
	for i, s := range skins {
		skinStrs[i] = string(s)
	}
	achs := p.AchievementList()
	achStrs := make([]string, len(achs))
	for i, a := range achs {
		achStrs[i] = string(a)
	}
	date := ""
	if !p.LastDailyRewardDate.IsZero() {
		date = p.LastDailyRewardDate.Format(dateLayout)
	}
	return Record{
		KeyCoins:                 strconv.Itoa(p.Coins),
		KeyBestStage:             strconv.Itoa(p.BestStage),
		KeyTotalGamesPlayed:      strconv.Itoa(p.TotalGamesPlayed),
		KeyTotalPickupsCollected: strconv.Itoa(p.TotalPickupsCollected),
		KeyTotalBladesThrown:     strconv.Itoa(p.TotalBladesThrown),
		KeyUnlockedSkins:         strings.Join(skinStrs, ","),
		KeyEquippedSkin:          string(p.EquippedSkin),
		KeyAchievements:          strings.Join(achStrs, ","),
		KeyLastDailyRewardDate:   date,
		KeyDailyStreak:           strconv.Itoa(p.DailyStreak),
	}
}

// DecodeProfile rebuilds a profile from a stored record.
//
// A nil or empty record yields DefaultProfile (first run). Each missing
// field takes its default silently; each malformed field takes its default
// and adds a FieldError. The returned profile is always usable.
func DecodeProfile(rec Record) (Profile, []*FieldError) {
	p := DefaultProfile()
	var errs []*FieldError

	intField := func(key string, min int, dst *int) {
		raw, ok := rec[key]
		if !ok || raw == "" {
			return
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, &FieldError{Key: key, Value: raw, Err: err})
			return
		}
		if v < min {
			errs = append(errs, &FieldError{Key: key, Value: raw, Err: fmt.Errorf("must be >= %d", min)})
			return
		}
		*dst = v
	}

	intField(KeyCoins, 0, &p.Coins)
	intField(KeyBestStage, 1, &p.BestStage)
	intField(KeyTotalGamesPlayed, 0, &p.TotalGamesPlayed)
	intField(KeyTotalPickupsCollected, 0, &p.TotalPickupsCollected)
	intField(KeyTotalBladesThrown, 0, &p.TotalBladesThrown)
	intField(KeyDailyStreak, 0, &p.DailyStreak)

	for _, s := range splitList(rec[KeyUnlockedSkins]) {
		p.UnlockedSkins[NormalizeSkin(s)] = true
	}
	for _, a := range splitList(rec[KeyAchievements]) {
		p.Achievements[AchievementID(NormalizeID(a))] = true
	}

	if raw, ok := rec[KeyEquippedSkin]; ok && raw != "" {
		id := NormalizeSkin(raw)
		if p.UnlockedSkins[id] {
			p.EquippedSkin = id
		} else {
			errs = append(errs, &FieldError{Key: KeyEquippedSkin, Value: raw, Err: fmt.Errorf("skin not unlocked")})
		}
	}

	if raw, ok := rec[KeyLastDailyRewardDate]; ok && raw != "" {
		d, err := time.Parse(dateLayout, strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, &FieldError{Key: KeyLastDailyRewardDate, Value: raw, Err: err})
			// a streak without a valid date cannot continue
			p.DailyStreak = 0
		} else {
			p.LastDailyRewardDate = d
		}
	}

	return p, errs
}

// splitList parses a comma separated set, dropping blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
