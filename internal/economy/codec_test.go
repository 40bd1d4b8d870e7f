package economy

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeProfile_EmptyIsDefault(t *testing.T) {
	p, errs := DecodeProfile(nil)
	assert.Empty(t, errs)
	assert.Equal(t, DefaultProfile(), p)

	p, errs = DecodeProfile(Record{})
	assert.Empty(t, errs)
	assert.Equal(t, DefaultProfile(), p)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	orig := DefaultProfile()
	orig.Coins = 420
	orig.BestStage = 11
	orig.TotalGamesPlayed = 9
	orig.TotalPickupsCollected = 14
	orig.TotalBladesThrown = 210
	orig.UnlockedSkins["gold"] = true
	orig.EquippedSkin = "gold"
	orig.Achievements["first_blood"] = true
	orig.Achievements["sharpshooter"] = true
	orig.LastDailyRewardDate = day(2026, 7, 4)
	orig.DailyStreak = 3

	rec := EncodeProfile(orig)
	assert.Equal(t, "classic,gold", rec[KeyUnlockedSkins])
	assert.Equal(t, "first_blood,sharpshooter", rec[KeyAchievements])
	assert.Equal(t, "2026-07-04", rec[KeyLastDailyRewardDate])
	for _, k := range RecordKeys {
		_, ok := rec[k]
		assert.True(t, ok, "missing key %s", k)
	}

	got, errs := DecodeProfile(rec)
	require.Empty(t, errs)
	assert.Equal(t, orig, got)
}

func TestDecodeProfile_CorruptFieldsFallBack(t *testing.T) {
	rec := Record{
		KeyCoins:               "lots",
		KeyBestStage:           "0",
		KeyDailyStreak:         "4",
		KeyTotalBladesThrown:   "-3",
		KeyLastDailyRewardDate: "yesterday",
		KeyTotalGamesPlayed:    "12",
	}

	p, errs := DecodeProfile(rec)
	require.Len(t, errs, 4)

	keys := map[string]bool{}
	for _, e := range errs {
		keys[e.Key] = true
	}
	assert.True(t, keys[KeyCoins])
	assert.True(t, keys[KeyBestStage])
	assert.True(t, keys[KeyTotalBladesThrown])
	assert.True(t, keys[KeyLastDailyRewardDate])

	assert.Equal(t, 0, p.Coins)
	assert.Equal(t, 1, p.BestStage)
	assert.Equal(t, 0, p.TotalBladesThrown)
	assert.Equal(t, 12, p.TotalGamesPlayed)
	assert.Equal(t, 0, p.DailyStreak, "streak dropped with an unreadable date")
	assert.True(t, p.LastDailyRewardDate.IsZero())
}

func TestDecodeProfile_NumericErrorUnwraps(t *testing.T) {
	_, errs := DecodeProfile(Record{KeyCoins: "abc"})
	require.Len(t, errs, 1)

	var numErr *strconv.NumError
	assert.True(t, errors.As(errs[0], &numErr))
	assert.Contains(t, errs[0].Error(), "coins")
}

func TestDecodeProfile_EquippedMustBeUnlocked(t *testing.T) {
	p, errs := DecodeProfile(Record{
		KeyUnlockedSkins: "classic,steel",
		KeyEquippedSkin:  "dragon",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, KeyEquippedSkin, errs[0].Key)
	assert.Equal(t, DefaultSkin, p.EquippedSkin)
	assert.True(t, p.OwnsSkin("steel"))
}

func TestDecodeProfile_DefaultSkinAlwaysOwned(t *testing.T) {
	p, errs := DecodeProfile(Record{KeyUnlockedSkins: "gold", KeyEquippedSkin: "GOLD"})
	assert.Empty(t, errs)
	assert.True(t, p.OwnsSkin(DefaultSkin))
	assert.Equal(t, SkinID("gold"), p.EquippedSkin)
}

func TestDecodeProfile_ListsTolerateBlanks(t *testing.T) {
	p, errs := DecodeProfile(Record{KeyAchievements: " first_blood, ,veteran,"})
	assert.Empty(t, errs)
	assert.Equal(t, []AchievementID{"first_blood", "veteran"}, p.AchievementList())
}
