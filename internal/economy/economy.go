package economy

// CoinAward is emitted whenever coins are credited; the engine turns it
// into a coin popup for rendering.
type CoinAward struct {
	Amount int
	Total  int
}

// Progress carries run counters flushed into the profile at a checkpoint.
type Progress struct {
	BladesThrown int
	Pickups      int
	GamesPlayed  int
}

// Economy owns a Profile and applies every change to it.
type Economy struct {
	profile      Profile
	catalog      Catalog
	achievements []Achievement
	dailyTable   []int
	sessionCoins int
}

// Option configures an Economy.
type Option func(*Economy)

// WithCatalog replaces the skin catalog.
func WithCatalog(c Catalog) Option {
	return func(e *Economy) {
		e.catalog = c
	}
}

// WithAchievements replaces the achievement table.
func WithAchievements(a []Achievement) Option {
	return func(e *Economy) {
		e.achievements = append([]Achievement(nil), a...)
	}
}

// WithDailyTable replaces the daily reward table.
func WithDailyTable(table []int) Option {
	return func(e *Economy) {
		e.dailyTable = append([]int(nil), table...)
	}
}

// New creates an Economy over a copy of p.
func New(p Profile, opts ...Option) *Economy {
	e := &Economy{
		profile:      p.Clone(),
		catalog:      DefaultCatalog(),
		achievements: DefaultAchievements(),
		dailyTable:   append([]int(nil), DefaultDailyTable...),
	}
	if e.profile.UnlockedSkins == nil || len(e.profile.UnlockedSkins) == 0 {
		e.profile.UnlockedSkins = map[SkinID]bool{DefaultSkin: true}
	}
	if e.profile.EquippedSkin == "" {
		e.profile.EquippedSkin = DefaultSkin
	}
	if e.profile.BestStage < 1 {
		e.profile.BestStage = 1
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Profile returns a copy of the current profile.
func (e *Economy) Profile() Profile {
	return e.profile.Clone()
}

// Record encodes the current profile for storage.
func (e *Economy) Record() Record {
	return EncodeProfile(e.profile)
}

// Catalog returns the skin catalog.
func (e *Economy) Catalog() Catalog {
	return e.catalog
}

// SessionCoins returns coins credited since the last ResetSession.
func (e *Economy) SessionCoins() int {
	return e.sessionCoins
}

// ResetSession zeroes the session coin total at the start of a run.
func (e *Economy) ResetSession() {
	e.sessionCoins = 0
}

// AwardCoins credits the session total and the durable total.
// Non-positive amounts are ignored and return a zero award.
func (e *Economy) AwardCoins(amount int) CoinAward {
	if amount <= 0 {
		return CoinAward{Total: e.profile.Coins}
	}
	e.sessionCoins += amount
	e.profile.Coins += amount
	return CoinAward{Amount: amount, Total: e.profile.Coins}
}

// AddProgress folds run counters into the cumulative totals.
func (e *Economy) AddProgress(p Progress) {
	if p.BladesThrown > 0 {
		e.profile.TotalBladesThrown += p.BladesThrown
	}
	if p.Pickups > 0 {
		e.profile.TotalPickupsCollected += p.Pickups
	}
	if p.GamesPlayed > 0 {
		e.profile.TotalGamesPlayed += p.GamesPlayed
	}
}

// UpdateBestStage raises the best-stage high-water mark.
// Returns true if level set a new record.
func (e *Economy) UpdateBestStage(level int) bool {
	if level > e.profile.BestStage {
		e.profile.BestStage = level
		return true
	}
	return false
}

// EvaluateAchievements unlocks every achievement whose predicate holds and
// pays its reward. Already unlocked achievements are skipped, so calling it
// again with an unchanged profile unlocks and pays nothing.
func (e *Economy) EvaluateAchievements() []Unlock {
	var unlocked []Unlock
	for _, a := range e.achievements {
		id := AchievementID(NormalizeID(string(a.ID)))
		if e.profile.Achievements[id] || a.Met == nil || !a.Met(e.profile) {
			continue
		}
		e.profile.Achievements[id] = true
		e.AwardCoins(a.Reward)
		unlocked = append(unlocked, Unlock{ID: id, Reward: a.Reward})
	}
	return unlocked
}

// PurchaseSkin buys (or re-selects) a skin at the given price.
//
// An owned skin is equipped for free. An unowned skin costs price coins and
// fails with ErrInsufficientFunds, leaving the profile untouched, when the
// balance is short.
func (e *Economy) PurchaseSkin(id SkinID, price int) error {
	id = NormalizeSkin(string(id))
	if e.profile.UnlockedSkins[id] {
		e.profile.EquippedSkin = id
		return nil
	}
	if price < 0 {
		price = 0
	}
	if e.profile.Coins < price {
		return newInsufficientFunds(id, price, e.profile.Coins)
	}
	e.profile.Coins -= price
	e.profile.UnlockedSkins[id] = true
	e.profile.EquippedSkin = id
	return nil
}

// Purchase buys a catalog skin at its listed price.
func (e *Economy) Purchase(id SkinID) (Skin, error) {
	skin, ok := e.catalog.Lookup(id)
	if !ok {
		return Skin{}, &Error{
			Code:    CodeUnknownSkin,
			Message: "no such skin: " + string(id),
			Details: map[string]string{"skin": string(id)},
		}
	}
	return skin, e.PurchaseSkin(skin.ID, skin.Price)
}
