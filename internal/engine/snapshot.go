package engine

// Snapshot is a read-only copy of everything a renderer needs. Taking one
// never changes the simulation, and mutating one never reaches back.
type Snapshot struct {
	Tick  int64
	State State

	Level           int
	IsBoss          bool
	BladesRequired  int
	BladesRemaining int
	Score           int
	CanRevive       bool
	RevivePending   bool
	GamesPlayed     int

	Coins        int
	SessionCoins int
	BestStage    int
	EquippedSkin string

	Target  Target
	Blade   ThrownBlade
	Effects Effects
}

// Snapshot copies the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	p := e.econ.Profile()
	tg := e.target
	tg.Blades = append([]Blade(nil), e.target.Blades...)
	tg.Pickups = append([]Pickup(nil), e.target.Pickups...)

	return Snapshot{
		Tick:            e.clock.Current(),
		State:           e.session.State,
		Level:           e.session.Level,
		IsBoss:          e.level.IsBoss,
		BladesRequired:  e.level.BladesRequired,
		BladesRemaining: e.session.BladesRemaining,
		Score:           e.session.Score,
		CanRevive:       e.session.CanRevive,
		RevivePending:   e.revivePending,
		GamesPlayed:     e.session.GamesPlayed,
		Coins:           p.Coins,
		SessionCoins:    e.econ.SessionCoins(),
		BestStage:       p.BestStage,
		EquippedSkin:    string(p.EquippedSkin),
		Target:          tg,
		Blade:           e.blade,
		Effects:         e.effects.clone(),
	}
}
