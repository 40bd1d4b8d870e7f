package testutil

import "sync"

// FakeMonetization counts ad requests.
//
// With AutoGrant set, rewarded ads call their callback immediately;
// otherwise callbacks are held until Grant.
type FakeMonetization struct {
	mu            sync.Mutex
	interstitials int
	rewarded      int
	held          []func()

	AutoGrant bool
}

// ShowInterstitial counts the request.
func (f *FakeMonetization) ShowInterstitial() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interstitials++
}

// ShowRewarded counts the request and grants or holds the callback.
func (f *FakeMonetization) ShowRewarded(done func()) {
	f.mu.Lock()
	f.rewarded++
	if !f.AutoGrant {
		f.held = append(f.held, done)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	done()
}

// Grant fires every held rewarded callback.
func (f *FakeMonetization) Grant() {
	f.mu.Lock()
	held := f.held
	f.held = nil
	f.mu.Unlock()
	for _, done := range held {
		done()
	}
}

// Interstitials returns the number of interstitial requests.
func (f *FakeMonetization) Interstitials() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.interstitials
}

// Rewarded returns the number of rewarded requests.
func (f *FakeMonetization) Rewarded() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rewarded
}
