package service

import "time"

// ResendState is the per-user verification bookkeeping carried on the user
// row: last send time, sends inside the current window, and a hard cooldown.
type ResendState struct {
	LastSent      *time.Time
	RequestCount  int
	CooldownUntil *time.Time
}

// ResendPolicy decides whether another verification email may go out and
// advances the counters when one does. The clock is injected so the window
// arithmetic is testable without sleeping.
type ResendPolicy struct {
	MaxPerWindow int
	MinInterval  time.Duration
	Cooldown     time.Duration
	Now          func() time.Time
}

func DefaultResendPolicy() *ResendPolicy {
	return &ResendPolicy{
		MaxPerWindow: 3,
		MinInterval:  time.Minute,
		Cooldown:     time.Hour,
		Now:          time.Now,
	}
}

// CanResend applies the sliding policy: a live cooldown blocks everything;
// under the per-window maximum a send is allowed once MinInterval has
// passed since the previous one.
func (p *ResendPolicy) CanResend(state ResendState) bool {
	now := p.Now()

	if state.CooldownUntil != nil && now.Before(*state.CooldownUntil) {
		return false
	}

	if state.RequestCount < p.MaxPerWindow {
		if state.LastSent != nil && now.Sub(*state.LastSent) < p.MinInterval {
			return false
		}
		return true
	}

	return false
}

// MarkSent returns the state after a successful send. An elapsed cooldown
// resets the counter first; reaching MaxPerWindow starts a fresh cooldown
// and zeroes the counter so the next window starts clean.
func (p *ResendPolicy) MarkSent(state ResendState) ResendState {
	now := p.Now()

	if state.CooldownUntil != nil && !now.Before(*state.CooldownUntil) {
		state.RequestCount = 0
		state.CooldownUntil = nil
	}

	state.LastSent = &now
	state.RequestCount++

	if state.RequestCount >= p.MaxPerWindow {
		cooldown := now.Add(p.Cooldown)
		state.CooldownUntil = &cooldown
		state.RequestCount = 0
	}

	return state
}
