package payment

import "math/rand"

// Gateway decides whether a charge succeeds given the amount, the paying
// user, and the submitted wallet details. Implementations stand in for an
// external payment provider.
type Gateway interface {
	Process(amount float64, userID, walletNumber, paymentDetails string) bool
}

// Simulated is a stand-in gateway: a well-formed request (10-digit wallet
// number, non-empty details) succeeds 75% of the time, anything else is
// refused outright.
type Simulated struct {
	rng func() float64
}

// NewSimulated creates a Simulated gateway backed by math/rand.
func NewSimulated() *Simulated {
	return &Simulated{rng: rand.Float64}
}

// NewSimulatedWithRand creates a Simulated gateway with an injected random
// source, so tests can force either outcome.
func NewSimulatedWithRand(rng func() float64) *Simulated {
	return &Simulated{rng: rng}
}

// Process implements Gateway.
func (g *Simulated) Process(amount float64, userID, walletNumber, paymentDetails string) bool {
	if len(walletNumber) != 10 || !isDigits(walletNumber) || paymentDetails == "" {
		return false
	}
	return g.rng() < 0.75
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
