package model

// Target bounds for a round. The secret number is drawn uniformly from
// [TargetMin, TargetMax] inclusive.
const (
	TargetMin = 0
	TargetMax = 100
)

// GameState is the per-session state of the guessing game. It lives in
// the session storage backend, keyed by session token, and is destroyed
// with the session. It is never persisted to the relational store.
type GameState struct {
	Target   int `json:"target"`
	Attempts int `json:"attempts"`
}

// InRange reports whether n is a permissible guess
func InRange(n int) bool {
	return n >= TargetMin && n <= TargetMax
}
