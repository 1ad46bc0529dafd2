package redis

import "fmt"

// Key prefix for all session-scoped data
const keyPrefix = "numguess"

// sessionKey returns the Redis key for a Session
func sessionKey(token string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, token)
}

// gameStateKey returns the Redis key for a session's GameState
func gameStateKey(token string) string {
	return fmt.Sprintf("%s:game_state:%s", keyPrefix, token)
}
