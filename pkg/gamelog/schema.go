package gamelog

import "fmt"

// Redis key pattern helpers
//
// All keys and Pub/Sub channels are namespaced by game id so several games
// can share one Redis server.
//
// Key pattern: fuse:{game_id}:{entity}

// LogKey returns the Redis key of a game's action log list.
// Pattern: fuse:{game_id}:log
func LogKey(gameID string) string {
	return fmt.Sprintf("fuse:%s:log", gameID)
}

// LogEventsChannel returns the Pub/Sub channel announcing saved logs.
// Pattern: fuse:{game_id}:log_events
func LogEventsChannel(gameID string) string {
	return fmt.Sprintf("fuse:%s:log_events", gameID)
}
