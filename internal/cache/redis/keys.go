package redis

import "fmt"

// Key prefix for all cached catalog data
const keyPrefix = "gameverse"

// gameKey returns the Redis key for a cached game
func gameKey(id int) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// filtersKey returns the Redis key for the filter vocabulary
func filtersKey() string {
	return fmt.Sprintf("%s:filters", keyPrefix)
}

// suggestionsKey returns the Redis key for an autocomplete query
func suggestionsKey(query string) string {
	return fmt.Sprintf("%s:suggest:%s", keyPrefix, query)
}
