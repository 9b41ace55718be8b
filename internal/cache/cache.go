package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores serialized lookup responses so repeat runs over the same
// post stay inside the collaborator's rate budget.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a claim and its topic
func Key(claim, topic string) string {
	hash := sha256.Sum256([]byte(claim + "\x00" + topic))
	return "statgraft:v1:" + hex.EncodeToString(hash[:])
}
