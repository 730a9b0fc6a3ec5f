package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// planPrefixLen is how much of the plan hash stays readable inside cache
// keys, enough to spot which plan an entry belongs to when inspecting the
// cache directory.
const planPrefixLen = 12

// stageKey builds the cache key for one pipeline stage:
// <stage>:<plan-prefix>:<sha256(plan hash, options)>. The stage and plan
// prefix are plain text so the file store can shard by stage and record
// provenance without re-deriving anything.
func stageKey(stage, planHash string, opts any) string {
	data, _ := json.Marshal(opts)
	sum := sha256.Sum256(append([]byte(planHash+"|"), data...))

	prefix := planHash
	if len(prefix) > planPrefixLen {
		prefix = prefix[:planPrefixLen]
	}
	return fmt.Sprintf("%s:%s:%s", stage, prefix, hex.EncodeToString(sum[:]))
}

// Hash computes the SHA-256 hex digest of data. Plans are hashed over
// their canonical JSON encoding, so equal plans hash equally.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
