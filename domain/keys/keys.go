package keys

import (
	"strings"
)

const (
	// PfxRoyalty prefixes cached royalty lookups, one per collection
	PfxRoyalty = "royalty"
	// PfxRelayerLock is the lease held by the relayer sending outbox records
	PfxRelayerLock = "relayerlock"
	// PfxHealthCheck is the key pinged by the health check
	PfxHealthCheck = "healthcheck"
)

// RedisKey joins components with ":"
func RedisKey(components ...string) string {
	return strings.Join(components, ":")
}

// GetPrefix returns the key without its last component, at most two
// components deep. It tags cache metrics, so it stays low cardinality.
func GetPrefix(key string) string {
	s := strings.SplitN(key, ":", 3)
	switch len(s) {
	case 3:
		return s[0] + ":" + s[1]
	case 2:
		return s[0]
	}
	return ""
}
