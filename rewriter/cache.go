package rewriter

import (
	"fmt"
	"strings"
)

// CachePolicy tells the transport how to use cached responses.
type CachePolicy int

const (
	// UseProtocolCachePolicy follows the caching rules of the protocol.
	UseProtocolCachePolicy CachePolicy = iota
	// ReloadIgnoringLocalCacheData skips local caches.
	ReloadIgnoringLocalCacheData
	// ReloadIgnoringLocalAndRemoteCacheData skips local and intermediate caches.
	ReloadIgnoringLocalAndRemoteCacheData
	// ReturnCacheDataElseLoad accepts stale cached data before loading.
	ReturnCacheDataElseLoad
	// ReturnCacheDataDontLoad only answers from cache.
	ReturnCacheDataDontLoad
)

var cachePolicyNames = map[CachePolicy]string{
	UseProtocolCachePolicy:                "protocol",
	ReloadIgnoringLocalCacheData:          "reload",
	ReloadIgnoringLocalAndRemoteCacheData: "reload-all",
	ReturnCacheDataElseLoad:               "cache-else-load",
	ReturnCacheDataDontLoad:               "cache-only",
}

func (p CachePolicy) String() string {
	if name, ok := cachePolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("CachePolicy(%d)", int(p))
}

// ParseCachePolicy parses the names returned by CachePolicy.String. An empty
// string yields UseProtocolCachePolicy.
func ParseCachePolicy(s string) (CachePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return UseProtocolCachePolicy, nil
	}
	for policy, name := range cachePolicyNames {
		if name == s {
			return policy, nil
		}
	}
	return UseProtocolCachePolicy, fmt.Errorf("unknown cache policy: %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (p CachePolicy) MarshalText() ([]byte, error) {
	if _, ok := cachePolicyNames[p]; !ok {
		return nil, fmt.Errorf("unknown cache policy: %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *CachePolicy) UnmarshalText(text []byte) error {
	policy, err := ParseCachePolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

// cacheControl maps the policy onto request cache directives.
func (p CachePolicy) cacheControl() (cacheControl, pragma string) {
	switch p {
	case ReloadIgnoringLocalCacheData:
		return "no-cache", ""
	case ReloadIgnoringLocalAndRemoteCacheData:
		return "no-cache, no-store", "no-cache"
	case ReturnCacheDataElseLoad:
		return "max-stale", ""
	case ReturnCacheDataDontLoad:
		return "only-if-cached, max-stale", ""
	default:
		return "", ""
	}
}
