package cache

import "time"

// IncentivesCache holds the computed incentive payout view of an auction.
// Payouts never change once the auction has settled, so entries stay until
// explicitly invalidated.
type IncentivesCache struct {
	cache *Cache
}

const (
	incentivesCacheSize = 32

	noExpiration time.Duration = 0
)

// NewIncentivesCache creates a new incentives cache.
func NewIncentivesCache() *IncentivesCache {
	return &IncentivesCache{
		cache: New(incentivesCacheSize, noExpiration),
	}
}

// NewNoOpIncentivesCache creates a new incentives cache that does nothing.
func NewNoOpIncentivesCache() *IncentivesCache {
	return &IncentivesCache{}
}

// CreateIncentivesCache creates a new incentives cache depending on the value of isEnabled.
// If isEnabled is true, it will return a new incentives cache.
// If isEnabled is false, it will return a new no-op incentives cache.
func CreateIncentivesCache(isEnabled bool) *IncentivesCache {
	if isEnabled {
		return NewIncentivesCache()
	}
	return NewNoOpIncentivesCache()
}

// Set adds an item to the cache with a specified key and value.
// If the incentives cache is not enabled, it will silently ignore the call.
func (i *IncentivesCache) Set(key string, value interface{}) {
	if i.cache == nil {
		return
	}

	i.cache.Set(key, value)
}

// Get retrieves the value associated with a key from the cache. Returns false if the key does not exist.
// If the incentives cache is not enabled, it will silently ignore the call.
func (i *IncentivesCache) Get(key string) (interface{}, bool) {
	if i.cache == nil {
		return nil, false
	}

	return i.cache.Get(key)
}

// Delete removes an item from the cache.
// If the incentives cache is not enabled, it will silently ignore the call.
func (i *IncentivesCache) Delete(key string) {
	if i.cache == nil {
		return
	}

	i.cache.Delete(key)
}
