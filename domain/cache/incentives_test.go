package cache_test

import (
	"testing"

	"github.com/whetstoneresearch/doppler-sub006/domain/cache"
)

func TestIncentivesCache_Set(t *testing.T) {
	tests := []struct {
		name           string
		isEnabled      bool
		key            string
		value          interface{}
		expectedExists bool
		expectedValue  interface{}
	}{
		{
			name:           "Cache Enabled - Set Value",
			isEnabled:      true,
			key:            "key1",
			value:          "value1",
			expectedExists: true,
			expectedValue:  "value1",
		},
		{
			name:           "Cache Disabled - Set Value",
			isEnabled:      false,
			key:            "key2",
			value:          "value2",
			expectedExists: false,
			expectedValue:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := cache.CreateIncentivesCache(tt.isEnabled)
			i.Set(tt.key, tt.value)

			value, exists := i.Get(tt.key)
			if exists != tt.expectedExists {
				t.Errorf("Expected key %s to exist: %v, got: %v", tt.key, tt.expectedExists, exists)
			}

			if value != tt.expectedValue {
				t.Errorf("Expected value for key %s: %v, got: %v", tt.key, tt.expectedValue, value)
			}
		})
	}
}

func TestIncentivesCache_Get(t *testing.T) {
	i := cache.NewIncentivesCache()
	i.Set("key1", "value1")
	i.Set("key2", "value2")

	tests := []struct {
		name           string
		key            string
		expectedValue  interface{}
		expectedExists bool
	}{
		{
			name:           "Key Exists",
			key:            "key1",
			expectedValue:  "value1",
			expectedExists: true,
		},
		{
			name:           "Key Does Not Exist",
			key:            "key3",
			expectedValue:  nil,
			expectedExists: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, exists := i.Get(tt.key)

			if value != tt.expectedValue || exists != tt.expectedExists {
				t.Errorf("Got (%v, %v), expected (%v, %v)", value, exists, tt.expectedValue, tt.expectedExists)
			}
		})
	}
}

func TestIncentivesCache_Delete(t *testing.T) {
	i := cache.NewIncentivesCache()
	i.Set("key1", "value1")
	i.Set("key2", "value2")

	tests := []struct {
		name           string
		key            string
		expectedExists bool
		expectedValue  interface{}
	}{
		{
			name:           "Delete Key",
			key:            "key1",
			expectedExists: false,
			expectedValue:  nil,
		},
		{
			name:           "Delete Non-Existing Key",
			key:            "key3",
			expectedExists: false,
			expectedValue:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i.Delete(tt.key)

			value, exists := i.Get(tt.key)
			if exists != tt.expectedExists {
				t.Errorf("Expected key %s to exist: %v, got: %v", tt.key, tt.expectedExists, exists)
			}

			if value != tt.expectedValue {
				t.Errorf("Expected value for key %s: %v, got: %v", tt.key, tt.expectedValue, value)
			}
		})
	}
}

func TestCache_SetGetDelete(t *testing.T) {
	c := cache.New(4, 0)

	c.Set("a", 1)
	c.Set("b", 2)

	if got := c.Len(); got != 2 {
		t.Fatalf("Expected 2 cached items, got %d", got)
	}

	value, exists := c.Get("a")
	if !exists || value != 1 {
		t.Errorf("Got (%v, %v), expected (1, true)", value, exists)
	}

	c.Delete("a")
	if _, exists := c.Get("a"); exists {
		t.Errorf("Expected key a to be deleted")
	}
}

func TestCache_EvictsBeyondSize(t *testing.T) {
	c := cache.New(2, 0)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if got := c.Len(); got != 2 {
		t.Fatalf("Expected size cap of 2, got %d", got)
	}

	// The oldest entry is the one evicted.
	if _, exists := c.Get("a"); exists {
		t.Errorf("Expected key a to be evicted")
	}
	if _, exists := c.Get("c"); !exists {
		t.Errorf("Expected key c to survive")
	}
}
