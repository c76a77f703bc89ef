package cachemanager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInMemory(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemory[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemory_GetExistingValue(t *testing.T) {
	cache := NewInMemory[string, string]("text-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("widget:1", "if x", DefaultExpiration)

	got, ok := cache.Get("widget:1")
	require.True(t, ok)
	require.Equal(t, "if x", got)
}

func TestInMemory_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemory[string, string]("text-cache", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get("widget:1")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemory_NoExpirationKeepsValue(t *testing.T) {
	cache := NewInMemory[string, string]("text-cache", NoExpiration, DefaultCleanupInterval)
	cache.Set("widget:1", "if x", NoExpiration)

	got, ok := cache.Get("widget:1")
	require.True(t, ok)
	require.Equal(t, "if x", got)
}

func TestInMemory_DeleteRemovesValue(t *testing.T) {
	cache := NewInMemory[string, string]("text-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("widget:1", "if x", DefaultExpiration)
	cache.Delete("widget:1")

	_, ok := cache.Get("widget:1")
	require.False(t, ok)
}

func TestInMemory_FlushDropsEverything(t *testing.T) {
	cache := NewInMemory[string, string]("text-cache", DefaultExpiration, DefaultCleanupInterval)
	cache.Set("widget:1", "if x", DefaultExpiration)
	cache.Set("widget:2", "if y", DefaultExpiration)
	cache.Flush()

	_, ok := cache.Get("widget:1")
	require.False(t, ok)
	_, ok = cache.Get("widget:2")
	require.False(t, ok)
}

type exampleStruct struct {
	ID   int
	Name string
}

func TestInMemory_StructValue(t *testing.T) {
	cache := NewInMemory[string, exampleStruct]("struct-cache", DefaultExpiration, DefaultCleanupInterval)
	example := exampleStruct{ID: 1, Name: "keyword"}
	cache.Set("ex:1", example, DefaultExpiration)

	got, ok := cache.Get("ex:1")
	require.True(t, ok)
	require.Equal(t, example, got)
}
