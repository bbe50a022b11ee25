package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVStore(t *testing.T) {
	store := NewKVStore()

	_, ok, err := store.GetItem("user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetItem("user", "a"))
	v, ok, _ := store.GetItem("user")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	require.NoError(t, store.Clear())
	_, ok, _ = store.GetItem("user")
	assert.False(t, ok)
}

func TestKVStore_ConcurrentAccess(t *testing.T) {
	store := NewKVStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			_ = store.SetItem(key, key)
			_, _, _ = store.GetItem(key)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		_, ok, _ := store.GetItem(fmt.Sprintf("k%d", i))
		assert.True(t, ok)
	}
}
