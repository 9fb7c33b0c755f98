package crawl_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/netkit/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_Pop_returns_entries_in_insertion_order(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push("https://example.com/", 0)
	f.Push("https://example.com/a", 1)
	f.Push("https://example.com/b", 1)

	entry, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, crawl.Entry{URL: "https://example.com/", Depth: 0}, entry)

	entry, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, crawl.Entry{URL: "https://example.com/a", Depth: 1}, entry)

	entry, ok = f.Pop()
	require.True(t, ok)
	assert.Equal(t, crawl.Entry{URL: "https://example.com/b", Depth: 1}, entry)

	_, ok = f.Pop()
	assert.False(t, ok, "pop on empty frontier should return false")
}

func TestFrontier_Push_accepts_duplicates(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	f.Push("https://example.com/a", 1)
	f.Push("https://example.com/a", 1)

	assert.Equal(t, 2, f.Len())
}

func TestFrontier_Len_tracks_queue_size(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	assert.Equal(t, 0, f.Len(), "new frontier should be empty")

	f.Push("https://example.com/a", 0)
	f.Push("https://example.com/b", 1)
	assert.Equal(t, 2, f.Len())

	f.Pop()
	assert.Equal(t, 1, f.Len())

	f.Pop()
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_keeps_order_across_compaction(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier()
	const total = 5000
	for i := 0; i < total; i++ {
		f.Push(fmt.Sprintf("https://example.com/%d", i), i)
	}

	// Interleave pops and pushes so the consumed prefix gets reclaimed
	// while entries are still queued.
	for i := 0; i < total; i++ {
		entry, ok := f.Pop()
		require.True(t, ok)
		require.Equal(t, i, entry.Depth)
		if i%2 == 0 {
			f.Push(fmt.Sprintf("https://example.com/x%d", i), total+i/2)
		}
	}

	for i := 0; i < total/2; i++ {
		entry, ok := f.Pop()
		require.True(t, ok)
		require.Equal(t, total+i, entry.Depth)
	}
	assert.Equal(t, 0, f.Len())
}
