package learning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanglvm/quickfind/internal/catalog"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(newMockStorage())
	defer tracker.Stop()

	assert.True(t, tracker.IsEnabled())
	assert.Equal(t, 0, tracker.QueueSize())
}

func TestNewTracker_NilStorage(t *testing.T) {
	tracker := NewTracker(nil)
	defer tracker.Stop()

	assert.False(t, tracker.IsEnabled())
	tracker.Enable()
	assert.False(t, tracker.IsEnabled(), "a tracker without storage stays disabled")
	tracker.Track(Interaction{Query: "sort"})
}

func TestNewTracker_InitFailure(t *testing.T) {
	tracker := NewTracker(&errorMockStorage{initErr: errors.New("boom")})
	defer tracker.Stop()

	assert.False(t, tracker.IsEnabled())
	assert.EqualError(t, tracker.InitErr(), "boom")

	tracker.Enable()
	assert.False(t, tracker.IsEnabled(), "storage that failed to initialise stays disabled")

	tracker.Track(NewInteraction("sort", nil))
	assert.Zero(t, tracker.QueueSize())
}

func TestTracker_Track(t *testing.T) {
	store := newMockStorage()
	tracker := NewTracker(store)
	defer tracker.Stop()

	tracker.Track(Interaction{Query: "bubble sort", ItemID: "1", Timestamp: time.Now()})

	assert.Eventually(t, func() bool { return store.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestTracker_TrackSkipsEmptyQuery(t *testing.T) {
	store := newMockStorage()
	tracker := NewTracker(store)

	tracker.Track(Interaction{ItemID: "1"})
	tracker.Stop()

	assert.Equal(t, 0, store.count())
}

func TestTracker_StopDrains(t *testing.T) {
	store := newMockStorage()
	tracker := NewTracker(store)

	for i := 0; i < 25; i++ {
		tracker.Track(Interaction{Query: "heap", Timestamp: time.Now()})
	}
	tracker.Stop()

	assert.Equal(t, 25, store.count())

	// Stop is idempotent.
	tracker.Stop()
}

func TestTracker_Disable(t *testing.T) {
	store := newMockStorage()
	tracker := NewTracker(store)

	tracker.Disable()
	assert.False(t, tracker.IsEnabled())
	tracker.Track(Interaction{Query: "ignored"})

	tracker.Enable()
	assert.True(t, tracker.IsEnabled())
	tracker.Track(Interaction{Query: "kept"})
	tracker.Stop()

	rows, err := store.RecentInteractions(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "kept", rows[0].Query)
}

func TestTracker_TrackNonBlocking(t *testing.T) {
	tracker := NewTracker(newMockStorage())
	defer tracker.Stop()

	start := time.Now()
	for i := 0; i < eventQueueSize+100; i++ {
		tracker.Track(Interaction{Query: "q"})
	}

	assert.Less(t, time.Since(start), time.Second)
	assert.LessOrEqual(t, tracker.QueueSize(), eventQueueSize)
}

func TestTracker_StorageError(t *testing.T) {
	tracker := NewTracker(&errorMockStorage{})

	tracker.Track(Interaction{Query: "q"})
	tracker.Stop()

	assert.True(t, tracker.IsEnabled(), "write errors do not disable the tracker")
}

func TestTracker_Record(t *testing.T) {
	store := newMockStorage()
	tracker := NewTracker(store)
	session := NewSession()

	item := &catalog.Item{ID: "7", Title: "Quick Sort", Category: "Sorting"}
	tracker.Record(session, "  Quick ", item)
	tracker.Stop()

	assert.Equal(t, 1, session.ItemCount("7"))
	rows, err := store.RecentInteractions(1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "quick", rows[0].Query)
	assert.Equal(t, "7", rows[0].ItemID)
	assert.Equal(t, "Sorting", rows[0].Category)
}

func TestInteraction_ToStorage(t *testing.T) {
	now := time.Now()
	event := Interaction{Query: "dfs", ItemID: "2", Category: "graphs", Timestamp: now}

	got := event.ToStorage()

	assert.Equal(t, "dfs", got.Query)
	assert.Equal(t, "2", got.ItemID)
	assert.Equal(t, "graphs", got.Category)
	assert.True(t, got.Timestamp.Equal(now))
	assert.Equal(t, event, fromStorage(got))
}

func TestNewInteraction(t *testing.T) {
	e := NewInteraction("  BFS Search ", nil)
	assert.Equal(t, "bfs search", e.Query)
	assert.Empty(t, e.ItemID)
	assert.Nil(t, e.selected())
	assert.False(t, e.Timestamp.IsZero())
}
