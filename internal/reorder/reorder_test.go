package reorder

import (
	"context"
	"errors"
	"testing"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id    string
	index int
}

func (i *item) ItemID() string       { return i.id }
func (i *item) SetOrderIndex(n int)  { i.index = n }

func items(ids ...string) []*item {
	out := make([]*item, len(ids))
	for i, id := range ids {
		out[i] = &item{id: id, index: i}
	}
	return out
}

func ids(list []*item) []string {
	out := make([]string, len(list))
	for i, it := range list {
		out[i] = it.id
	}
	return out
}

func TestMove_LastToFront(t *testing.T) {
	list := items("A", "B", "C")

	order, ok := Move(list, 2, 0)
	require.True(t, ok)

	assert.Equal(t, []string{"C", "A", "B"}, ids(list))
	require.Len(t, order, 3)
	assert.Equal(t, api.OrderEntry{ID: "C", OrderIndex: 0}, order[0])
	assert.Equal(t, api.OrderEntry{ID: "A", OrderIndex: 1}, order[1])
	assert.Equal(t, api.OrderEntry{ID: "B", OrderIndex: 2}, order[2])
}

func TestMove_AlwaysContiguousZeroBased(t *testing.T) {
	tests := []struct {
		name     string
		src, dst int
	}{
		{"forward", 0, 3},
		{"backward", 3, 0},
		{"middle", 1, 2},
		{"same", 2, 2},
		{"adjacent", 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list := items("a", "b", "c", "d", "e")
			order, ok := Move(list, tc.src, tc.dst)
			require.True(t, ok)
			require.Len(t, order, 5)
			for i, it := range list {
				assert.Equal(t, i, it.index, "order_index must equal position")
				assert.Equal(t, it.id, order[i].ID)
				assert.Equal(t, i, order[i].OrderIndex)
			}
		})
	}
}

func TestMove_NoopWhenEqualIndices(t *testing.T) {
	list := items("A", "B", "C")
	_, ok := Move(list, 1, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, ids(list))
}

func TestMove_OutOfBounds(t *testing.T) {
	list := items("A", "B")
	_, ok := Move(list, 2, 0)
	assert.False(t, ok)
	_, ok = Move(list, 0, -1)
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "B"}, ids(list))
}

func TestApply_OptimisticBeforePersistence(t *testing.T) {
	list := items("A", "B", "C")
	started := make(chan struct{})
	release := make(chan struct{})

	done, ok := Apply(NewEngine(nil), list, 2, 0, func(ctx context.Context, order []api.OrderEntry) error {
		close(started)
		<-release
		return nil
	})
	require.True(t, ok)

	// Local order is already reindexed while persistence is still in flight.
	<-started
	assert.Equal(t, []string{"C", "A", "B"}, ids(list))

	close(release)
	<-done
}

func TestApply_PersistenceFailureKeepsLocalOrder(t *testing.T) {
	list := items("A", "B", "C")

	done, ok := Apply(NewEngine(nil), list, 0, 2, func(ctx context.Context, order []api.OrderEntry) error {
		return errors.New("server exploded")
	})
	require.True(t, ok)
	<-done

	// Fire-and-forget: no rollback, no surfaced error.
	assert.Equal(t, []string{"B", "C", "A"}, ids(list))
	for i, it := range list {
		assert.Equal(t, i, it.index)
	}
}

func TestApply_CarriesFullMapping(t *testing.T) {
	list := items("x", "y", "z", "w")
	var got []api.OrderEntry
	captured := make(chan struct{})

	done, ok := Apply(NewEngine(nil), list, 1, 3, func(ctx context.Context, order []api.OrderEntry) error {
		got = order
		close(captured)
		return nil
	})
	require.True(t, ok)
	<-captured
	<-done

	// Every element is in the payload, not just the moved one.
	require.Len(t, got, 4)
	seen := map[string]int{}
	for _, e := range got {
		seen[e.ID] = e.OrderIndex
	}
	assert.Equal(t, map[string]int{"x": 0, "z": 1, "w": 2, "y": 3}, seen)
}
