package datastructure

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	pq := NewFourAryHeap[int64]()
	pq.Insert(NewPriorityQueueNode(3.0, 0, int64(3)))
	pq.Insert(NewPriorityQueueNode(1.0, 0, int64(1)))
	pq.Insert(NewPriorityQueueNode(2.0, 0, int64(2)))

	for _, want := range []int64{1, 2, 3} {
		item, err := pq.ExtractMin()
		require.NoError(t, err)
		require.Equal(t, want, item.GetItem())
	}
	require.True(t, pq.IsEmpty())
}

func TestMinHeapTieBreakPrefersLargerTie(t *testing.T) {
	// equal rank: the entry with the larger accumulated cost must pop first
	pq := NewFourAryHeap[int64]()
	pq.Insert(NewPriorityQueueNode(5.0, 1.0, int64(1)))
	pq.Insert(NewPriorityQueueNode(5.0, 4.0, int64(2)))
	pq.Insert(NewPriorityQueueNode(5.0, 2.0, int64(3)))

	item, err := pq.ExtractMin()
	require.NoError(t, err)
	require.Equal(t, int64(2), item.GetItem())
}

func TestMinHeapDecreaseKey(t *testing.T) {
	pq := NewFourAryHeap[int64]()
	pq.Insert(NewPriorityQueueNode(10.0, 0, int64(1)))
	big := NewPriorityQueueNode(50.0, 0, int64(2))
	pq.Insert(big)

	require.NoError(t, pq.DecreaseKey(big, 5.0, 1.0))

	item, err := pq.ExtractMin()
	require.NoError(t, err)
	require.Equal(t, int64(2), item.GetItem())

	// increasing the key is rejected
	small := NewPriorityQueueNode(1.0, 0, int64(3))
	pq.Insert(small)
	require.Error(t, pq.DecreaseKey(small, 100.0, 0))

	// a popped entry can no longer be decreased
	require.Error(t, pq.DecreaseKey(item, 1.0, 0))
}
