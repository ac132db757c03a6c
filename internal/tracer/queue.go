package tracer

import "container/heap"

// processQueue is a min-heap of ProcessItem ordered by EligibleAt
// (earliest first). It backs C4 (the Process Queue component): pending
// fetch work items waiting for their retry delay to elapse.
type processQueue struct {
	items []*ProcessItem
}

func newProcessQueue() *processQueue {
	pq := &processQueue{}
	heap.Init(pq)
	return pq
}

func (pq *processQueue) Len() int { return len(pq.items) }

func (pq *processQueue) Less(i, j int) bool {
	return pq.items[i].EligibleAt < pq.items[j].EligibleAt
}

func (pq *processQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

func (pq *processQueue) Push(x any) {
	pq.items = append(pq.items, x.(*ProcessItem))
}

func (pq *processQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	pq.items = old[:n-1]
	return item
}

// push schedules item for eventual dispatch.
func (pq *processQueue) push(item *ProcessItem) {
	heap.Push(pq, item)
}

// pop removes and returns the earliest-eligible item. Panics if empty;
// callers must check Len() first.
func (pq *processQueue) pop() *ProcessItem {
	return heap.Pop(pq).(*ProcessItem)
}
