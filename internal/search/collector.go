package search

import (
	"container/heap"
	"sort"
	"strings"
)

type rankedHit struct {
	hit      Hit
	distance int
	prefix   bool
	depth    int
	order    int
}

type hitMaxHeap []rankedHit

func (h hitMaxHeap) Len() int           { return len(h) }
func (h hitMaxHeap) Less(i, j int) bool { return compareRanked(h[i], h[j]) > 0 }
func (h hitMaxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *hitMaxHeap) Push(x any) {
	*h = append(*h, x.(rankedHit))
}

func (h *hitMaxHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// topCollector keeps the best max hits seen so far. The heap root is the
// worst retained hit so a better candidate can replace it in O(log n).
type topCollector struct {
	max   int
	worst hitMaxHeap
	seen  int
}

func newTopCollector(max int) *topCollector {
	if max <= 0 {
		max = DefaultMaxResults
	}
	tc := &topCollector{
		max:   max,
		worst: make(hitMaxHeap, 0, max),
	}
	heap.Init(&tc.worst)
	return tc
}

func (tc *topCollector) Store(rh rankedHit) {
	rh.order = tc.seen
	tc.seen++

	if tc.worst.Len() < tc.max {
		heap.Push(&tc.worst, rh)
		return
	}
	if compareRanked(rh, tc.worst[0]) >= 0 {
		return
	}
	heap.Pop(&tc.worst)
	heap.Push(&tc.worst, rh)
}

// Merge folds another collector's retained hits into tc.
func (tc *topCollector) Merge(other *topCollector) {
	for _, rh := range other.worst {
		tc.Store(rh)
	}
}

func (tc *topCollector) Results() []Hit {
	ranked := make([]rankedHit, tc.worst.Len())
	copy(ranked, tc.worst)
	sort.Slice(ranked, func(i, j int) bool {
		return compareRanked(ranked[i], ranked[j]) < 0
	})

	hits := make([]Hit, len(ranked))
	for i, rh := range ranked {
		hits[i] = rh.hit
	}
	return hits
}

// compareRanked orders by edit distance, then prefix matches, then
// shallower paths, then path text.
func compareRanked(a, b rankedHit) int {
	if diff := compareInt(a.distance, b.distance); diff != 0 {
		return diff
	}
	if a.prefix != b.prefix {
		if a.prefix {
			return -1
		}
		return 1
	}
	if diff := compareInt(a.depth, b.depth); diff != 0 {
		return diff
	}
	if diff := strings.Compare(string(a.hit.Item.FullPath), string(b.hit.Item.FullPath)); diff != 0 {
		return diff
	}
	return compareInt(a.order, b.order)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
