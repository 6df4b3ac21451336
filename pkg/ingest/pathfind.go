// pkg/ingest/pathfind.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ingest

import (
	"container/heap"
	"fmt"

	"github.com/google/uuid"
)

// shortestPath reconstructs the chain of segment UUIDs from start to
// end over route's segment graph, when no single segment connects them
// directly. The graph is small (one route's worth of segments) and
// static per call, so a plain binary-heap Dijkstra over
// container/heap is the straightforward fit — there's no adjacency
// structure worth precomputing across calls.
func shortestPath(edges []SegmentEdge, start, end uuid.UUID) ([]uuid.UUID, error) {
	if start == end {
		return nil, fmt.Errorf("pathfind: start and end are the same point")
	}

	adj := make(map[uuid.UUID][]adjEdge)
	for _, e := range edges {
		adj[e.Start] = append(adj[e.Start], adjEdge{to: e.End, segment: e.Segment, weight: e.LengthMetres})
		adj[e.End] = append(adj[e.End], adjEdge{to: e.Start, segment: e.Segment, weight: e.LengthMetres})
	}

	dist := map[uuid.UUID]float64{start: 0}
	prevSegment := map[uuid.UUID]uuid.UUID{}
	prevNode := map[uuid.UUID]uuid.UUID{}
	visited := map[uuid.UUID]bool{}

	pq := &pointQueue{{node: start, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pointDist)
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == end {
			break
		}
		for _, e := range adj[cur.node] {
			if visited[e.to] {
				continue
			}
			nd := cur.dist + e.weight
			if d, ok := dist[e.to]; !ok || nd < d {
				dist[e.to] = nd
				prevNode[e.to] = cur.node
				prevSegment[e.to] = e.segment
				heap.Push(pq, pointDist{node: e.to, dist: nd})
			}
		}
	}

	if !visited[end] {
		return nil, fmt.Errorf("pathfind: no route segment chain connects start to end")
	}

	var chain []uuid.UUID
	for n := end; n != start; n = prevNode[n] {
		chain = append([]uuid.UUID{prevSegment[n]}, chain...)
	}
	return chain, nil
}

type adjEdge struct {
	to      uuid.UUID
	segment uuid.UUID
	weight  float64
}

type pointDist struct {
	node uuid.UUID
	dist float64
}

// pointQueue is a min-heap of pointDist ordered by dist, implementing
// container/heap.Interface.
type pointQueue []pointDist

func (q pointQueue) Len() int            { return len(q) }
func (q pointQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q pointQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *pointQueue) Push(x any)         { *q = append(*q, x.(pointDist)) }
func (q *pointQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
