package geometry

import (
	gomath "math"

	gmath "grinder/pkg/math"
)

const bvhMaxDepth = 40
const bvhLeafThreshold = 2

// BVHNode is either an internal node (Count == 0, Left/Right index into
// the owning BVH's Nodes array) or a leaf (Count > 0, covering
// PrimIndices[First:First+Count]).
type BVHNode struct {
	Box         gmath.AABB
	Left, Right int
	First       int
	Count       int
}

func (n *BVHNode) isLeaf() bool { return n.Count > 0 }

// BVH is a flat, index-addressed bounding volume hierarchy built once over
// a fixed set of primitives. Nodes live in a contiguous slice and are
// referenced by position, never by pointer, so the structure is trivially
// shareable read-only across render workers.
type BVH struct {
	Nodes       []BVHNode
	PrimIndices []int
	Prims       []Primitive
}

// BuildBVH constructs the hierarchy over prims. Construction is
// single-threaded; the returned BVH is safe for concurrent read-only
// traversal afterward.
func BuildBVH(prims []Primitive) *BVH {
	b := &BVH{
		Prims:       prims,
		PrimIndices: make([]int, len(prims)),
		Nodes:       make([]BVHNode, 0, 2*len(prims)+1),
	}
	for i := range b.PrimIndices {
		b.PrimIndices[i] = i
	}
	if len(prims) == 0 {
		return b
	}
	b.build(0, len(prims), 0)
	return b
}

func (b *BVH) boundsOf(start, end int) gmath.AABB {
	box := gmath.EmptyAABB()
	for i := start; i < end; i++ {
		pb := b.Prims[b.PrimIndices[i]].Bounds()
		box = box.ExpandPoint(pb.Min)
		box = box.ExpandPoint(pb.Max)
	}
	return box
}

// build recurses on PrimIndices[start:end], appends the resulting node and
// returns its index in b.Nodes.
func (b *BVH) build(start, end, depth int) int {
	box := b.boundsOf(start, end)
	idx := len(b.Nodes)
	b.Nodes = append(b.Nodes, BVHNode{Box: box})

	count := end - start
	if count <= bvhLeafThreshold || depth > bvhMaxDepth {
		b.Nodes[idx].First = start
		b.Nodes[idx].Count = count
		return idx
	}

	axis := b.splitAxis(box)
	splitPos := box.Min.Component(axis) + (box.Max.Component(axis)-box.Min.Component(axis))/2

	mid := b.partition(start, end, axis, splitPos)
	if mid == start || mid == end {
		mid = start + count/2
		if mid == start || mid == end {
			b.Nodes[idx].First = start
			b.Nodes[idx].Count = count
			return idx
		}
	}

	left := b.build(start, mid, depth+1)
	right := b.build(mid, end, depth+1)
	b.Nodes[idx].Left = left
	b.Nodes[idx].Right = right
	b.Nodes[idx].Count = 0
	return idx
}

// splitAxis picks argmax(extent), tie-broken x, then y, then z.
func (b *BVH) splitAxis(box gmath.AABB) int {
	extent := box.Max.Sub(box.Min)
	axis := 0
	best := extent.X
	if extent.Y > best {
		axis = 1
		best = extent.Y
	}
	if extent.Z > best {
		axis = 2
	}
	return axis
}

// partition reorders PrimIndices[start:end] in place, moving primitives
// whose centroid's chosen-axis coordinate is below splitPos to the front,
// and returns the resulting split point.
func (b *BVH) partition(start, end, axis int, splitPos float64) int {
	i := start
	for j := start; j < end; j++ {
		c := b.Prims[b.PrimIndices[j]].Centroid().Component(axis)
		if c < splitPos {
			b.PrimIndices[i], b.PrimIndices[j] = b.PrimIndices[j], b.PrimIndices[i]
			i++
		}
	}
	return i
}

// Intersect runs closest-hit traversal, writing into hit only if it
// improves on hit's existing closest-so-far cursor. On a full miss, hit.T
// is restored to its value on entry.
func (b *BVH) Intersect(ray gmath.Ray, hit *Hit) bool {
	if len(b.Nodes) == 0 {
		return false
	}
	savedT := hit.T
	if b.intersectNode(0, ray, hit) {
		return true
	}
	hit.T = savedT
	return false
}

func (b *BVH) intersectNode(nodeIdx int, ray gmath.Ray, hit *Hit) bool {
	node := &b.Nodes[nodeIdx]
	if _, _, ok := node.Box.Intersect(ray, 0.001, hit.T); !ok {
		return false
	}

	if node.isLeaf() {
		found := false
		for i := node.First; i < node.First+node.Count; i++ {
			if b.Prims[b.PrimIndices[i]].Intersect(ray, hit) {
				found = true
			}
		}
		return found
	}

	hitLeft := b.intersectNode(node.Left, ray, hit)
	hitRight := b.intersectNode(node.Right, ray, hit)
	return hitLeft || hitRight
}
