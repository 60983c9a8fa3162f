package ml

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const leafFeature = -1

// impurityEpsilon treats nodes whose summed squared error is below it as pure.
const impurityEpsilon = 1e-12

// Node is one node of a regression tree. Leaves carry Value and have
// Feature == -1; split nodes send rows with x[Feature] <= Threshold left.
type Node struct {
	Value     []float64 `json:"value,omitempty"`
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      int       `json:"left,omitempty"`
	Right     int       `json:"right,omitempty"`
}

// IsLeaf reports whether the node is terminal.
func (n Node) IsLeaf() bool {
	return n.Feature == leafFeature
}

// RegressionTree is a multi-output CART tree grown to purity.
// Nodes are stored in pre-order, so children always follow their parent.
type RegressionTree struct {
	Nodes []Node `json:"nodes"`
}

// fitTree grows a tree over the rows of x and y selected by sample.
// sample may repeat row indices (bootstrap).
func fitTree(x, y *mat.Dense, sample []int) *RegressionTree {
	b := &treeBuilder{x: x, y: y}
	_, outputs := y.Dims()
	b.outputs = outputs
	b.build(sample)
	return &RegressionTree{Nodes: b.nodes}
}

type treeBuilder struct {
	x, y    *mat.Dense
	nodes   []Node
	outputs int
}

func (b *treeBuilder) build(sample []int) int {
	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: leafFeature})

	if len(sample) < 2 || b.sse(sample) <= impurityEpsilon {
		b.nodes[id].Value = b.mean(sample)
		return id
	}

	feature, threshold, ok := b.bestSplit(sample)
	if !ok {
		b.nodes[id].Value = b.mean(sample)
		return id
	}

	left := make([]int, 0, len(sample))
	right := make([]int, 0, len(sample))
	for _, i := range sample {
		if b.x.At(i, feature) <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.build(left)
	r := b.build(right)
	b.nodes[id] = Node{Feature: feature, Threshold: threshold, Left: l, Right: r}
	return id
}

func (b *treeBuilder) mean(sample []int) []float64 {
	values := make([]float64, b.outputs)
	col := make([]float64, len(sample))
	for o := 0; o < b.outputs; o++ {
		for k, i := range sample {
			col[k] = b.y.At(i, o)
		}
		values[o] = stat.Mean(col, nil)
	}
	return values
}

func (b *treeBuilder) sse(sample []int) float64 {
	var total float64
	n := float64(len(sample))
	for o := 0; o < b.outputs; o++ {
		var sum, sumSq float64
		for _, i := range sample {
			v := b.y.At(i, o)
			sum += v
			sumSq += v * v
		}
		total += sumSq - sum*sum/n
	}
	return total
}

// bestSplit scans every feature for the threshold minimising the summed
// squared error of both children. Ties keep the first candidate found.
func (b *treeBuilder) bestSplit(sample []int) (int, float64, bool) {
	_, features := b.x.Dims()
	n := len(sample)

	totalSum := make([]float64, b.outputs)
	totalSq := make([]float64, b.outputs)
	for _, i := range sample {
		for o := 0; o < b.outputs; o++ {
			v := b.y.At(i, o)
			totalSum[o] += v
			totalSq[o] += v * v
		}
	}

	bestFeature, bestThreshold, bestScore := -1, 0.0, 0.0
	order := make([]int, n)
	leftSum := make([]float64, b.outputs)
	leftSq := make([]float64, b.outputs)

	for f := 0; f < features; f++ {
		copy(order, sample)
		sort.SliceStable(order, func(a, c int) bool {
			return b.x.At(order[a], f) < b.x.At(order[c], f)
		})
		if b.x.At(order[0], f) == b.x.At(order[n-1], f) {
			continue
		}

		for o := range leftSum {
			leftSum[o], leftSq[o] = 0, 0
		}
		for k := 0; k < n-1; k++ {
			i := order[k]
			for o := 0; o < b.outputs; o++ {
				v := b.y.At(i, o)
				leftSum[o] += v
				leftSq[o] += v * v
			}

			cur, next := b.x.At(i, f), b.x.At(order[k+1], f)
			if cur == next {
				continue
			}

			nl, nr := float64(k+1), float64(n-k-1)
			var score float64
			for o := 0; o < b.outputs; o++ {
				rs := totalSum[o] - leftSum[o]
				rq := totalSq[o] - leftSq[o]
				score += leftSq[o] - leftSum[o]*leftSum[o]/nl
				score += rq - rs*rs/nr
			}

			if bestFeature == -1 || score < bestScore {
				bestFeature = f
				bestThreshold = cur + (next-cur)/2
				bestScore = score
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature != -1
}

// predictRow walks the tree for one encoded row.
func (t *RegressionTree) predictRow(row []float64) []float64 {
	id := 0
	for {
		node := t.Nodes[id]
		if node.IsLeaf() {
			return node.Value
		}
		if row[node.Feature] <= node.Threshold {
			id = node.Left
		} else {
			id = node.Right
		}
	}
}

// validate checks structural soundness of a decoded tree.
func (t *RegressionTree) validate(features, outputs int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for id, n := range t.Nodes {
		if n.IsLeaf() {
			if len(n.Value) != outputs {
				return fmt.Errorf("leaf %d: expected %d values, got %d", id, outputs, len(n.Value))
			}
			continue
		}
		if n.Feature < 0 || n.Feature >= features {
			return fmt.Errorf("node %d: feature %d out of range", id, n.Feature)
		}
		// Pre-order storage means children sit after the parent; this also
		// rules out cycles.
		if n.Left <= id || n.Left >= len(t.Nodes) || n.Right <= id || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: child index out of range", id)
		}
	}
	return nil
}
