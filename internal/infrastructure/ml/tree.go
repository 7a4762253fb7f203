package ml

import (
	"math/rand"
	"sort"
)

const leafNode = -1

type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	value     float64
}

// regressionTree is a CART tree grown on squared error until every leaf is
// pure or holds a single distinct feature vector.
type regressionTree struct {
	nodes []treeNode
}

func (t *regressionTree) predict(x []float64) float64 {
	i := 0
	for t.nodes[i].feature != leafNode {
		n := t.nodes[i]
		if x[n.feature] <= n.threshold {
			i = n.left
		} else {
			i = n.right
		}
	}
	return t.nodes[i].value
}

// growTree fits a tree on a bootstrap resample of (xs, ys) drawn from rng.
func growTree(xs [][]float64, ys []float64, rng *rand.Rand) *regressionTree {
	n := len(xs)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.Intn(n)
	}

	t := &regressionTree{nodes: make([]treeNode, 0, 2*n)}
	t.split(xs, ys, idx)
	return t
}

// split appends the subtree for idx and returns its node index.
func (t *regressionTree) split(xs [][]float64, ys []float64, idx []int) int {
	self := len(t.nodes)
	t.nodes = append(t.nodes, treeNode{feature: leafNode, value: mean(ys, idx)})

	if len(idx) < 2 || pure(ys, idx) {
		return self
	}

	feature, threshold, ok := bestSplit(xs, ys, idx)
	if !ok {
		return self
	}

	var left, right []int
	for _, i := range idx {
		if xs[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	if len(left) == 0 || len(right) == 0 {
		return self
	}

	l := t.split(xs, ys, left)
	r := t.split(xs, ys, right)
	t.nodes[self] = treeNode{feature: feature, threshold: threshold, left: l, right: r}
	return self
}

// bestSplit scans every feature for the threshold that minimises the summed
// squared error of the two children. Maximising sum_l^2/n_l + sum_r^2/n_r is
// equivalent and avoids the squared terms.
func bestSplit(xs [][]float64, ys []float64, idx []int) (int, float64, bool) {
	n := len(idx)
	total := 0.0
	for _, i := range idx {
		total += ys[i]
	}

	bestFeature, bestThreshold := -1, 0.0
	bestProxy := total * total / float64(n)
	found := false

	order := make([]int, n)
	for f := range xs[idx[0]] {
		copy(order, idx)
		sort.SliceStable(order, func(a, b int) bool {
			return xs[order[a]][f] < xs[order[b]][f]
		})

		leftSum := 0.0
		for k := 1; k < n; k++ {
			leftSum += ys[order[k-1]]
			lo, hi := xs[order[k-1]][f], xs[order[k]][f]
			if lo == hi {
				continue
			}
			rightSum := total - leftSum
			nl, nr := float64(k), float64(n-k)
			proxy := leftSum*leftSum/nl + rightSum*rightSum/nr
			if proxy > bestProxy || !found {
				bestProxy = proxy
				bestFeature = f
				bestThreshold = lo + (hi-lo)/2
				if bestThreshold >= hi {
					bestThreshold = lo
				}
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func mean(ys []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	s := 0.0
	for _, i := range idx {
		s += ys[i]
	}
	return s / float64(len(idx))
}

func pure(ys []float64, idx []int) bool {
	first := ys[idx[0]]
	for _, i := range idx[1:] {
		if ys[i] != first {
			return false
		}
	}
	return true
}
