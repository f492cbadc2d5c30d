package model

// Node is a single node of a regression tree. Nodes are stored in a flat
// slice and reference children by index, which keeps the artifact
// gob-friendly and cheap to traverse.
type Node struct {
	Feature   int     // feature index tested at this node
	Threshold float64 // go left when feature value <= threshold
	Left      int     // index of left child
	Right     int     // index of right child
	Value     float64 // prediction when Leaf
	Leaf      bool
}

// Tree is a regression tree over a fixed-width feature vector.
type Tree struct {
	Nodes []Node
}

// Predict walks the tree from the root and returns the leaf value.
func (t *Tree) Predict(features []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	idx := 0
	for {
		n := t.Nodes[idx]
		if n.Leaf {
			return n.Value
		}
		if n.Feature < len(features) && features[n.Feature] <= n.Threshold {
			idx = n.Left
		} else {
			idx = n.Right
		}
		if idx <= 0 || idx >= len(t.Nodes) {
			return n.Value
		}
	}
}

// Leaf returns a single-node tree that always predicts value.
func Leaf(value float64) Tree {
	return Tree{Nodes: []Node{{Leaf: true, Value: value}}}
}
