package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"math"
)

// Forest is a random-forest artifact. Regression forests average their
// trees; classification forests majority-vote over rounded tree outputs
// (each tree emits a class index).
type Forest struct {
	Trees       []Tree
	FeatureDim  int
	FeatureName []string
}

// Predict returns the mean prediction across all trees.
func (f *Forest) Predict(features []float64) (float64, error) {
	if err := f.checkInput(features); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := range f.Trees {
		sum += f.Trees[i].Predict(features)
	}
	return sum / float64(len(f.Trees)), nil
}

// Classify returns the majority class index across all trees.
func (f *Forest) Classify(features []float64) (int, error) {
	if err := f.checkInput(features); err != nil {
		return 0, err
	}
	votes := make(map[int]int)
	for i := range f.Trees {
		class := int(math.Round(f.Trees[i].Predict(features)))
		votes[class]++
	}
	best, bestVotes := 0, -1
	for class, n := range votes {
		if n > bestVotes || (n == bestVotes && class < best) {
			best, bestVotes = class, n
		}
	}
	return best, nil
}

func (f *Forest) checkInput(features []float64) error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	if f.FeatureDim > 0 && len(features) != f.FeatureDim {
		return fmt.Errorf("expected %d features, got %d", f.FeatureDim, len(features))
	}
	return nil
}

// Encode writes the forest as a gob stream.
func (f *Forest) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(f)
}

// DecodeForest reads a forest from a gob stream.
func DecodeForest(r io.Reader) (*Forest, error) {
	var f Forest
	if err := gob.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode forest: %w", err)
	}
	return &f, nil
}
