package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_Predict(t *testing.T) {
	b := &treeBuilder{}
	low := b.leaf(10)
	high := b.leaf(20)
	root := b.split(0, 5.0, low, high)
	tree := b.tree(root)

	assert.Equal(t, 10.0, tree.Predict([]float64{3}))
	assert.Equal(t, 10.0, tree.Predict([]float64{5}))
	assert.Equal(t, 20.0, tree.Predict([]float64{7}))
}

func TestForest_Predict_Averages(t *testing.T) {
	f := &Forest{Trees: []Tree{Leaf(100), Leaf(200), Leaf(300)}, FeatureDim: 2}

	got, err := f.Predict([]float64{1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 200.0, got, 1e-9)
}

func TestForest_Predict_WrongDimension(t *testing.T) {
	f := &Forest{Trees: []Tree{Leaf(1)}, FeatureDim: 3}

	_, err := f.Predict([]float64{1})
	assert.Error(t, err)
}

func TestForest_Classify_MajorityVote(t *testing.T) {
	f := &Forest{Trees: []Tree{Leaf(2), Leaf(2), Leaf(5)}, FeatureDim: 1}

	class, err := f.Classify([]float64{0})
	require.NoError(t, err)
	assert.Equal(t, 2, class)
}

func TestLabelEncoder_RoundTrip(t *testing.T) {
	e := &LabelEncoder{Classes: []string{"rice", "wheat", "maize"}}

	idx, err := e.Transform("Wheat")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	label, err := e.InverseTransform(idx)
	require.NoError(t, err)
	assert.Equal(t, "wheat", label)

	_, err = e.Transform("kale")
	assert.Error(t, err)

	_, err = e.InverseTransform(99)
	assert.Error(t, err)
}

func TestArtifacts_SaveLoad(t *testing.T) {
	dir := t.TempDir()

	original := NewBaselineArtifacts()
	require.NoError(t, original.Save(dir))

	loaded, err := LoadArtifacts(dir)
	require.NoError(t, err)

	features := []float64{90, 45, 40, 24, 80, 6.5, 210}
	wantCrop, err := original.PredictCrop(features)
	require.NoError(t, err)
	gotCrop, err := loaded.PredictCrop(features)
	require.NoError(t, err)
	assert.Equal(t, wantCrop, gotCrop)

	wantYield, err := original.PredictYield(features)
	require.NoError(t, err)
	gotYield, err := loaded.PredictYield(features)
	require.NoError(t, err)
	assert.InDelta(t, wantYield, gotYield, 1e-9)
}

func TestLoadArtifacts_MissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadArtifacts(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model artifact missing")
	assert.Contains(t, err.Error(), filepath.Join(dir, CropModelFile))
}

func TestBaselineArtifacts_Deterministic(t *testing.T) {
	a := NewBaselineArtifacts()
	features := []float64{90, 45, 40, 24, 80, 6.5, 210}

	first, err := a.PredictCrop(features)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := a.PredictCrop(features)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBaselineArtifacts_Crops(t *testing.T) {
	a := NewBaselineArtifacts()
	crops := a.Crops()

	assert.Len(t, crops, len(BaselineCrops))
	assert.Contains(t, crops, "rice")
	assert.Contains(t, crops, "sugarcane")
	for i := 1; i < len(crops); i++ {
		assert.LessOrEqual(t, crops[i-1], crops[i])
	}
}
