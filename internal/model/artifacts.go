package model

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Artifact file names inside the model directory.
const (
	CropModelFile    = "rf_crop.gob"
	YieldModelFile   = "rf_yield.gob"
	ExpenseModelFile = "rf_expense.gob"
	EncoderFile      = "label_encoder.gob"
)

// Artifacts bundles the serialized models the prediction endpoint serves:
// a crop classifier, a yield regressor, an expense regressor and the label
// encoder that names the classifier's output.
type Artifacts struct {
	Crop    *Forest
	Yield   *Forest
	Expense *Forest
	Encoder *LabelEncoder

	mu sync.RWMutex
}

// LoadArtifacts loads all four artifacts from dir, failing fast on the
// first missing or unreadable file.
func LoadArtifacts(dir string) (*Artifacts, error) {
	crop, err := loadForest(filepath.Join(dir, CropModelFile))
	if err != nil {
		return nil, err
	}
	yield, err := loadForest(filepath.Join(dir, YieldModelFile))
	if err != nil {
		return nil, err
	}
	expense, err := loadForest(filepath.Join(dir, ExpenseModelFile))
	if err != nil {
		return nil, err
	}
	encoder, err := loadEncoder(filepath.Join(dir, EncoderFile))
	if err != nil {
		return nil, err
	}

	return &Artifacts{Crop: crop, Yield: yield, Expense: expense, Encoder: encoder}, nil
}

// Save writes all four artifacts into dir, creating it if needed.
func (a *Artifacts) Save(dir string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}

	save := func(name string, enc func(f *os.File) error) error {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		defer f.Close()
		return enc(f)
	}

	if err := save(CropModelFile, func(f *os.File) error { return a.Crop.Encode(f) }); err != nil {
		return err
	}
	if err := save(YieldModelFile, func(f *os.File) error { return a.Yield.Encode(f) }); err != nil {
		return err
	}
	if err := save(ExpenseModelFile, func(f *os.File) error { return a.Expense.Encode(f) }); err != nil {
		return err
	}
	return save(EncoderFile, func(f *os.File) error { return a.Encoder.Encode(f) })
}

// PredictCrop classifies the soil/weather feature vector and returns the
// crop name in lowercase.
func (a *Artifacts) PredictCrop(features []float64) (string, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	class, err := a.Crop.Classify(features)
	if err != nil {
		return "", fmt.Errorf("crop model: %w", err)
	}
	label, err := a.Encoder.InverseTransform(class)
	if err != nil {
		return "", fmt.Errorf("crop model: %w", err)
	}
	return strings.ToLower(label), nil
}

// PredictYield returns the raw yield estimate in kg/ha.
func (a *Artifacts) PredictYield(features []float64) (float64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v, err := a.Yield.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("yield model: %w", err)
	}
	return v, nil
}

// PredictExpense returns the raw expense estimate from the cost inputs
// [fertilizer, pesticide, seed, other].
func (a *Artifacts) PredictExpense(costs []float64) (float64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	v, err := a.Expense.Predict(costs)
	if err != nil {
		return 0, fmt.Errorf("expense model: %w", err)
	}
	return v, nil
}

// Crops returns the known crop labels, lowercased and sorted.
func (a *Artifacts) Crops() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	crops := make([]string, len(a.Encoder.Classes))
	for i, c := range a.Encoder.Classes {
		crops[i] = strings.ToLower(c)
	}
	sort.Strings(crops)
	return crops
}

func loadForest(path string) (*Forest, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("model artifact missing: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	forest, err := DecodeForest(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return forest, nil
}

func loadEncoder(path string) (*LabelEncoder, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("model artifact missing: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	enc, err := DecodeLabelEncoder(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return enc, nil
}
