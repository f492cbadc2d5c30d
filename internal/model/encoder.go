package model

import (
	"encoding/gob"
	"fmt"
	"io"
	"strings"
)

// LabelEncoder maps crop class indices to crop names and back.
type LabelEncoder struct {
	Classes []string
}

// InverseTransform returns the crop name for a class index.
func (e *LabelEncoder) InverseTransform(class int) (string, error) {
	if class < 0 || class >= len(e.Classes) {
		return "", fmt.Errorf("class index %d out of range [0,%d)", class, len(e.Classes))
	}
	return e.Classes[class], nil
}

// Transform returns the class index for a crop name, case-insensitively.
func (e *LabelEncoder) Transform(label string) (int, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	for i, c := range e.Classes {
		if strings.ToLower(c) == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown crop label %q", label)
}

// Encode writes the encoder as a gob stream.
func (e *LabelEncoder) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(e)
}

// DecodeLabelEncoder reads an encoder from a gob stream.
func DecodeLabelEncoder(r io.Reader) (*LabelEncoder, error) {
	var e LabelEncoder
	if err := gob.NewDecoder(r).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode label encoder: %w", err)
	}
	if len(e.Classes) == 0 {
		return nil, fmt.Errorf("label encoder has no classes")
	}
	return &e, nil
}
