package ml

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// OneHotEncoder maps a categorical column to indicator columns, one per
// category seen during Fit, in sorted order.
//
// A category that was not seen during Fit encodes as an all-zero row instead
// of failing. Trees then route it down the "absent" branch of every split, so
// novel materials get a prediction blended from the training categories.
type OneHotEncoder struct {
	categories []string
	index      map[string]int
}

// NewOneHotEncoder returns an unfitted encoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// newFittedEncoder restores an encoder from a known category list.
func newFittedEncoder(categories []string) (*OneHotEncoder, error) {
	e := &OneHotEncoder{}
	if err := e.setCategories(categories); err != nil {
		return nil, err
	}
	return e, nil
}

// Fit learns the distinct categories in values.
func (e *OneHotEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("fit encoder: no values")
	}

	seen := make(map[string]struct{}, len(values))
	categories := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		categories = append(categories, v)
	}
	sort.Strings(categories)

	return e.setCategories(categories)
}

func (e *OneHotEncoder) setCategories(categories []string) error {
	if len(categories) == 0 {
		return fmt.Errorf("encoder needs at least one category")
	}
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := index[c]; dup {
			return fmt.Errorf("duplicate category %q", c)
		}
		index[c] = i
	}
	e.categories = categories
	e.index = index
	return nil
}

// Categories returns a copy of the learned categories.
func (e *OneHotEncoder) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

// Known reports whether category was seen during Fit.
func (e *OneHotEncoder) Known(category string) bool {
	_, ok := e.index[category]
	return ok
}

// Width is the number of output columns.
func (e *OneHotEncoder) Width() int {
	return len(e.categories)
}

// Transform encodes values into a len(values) x Width() indicator matrix.
func (e *OneHotEncoder) Transform(values []string) (*mat.Dense, error) {
	if e.index == nil {
		return nil, ErrNotFitted
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("transform: no values")
	}

	out := mat.NewDense(len(values), e.Width(), nil)
	for row, v := range values {
		if col, ok := e.index[v]; ok {
			out.Set(row, col, 1)
		}
	}
	return out, nil
}
