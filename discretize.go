package sapling

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
)

/*
Discretize rewrites the continuous attributes of a set into binary
discrete ones: for each continuous attribute it selects the threshold
that best separates the set's classes, replaces the attribute's domain
with the two interval labels the threshold induces and rewrites every
tuple's numeric value into the label of the interval holding it. It
runs over the full set, once, before any splitting: the recursion that
grows the tree only ever sees the synthetic labels.

The threshold is searched among the midpoints of every pair of adjacent
values in tuple order after sorting, duplicates included, keeping the
first one that strictly minimizes the entropy remaining after splitting
the set at it. A continuous attribute observed on fewer than two tuples
is left untouched, with no values to split by. A value that cannot be
parsed as a number is an error.
*/
func Discretize(s *dataset.Set, attrs []attribute.Attribute, label *attribute.Discrete) error {
	for _, a := range attrs {
		ca, ok := a.(*attribute.Continuous)
		if !ok || ca.Discretized() {
			continue
		}
		if err := discretizeAttribute(s, ca, label); err != nil {
			return err
		}
	}
	return nil
}

func discretizeAttribute(s *dataset.Set, ca *attribute.Continuous, label *attribute.Discrete) error {
	tuples := s.Tuples()
	tupleValues := make([]float64, len(tuples))
	for i, t := range tuples {
		v, err := t.ValueFor(ca.Name())
		if err != nil {
			return fmt.Errorf("discretizing %s: %v", ca.Name(), err)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("discretizing %s: parsing value %q: %v", ca.Name(), v, err)
		}
		tupleValues[i] = f
	}
	if len(tupleValues) < 2 {
		return nil
	}
	sorted := append([]float64{}, tupleValues...)
	sort.Float64s(sorted)
	var best float64
	bestEntropy := math.Inf(1)
	for i, v := range sorted[1:] {
		threshold := (sorted[i] + v) / 2.0
		entropy, err := thresholdEntropy(s, tuples, tupleValues, threshold, label)
		if err != nil {
			return fmt.Errorf("discretizing %s: %v", ca.Name(), err)
		}
		if entropy < bestEntropy {
			best = threshold
			bestEntropy = entropy
		}
	}
	ca.Discretize(best)
	lower, upper := ca.Values()[0], ca.Values()[1]
	for i, t := range tuples {
		if tupleValues[i] <= best {
			t.SetValue(ca.Name(), lower)
		} else {
			t.SetValue(ca.Name(), upper)
		}
	}
	return nil
}

/*
thresholdEntropy scores a candidate threshold: the entropy remaining
after splitting the set into the tuples at or below it and the tuples
above it. A side that ends up empty simply weighs nothing in the
score.
*/
func thresholdEntropy(s *dataset.Set, tuples []*dataset.Tuple, tupleValues []float64, threshold float64, label *attribute.Discrete) (float64, error) {
	var lower, upper []*dataset.Tuple
	for i, t := range tuples {
		if tupleValues[i] <= threshold {
			lower = append(lower, t)
		} else {
			upper = append(upper, t)
		}
	}
	parts := []*dataset.Set{dataset.New(lower), dataset.New(upper)}
	return s.PartitionEntropy(parts, label)
}
