package dataset

import (
	"fmt"
	"math"

	"github.com/pbanos/sapling/attribute"
)

/*
SetError represents an error with a dataset operation
*/
type SetError string

/*
ErrNoTuples is the error returned by operations that are undefined on an
empty set, such as its entropy or its majority class. Callers are
expected to guard against empty sets instead of relying on it.
*/
const ErrNoTuples = SetError("the set contains no tuples")

func (se SetError) Error() string {
	return string(se)
}

/*
Set represents a collection of tuples.

Its Entropy method returns the entropy of the set for a given class
attribute: a measure of the disinformation we have on the classes of the
tuples that belong to it.

Its PartitionEntropy method scores a partition of the set as the
size-weighted sum of the entropies of its parts.
*/
type Set struct {
	entropy *float64
	tuples  []*Tuple
}

/*
New takes a slice of tuples and returns a set built with them.
*/
func New(tuples []*Tuple) *Set {
	return &Set{nil, tuples}
}

/*
Tuples returns the tuples the set contains.
*/
func (s *Set) Tuples() []*Tuple {
	return s.tuples
}

/*
Count returns the number of tuples the set contains.
*/
func (s *Set) Count() int {
	return len(s.tuples)
}

/*
Entropy returns the Shannon entropy of the set in bits for the given
class attribute: -Σ p·log2(p) over the classes present in the set, with
p the fraction of tuples holding each class. It fails on an empty set
with ErrNoTuples. The result is memoized for the first class attribute
it is computed for.
*/
func (s *Set) Entropy(label *attribute.Discrete) (float64, error) {
	if s.entropy != nil {
		return *s.entropy, nil
	}
	if len(s.tuples) == 0 {
		return 0.0, ErrNoTuples
	}
	counts := s.countClasses()
	var result float64
	total := float64(len(s.tuples))
	for _, class := range label.Values() {
		if counts[class] == 0 {
			continue
		}
		p := float64(counts[class]) / total
		result -= p * math.Log2(p)
	}
	s.entropy = &result
	return result, nil
}

/*
PartitionEntropy returns the entropy that remains after splitting the
set into the given parts: the sum of each part's entropy weighted by the
fraction of the set's tuples it holds. Empty parts contribute nothing
and their entropy is never computed.
*/
func (s *Set) PartitionEntropy(parts []*Set, label *attribute.Discrete) (float64, error) {
	if len(s.tuples) == 0 {
		return 0.0, ErrNoTuples
	}
	var result float64
	total := float64(len(s.tuples))
	for _, part := range parts {
		if part.Count() == 0 {
			continue
		}
		e, err := part.Entropy(label)
		if err != nil {
			return 0.0, err
		}
		result += e * float64(part.Count()) / total
	}
	return result, nil
}

/*
Majority returns the most frequent class in the set among the given
class attribute's values. Ties are broken in favor of the class declared
first with the strictly greatest count. It fails on an empty set with
ErrNoTuples.
*/
func (s *Set) Majority(label *attribute.Discrete) (string, error) {
	if len(s.tuples) == 0 {
		return "", ErrNoTuples
	}
	counts := s.countClasses()
	var majority string
	var majorityCount int
	for _, class := range label.Values() {
		if counts[class] > majorityCount {
			majority = class
			majorityCount = counts[class]
		}
	}
	if majorityCount == 0 {
		return "", fmt.Errorf("no tuple has a class among the declared %s values", label.Name())
	}
	return majority, nil
}

/*
UniformClass returns the class shared by every tuple in the set and a
boolean indicating whether such a class exists. It returns false for an
empty set.
*/
func (s *Set) UniformClass() (string, bool) {
	if len(s.tuples) == 0 {
		return "", false
	}
	class := s.tuples[0].Class()
	for _, t := range s.tuples[1:] {
		if t.Class() != class {
			return "", false
		}
	}
	return class, true
}

func (s *Set) countClasses() map[string]int {
	counts := make(map[string]int)
	for _, t := range s.tuples {
		counts[t.Class()]++
	}
	return counts
}
