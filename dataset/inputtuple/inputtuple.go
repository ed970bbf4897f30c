/*
Package inputtuple provides a tuple whose attribute values are read
lazily from an io.Reader, so a classifier asks only for the values it
actually needs to descend the tree.
*/
package inputtuple

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pbanos/sapling/attribute"
)

/*
ValueRequester represents a way to ask for attribute values and to
reject the given ones.
*/
type ValueRequester interface {
	RequestValueFor(attribute.Attribute) error
	RejectValueFor(attribute.Attribute, string) error
}

/*
Tuple is a dataset.Valuer whose values are read from a reader on
demand. A value is requested through the ValueRequester before
reading it, one line per answer, and re-requested while the answer is
not valid for the attribute: a number for continuous attributes, one
of the declared values for discrete ones. Obtained values are
remembered, an attribute is never asked twice.
*/
type Tuple struct {
	obtained  map[string]string
	scanner   *bufio.Scanner
	requester ValueRequester
	attrs     []attribute.Attribute
}

/*
New takes an io.Reader to read answers from, a slice of attributes
describing the values that can be asked for and a ValueRequester to
ask with, and returns a Tuple.
*/
func New(r io.Reader, attrs []attribute.Attribute, requester ValueRequester) *Tuple {
	return &Tuple{make(map[string]string), bufio.NewScanner(r), requester, attrs}
}

/*
ValueFor returns the value of the tuple for the attribute with the
given name, asking for it if it has not been obtained yet. It fails
when the name matches none of the tuple's attributes or the reader is
exhausted before a valid answer.
*/
func (t *Tuple) ValueFor(name string) (string, error) {
	if value, ok := t.obtained[name]; ok {
		return value, nil
	}
	var a attribute.Attribute
	for _, candidate := range t.attrs {
		if candidate.Name() == name {
			a = candidate
			break
		}
	}
	if a == nil {
		return "", fmt.Errorf("have no information about attribute %s, do not know how to read its value", name)
	}
	if err := t.requester.RequestValueFor(a); err != nil {
		return "", err
	}
	value, err := t.readValue(a)
	if err != nil {
		return "", err
	}
	t.obtained[name] = value
	return value, nil
}

func (t *Tuple) readValue(a attribute.Attribute) (string, error) {
	for t.scanner.Scan() {
		line := t.scanner.Text()
		if valid(a, line) {
			return line, nil
		}
		if err := t.requester.RejectValueFor(a, line); err != nil {
			return "", err
		}
	}
	if err := t.scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("input ended while requesting a value for %s", a.Name())
}

func valid(a attribute.Attribute, value string) bool {
	switch a := a.(type) {
	case *attribute.Continuous:
		_, err := strconv.ParseFloat(value, 64)
		return err == nil
	case *attribute.Discrete:
		ok, _ := a.Valid(value)
		return ok
	}
	return true
}
