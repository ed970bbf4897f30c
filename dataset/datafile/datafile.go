/*
Package datafile implements the native whitespace-token file formats:
labeled training files that embed their own attribute metadata, and
unlabeled classification input files.

A training file starts with the number of attributes on its own line,
followed by one declaration line per attribute: the attribute name and
either the word continuous, the word ignore or the space-separated
values the attribute can take. The keywords only apply when they are
the single token after the name. After the declarations comes one line
naming the class attribute followed by its values, and then one line
per tuple: its values in declaration order with its class as the last
token.

A classification input file has a first line with space-separated
attribute names and one line per tuple with its values in that order,
and no class information.
*/
package datafile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
)

/*
Training holds the contents of a training file: the declared
attributes in declaration order, the class attribute whose value trees
will predict and the set of labeled tuples.
*/
type Training struct {
	Attributes []attribute.Attribute
	Label      *attribute.Discrete
	Set        *dataset.Set
}

/*
ReadTraining takes an io.Reader with a training file and returns its
parsed contents or an error naming the offending line. Tuple values
are validated against their attribute declarations: discrete values
and classes must belong to the declared ones and continuous values
must parse as numbers.
*/
func ReadTraining(r io.Reader) (*Training, error) {
	sc := newLineScanner(r)
	text, number, ok := sc.next()
	if !ok {
		return nil, sc.failure("cannot read a training file from an empty document")
	}
	count, err := strconv.Atoi(text)
	if err != nil || count < 1 {
		return nil, fmt.Errorf("line %d: expected the number of attributes, got %q", number, text)
	}
	attrs := make([]attribute.Attribute, 0, count)
	declared := map[string]bool{}
	for i := 0; i < count; i++ {
		text, number, ok = sc.next()
		if !ok {
			return nil, sc.failure("document declares %d attributes but ends after %d", count, i)
		}
		a, err := parseAttribute(text, number)
		if err != nil {
			return nil, err
		}
		if declared[a.Name()] {
			return nil, fmt.Errorf("line %d: attribute %s declared twice", number, a.Name())
		}
		declared[a.Name()] = true
		attrs = append(attrs, a)
	}
	text, number, ok = sc.next()
	if !ok {
		return nil, sc.failure("document ends before the class attribute declaration")
	}
	label, err := parseClassAttribute(text, number, declared)
	if err != nil {
		return nil, err
	}
	var tuples []*dataset.Tuple
	for {
		text, number, ok = sc.next()
		if !ok {
			break
		}
		t, err := parseTuple(text, number, attrs, label)
		if err != nil {
			return nil, err
		}
		tuples = append(tuples, t)
	}
	if err := sc.err(); err != nil {
		return nil, err
	}
	return &Training{attrs, label, dataset.New(tuples)}, nil
}

/*
WriteTraining takes an io.Writer and training contents and writes them
as a training file. Continuous attributes must not have been
discretized: their tuples would hold interval labels instead of the
numbers the format carries. Every tuple must hold a class and a value
for every declared attribute.
*/
func WriteTraining(w io.Writer, td *Training) error {
	if _, err := fmt.Fprintf(w, "%d\n", len(td.Attributes)); err != nil {
		return fmt.Errorf("writing training file: %v", err)
	}
	names := make([]string, 0, len(td.Attributes))
	for _, a := range td.Attributes {
		decl, err := attributeDeclaration(a)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, decl); err != nil {
			return fmt.Errorf("writing training file: %v", err)
		}
		names = append(names, a.Name())
	}
	classDecl := fmt.Sprintf("%s %s", td.Label.Name(), strings.Join(td.Label.Values(), " "))
	if _, err := fmt.Fprintln(w, classDecl); err != nil {
		return fmt.Errorf("writing training file: %v", err)
	}
	for i, t := range td.Set.Tuples() {
		tokens := make([]string, 0, len(names)+1)
		for _, name := range names {
			v, err := t.ValueFor(name)
			if err != nil {
				return fmt.Errorf("writing tuple %d: %v", i+1, err)
			}
			tokens = append(tokens, v)
		}
		if t.Class() == "" {
			return fmt.Errorf("writing tuple %d: it holds no class", i+1)
		}
		tokens = append(tokens, t.Class())
		if _, err := fmt.Fprintln(w, strings.Join(tokens, " ")); err != nil {
			return fmt.Errorf("writing training file: %v", err)
		}
	}
	return nil
}

/*
ReadClassificationInput takes an io.Reader with a classification input
file and returns the attribute names of its header, in order, and its
unlabeled tuples, or an error naming the offending line.
*/
func ReadClassificationInput(r io.Reader) ([]string, []*dataset.Tuple, error) {
	sc := newLineScanner(r)
	text, _, ok := sc.next()
	if !ok {
		return nil, nil, sc.failure("cannot read classification input from an empty document")
	}
	order := strings.Fields(text)
	var tuples []*dataset.Tuple
	for {
		text, number, ok := sc.next()
		if !ok {
			break
		}
		tokens := strings.Fields(text)
		if len(tokens) != len(order) {
			return nil, nil, fmt.Errorf("line %d: expected %d values, got %d", number, len(order), len(tokens))
		}
		values := make(map[string]string, len(order))
		for i, name := range order {
			values[name] = tokens[i]
		}
		tuples = append(tuples, dataset.NewTuple(values))
	}
	if err := sc.err(); err != nil {
		return nil, nil, err
	}
	return order, tuples, nil
}

func parseAttribute(text string, number int) (attribute.Attribute, error) {
	fields := strings.Fields(text)
	name := fields[0]
	if err := attribute.CheckSerializable(name); err != nil {
		return nil, fmt.Errorf("line %d: invalid attribute name: %v", number, err)
	}
	if len(fields) < 2 {
		return nil, fmt.Errorf("line %d: attribute %s declares no values", number, name)
	}
	if len(fields) == 2 {
		switch fields[1] {
		case "continuous":
			return attribute.NewContinuous(name), nil
		case "ignore":
			return attribute.NewIgnored(name), nil
		}
	}
	values := fields[1:]
	for _, v := range values {
		if err := attribute.CheckSerializable(v); err != nil {
			return nil, fmt.Errorf("line %d: invalid value for attribute %s: %v", number, name, err)
		}
	}
	return attribute.NewDiscrete(name, values), nil
}

func parseClassAttribute(text string, number int, declared map[string]bool) (*attribute.Discrete, error) {
	a, err := parseAttribute(text, number)
	if err != nil {
		return nil, err
	}
	label, ok := a.(*attribute.Discrete)
	if !ok {
		return nil, fmt.Errorf("line %d: the class attribute %s must declare its values", number, a.Name())
	}
	if declared[label.Name()] {
		return nil, fmt.Errorf("line %d: the class attribute %s is already declared as an attribute", number, label.Name())
	}
	return label, nil
}

func parseTuple(text string, number int, attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Tuple, error) {
	tokens := strings.Fields(text)
	if len(tokens) != len(attrs)+1 {
		return nil, fmt.Errorf("line %d: expected %d values and a class, got %d tokens", number, len(attrs), len(tokens))
	}
	values := make(map[string]string, len(attrs))
	for i, a := range attrs {
		v := tokens[i]
		switch a := a.(type) {
		case *attribute.Discrete:
			if ok, err := a.Valid(v); !ok {
				return nil, fmt.Errorf("line %d: %v", number, err)
			}
		case *attribute.Continuous:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("line %d: continuous attribute %s got non-numeric value %q", number, a.Name(), v)
			}
		}
		values[a.Name()] = v
	}
	class := tokens[len(tokens)-1]
	if ok, err := label.Valid(class); !ok {
		return nil, fmt.Errorf("line %d: %v", number, err)
	}
	t := dataset.NewTuple(values)
	t.SetClass(class)
	return t, nil
}

func attributeDeclaration(a attribute.Attribute) (string, error) {
	switch a := a.(type) {
	case *attribute.Discrete:
		return fmt.Sprintf("%s %s", a.Name(), strings.Join(a.Values(), " ")), nil
	case *attribute.Continuous:
		if a.Discretized() {
			return "", fmt.Errorf("cannot write discretized attribute %s: its tuples hold interval labels, not numbers", a.Name())
		}
		return fmt.Sprintf("%s continuous", a.Name()), nil
	case *attribute.Ignored:
		return fmt.Sprintf("%s ignore", a.Name()), nil
	}
	return "", fmt.Errorf("cannot write attribute %s of unknown kind %T", a.Name(), a)
}

// lineScanner walks the non-blank lines of a document keeping track
// of their position, so parsing errors can name the line they come
// from.
type lineScanner struct {
	scanner *bufio.Scanner
	number  int
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{scanner: bufio.NewScanner(r)}
}

func (sc *lineScanner) next() (string, int, bool) {
	for sc.scanner.Scan() {
		sc.number++
		text := strings.TrimSpace(sc.scanner.Text())
		if text != "" {
			return text, sc.number, true
		}
	}
	return "", sc.number, false
}

func (sc *lineScanner) err() error {
	if err := sc.scanner.Err(); err != nil {
		return fmt.Errorf("reading document: %v", err)
	}
	return nil
}

func (sc *lineScanner) failure(format string, a ...interface{}) error {
	if err := sc.err(); err != nil {
		return err
	}
	return fmt.Errorf(format, a...)
}
