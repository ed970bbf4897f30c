/*
Package csv reads and writes sets of tuples as CSV documents.

A set document has a header row naming the columns: every name must be
a declared attribute or the class attribute, and the class attribute
must appear. Value rows hold, for every column, a value valid for its
attribute; there is no marker for missing values, a tuple holds a value
for every column of the document.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
)

/*
Writer is an interface for a destination to which tuples can be
written.
*/
type Writer interface {
	// Write will attempt to write the given tuples and will return
	// the actually written number of tuples and an error if not all
	// tuples could be written.
	Write([]*dataset.Tuple) (int, error)
	// Count returns the total number of tuples written to the writer
	Count() int
	// Flush ensures any pending write operations finish before
	// returning. It returns an error if that cannot be ensured.
	Flush() error
}

type csvWriter struct {
	count int
	attrs []attribute.Attribute
	label *attribute.Discrete
	w     *csv.Writer
}

/*
ReadSet takes an io.Reader for a CSV stream, a slice of attributes and
the class attribute, and returns the set of labeled tuples parsed from
the reader or an error.
*/
func ReadSet(reader io.Reader, attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Set, error) {
	tuples := []*dataset.Tuple{}
	err := ReadSetByTuple(reader, attrs, label, func(_ int, t *dataset.Tuple) (bool, error) {
		tuples = append(tuples, t)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return dataset.New(tuples), nil
}

/*
ReadSetByTuple takes an io.Reader for a CSV stream, a slice of
attributes, the class attribute and a lambda function on an integer
and a tuple that returns a boolean value. It parses the tuples from
the reader and for each it calls the lambda function with the tuple
and its index as parameters. If the lambda function returns true, it
will continue processing the next tuple, otherwise it will stop. An
error is returned if something goes wrong when reading the stream or
parsing a tuple.
*/
func ReadSetByTuple(reader io.Reader, attrs []attribute.Attribute, label *attribute.Discrete, lambda func(int, *dataset.Tuple) (bool, error)) error {
	attrsByName := attributeSliceToMap(attrs)
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseAttributesFromCSVHeader(header, attrsByName, label)
	if err != nil {
		return err
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		t, err := parseTupleFromCSVRow(row, columns, label)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, t)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadSetFromFilePath takes a filepath string, a slice of attributes and
the class attribute, opens the file the filepath points to (os.Stdin
when it is empty) and uses ReadSet to parse a set from it. It will
return an error if the given filepath cannot be opened for reading or
its contents cannot be parsed.
*/
func ReadSetFromFilePath(filepath string, attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Set, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading set: %v", err)
		}
		defer f.Close()
	}
	s, err := ReadSet(f, attrs, label)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return s, err
}

/*
NewWriter takes an io.Writer, a slice of attributes and the class
attribute and returns a Writer that will write tuples on the
io.Writer as CSV rows, with the class in the last column.
*/
func NewWriter(writer io.Writer, attrs []attribute.Attribute, label *attribute.Discrete) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(attrs)+1)
	for _, a := range attrs {
		record = append(record, a.Name())
	}
	record = append(record, label.Name())
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{attrs: attrs, label: label, w: w}, nil
}

/*
WriteSet takes an io.Writer, a set, a slice of attributes and the
class attribute and dumps the set to the writer in CSV format,
specifying only the given attributes for the tuples. It returns an
error if something went wrong when writing to the writer or encoding
the tuples.
*/
func WriteSet(writer io.Writer, s *dataset.Set, attrs []attribute.Attribute, label *attribute.Discrete) error {
	cw, err := NewWriter(writer, attrs, label)
	if err != nil {
		return err
	}
	if _, err = cw.Write(s.Tuples()); err != nil {
		return err
	}
	return cw.Flush()
}

/*
WriteClassified takes an io.Writer, the attribute names of the
classification input, its tuples and a default class, and writes one
CSV row per tuple: its original values in input order with its class
in a final column. Tuples left without a class get the default class,
which may be empty.
*/
func WriteClassified(writer io.Writer, order []string, tuples []*dataset.Tuple, defaultClass string) error {
	w := csv.NewWriter(writer)
	record := make([]string, len(order)+1)
	for i, t := range tuples {
		for j, name := range order {
			v, err := t.ValueFor(name)
			if err != nil {
				return fmt.Errorf("writing classified tuple %d: %v", i+1, err)
			}
			record[j] = v
		}
		class := t.Class()
		if class == "" {
			class = defaultClass
		}
		record[len(order)] = class
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing classified tuple %d: %v", i+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func parseAttributesFromCSVHeader(header []string, attrs map[string]attribute.Attribute, label *attribute.Discrete) ([]attribute.Attribute, error) {
	columns := make([]attribute.Attribute, 0, len(header))
	labelSeen := false
	for _, name := range header {
		if name == label.Name() {
			labelSeen = true
			columns = append(columns, nil)
			continue
		}
		a, ok := attrs[name]
		if !ok {
			return nil, fmt.Errorf("parsing header: reference to unknown attribute %s", name)
		}
		columns = append(columns, a)
	}
	if !labelSeen {
		return nil, fmt.Errorf("parsing header: no column for class attribute %s", label.Name())
	}
	return columns, nil
}

func parseTupleFromCSVRow(row []string, columns []attribute.Attribute, label *attribute.Discrete) (*dataset.Tuple, error) {
	values := make(map[string]string, len(columns)-1)
	var class string
	for i, a := range columns {
		v := row[i]
		if a == nil {
			if ok, err := label.Valid(v); !ok {
				return nil, err
			}
			class = v
			continue
		}
		switch a := a.(type) {
		case *attribute.Discrete:
			if ok, err := a.Valid(v); !ok {
				return nil, err
			}
		case *attribute.Continuous:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("continuous attribute %s got non-numeric value %q", a.Name(), v)
			}
		}
		values[a.Name()] = v
	}
	t := dataset.NewTuple(values)
	t.SetClass(class)
	return t, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(tuples []*dataset.Tuple) (int, error) {
	for n, t := range tuples {
		if err := cw.writeTuple(t); err != nil {
			return n, err
		}
	}
	return len(tuples), nil
}

func (cw *csvWriter) writeTuple(t *dataset.Tuple) error {
	record := make([]string, 0, len(cw.attrs)+1)
	for _, a := range cw.attrs {
		v, err := t.ValueFor(a.Name())
		if err != nil {
			return fmt.Errorf("writing CSV row for tuple %d: %v", cw.count+1, err)
		}
		record = append(record, v)
	}
	record = append(record, t.Class())
	if err := cw.w.Write(record); err != nil {
		return fmt.Errorf("writing CSV row for tuple %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

func attributeSliceToMap(attrs []attribute.Attribute) map[string]attribute.Attribute {
	result := make(map[string]attribute.Attribute)
	for _, a := range attrs {
		result[a.Name()] = a
	}
	return result
}
