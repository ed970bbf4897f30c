/*
Package sqlset reads and writes sets of tuples on SQL databases.

The tuples are kept on a single table with one TEXT column per
attribute plus one for the class, so the stored documents look exactly
like the values the classifiers compare against. Access to a concrete
database goes through an Adapter, which owns the SQL dialect:
sqlite3adapter works on SQLite3 files and pgadapter on PostgreSQL
databases.
*/
package sqlset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
)

/*
Adapter is an interface providing the methods needed to keep tuples
on a database backend. Rows are exchanged as slices of value strings
aligned with a slice of column names.
*/
type Adapter interface {
	// ColumnName takes the name of an attribute and returns the
	// column its values are kept under, or an error when the name
	// cannot be used on the backend.
	ColumnName(attributeName string) (string, error)
	// CreateTupleTable ensures the tuples table exists with the
	// given columns.
	CreateTupleTable(ctx context.Context, columns []string) error
	// AddTuples inserts the given rows, returning how many were
	// inserted and an error when not all of them could be.
	AddTuples(ctx context.Context, columns []string, rows [][]string) (int, error)
	// IterateOnTuples retrieves the stored rows and calls the given
	// lambda function with each row and its position until the rows
	// are exhausted or the lambda returns false or an error.
	IterateOnTuples(ctx context.Context, columns []string, lambda func(int, []string) (bool, error)) error
	// CountTuples returns the number of stored rows.
	CountTuples(ctx context.Context) (int, error)
	// Close closes the connection to the database.
	Close() error
}

/*
Set represents the collection of tuples stored on a database, scoped
to a slice of attributes and the class attribute their values are
read and validated against.
*/
type Set struct {
	db      Adapter
	attrs   []attribute.Attribute
	label   *attribute.Discrete
	columns []string
}

/*
Open takes an Adapter to a database backend, a slice of attributes
and the class attribute, and returns a Set working on the adapter's
tuples table, which is expected to exist already. It fails when an
attribute name cannot be mapped to a column.
*/
func Open(ctx context.Context, db Adapter, attrs []attribute.Attribute, label *attribute.Discrete) (*Set, error) {
	columns, err := tupleColumns(db, attrs, label)
	if err != nil {
		return nil, err
	}
	return &Set{db, attrs, label, columns}, nil
}

/*
Create takes an Adapter to a database backend, a slice of attributes
and the class attribute, ensures the tuples table exists with one
column per attribute plus one for the class, and returns a Set
working on it.
*/
func Create(ctx context.Context, db Adapter, attrs []attribute.Attribute, label *attribute.Discrete) (*Set, error) {
	ss, err := Open(ctx, db, attrs, label)
	if err != nil {
		return nil, err
	}
	if err := db.CreateTupleTable(ctx, ss.columns); err != nil {
		return nil, fmt.Errorf("creating tuples table: %v", err)
	}
	return ss, nil
}

/*
Write takes a slice of tuples and inserts them on the database. It
returns the number of inserted tuples and an error when not all of
them could be inserted. Every tuple must hold a class and a value for
every attribute of the set.
*/
func (ss *Set) Write(ctx context.Context, tuples []*dataset.Tuple) (int, error) {
	if len(tuples) == 0 {
		return 0, nil
	}
	rows := make([][]string, 0, len(tuples))
	for i, t := range tuples {
		row := make([]string, 0, len(ss.columns))
		for _, a := range ss.attrs {
			v, err := t.ValueFor(a.Name())
			if err != nil {
				return 0, fmt.Errorf("writing tuple %d: %v", i+1, err)
			}
			row = append(row, v)
		}
		if t.Class() == "" {
			return 0, fmt.Errorf("writing tuple %d: it holds no class", i+1)
		}
		row = append(row, t.Class())
		rows = append(rows, row)
	}
	return ss.db.AddTuples(ctx, ss.columns, rows)
}

/*
Read returns a channel on which the stored tuples are delivered in
storage order and a channel on which a reading or parsing failure is
delivered. Both channels are closed when the tuples are exhausted,
the context is cancelled or an error occurs. Stored values are
validated against the set's attributes the same way file readers
validate theirs.
*/
func (ss *Set) Read(ctx context.Context) (<-chan *dataset.Tuple, <-chan error) {
	tupleStream := make(chan *dataset.Tuple)
	errStream := make(chan error, 1)
	go func() {
		err := ss.db.IterateOnTuples(ctx, ss.columns, func(n int, row []string) (bool, error) {
			t, err := ss.parseRow(row)
			if err != nil {
				return false, fmt.Errorf("parsing stored tuple %d: %v", n+1, err)
			}
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case tupleStream <- t:
			}
			return true, nil
		})
		if err != nil {
			errStream <- err
		}
		close(errStream)
		close(tupleStream)
	}()
	return tupleStream, errStream
}

/*
ReadSet drains Read into a dataset.Set with every stored tuple.
*/
func (ss *Set) ReadSet(ctx context.Context) (*dataset.Set, error) {
	var tuples []*dataset.Tuple
	tupleStream, errStream := ss.Read(ctx)
	for t := range tupleStream {
		tuples = append(tuples, t)
	}
	if err := <-errStream; err != nil {
		return nil, err
	}
	return dataset.New(tuples), nil
}

/*
Count returns the number of tuples stored on the database.
*/
func (ss *Set) Count(ctx context.Context) (int, error) {
	return ss.db.CountTuples(ctx)
}

/*
Close closes the underlying adapter.
*/
func (ss *Set) Close() error {
	return ss.db.Close()
}

func (ss *Set) parseRow(row []string) (*dataset.Tuple, error) {
	if len(row) != len(ss.columns) {
		return nil, fmt.Errorf("expected %d values, got %d", len(ss.columns), len(row))
	}
	values := make(map[string]string, len(ss.attrs))
	for i, a := range ss.attrs {
		v := row[i]
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
	class := row[len(row)-1]
	if ok, err := ss.label.Valid(class); !ok {
		return nil, err
	}
	t := dataset.NewTuple(values)
	t.SetClass(class)
	return t, nil
}

func tupleColumns(db Adapter, attrs []attribute.Attribute, label *attribute.Discrete) ([]string, error) {
	names := make([]string, 0, len(attrs)+1)
	for _, a := range attrs {
		names = append(names, a.Name())
	}
	names = append(names, label.Name())
	columns := make([]string, 0, len(names))
	claimed := make(map[string]string, len(names))
	for _, name := range names {
		column, err := db.ColumnName(name)
		if err != nil {
			return nil, fmt.Errorf("invalid attribute %s: %v", name, err)
		}
		if other, ok := claimed[column]; ok {
			return nil, fmt.Errorf("%s and %s attribute names translate to the same column name %s", name, other, column)
		}
		claimed[column] = name
		columns = append(columns, column)
	}
	return columns, nil
}
