/*
Package mongoset reads and writes sets of tuples on a MongoDB
database.

The tuples are kept on a tuples collection with one document per
tuple: one string field per attribute plus one for the class, so the
stored documents hold exactly the values the classifiers compare
against.
*/
package mongoset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const tuplesCollectionName = "tuples"

/*
Set represents the collection of tuples stored on a MongoDB database,
scoped to a slice of attributes and the class attribute their values
are read and validated against.
*/
type Set struct {
	session *mgo.Session
	attrs   []attribute.Attribute
	label   *attribute.Discrete
}

/*
Open takes a MongoDB session, a slice of attributes and the class
attribute, ensures the tuples collection is indexed by every
attribute and returns a Set working on the session's default
database. Attribute names that cannot be used as document fields are
rejected.
*/
func Open(session *mgo.Session, attrs []attribute.Attribute, label *attribute.Discrete) (*Set, error) {
	ms := &Set{session, attrs, label}
	if err := ms.ensureIndexes(); err != nil {
		return nil, err
	}
	return ms, nil
}

/*
Write takes a slice of tuples and inserts one document per tuple on
the collection. It returns the number of inserted tuples and an error
when not all of them could be inserted. Every tuple must hold a class
and a value for every attribute of the set.
*/
func (ms *Set) Write(ctx context.Context, tuples []*dataset.Tuple) (int, error) {
	if len(tuples) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(tuples))
	for i, t := range tuples {
		doc := make(bson.M, len(ms.attrs)+1)
		for _, a := range ms.attrs {
			v, err := t.ValueFor(a.Name())
			if err != nil {
				return 0, fmt.Errorf("writing tuple %d: %v", i+1, err)
			}
			doc[a.Name()] = v
		}
		if t.Class() == "" {
			return 0, fmt.Errorf("writing tuple %d: it holds no class", i+1)
		}
		doc[ms.label.Name()] = t.Class()
		docs = append(docs, doc)
	}
	if err := ms.tuplesCollection().Insert(docs...); err != nil {
		return 0, fmt.Errorf("inserting tuples in mongo: %v", err)
	}
	return len(tuples), nil
}

/*
Read returns a channel on which the stored tuples are delivered and a
channel on which a reading or parsing failure is delivered. Both
channels are closed when the tuples are exhausted, the context is
cancelled or an error occurs. Stored values are validated against the
set's attributes the same way file readers validate theirs.
*/
func (ms *Set) Read(ctx context.Context) (<-chan *dataset.Tuple, <-chan error) {
	tupleStream := make(chan *dataset.Tuple)
	errStream := make(chan error, 1)
	go func() {
		var err error
		var doc bson.M
		iter := ms.tuplesCollection().Find(nil).Iter()
		defer iter.Close()
		for n := 0; iter.Next(&doc); n++ {
			var t *dataset.Tuple
			t, err = ms.parseDocument(doc)
			if err != nil {
				err = fmt.Errorf("parsing stored tuple %d: %v", n+1, err)
				break
			}
			select {
			case <-ctx.Done():
				err = ctx.Err()
			case tupleStream <- t:
			}
			if err != nil {
				break
			}
		}
		if err == nil {
			err = iter.Err()
		}
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
func (ms *Set) ReadSet(ctx context.Context) (*dataset.Set, error) {
	var tuples []*dataset.Tuple
	tupleStream, errStream := ms.Read(ctx)
	for t := range tupleStream {
		tuples = append(tuples, t)
	}
	if err := <-errStream; err != nil {
		return nil, err
	}
	return dataset.New(tuples), nil
}

/*
Count returns the number of tuples stored on the collection.
*/
func (ms *Set) Count(ctx context.Context) (int, error) {
	return ms.tuplesCollection().Count()
}

/*
Close closes the session to MongoDB.
*/
func (ms *Set) Close() error {
	ms.session.Close()
	return nil
}

func (ms *Set) parseDocument(doc bson.M) (*dataset.Tuple, error) {
	values := make(map[string]string, len(ms.attrs))
	for _, a := range ms.attrs {
		raw, ok := doc[a.Name()]
		if !ok {
			return nil, fmt.Errorf("stored document holds no value for attribute %s", a.Name())
		}
		v := fmt.Sprintf("%v", raw)
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
	raw, ok := doc[ms.label.Name()]
	if !ok {
		return nil, fmt.Errorf("stored document holds no class for attribute %s", ms.label.Name())
	}
	class := fmt.Sprintf("%v", raw)
	if ok, err := ms.label.Valid(class); !ok {
		return nil, err
	}
	t := dataset.NewTuple(values)
	t.SetClass(class)
	return t, nil
}

func (ms *Set) ensureIndexes() error {
	names := make([]string, 0, len(ms.attrs)+1)
	for _, a := range ms.attrs {
		names = append(names, a.Name())
	}
	names = append(names, ms.label.Name())
	for _, name := range names {
		if name == "_id" {
			return fmt.Errorf("invalid attribute name %q: reserved collection field", name)
		}
		if strings.ContainsAny(name, ".$") {
			return fmt.Errorf("invalid attribute name %q: contains reserved characters %q or %q", name, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{name},
			Background: true,
			Sparse:     true,
		}
		if err := ms.tuplesCollection().EnsureIndex(index); err != nil {
			return fmt.Errorf("indexing tuples by %s: %v", name, err)
		}
	}
	return nil
}

func (ms *Set) tuplesCollection() *mgo.Collection {
	return ms.session.DB("").C(tuplesCollectionName)
}
