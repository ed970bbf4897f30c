package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/attribute/yaml"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/datafile"
	"github.com/pbanos/sapling/dataset/mongoset"
	"github.com/pbanos/sapling/dataset/sqlset"
	"github.com/pbanos/sapling/dataset/sqlset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqlset/sqlite3adapter"
	mgo "gopkg.in/mgo.v2"
)

/*
datasetInput resolves the data flags shared by the commands that read
labeled tuples. The data comes either from a native training file,
which embeds its own attribute metadata, or from a YAML metadata file
describing the attributes paired with tuples on a CSV file or stream,
an SQLite3 file (.db), a PostgreSQL database (postgresql://...) or a
MongoDB database (mongodb://...).
*/
type datasetInput struct {
	*rootCmdConfig
	dataInput      string
	metadataInput  string
	classAttribute string
	maxDBConns     int
	ctx            context.Context
	cancelFunc     context.CancelFunc
}

func (di *datasetInput) Validate() error {
	if di.metadataInput != "" && di.classAttribute == "" {
		return fmt.Errorf("required class-attribute flag was not set")
	}
	return nil
}

/*
trainingData loads the labeled tuples together with their attribute
metadata: from the native training format when no metadata flag is
given, otherwise from the YAML metadata and whatever backend the
input flag points to.
*/
func (di *datasetInput) trainingData() (*datafile.Training, error) {
	if di.metadataInput == "" {
		return di.nativeTrainingData()
	}
	attrs, label, err := di.metadataAttributes()
	if err != nil {
		return nil, err
	}
	s, err := di.readSet(attrs, label)
	if err != nil {
		return nil, err
	}
	return &datafile.Training{Attributes: attrs, Label: label, Set: s}, nil
}

func (di *datasetInput) nativeTrainingData() (*datafile.Training, error) {
	var f *os.File
	if di.dataInput == "" {
		di.Logf("Reading training data from STDIN...")
		f = os.Stdin
	} else {
		di.Logf("Opening %s to read training data...", di.dataInput)
		var err error
		f, err = os.Open(di.dataInput)
		if err != nil {
			return nil, fmt.Errorf("opening training data at %s: %v", di.dataInput, err)
		}
		defer f.Close()
	}
	td, err := datafile.ReadTraining(f)
	if err != nil {
		return nil, fmt.Errorf("reading training data: %v", err)
	}
	return td, nil
}

/*
metadataAttributes reads the attributes declared on the YAML metadata
file and splits out the class attribute, which must be declared there
as a discrete attribute with the name given by the class-attribute
flag.
*/
func (di *datasetInput) metadataAttributes() ([]attribute.Attribute, *attribute.Discrete, error) {
	di.Logf("Reading attributes from metadata at %s...", di.metadataInput)
	attrs, err := yaml.ReadAttributesFromFile(di.metadataInput)
	if err != nil {
		return nil, nil, err
	}
	var label *attribute.Discrete
	rest := make([]attribute.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Name() != di.classAttribute {
			rest = append(rest, a)
			continue
		}
		da, ok := a.(*attribute.Discrete)
		if !ok {
			return nil, nil, fmt.Errorf("class attribute '%s' must declare its values", di.classAttribute)
		}
		label = da
	}
	if label == nil {
		return nil, nil, fmt.Errorf("class attribute '%s' is not defined", di.classAttribute)
	}
	return rest, label, nil
}

func (di *datasetInput) readSet(attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Set, error) {
	if di.dataInput == "" {
		di.Logf("Reading set from STDIN...")
		return csv.ReadSet(os.Stdin, attrs, label)
	}
	if strings.HasPrefix(di.dataInput, "postgresql://") {
		return di.postgreSQLSet(attrs, label)
	}
	if strings.HasPrefix(di.dataInput, "mongodb://") {
		return di.mongoSet(attrs, label)
	}
	if strings.HasSuffix(di.dataInput, ".db") {
		return di.sqlite3Set(attrs, label)
	}
	di.Logf("Opening %s to read set...", di.dataInput)
	return csv.ReadSetFromFilePath(di.dataInput, attrs, label)
}

func (di *datasetInput) sqlite3Set(attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Set, error) {
	di.Logf("Creating SQLite3 adapter for file %s to read set...", di.dataInput)
	adapter, err := sqlite3adapter.New(di.dataInput, di.maxDBConns)
	if err != nil {
		return nil, err
	}
	ss, err := sqlset.Open(di.Context(), adapter, attrs, label)
	if err != nil {
		return nil, err
	}
	defer ss.Close()
	return ss.ReadSet(di.Context())
}

func (di *datasetInput) postgreSQLSet(attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Set, error) {
	di.Logf("Creating PostgreSQL adapter for url %s to read set...", di.dataInput)
	adapter, err := pgadapter.New(di.dataInput)
	if err != nil {
		return nil, err
	}
	ss, err := sqlset.Open(di.Context(), adapter, attrs, label)
	if err != nil {
		return nil, err
	}
	defer ss.Close()
	return ss.ReadSet(di.Context())
}

func (di *datasetInput) mongoSet(attrs []attribute.Attribute, label *attribute.Discrete) (*dataset.Set, error) {
	di.Logf("Dialing %s to read set...", di.dataInput)
	session, err := mgo.Dial(di.dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo at %s: %v", di.dataInput, err)
	}
	ms, err := mongoset.Open(session, attrs, label)
	if err != nil {
		session.Close()
		return nil, err
	}
	defer ms.Close()
	return ms.ReadSet(di.Context())
}

func (di *datasetInput) Context() context.Context {
	di.setContextAndCancelFunc()
	return di.ctx
}

func (di *datasetInput) ContextCancelFunc() context.CancelFunc {
	di.setContextAndCancelFunc()
	return di.cancelFunc
}

func (di *datasetInput) setContextAndCancelFunc() {
	if di.ctx == nil {
		di.ctx, di.cancelFunc = context.WithCancel(context.Background())
	}
}
