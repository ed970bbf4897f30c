package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/mongoset"
	"github.com/pbanos/sapling/dataset/sqlset"
	"github.com/pbanos/sapling/dataset/sqlset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqlset/sqlite3adapter"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type setCmdConfig struct {
	*datasetInput
	setOutput string
}

type tupleWriter interface {
	Write(context.Context, []*dataset.Tuple) (int, error)
}

type writableSet interface {
	tupleWriter
	Flush() error
}

type flushableTupleWriter struct {
	tupleWriter
}

type csvTupleWriter struct {
	csv.Writer
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{datasetInput: &datasetInput{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Dump a set of labeled data from one representation into another: CSV files, SQLite3 files, PostgreSQL or MongoDB databases`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			attrs, label, err := config.metadataAttributes()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			output, err := config.OutputWriter(attrs, label)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			inputStream, errStream, err := config.InputStream(attrs, label)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			for t := range inputStream {
				_, err = output.Write(config.Context(), []*dataset.Tuple{t})
				if err != nil {
					config.ContextCancelFunc()()
					break
				}
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			err = <-errStream
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
			config.Logf("Flushing output set...")
			err = output.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(7)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with the set to dump (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different attributes of the input data (required)")
	cmd.PersistentFlags().StringVarP(&(config.classAttribute), "class-attribute", "c", "", "name of the class attribute of the set (required)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return scc.datasetInput.Validate()
}

func (scc *setCmdConfig) OutputWriter(attrs []attribute.Attribute, label *attribute.Discrete) (writableSet, error) {
	var outputFile *os.File
	var err error
	if scc.setOutput != "" {
		if strings.HasPrefix(scc.setOutput, "postgresql://") {
			return scc.postgreSQLOutputWriter(attrs, label)
		}
		if strings.HasPrefix(scc.setOutput, "mongodb://") {
			return scc.mongoOutputWriter(attrs, label)
		}
		if strings.HasSuffix(scc.setOutput, ".db") {
			return scc.sqlite3OutputWriter(attrs, label)
		}
		scc.Logf("Creating %s to dump output set...", scc.setOutput)
		outputFile, err = os.Create(scc.setOutput)
		if err != nil {
			return nil, err
		}
	} else {
		scc.Logf("Using STDOUT to dump output set...")
		outputFile = os.Stdout
	}
	scc.Logf("Preparing to write output set...")
	output, err := csv.NewWriter(outputFile, attrs, label)
	if err != nil {
		return nil, err
	}
	return &csvTupleWriter{output}, nil
}

func (scc *setCmdConfig) InputStream(attrs []attribute.Attribute, label *attribute.Discrete) (<-chan *dataset.Tuple, <-chan error, error) {
	var f *os.File
	if scc.dataInput == "" {
		scc.Logf("Reading input set from STDIN and dumping it into output set...")
		f = os.Stdin
	} else {
		if strings.HasPrefix(scc.dataInput, "postgresql://") {
			return scc.postgreSQLInputStream(attrs, label)
		}
		if strings.HasPrefix(scc.dataInput, "mongodb://") {
			return scc.mongoInputStream(attrs, label)
		}
		if strings.HasSuffix(scc.dataInput, ".db") {
			return scc.sqlite3InputStream(attrs, label)
		}
		scc.Logf("Opening %s to read input set...", scc.dataInput)
		var err error
		f, err = os.Open(scc.dataInput)
		if err != nil {
			return nil, nil, fmt.Errorf("reading input set from %s: %v", scc.dataInput, err)
		}
		scc.Logf("Dumping input set into output set...")
	}
	tupleStream := make(chan *dataset.Tuple)
	errStream := make(chan error, 1)
	go func() {
		defer f.Close()
		err := csv.ReadSetByTuple(f, attrs, label, func(_ int, t *dataset.Tuple) (bool, error) {
			select {
			case <-scc.Context().Done():
				return false, nil
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
	return tupleStream, errStream, nil
}

func (scc *setCmdConfig) sqlite3InputStream(attrs []attribute.Attribute, label *attribute.Discrete) (<-chan *dataset.Tuple, <-chan error, error) {
	scc.Logf("Creating SQLite3 adapter for file %s to read input set...", scc.dataInput)
	adapter, err := sqlite3adapter.New(scc.dataInput, scc.maxDBConns)
	if err != nil {
		return nil, nil, err
	}
	ss, err := sqlset.Open(scc.Context(), adapter, attrs, label)
	if err != nil {
		return nil, nil, err
	}
	tupleStream, errStream := ss.Read(scc.Context())
	return tupleStream, errStream, nil
}

func (scc *setCmdConfig) postgreSQLInputStream(attrs []attribute.Attribute, label *attribute.Discrete) (<-chan *dataset.Tuple, <-chan error, error) {
	scc.Logf("Creating PostgreSQL adapter for url %s to read input set...", scc.dataInput)
	adapter, err := pgadapter.New(scc.dataInput)
	if err != nil {
		return nil, nil, err
	}
	ss, err := sqlset.Open(scc.Context(), adapter, attrs, label)
	if err != nil {
		return nil, nil, err
	}
	tupleStream, errStream := ss.Read(scc.Context())
	return tupleStream, errStream, nil
}

func (scc *setCmdConfig) mongoInputStream(attrs []attribute.Attribute, label *attribute.Discrete) (<-chan *dataset.Tuple, <-chan error, error) {
	scc.Logf("Dialing %s to read input set...", scc.dataInput)
	session, err := mgo.Dial(scc.dataInput)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to mongo at %s: %v", scc.dataInput, err)
	}
	ms, err := mongoset.Open(session, attrs, label)
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	tupleStream, errStream := ms.Read(scc.Context())
	return tupleStream, errStream, nil
}

func (scc *setCmdConfig) sqlite3OutputWriter(attrs []attribute.Attribute, label *attribute.Discrete) (writableSet, error) {
	scc.Logf("Creating SQLite3 adapter for file %s to dump output set...", scc.setOutput)
	adapter, err := sqlite3adapter.New(scc.setOutput, scc.maxDBConns)
	if err != nil {
		return nil, err
	}
	ss, err := sqlset.Create(scc.Context(), adapter, attrs, label)
	if err != nil {
		return nil, err
	}
	return &flushableTupleWriter{ss}, nil
}

func (scc *setCmdConfig) postgreSQLOutputWriter(attrs []attribute.Attribute, label *attribute.Discrete) (writableSet, error) {
	scc.Logf("Creating PostgreSQL adapter for url %s to dump output set...", scc.setOutput)
	adapter, err := pgadapter.New(scc.setOutput)
	if err != nil {
		return nil, err
	}
	ss, err := sqlset.Create(scc.Context(), adapter, attrs, label)
	if err != nil {
		return nil, err
	}
	return &flushableTupleWriter{ss}, nil
}

func (scc *setCmdConfig) mongoOutputWriter(attrs []attribute.Attribute, label *attribute.Discrete) (writableSet, error) {
	scc.Logf("Dialing %s to dump output set...", scc.setOutput)
	session, err := mgo.Dial(scc.setOutput)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo at %s: %v", scc.setOutput, err)
	}
	ms, err := mongoset.Open(session, attrs, label)
	if err != nil {
		session.Close()
		return nil, err
	}
	return &flushableTupleWriter{ms}, nil
}

func (fsw *flushableTupleWriter) Flush() error {
	return nil
}

func (cw *csvTupleWriter) Write(_ context.Context, tuples []*dataset.Tuple) (int, error) {
	return cw.Writer.Write(tuples)
}
