package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/attribute"
	"github.com/pbanos/sapling/attribute/yaml"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/datafile"
	"github.com/pbanos/sapling/dataset/inputtuple"
	"github.com/pbanos/sapling/tree"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*treeSource
	dataInput     string
	metadataInput string
	output        string
	defaultClass  string
}

type stdoutValueRequester struct{}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{treeSource: &treeSource{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify records with a grown classifier",
		Long: `Classify the records of a classification input file with a grown classifier,
or classify a single record answering questions when no input file is given.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t, err := config.loadTree(cmd.Context())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			if config.dataInput == "" && config.metadataInput != "" {
				err = config.classifyInteractively(t)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				return
			}
			err = config.classifyFile(t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a classification input file with the records to classify (defaults to STDIN; omit it with the metadata flag to answer questions instead)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the attributes, to classify a single record answering questions")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the classified records will be written as CSV (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.defaultClass), "default-class", "d", "", "class to assign to records no branch of the classifier matches (defaults to none: such records keep an empty class)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file with the classifier in its textual format (required unless the store flag is given)")
	cmd.PersistentFlags().StringVar(&(config.store), "store", "", "address of a redis server to load the classifier from")
	cmd.PersistentFlags().StringVar(&(config.name), "name", "", "name of the classifier on the store (required with the store flag)")
	return cmd
}

/*
classifyFile classifies every record of the classification input,
writing one CSV row per record with its predicted class in the last
column. Records no branch matches get the default class; any other
classification failure aborts the file.
*/
func (ccc *classifyCmdConfig) classifyFile(t *tree.Tree) error {
	var f *os.File
	if ccc.dataInput == "" {
		ccc.Logf("Reading records to classify from STDIN...")
		f = os.Stdin
	} else {
		ccc.Logf("Opening %s to read records to classify...", ccc.dataInput)
		var err error
		f, err = os.Open(ccc.dataInput)
		if err != nil {
			return fmt.Errorf("opening records at %s: %v", ccc.dataInput, err)
		}
		defer f.Close()
	}
	order, tuples, err := datafile.ReadClassificationInput(f)
	if err != nil {
		return fmt.Errorf("reading records to classify: %v", err)
	}
	ccc.Logf("Classifying %d records...", len(tuples))
	var unclassified int
	for i, tp := range tuples {
		err := t.ClassifyTuple(tp)
		if err == tree.ErrUnclassifiable {
			unclassified++
			continue
		}
		if err != nil {
			return fmt.Errorf("classifying record %d: %v", i+1, err)
		}
	}
	if unclassified > 0 {
		ccc.Logf("No branch matched %d records, assigning them the default class %q", unclassified, ccc.defaultClass)
	}
	var out *os.File
	if ccc.output == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(ccc.output)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return csv.WriteClassified(out, order, tuples, ccc.defaultClass)
}

/*
classifyInteractively classifies a single record reading its values
from STDIN, asking only for the attributes the classifier actually
tests on the way down.
*/
func (ccc *classifyCmdConfig) classifyInteractively(t *tree.Tree) error {
	attrs, err := yaml.ReadAttributesFromFile(ccc.metadataInput)
	if err != nil {
		return err
	}
	tp := inputtuple.New(os.Stdin, attrs, stdoutValueRequester{})
	class, err := t.Classify(tp)
	if err == tree.ErrUnclassifiable {
		if ccc.defaultClass == "" {
			fmt.Println("No branch of the classifier matches this record")
			return nil
		}
		class = ccc.defaultClass
	} else if err != nil {
		return err
	}
	fmt.Printf("Predicted class is %s\n", class)
	return nil
}

func (stdoutValueRequester) RequestValueFor(a attribute.Attribute) error {
	switch a := a.(type) {
	case *attribute.Discrete:
		fmt.Printf("Please provide the record's %s:\n(valid values are %v)\n", a.Name(), a.Values())
	case *attribute.Continuous:
		fmt.Printf("Please provide the record's %s:\n(valid values are real numbers)\n", a.Name())
	default:
		fmt.Printf("Please provide the record's %s:\n", a.Name())
	}
	return nil
}

func (stdoutValueRequester) RejectValueFor(a attribute.Attribute, value string) error {
	switch a := a.(type) {
	case *attribute.Discrete:
		fmt.Printf("%s is not a valid value for the record's %s. Please provide one of %v.\n", value, a.Name(), a.Values())
	case *attribute.Continuous:
		fmt.Printf("%s is not a valid value for the record's %s. Please provide a real number.\n", value, a.Name())
	default:
		fmt.Printf("%s is not a valid value for the record's %s.\n", value, a.Name())
	}
	return nil
}
