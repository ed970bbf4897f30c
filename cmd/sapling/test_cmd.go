package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*datasetInput
	trees *treeSource
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{
		datasetInput: &datasetInput{rootCmdConfig: rootConfig},
		trees:        &treeSource{rootCmdConfig: rootConfig},
	}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a classifier",
		Long:  `Test the performance of a classifier against a labeled data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			td, err := config.trainingData()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			t, err := config.trees.loadTree(config.Context())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Testing classifier against a set with %d tuples...", td.Set.Count())
			successRate, unclassified, err := t.Test(td.Set)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing classifier: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate, no branch matched %d tuples\n", successRate, unclassified)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a native training file, or with the metadata flag a CSV (.csv) or SQLite3 (.db) file, a PostgreSQL or a MongoDB connection URL with the labeled test data (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the attributes of the input data (omit it to read the native training format)")
	cmd.PersistentFlags().StringVarP(&(config.classAttribute), "class-attribute", "c", "", "name of the attribute the classifier predicts (required with the metadata flag)")
	cmd.PersistentFlags().StringVarP(&(config.trees.treeInput), "tree", "t", "", "path to a file with the classifier in its textual format (required unless the store flag is given)")
	cmd.PersistentFlags().StringVar(&(config.trees.store), "store", "", "address of a redis server to load the classifier from")
	cmd.PersistentFlags().StringVar(&(config.trees.name), "name", "", "name of the classifier on the store (required with the store flag)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if err := tcc.datasetInput.Validate(); err != nil {
		return err
	}
	return tcc.trees.Validate()
}
