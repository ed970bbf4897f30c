package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*datasetInput
	output string
	store  string
	name   string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{datasetInput: &datasetInput{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a classifier from a set of labeled data",
		Long:  `Grow a decision-tree classifier from a set of labeled data to predict a certain attribute.`,
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
			config.Logf("Growing tree from a set with %d tuples and %d attributes to predict %s ...", td.Set.Count(), len(td.Attributes), td.Label.Name())
			t, err := sapling.Grow(td.Set, td.Attributes, td.Label)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(3)
			}
			config.Logf("Done")
			config.Logf("%v", t)
			if config.store != "" {
				store := openStore(config.store)
				defer store.Close()
				name, err := store.Save(config.Context(), config.name, t)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				fmt.Println(name)
				return
			}
			err = outputTree(config.output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to a native training file, or with the metadata flag a CSV (.csv) or SQLite3 (.db) file, a PostgreSQL or a MongoDB connection URL with the training data (defaults to STDIN)")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file describing the attributes of the input data (omit it to read the native training format)")
	cmd.PersistentFlags().StringVarP(&(config.classAttribute), "class-attribute", "c", "", "name of the attribute the grown tree should predict (required with the metadata flag)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in its textual format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVar(&(config.store), "store", "", "address of a redis server to save the grown tree on instead of a file")
	cmd.PersistentFlags().StringVar(&(config.name), "name", "", "name to save the grown tree under on the store (defaults to a generated one, printed on STDOUT)")
	cmd.PersistentFlags().IntVar(&(config.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
	return cmd
}
