package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/tree/text"
	"github.com/spf13/cobra"
)

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeSource{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Manage grown classifiers",
		Long:  `Show grown classifiers and move them between files and a redis store`,
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
			fmt.Println(t)
		},
	}
	cmd.PersistentFlags().StringVar(&(config.store), "store", "", "address of a redis server keeping classifiers")
	cmd.PersistentFlags().StringVar(&(config.name), "name", "", "name of the classifier on the store")
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file with the classifier to show in its textual format (required unless the store flag is given)")
	cmd.AddCommand(treePushCmd(config), treePullCmd(config), treeLsCmd(config), treeRmCmd(config))
	return cmd
}

func treePushCmd(config *treeSource) *cobra.Command {
	var treeInput string
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Save a classifier file on the store",
		Long:  `Read a classifier from a file and save it on the redis store, printing the name it was saved under`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.store == "" {
				fmt.Fprintln(os.Stderr, "required store flag was not set")
				os.Exit(1)
			}
			if treeInput == "" {
				fmt.Fprintln(os.Stderr, "required tree flag was not set")
				os.Exit(1)
			}
			f, err := os.Open(treeInput)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading classifier from %s: %v\n", treeInput, err)
				os.Exit(2)
			}
			t, err := text.Read(f)
			f.Close()
			if err != nil {
				fmt.Fprintf(os.Stderr, "parsing classifier from %s: %v\n", treeInput, err)
				os.Exit(3)
			}
			store := openStore(config.store)
			defer store.Close()
			name, err := store.Save(cmd.Context(), config.name, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			fmt.Println(name)
		},
	}
	cmd.Flags().StringVarP(&treeInput, "tree", "t", "", "path to a file with the classifier to push in its textual format (required)")
	return cmd
}

func treePullCmd(config *treeSource) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Retrieve a classifier from the store",
		Long:  `Load a named classifier from the redis store and write it as a classifier file`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.store == "" || config.name == "" {
				fmt.Fprintln(os.Stderr, "required store and name flags were not set")
				os.Exit(1)
			}
			store := openStore(config.store)
			defer store.Close()
			t, err := store.Load(cmd.Context(), config.name)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			err = outputTree(output, t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "path to a file to which the classifier will be written in its textual format (defaults to STDOUT)")
	return cmd
}

func treeLsCmd(config *treeSource) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List the classifiers on the store",
		Run: func(cmd *cobra.Command, args []string) {
			if config.store == "" {
				fmt.Fprintln(os.Stderr, "required store flag was not set")
				os.Exit(1)
			}
			store := openStore(config.store)
			defer store.Close()
			names, err := store.List(cmd.Context())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}
}

func treeRmCmd(config *treeSource) *cobra.Command {
	return &cobra.Command{
		Use:   "rm",
		Short: "Remove a classifier from the store",
		Run: func(cmd *cobra.Command, args []string) {
			if config.store == "" || config.name == "" {
				fmt.Fprintln(os.Stderr, "required store and name flags were not set")
				os.Exit(1)
			}
			store := openStore(config.store)
			defer store.Close()
			err := store.Delete(cmd.Context(), config.name)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
		},
	}
}
