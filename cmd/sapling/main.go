package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sapling",
		Short: "sapling is a tool to grow decision-tree classifiers",
		Long:  `A tool to grow decision trees from your labeled data, test them, and use them to classify new records`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log progress to STDERR")
	rootCmd.AddCommand(versionCmd(), growCmd(config), classifyCmd(config), testCmd(config), setCmd(config), treeCmd(config))
	return rootCmd
}
