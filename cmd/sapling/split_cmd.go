package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a CSV set into an output set and a split set, assigning every tuple to one of them at random. Useful to carve a test set out of training data.`,
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
			var outputFile *os.File
			if config.setOutput != "" {
				config.Logf("Creating %s to dump output set...", config.setOutput)
				outputFile, err = os.Create(config.setOutput)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				defer outputFile.Close()
			} else {
				config.Logf("Using STDOUT to dump output set...")
				outputFile = os.Stdout
			}
			output, err := csv.NewWriter(outputFile, attrs, label)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Creating %s to dump split set...", config.splitOutput)
			splitOutputFile, err := os.Create(config.splitOutput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			defer splitOutputFile.Close()
			splitOutput, err := csv.NewWriter(splitOutputFile, attrs, label)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}

			randomizer := rand.New(rand.NewSource(time.Now().UnixNano()))
			splitter := func(_ int, t *dataset.Tuple) (bool, error) {
				w := output
				if (100 * randomizer.Float32()) <= float32(config.splitProbability) {
					w = splitOutput
				}
				if _, err := w.Write([]*dataset.Tuple{t}); err != nil {
					return false, err
				}
				return true, nil
			}

			var f *os.File
			if config.dataInput == "" {
				config.Logf("Reading input set from STDIN and splitting it into output and split output sets...")
				f = os.Stdin
			} else {
				config.Logf("Opening %s to read input set...", config.dataInput)
				f, err = os.Open(config.dataInput)
				if err != nil {
					fmt.Fprintf(os.Stderr, "reading input set from %s: %v\n", config.dataInput, err)
					os.Exit(7)
				}
				defer f.Close()
				config.Logf("Splitting input set into output and split output sets...")
			}
			err = csv.ReadSetByTuple(f, attrs, label, splitter)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(8)
			}
			config.Logf("Flushing output set...")
			err = output.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(9)
			}
			config.Logf("Flushing split set...")
			err = splitOutput.Flush()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(10)
			}
			config.Logf("Done")
			config.Logf("Input set with %d tuples was split into sets with %d and %d tuples", output.Count()+splitOutput.Count(), output.Count(), splitOutput.Count())
		},
	}
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a tuple of the set will be assigned to the split set")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a file to dump the output of the split set (required)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if err := scc.setCmdConfig.Validate(); err != nil {
		return err
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}
