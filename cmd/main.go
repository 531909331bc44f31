// Command steady tracks personal recovery progress: it folds a log of
// behavioral events into a bounded score and a severity level.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:           "steady",
		Short:         "Track recovery progress from a log of behavioral events",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newRecordCmd(),
		newStatusCmd(),
		newLogCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newRecomputeCmd(),
		newSimulateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
