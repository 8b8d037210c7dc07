// Command godqn trains and evaluates a Deep Q-Network agent on simple
// control environments
package main

import (
	"github.com/aunum/log"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "godqn",
		Short:        "Train and evaluate a Deep Q-Network agent",
		SilenceUsage: true,
	}
	root.AddCommand(newTrainCmd(), newDemoCmd(), newPlotCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
