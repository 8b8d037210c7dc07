package main

import (
	"fmt"

	"github.com/aunum/log"
	"github.com/samuelfneumann/godqn/experiment/tracker"
	"github.com/samuelfneumann/godqn/report"
	"github.com/spf13/cobra"
)

type plotFlags struct {
	data  string
	png   string
	html  string
	title string
	label string
}

func newPlotCmd() *cobra.Command {
	f := plotFlags{}

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot per-episode data saved during training",
		RunE: func(cmd *cobra.Command, args []string) error {
			return plotData(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.data, "data", "", "tracker data file to plot")
	flags.StringVar(&f.png, "png", "", "image file to save the plot to")
	flags.StringVar(&f.html, "html", "", "HTML file to save the chart to")
	flags.StringVar(&f.title, "title", "Training", "plot title")
	flags.StringVar(&f.label, "label", "Score", "label of the plotted data")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func plotData(f plotFlags) error {
	if f.png == "" && f.html == "" {
		return fmt.Errorf("plot: at least one of --png or --html is required")
	}

	data, err := tracker.LoadData(f.data)
	if err != nil {
		return err
	}

	if f.png != "" {
		if err := report.SavePNG(data, f.title, f.label, f.png); err != nil {
			return err
		}
		log.Infof("saved %v", f.png)
	}
	if f.html != "" {
		if err := report.SaveHTML(data, f.title, f.label, f.html); err != nil {
			return err
		}
		log.Infof("saved %v", f.html)
	}
	return nil
}
