package main

import (
	"os"

	"github.com/aunum/log"
	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/godqn/environment/wrappers"
	"github.com/samuelfneumann/godqn/experiment"
	"github.com/samuelfneumann/godqn/utils/progressbar"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

type demoFlags struct {
	env         string
	episodes    int
	maxSteps    int
	seed        uint64
	load        string
	agentConfig string
	renderDir   string
}

func newDemoCmd() *cobra.Command {
	f := demoFlags{}
	defaults := experiment.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a trained agent greedily without learning",
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.env, "env", "cartpole", "environment to run")
	flags.IntVar(&f.episodes, "episodes", defaults.Episodes,
		"number of episodes")
	flags.IntVar(&f.maxSteps, "max-steps", defaults.MaxEpisodeSteps,
		"maximum steps per episode")
	flags.Uint64Var(&f.seed, "seed", 1, "random seed")
	flags.StringVar(&f.load, "load", DefaultWeights, "weights to load")
	flags.StringVar(&f.agentConfig, "agent-config", "",
		"JSON agent configuration the weights were trained with")
	flags.StringVar(&f.renderDir, "render-dir", "",
		"directory to write rendered frames to")

	return cmd
}

func demo(f demoFlags) error {
	agentConf, err := agentConfig(f.agentConfig)
	if err != nil {
		return err
	}

	e, _, a, err := setup(f.env, f.maxSteps, wrappers.Identity, agentConf,
		f.seed)
	if err != nil {
		return err
	}
	if err := a.Load(f.load); err != nil {
		return err
	}

	expConf := experiment.Config{
		Episodes:        f.episodes,
		MaxEpisodeSteps: f.maxSteps,
		BatchSize:       1,
		Train:           false,
	}
	exp, err := experiment.NewEpisodic(e, a, expConf, nil, nil)
	if err != nil {
		return err
	}
	exp.Quiet()
	if f.renderDir != "" {
		if err := exp.RenderTo(f.renderDir); err != nil {
			return err
		}
	}

	bar := progressbar.NewManualProgressBar(os.Stdout, 40, f.episodes)
	scores := make([]float64, 0, f.episodes)
	for i := 0; i < f.episodes; i++ {
		score, err := exp.RunEpisode(i)
		if err != nil {
			return err
		}
		scores = append(scores, float64(score))

		bar.Increment()
		bar.Display()
	}
	bar.Close()

	log.Infof("mean score over %v episodes: %v", f.episodes,
		aurora.Green(stat.Mean(scores, nil)))
	return nil
}
