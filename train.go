package main

import (
	"github.com/aunum/log"
	"github.com/samuelfneumann/godqn/environment/wrappers"
	"github.com/samuelfneumann/godqn/experiment"
	"github.com/samuelfneumann/godqn/experiment/checkpointer"
	"github.com/samuelfneumann/godqn/experiment/tracker"
	"github.com/spf13/cobra"
)

type trainFlags struct {
	env              string
	episodes         int
	batchSize        int
	maxSteps         int
	penalty          float64
	seed             uint64
	load             string
	save             string
	agentConfig      string
	experimentConfig string
	lengths          string
	returns          string
	checkpointEvery  int
	checkpointPrefix string
	renderDir        string
}

func newTrainCmd() *cobra.Command {
	f := trainFlags{}
	defaults := experiment.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a DQN agent with experience replay",
		RunE: func(cmd *cobra.Command, args []string) error {
			return train(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.env, "env", "cartpole", "environment to train on")
	flags.IntVar(&f.episodes, "episodes", defaults.Episodes,
		"number of episodes")
	flags.IntVar(&f.batchSize, "batch-size", defaults.BatchSize,
		"transitions per replay")
	flags.IntVar(&f.maxSteps, "max-steps", defaults.MaxEpisodeSteps,
		"maximum steps per episode")
	flags.Float64Var(&f.penalty, "penalty", wrappers.DefaultTerminalPenalty,
		"reward on terminal steps")
	flags.Uint64Var(&f.seed, "seed", 1, "random seed")
	flags.StringVar(&f.load, "load", "", "weights to load before training")
	flags.StringVar(&f.save, "save", DefaultWeights,
		"file to save weights to after training, empty to skip")
	flags.StringVar(&f.agentConfig, "agent-config", "",
		"JSON agent configuration")
	flags.StringVar(&f.experimentConfig, "experiment-config", "",
		"JSON experiment configuration")
	flags.StringVar(&f.lengths, "lengths", "", "file to save episode lengths")
	flags.StringVar(&f.returns, "returns", "", "file to save episode returns")
	flags.IntVar(&f.checkpointEvery, "checkpoint-every", 0,
		"save weights every N episodes, 0 to disable")
	flags.StringVar(&f.checkpointPrefix, "checkpoint-prefix", "checkpoint",
		"filename prefix of checkpoints")
	flags.StringVar(&f.renderDir, "render-dir", "",
		"directory to write rendered frames to")

	return cmd
}

func train(cmd *cobra.Command, f trainFlags) error {
	expConf := experiment.DefaultConfig()
	if f.experimentConfig != "" {
		var err error
		if expConf, err = experiment.LoadConfig(f.experimentConfig); err != nil {
			return err
		}
	}

	// Flags given explicitly override the configuration file
	flags := cmd.Flags()
	if f.experimentConfig == "" || flags.Changed("episodes") {
		expConf.Episodes = f.episodes
	}
	if f.experimentConfig == "" || flags.Changed("batch-size") {
		expConf.BatchSize = f.batchSize
	}
	if f.experimentConfig == "" || flags.Changed("max-steps") {
		expConf.MaxEpisodeSteps = f.maxSteps
	}
	expConf.Train = true

	agentConf, err := agentConfig(f.agentConfig)
	if err != nil {
		return err
	}

	e, inner, a, err := setup(f.env, expConf.MaxEpisodeSteps,
		wrappers.TerminalPenalty(f.penalty), agentConf, f.seed)
	if err != nil {
		return err
	}
	if f.load != "" {
		if err := a.Load(f.load); err != nil {
			return err
		}
		log.Infof("loaded weights from %v", f.load)
	}

	var trackers []tracker.Tracker
	if f.lengths != "" {
		trackers = append(trackers, tracker.NewEpisodeLength(f.lengths))
	}
	if f.returns != "" {
		trackers = append(trackers,
			tracker.Register(tracker.NewReturn(f.returns), inner))
	}

	var checkpointers []checkpointer.Checkpointer
	if f.checkpointEvery > 0 {
		c, err := checkpointer.NewNEpisode(f.checkpointEvery, a,
			checkpointer.FilenameEnumerator(0, f.checkpointPrefix, ".gob"))
		if err != nil {
			return err
		}
		checkpointers = append(checkpointers, c)
	}

	exp, err := experiment.NewEpisodic(e, a, expConf, trackers,
		checkpointers)
	if err != nil {
		return err
	}
	if f.renderDir != "" {
		if err := exp.RenderTo(f.renderDir); err != nil {
			return err
		}
	}

	if err := exp.Run(); err != nil {
		return err
	}
	if err := exp.Save(); err != nil {
		return err
	}

	if f.save != "" {
		if err := a.Save(f.save); err != nil {
			return err
		}
		log.Infof("saved weights to %v", f.save)
	}
	return nil
}
