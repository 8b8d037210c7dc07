package experiment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aunum/log"
	"github.com/fogleman/gg"
	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/godqn/agent"
	env "github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/environment/wrappers"
	"github.com/samuelfneumann/godqn/experiment/checkpointer"
	"github.com/samuelfneumann/godqn/experiment/tracker"
	ts "github.com/samuelfneumann/godqn/timestep"
)

// explorer is an agent which reports its exploration rate
type explorer interface {
	Epsilon() float64
}

// Episodic is an Experiment that runs an agent for a fixed number of
// episodes. Each episode is cut off after a maximum number of steps.
//
// In training mode the agent remembers every transition and replays a
// batch of transitions after each step that does not end the episode,
// once it remembers more than a batch worth of transitions.
type Episodic struct {
	environment   env.Environment
	agent         agent.Agent
	config        Config
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer

	renderer  env.Renderer
	renderDir string
	frame     int

	quiet bool
}

// NewEpisodic creates and returns a new episodic experiment of agent a
// on environment e
func NewEpisodic(e env.Environment, a agent.Agent, c Config,
	t []tracker.Tracker, check []checkpointer.Checkpointer) (*Episodic,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newEpisodic: %v", err)
	}
	if e == nil || a == nil {
		return nil, fmt.Errorf("newEpisodic: environment and agent must " +
			"be non-nil")
	}

	limited, err := wrappers.NewStepLimit(e, c.MaxEpisodeSteps)
	if err != nil {
		return nil, fmt.Errorf("newEpisodic: %v", err)
	}

	return &Episodic{
		environment:   limited,
		agent:         a,
		config:        c,
		trackers:      t,
		checkpointers: check,
	}, nil
}

// RenderTo writes every frame of the experiment as a PNG file in dir.
// The innermost environment must be an environment.Renderer.
func (e *Episodic) RenderTo(dir string) error {
	r, ok := env.Unwrap(e.environment).(env.Renderer)
	if !ok {
		return fmt.Errorf("renderTo: environment cannot be rendered")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("renderTo: %v", err)
	}
	e.renderer = r
	e.renderDir = dir
	return nil
}

// Quiet turns off the per-episode log line
func (e *Episodic) Quiet() {
	e.quiet = true
}

// Register registers a tracker.Tracker with the Experiment so that
// data generated during the experiment can be tracked and saved
func (e *Episodic) Register(t tracker.Tracker) {
	e.trackers = append(e.trackers, t)
}

// Environment returns the step limited environment the experiment
// runs on
func (e *Episodic) Environment() env.Environment {
	return e.environment
}

// RunEpisode runs a single episode of the experiment and returns the
// number of steps the episode lasted
func (e *Episodic) RunEpisode(i int) (int, error) {
	if e.config.Train {
		e.agent.Train()
	} else {
		e.agent.Eval()
	}

	step, err := e.environment.Reset()
	if err != nil {
		return 0, fmt.Errorf("runEpisode: %v", err)
	}
	if err := e.observe(step); err != nil {
		return 0, fmt.Errorf("runEpisode: %v", err)
	}

	for !step.Last() {
		action, err := e.agent.SelectAction(step.Observation)
		if err != nil {
			return 0, fmt.Errorf("runEpisode: %v", err)
		}

		next, done, err := e.environment.Step(action)
		if err != nil {
			return 0, fmt.Errorf("runEpisode: %v", err)
		}
		if err := e.observe(next); err != nil {
			return 0, fmt.Errorf("runEpisode: %v", err)
		}

		if e.config.Train {
			t := ts.NewTransition(step, action, next)
			if err := e.agent.Remember(t); err != nil {
				return 0, fmt.Errorf("runEpisode: %v", err)
			}
		}
		step = next

		if done {
			break
		}

		if e.config.Train && e.agent.Remembered() > e.config.BatchSize {
			if _, err := e.agent.Replay(e.config.BatchSize); err != nil {
				return 0, fmt.Errorf("runEpisode: %v", err)
			}
		}
	}

	score := step.Number
	if !e.quiet {
		var epsilon float64
		if ex, ok := e.agent.(explorer); ok {
			epsilon = ex.Epsilon()
		}
		log.Infof("episode: %d/%d, score: %v, e: %.2f", i,
			e.config.Episodes, aurora.Green(score), epsilon)
	}
	return score, nil
}

// Run runs all episodes of the experiment
func (e *Episodic) Run() error {
	for i := 0; i < e.config.Episodes; i++ {
		if _, err := e.RunEpisode(i); err != nil {
			return fmt.Errorf("run: episode %v: %v", i, err)
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (e *Episodic) Save() error {
	for _, t := range e.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// observe sends a TimeStep to each Tracker and Checkpointer and
// renders the frame if needed
func (e *Episodic) observe(step ts.TimeStep) error {
	for _, t := range e.trackers {
		t.Track(step)
	}
	for _, c := range e.checkpointers {
		if err := c.Checkpoint(step); err != nil {
			return err
		}
	}

	if e.renderer == nil {
		return nil
	}
	img, err := e.renderer.Render()
	if err != nil {
		return fmt.Errorf("render: %v", err)
	}
	path := filepath.Join(e.renderDir, fmt.Sprintf("frame%06d.png", e.frame))
	e.frame++
	return gg.SavePNG(path, img)
}
