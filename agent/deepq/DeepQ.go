// Package deepq implements the Deep Q-learning algorithm with a replay
// buffer and an epsilon greedy behaviour policy
package deepq

import (
	"fmt"

	env "github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/expreplay"
	"github.com/samuelfneumann/godqn/network"
	ts "github.com/samuelfneumann/godqn/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DeepQ implements the Deep Q-learning algorithm. A single action
// value network is used both to act and to construct bootstrapped
// targets. Every call to Replay fits the network to a batch of stored
// transitions one transition at a time and then decays the exploration
// rate of the epsilon greedy behaviour policy.
type DeepQ struct {
	q          network.Approximator
	replay     *expreplay.Buffer
	explore    *Exploration
	discount   float64
	numActions int

	rng  *rand.Rand
	eval bool
}

// New creates a new DeepQ agent acting in environment e, using the
// architecture and hyperparameters described by c
func New(e env.Environment, c Config, seed uint64) (*DeepQ, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	numActions, err := env.NumActions(e)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	features := env.NumFeatures(e)

	q, err := network.NewMultiHeadMLP(features, numActions, c.HiddenSizes,
		c.Activations, c.InitWFn.InitWFn(), c.Solver.Solver)
	if err != nil {
		return nil, fmt.Errorf("new: could not create action value "+
			"network: %v", err)
	}

	replay, err := expreplay.Config{
		Capacity: c.ReplayCapacity,
		Seed:     seed,
	}.Create(features)
	if err != nil {
		return nil, fmt.Errorf("new: could not create replay buffer: %v",
			err)
	}

	explore, err := NewExploration(c.Epsilon, c.EpsilonMin, c.EpsilonDecay)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	return NewWithApproximator(q, replay, c.Discount, explore, numActions,
		seed+1)
}

// NewWithApproximator creates a new DeepQ agent from an existing
// action value approximator and replay buffer
func NewWithApproximator(q network.Approximator, replay *expreplay.Buffer,
	discount float64, explore *Exploration, numActions int,
	seed uint64) (*DeepQ, error) {
	if q == nil || replay == nil || explore == nil {
		return nil, fmt.Errorf("newWithApproximator: approximator, " +
			"replay buffer, and exploration must be non-nil")
	}
	if numActions < 1 {
		return nil, fmt.Errorf("newWithApproximator: numActions must be "+
			">= 1 \n\thave(%v)", numActions)
	}
	if q.Outputs() != numActions {
		return nil, fmt.Errorf("newWithApproximator: approximator must "+
			"predict one value per action \n\twant(%v) \n\thave(%v)",
			numActions, q.Outputs())
	}
	if q.Inputs() != replay.FeatureSize() {
		return nil, fmt.Errorf("newWithApproximator: approximator and "+
			"replay buffer feature sizes differ \n\tapproximator(%v) "+
			"\n\treplay(%v)", q.Inputs(), replay.FeatureSize())
	}
	if discount < 0 || discount > 1 {
		return nil, fmt.Errorf("newWithApproximator: discount must be in "+
			"[0, 1] \n\thave(%v)", discount)
	}

	return &DeepQ{
		q:          q,
		replay:     replay,
		explore:    explore,
		discount:   discount,
		numActions: numActions,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// SelectAction selects an action in state obs. In training mode, a
// uniformly random action is chosen with probability epsilon and the
// greedy action otherwise. In evaluation mode the greedy action is
// always chosen.
func (d *DeepQ) SelectAction(obs mat.Vector) (int, error) {
	if obs.Len() != d.q.Inputs() {
		return 0, fmt.Errorf("selectAction: invalid observation size "+
			"\n\twant(%v) \n\thave(%v)", d.q.Inputs(), obs.Len())
	}

	if !d.eval && d.rng.Float64() < d.explore.Epsilon() {
		return d.rng.Intn(d.numActions), nil
	}

	values, err := d.q.Predict(vecData(obs))
	if err != nil {
		return 0, fmt.Errorf("selectAction: %v", err)
	}
	return floats.MaxIdx(values), nil
}

// Remember stores a transition in the replay buffer
func (d *DeepQ) Remember(t ts.Transition) error {
	if t.Action < 0 || t.Action >= d.numActions {
		return fmt.Errorf("remember: illegal action %v", t.Action)
	}
	if err := d.replay.Add(t); err != nil {
		return fmt.Errorf("remember: %v", err)
	}
	return nil
}

// Remembered returns the number of transitions stored in the replay
// buffer
func (d *DeepQ) Remembered() int {
	return d.replay.Len()
}

// Target returns the regression target of the action value network
// for transition t. The target equals the current predictions in
// t.State except at t.Action, where it is the reward if the
// transition is terminal and the reward plus the discounted maximum
// predicted value of t.NextState otherwise.
func (d *DeepQ) Target(t ts.Transition) ([]float64, error) {
	pred, err := d.q.Predict(t.State.RawVector().Data)
	if err != nil {
		return nil, fmt.Errorf("target: %v", err)
	}
	target := make([]float64, len(pred))
	copy(target, pred)

	if t.Terminal {
		target[t.Action] = t.Reward
		return target, nil
	}

	next, err := d.q.Predict(t.NextState.RawVector().Data)
	if err != nil {
		return nil, fmt.Errorf("target: %v", err)
	}
	target[t.Action] = t.Reward + d.discount*floats.Max(next)
	return target, nil
}

// Replay samples batchSize transitions without replacement from the
// replay buffer, fits the action value network to the target of each
// sampled transition in turn, and then decays the exploration rate.
// The mean loss over the batch is returned.
func (d *DeepQ) Replay(batchSize int) (float64, error) {
	batch, err := d.replay.Sample(batchSize)
	if err != nil {
		return 0, fmt.Errorf("replay: %w", err)
	}

	var totalLoss float64
	for _, t := range batch {
		target, err := d.Target(t)
		if err != nil {
			return 0, fmt.Errorf("replay: %v", err)
		}

		loss, err := d.q.Fit(t.State.RawVector().Data, target)
		if err != nil {
			return 0, fmt.Errorf("replay: %v", err)
		}
		totalLoss += loss
	}

	d.explore.Decay()
	return totalLoss / float64(len(batch)), nil
}

// Epsilon returns the current exploration rate
func (d *DeepQ) Epsilon() float64 {
	return d.explore.Epsilon()
}

// Eval sets the agent into evaluation mode
func (d *DeepQ) Eval() {
	d.eval = true
}

// Train sets the agent into training mode
func (d *DeepQ) Train() {
	d.eval = false
}

// IsEval returns whether the agent is in evaluation mode
func (d *DeepQ) IsEval() bool {
	return d.eval
}

// Save saves the weights of the action value network to a file
func (d *DeepQ) Save(path string) error {
	return d.q.Save(path)
}

// Load restores the weights of the action value network from a file
func (d *DeepQ) Load(path string) error {
	return d.q.Load(path)
}

func vecData(v mat.Vector) []float64 {
	if dense, ok := v.(*mat.VecDense); ok && dense.RawVector().Inc == 1 {
		return dense.RawVector().Data
	}
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return data
}
