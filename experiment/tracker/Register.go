package tracker

import (
	"github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/timestep"
)

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
// registeredTracker itself is a Tracker.
//
// The Track() and Save() methods of a register call those of the
// embedded Tracker. The only difference is that registeredTracker calls
// the Track() method of the embedded Tracker using the most recent
// TimeStep of the registered Environment. The argument to
// registeredTracker.Track() is used only to end the episode when an
// outer wrapper cut it off before the registered Environment did.
//
// This may be useful if an experiment is run using an Environment
// wrapper as the Environment but the data from the wrapped Environment
// is needed to be tracked. For example, if an experiment is run on
// a RewardShaping Environment, this Tracker allows the wrapped
// Environment to be registered with a Return Tracker so that the
// unshaped return is tracked instead of the shaped return.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register registers a new Tracker with an Environment, to track data
// from the registered Environment only. Register returns a copy of the
// argument Tracker that is registered with the argument Environment.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the most recent
// TimeStep from the registered Environment.
func (r *registeredTracker) Track(t timestep.TimeStep) {
	step := r.env.LastTimeStep()
	if t.Last() && !step.Last() {
		step.SetEnd(t.EndType())
	}
	r.Tracker.Track(step)
}
