package deepq

import "fmt"

// Exploration implements a multiplicatively decaying exploration rate
// for an epsilon greedy policy. Each call to Decay multiplies the rate
// by a decay factor as long as the rate is above a floor. The rate
// therefore never increases, and stops changing once at or below the
// floor.
type Exploration struct {
	epsilon float64
	min     float64
	decay   float64
}

// NewExploration returns a new Exploration schedule starting at
// epsilon with floor min and decay factor decay
func NewExploration(epsilon, min, decay float64) (*Exploration, error) {
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("newExploration: epsilon must be in [0, 1] "+
			"\n\thave(%v)", epsilon)
	}
	if min < 0 || min > 1 {
		return nil, fmt.Errorf("newExploration: min must be in [0, 1] "+
			"\n\thave(%v)", min)
	}
	if decay <= 0 || decay > 1 {
		return nil, fmt.Errorf("newExploration: decay must be in (0, 1] "+
			"\n\thave(%v)", decay)
	}
	return &Exploration{epsilon: epsilon, min: min, decay: decay}, nil
}

// Epsilon returns the current exploration rate
func (e *Exploration) Epsilon() float64 {
	return e.epsilon
}

// Min returns the floor of the exploration rate
func (e *Exploration) Min() float64 {
	return e.min
}

// Decay decays the exploration rate if it is above the floor
func (e *Exploration) Decay() {
	if e.epsilon > e.min {
		e.epsilon *= e.decay
	}
}

func (e *Exploration) String() string {
	return fmt.Sprintf("Exploration | ε: %.4f  |  Min: %v  |  Decay: %v",
		e.epsilon, e.min, e.decay)
}
