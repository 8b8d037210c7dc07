// Package network implements neural network function approximators
// which map state vectors to one value estimate per action.
package network

// Approximator maps a state vector to one value estimate per action
// and can be regressed toward target values.
type Approximator interface {
	// Predict returns the value estimates for a single state
	Predict(state []float64) ([]float64, error)

	// Fit takes a single gradient step toward target for state, using
	// the mean squared error loss. The loss before the step is
	// returned.
	Fit(state, target []float64) (float64, error)

	// Inputs returns the length of state vectors
	Inputs() int

	// Outputs returns the number of value estimates predicted
	Outputs() int

	// Save saves the weights of the Approximator to a file
	Save(path string) error

	// Load restores the weights of the Approximator from a file
	// created with Save
	Load(path string) error
}
