package environment

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion, an observation, a discount, or a reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      mat.Vector
	Type       SpecType
	LowerBound mat.Vector
	UpperBound mat.Vector
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape mat.Vector, t SpecType, lowerBound,
	upperBound mat.Vector, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match upper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewDiscreteActionSpec returns the specification of a single discrete
// action in {0, 1, ..., numActions-1}
func NewDiscreteActionSpec(numActions int) Spec {
	return NewSpec(
		mat.NewVecDense(1, nil),
		Action,
		mat.NewVecDense(1, []float64{0}),
		mat.NewVecDense(1, []float64{float64(numActions - 1)}),
		Discrete,
	)
}

// NewDiscountSpec returns the specification of a constant discount
func NewDiscountSpec(discount float64) Spec {
	return NewSpec(
		mat.NewVecDense(1, nil),
		Discount,
		mat.NewVecDense(1, []float64{discount}),
		mat.NewVecDense(1, []float64{discount}),
		Continuous,
	)
}

// NumActions returns the number of discrete actions of an environment
func NumActions(e Environment) (int, error) {
	spec := e.ActionSpec()
	if spec.Cardinality != Discrete {
		return 0, fmt.Errorf("numActions: cannot use non-discrete actions")
	}
	if spec.Shape.Len() != 1 {
		return 0, fmt.Errorf("numActions: actions must be 1-dimensional")
	}
	if spec.LowerBound.AtVec(0) != 0 {
		return 0, fmt.Errorf("numActions: actions must be enumerated " +
			"starting from 0")
	}
	return int(spec.UpperBound.AtVec(0)) + 1, nil
}

// NumFeatures returns the length of an environment's observations
func NumFeatures(e Environment) int {
	return e.ObservationSpec().Shape.Len()
}
