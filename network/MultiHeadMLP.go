package network

import (
	"encoding/gob"
	"fmt"
	"os"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// mlpGraph is a single computational graph of a multi-layered
// perceptron which takes one state as input
type mlpGraph struct {
	g          *G.ExprGraph
	input      *G.Node
	layers     []*fcLayer
	prediction *G.Node
	predVal    G.Value

	learnables G.Nodes
}

// newMLPGraph constructs the graph of an MLP with the given layer sizes.
// The final layer always has outputs units and no activation.
func newMLPGraph(features, outputs int, hiddenSizes []int,
	activations []*Activation, init G.InitWFn) (*mlpGraph, error) {
	g := G.NewGraph()
	input := G.NewMatrix(g, tensor.Float64, G.WithShape(1, features),
		G.WithName("input"), G.WithInit(G.Zeroes()))

	sizes := append(append([]int{}, hiddenSizes...), outputs)
	acts := append(append([]*Activation{}, activations...), Identity())

	layers := make([]*fcLayer, len(sizes))
	in := features
	for i, out := range sizes {
		layers[i] = newFCLayer(g, in, out, acts[i], init, i)
		in = out
	}

	net := &mlpGraph{g: g, input: input, layers: layers}

	pred := input
	var err error
	for i, l := range layers {
		if pred, err = l.fwd(pred); err != nil {
			msg := "fwd: could not compute forward pass of layer %v: %v"
			return nil, fmt.Errorf(msg, i, err)
		}
	}
	net.prediction = pred
	G.Read(net.prediction, &net.predVal)

	return net, nil
}

// Learnables returns the learnable nodes of the graph, ordered by layer
// with each layer's weights before its bias
func (m *mlpGraph) Learnables() G.Nodes {
	// Lazy instantiation
	if m.learnables == nil {
		learnables := make(G.Nodes, 0, 2*len(m.layers))
		for _, l := range m.layers {
			learnables = append(learnables, l.learnables()...)
		}
		m.learnables = learnables
	}
	return m.learnables
}

// setInput sets the value of the input node before running the forward
// pass.
func (m *mlpGraph) setInput(input []float64) error {
	if len(input) != m.input.Shape()[1] {
		return fmt.Errorf("setInput: invalid number of inputs\n\twant(%v)"+
			"\n\thave(%v)", m.input.Shape()[1], len(input))
	}
	backing := make([]float64, len(input))
	copy(backing, input)
	inputTensor := tensor.New(
		tensor.WithBacking(backing),
		tensor.WithShape(m.input.Shape()...),
	)
	return G.Let(m.input, inputTensor)
}

// weights returns a copy of the values of all learnable nodes
func (m *mlpGraph) weights() [][]float64 {
	learnables := m.Learnables()
	out := make([][]float64, len(learnables))
	for i, node := range learnables {
		data := node.Value().Data().([]float64)
		out[i] = append([]float64(nil), data...)
	}
	return out
}

// setWeights overwrites the values of all learnable nodes in place
func (m *mlpGraph) setWeights(weights [][]float64) error {
	learnables := m.Learnables()
	if len(weights) != len(learnables) {
		return fmt.Errorf("setWeights: invalid number of weight tensors"+
			"\n\twant(%v)\n\thave(%v)", len(learnables), len(weights))
	}
	for i, node := range learnables {
		data := node.Value().Data().([]float64)
		if len(data) != len(weights[i]) {
			return fmt.Errorf("setWeights: invalid size for %v\n\twant(%v)"+
				"\n\thave(%v)", node.Name(), len(data), len(weights[i]))
		}
		copy(data, weights[i])
	}
	return nil
}

// MultiHeadMLP implements a multi-layered perceptron with one output
// head per action. Predictions are computed on a forward-only graph
// whose weights are set to those of the training graph after each
// gradient step.
type MultiHeadMLP struct {
	numInputs   int
	numOutputs  int
	hiddenSizes []int
	activations []*Activation

	net   *mlpGraph
	netVM G.VM

	trainNet   *mlpGraph
	trainNetVM G.VM
	target     *G.Node
	loss       *G.Node
	lossVal    G.Value
	solver     G.Solver
	model      []G.ValueGrad
}

// NewMultiHeadMLP creates and returns a new multi-layered perceptron
// that has outputs output nodes and features input nodes.
//
// The MLP has number of layers equal to len(hiddenSizes) + 1. A final
// linear layer is always added so that the network has outputs
// predictions. For index i, hiddenSizes[i] is the number of nodes in
// hidden layer i and activations[i] is its activation function. Every
// layer has a bias unit. The parameter init determines the weight
// initialization scheme and solver adapts the weights.
func NewMultiHeadMLP(features, outputs int, hiddenSizes []int,
	activations []*Activation, init G.InitWFn,
	solver G.Solver) (*MultiHeadMLP, error) {
	if features < 1 {
		return nil, fmt.Errorf("newMultiHeadMLP: features must be >= 1")
	}
	if outputs < 1 {
		return nil, fmt.Errorf("newMultiHeadMLP: outputs must be >= 1")
	}
	if len(hiddenSizes) != len(activations) {
		msg := "newMultiHeadMLP: invalid number of activations" +
			"\n\twant(%d)\n\thave(%d)"
		return nil, fmt.Errorf(msg, len(hiddenSizes), len(activations))
	}
	for i, size := range hiddenSizes {
		if size < 1 {
			return nil, fmt.Errorf("newMultiHeadMLP: hidden layer %v must "+
				"have at least one unit", i)
		}
		if activations[i] == nil {
			return nil, fmt.Errorf("newMultiHeadMLP: activation %v is nil", i)
		}
	}
	if init == nil || solver == nil {
		return nil, fmt.Errorf("newMultiHeadMLP: init and solver must " +
			"be non-nil")
	}

	trainNet, err := newMLPGraph(features, outputs, hiddenSizes, activations,
		init)
	if err != nil {
		return nil, fmt.Errorf("newMultiHeadMLP: %v", err)
	}

	// Regress the prediction toward a target row vector
	target := G.NewMatrix(trainNet.g, tensor.Float64,
		G.WithShape(1, outputs), G.WithName("target"),
		G.WithInit(G.Zeroes()))
	loss := G.Must(G.Sub(trainNet.prediction, target))
	loss = G.Must(G.Square(loss))
	loss = G.Must(G.Mean(loss))

	mlp := &MultiHeadMLP{}
	G.Read(loss, &mlp.lossVal)

	if _, err := G.Grad(loss, trainNet.Learnables()...); err != nil {
		return nil, fmt.Errorf("newMultiHeadMLP: could not compute "+
			"gradient: %v", err)
	}
	trainNetVM := G.NewTapeMachine(
		trainNet.g,
		G.BindDualValues(trainNet.Learnables()...),
	)

	model := make([]G.ValueGrad, 0, len(trainNet.Learnables()))
	for _, node := range trainNet.Learnables() {
		model = append(model, node)
	}

	net, err := newMLPGraph(features, outputs, hiddenSizes, activations,
		G.Zeroes())
	if err != nil {
		return nil, fmt.Errorf("newMultiHeadMLP: %v", err)
	}

	mlp.numInputs = features
	mlp.numOutputs = outputs
	mlp.hiddenSizes = append([]int(nil), hiddenSizes...)
	mlp.activations = append([]*Activation(nil), activations...)
	mlp.net = net
	mlp.netVM = G.NewTapeMachine(net.g)
	mlp.trainNet = trainNet
	mlp.trainNetVM = trainNetVM
	mlp.target = target
	mlp.loss = loss
	mlp.solver = solver
	mlp.model = model

	if err := mlp.sync(); err != nil {
		return nil, fmt.Errorf("newMultiHeadMLP: %v", err)
	}
	return mlp, nil
}

// sync sets the weights of the prediction graph to those of the
// training graph
func (m *MultiHeadMLP) sync() error {
	return m.net.setWeights(m.trainNet.weights())
}

// Inputs returns the number of features in a single state
func (m *MultiHeadMLP) Inputs() int {
	return m.numInputs
}

// Outputs returns the number of outputs from the network
func (m *MultiHeadMLP) Outputs() int {
	return m.numOutputs
}

// HiddenSizes returns the number of units in each hidden layer
func (m *MultiHeadMLP) HiddenSizes() []int {
	return append([]int(nil), m.hiddenSizes...)
}

// Predict returns the network's output for a single state
func (m *MultiHeadMLP) Predict(state []float64) ([]float64, error) {
	if err := m.net.setInput(state); err != nil {
		return nil, fmt.Errorf("predict: %v", err)
	}
	defer m.netVM.Reset()
	if err := m.netVM.RunAll(); err != nil {
		return nil, fmt.Errorf("predict: %v", err)
	}

	out := make([]float64, m.numOutputs)
	copy(out, m.net.predVal.Data().([]float64))
	return out, nil
}

// Fit takes a single gradient step of the mean squared error between the
// prediction for state and target
func (m *MultiHeadMLP) Fit(state, target []float64) (float64, error) {
	if len(target) != m.numOutputs {
		return 0, fmt.Errorf("fit: invalid target size\n\twant(%v)"+
			"\n\thave(%v)", m.numOutputs, len(target))
	}
	if err := m.trainNet.setInput(state); err != nil {
		return 0, fmt.Errorf("fit: %v", err)
	}

	backing := append([]float64(nil), target...)
	targetTensor := tensor.New(
		tensor.WithBacking(backing),
		tensor.WithShape(1, m.numOutputs),
	)
	if err := G.Let(m.target, targetTensor); err != nil {
		return 0, fmt.Errorf("fit: could not set target: %v", err)
	}

	if err := m.trainNetVM.RunAll(); err != nil {
		m.trainNetVM.Reset()
		return 0, fmt.Errorf("fit: %v", err)
	}
	loss := scalar(m.lossVal)

	if err := m.solver.Step(m.model); err != nil {
		m.trainNetVM.Reset()
		return 0, fmt.Errorf("fit: could not step solver: %v", err)
	}
	m.trainNetVM.Reset()

	return loss, m.sync()
}

// Set sets the weights of the MultiHeadMLP to be equal to the
// weights of another MultiHeadMLP with the same architecture
func (m *MultiHeadMLP) Set(source *MultiHeadMLP) error {
	if err := m.checkArchitecture(source.numInputs, source.numOutputs,
		source.hiddenSizes, activationNames(source.activations)); err != nil {
		return fmt.Errorf("set: %v", err)
	}
	if err := m.trainNet.setWeights(source.trainNet.weights()); err != nil {
		return fmt.Errorf("set: %v", err)
	}
	return m.sync()
}

// checkpoint is the on-disk format of a MultiHeadMLP
type checkpoint struct {
	Inputs      int
	Outputs     int
	HiddenSizes []int
	Activations []string
	Weights     [][]float64
}

// Save gob encodes the architecture and weights of the network to a file
func (m *MultiHeadMLP) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	defer file.Close()

	c := checkpoint{
		Inputs:      m.numInputs,
		Outputs:     m.numOutputs,
		HiddenSizes: m.hiddenSizes,
		Activations: activationNames(m.activations),
		Weights:     m.trainNet.weights(),
	}
	if err := gob.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("save: could not encode network: %v", err)
	}
	return nil
}

// Load restores the weights of the network from a file created with
// Save. The network in the file must have the same architecture as m.
func (m *MultiHeadMLP) Load(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	var c checkpoint
	if err := gob.NewDecoder(file).Decode(&c); err != nil {
		return fmt.Errorf("load: could not decode network: %v", err)
	}
	if err := m.checkArchitecture(c.Inputs, c.Outputs, c.HiddenSizes,
		c.Activations); err != nil {
		return fmt.Errorf("load: %v", err)
	}
	if err := m.trainNet.setWeights(c.Weights); err != nil {
		return fmt.Errorf("load: %v", err)
	}
	return m.sync()
}

// checkArchitecture returns an error if the given architecture differs
// from that of m
func (m *MultiHeadMLP) checkArchitecture(inputs, outputs int,
	hiddenSizes []int, activations []string) error {
	if inputs != m.numInputs || outputs != m.numOutputs {
		return fmt.Errorf("architecture mismatch: want(%v inputs, %v "+
			"outputs) have(%v inputs, %v outputs)", m.numInputs,
			m.numOutputs, inputs, outputs)
	}
	if len(hiddenSizes) != len(m.hiddenSizes) ||
		len(activations) != len(m.activations) {
		return fmt.Errorf("architecture mismatch: hidden layers want(%v) "+
			"have(%v)", m.hiddenSizes, hiddenSizes)
	}
	names := activationNames(m.activations)
	for i := range hiddenSizes {
		if hiddenSizes[i] != m.hiddenSizes[i] {
			return fmt.Errorf("architecture mismatch: hidden layers "+
				"want(%v) have(%v)", m.hiddenSizes, hiddenSizes)
		}
		if activations[i] != names[i] {
			return fmt.Errorf("architecture mismatch: activations "+
				"want(%v) have(%v)", names, activations)
		}
	}
	return nil
}

func activationNames(acts []*Activation) []string {
	names := make([]string, len(acts))
	for i, act := range acts {
		names[i] = act.String()
	}
	return names
}

// scalar extracts a float64 from a scalar Gorgonia value
func scalar(v G.Value) float64 {
	switch data := v.Data().(type) {
	case float64:
		return data
	case []float64:
		return data[0]
	default:
		panic(fmt.Sprintf("scalar: unexpected value type %T", data))
	}
}
