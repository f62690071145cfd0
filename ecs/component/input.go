package component

// Input is the lateral steering axis sampled for this tick, in [-1, 1].
type Input struct {
	Lateral float64
}

var InputComponent = NewComponent[Input]()
