package ecs

// Clock is the fixed-step simulation clock. Now is the time at the start of
// the current tick in seconds.
type Clock struct {
	Now  float64
	DT   float64
	Tick uint64
}

// Advance moves the clock forward by one step.
func (c *Clock) Advance() {
	c.Now += c.DT
	c.Tick++
}
