package random

// Scripted replays fixed draws before falling back to another source.
// Queued ints outside [0, n) are reduced modulo n.
type Scripted struct {
	Ints     []int
	Floats   []float64
	Fallback Source
}

// NewScripted returns a Scripted source that replays ints and then falls
// back to a PCG source seeded with 1.
func NewScripted(ints ...int) *Scripted {
	return &Scripted{Ints: ints, Fallback: New(1)}
}

// IntN implements Source.
func (s *Scripted) IntN(n int) int {
	if len(s.Ints) == 0 {
		return s.fallback().IntN(n)
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Float64 implements Source.
func (s *Scripted) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.fallback().Float64()
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

func (s *Scripted) fallback() Source {
	if s.Fallback == nil {
		s.Fallback = New(1)
	}
	return s.Fallback
}

// Counting wraps a Source and counts draws.
type Counting struct {
	Source Source
	Draws  int
}

// IntN implements Source.
func (c *Counting) IntN(n int) int {
	c.Draws++
	return c.Source.IntN(n)
}

// Float64 implements Source.
func (c *Counting) Float64() float64 {
	c.Draws++
	return c.Source.Float64()
}

var (
	_ Source = (*Scripted)(nil)
	_ Source = (*Counting)(nil)
)
