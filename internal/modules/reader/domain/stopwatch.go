package domain

// AccrualInterval is how often a running stopwatch credits one minute to the
// selected book.
const AccrualInterval = 60

// Stopwatch counts elapsed seconds while running.
type Stopwatch struct {
	elapsed int
	running bool
}

// Start reports whether the stopwatch was stopped before.
func (s *Stopwatch) Start() bool {
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Stopwatch) Pause() bool {
	if !s.running {
		return false
	}
	s.running = false
	return true
}

func (s *Stopwatch) Reset() {
	s.elapsed = 0
	s.running = false
}

func (s *Stopwatch) Tick() {
	if s.running {
		s.elapsed++
	}
}

func (s Stopwatch) Running() bool { return s.running }
func (s Stopwatch) Elapsed() int  { return s.elapsed }
