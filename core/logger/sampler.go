package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler passes the first pass out of every window calls. A zeroed
// ratio disables sampling, meaning every call passes.
type ratioSampler struct {
	mu     sync.Mutex
	pass   int
	window int
	seen   int
}

func newRatioSampler(pass, window int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(pass, window)
	return s
}

// Set reconfigures the ratio and restarts the window.
func (s *ratioSampler) Set(pass, window int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass <= 0 || window <= 0 {
		s.pass, s.window, s.seen = 0, 0, 0
		return
	}
	if pass > window {
		pass = window
	}
	s.pass, s.window, s.seen = pass, window, 0
}

// Allow reports whether the current event falls inside the sampled share.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.window <= 0 {
		return true
	}
	pos := s.seen % s.window
	s.seen++
	return pos < s.pass
}

// parseRatioSpec understands "n/m" and the shorthand "m" (one in m).
// Anything unparsable or non-positive yields (0, 0), which disables sampling.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0
	}
	if num, den, ok := strings.Cut(spec, "/"); ok {
		n, errN := strconv.Atoi(strings.TrimSpace(num))
		d, errD := strconv.Atoi(strings.TrimSpace(den))
		if errN == nil && errD == nil {
			return n, d
		}
		return 0, 0
	}
	if v, err := strconv.Atoi(spec); err == nil && v > 0 {
		return 1, v
	}
	return 0, 0
}
