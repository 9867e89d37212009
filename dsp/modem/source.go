package modem

import "math/rand"

// Symbol is one transmitted constellation point.
type Symbol struct {
	I, Q float64
}

// SymbolSource supplies the transmitter with symbols, one per call.
type SymbolSource interface {
	Next() Symbol
}

// RandomSource draws both axes independently and uniformly from an
// alphabet. It stands in for a bit-to-symbol mapper.
type RandomSource struct {
	levels []float64
	rng    *rand.Rand
}

// NewRandomSource returns a source over Levels(size) seeded with seed.
func NewRandomSource(size int, seed int64) *RandomSource {
	levels := Levels(size)
	if len(levels) == 0 {
		levels = []float64{0}
	}
	return &RandomSource{
		levels: levels,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Next implements SymbolSource.
func (s *RandomSource) Next() Symbol {
	n := len(s.levels)
	return Symbol{
		I: s.levels[s.rng.Intn(n)],
		Q: s.levels[s.rng.Intn(n)],
	}
}

// SliceSource replays a fixed symbol sequence cyclically.
type SliceSource struct {
	symbols []Symbol
	pos     int
}

// NewSliceSource returns a source replaying symbols. The slice is copied.
func NewSliceSource(symbols []Symbol) *SliceSource {
	return &SliceSource{symbols: append([]Symbol(nil), symbols...)}
}

// Next implements SymbolSource. An empty source yields the zero symbol.
func (s *SliceSource) Next() Symbol {
	if len(s.symbols) == 0 {
		return Symbol{}
	}
	sym := s.symbols[s.pos]
	s.pos++
	if s.pos == len(s.symbols) {
		s.pos = 0
	}
	return sym
}

// RecordingSource wraps a source and keeps every symbol it hands out.
type RecordingSource struct {
	src  SymbolSource
	sent []Symbol
}

// NewRecordingSource wraps src.
func NewRecordingSource(src SymbolSource) *RecordingSource {
	return &RecordingSource{src: src}
}

// Next implements SymbolSource.
func (r *RecordingSource) Next() Symbol {
	sym := r.src.Next()
	r.sent = append(r.sent, sym)
	return sym
}

// Sent returns the symbols handed out so far.
func (r *RecordingSource) Sent() []Symbol {
	return r.sent
}
