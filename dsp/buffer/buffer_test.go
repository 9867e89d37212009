package buffer

import "testing"

func TestNewZeroFilled(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	if b := New(-1); b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestResetClearsAndKeepsCapacity(t *testing.T) {
	b := New(4)
	for i := range b.Samples() {
		b.Samples()[i] = float64(i + 1)
	}
	b.Reset(2)
	if b.Len() != 2 || b.Cap() != 4 {
		t.Fatalf("Len/Cap = %d/%d, want 2/4", b.Len(), b.Cap())
	}
	b.Reset(4)
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v after Reset, want 0", i, v)
		}
	}
	b.Reset(9)
	if b.Len() != 9 {
		t.Fatalf("Len() = %d, want 9", b.Len())
	}
}

func TestPoolGetIsZeroed(t *testing.T) {
	p := NewPool()
	b := p.Get(16)
	for i := range b.Samples() {
		b.Samples()[i] = 7
	}
	p.Put(b)

	c := p.Get(8)
	if c.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", c.Len())
	}
	for i, v := range c.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
	p.Put(nil)
}
