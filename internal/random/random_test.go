package random

import "testing"

// TestSeederIsDeterministic ensures equal base seeds hand out equal sources in order.
func TestSeederIsDeterministic(t *testing.T) {
	a := NewSeeder(42)
	b := NewSeeder(42)

	for i := 0; i < 3; i++ {
		ra, rb := a.New(), b.New()
		for j := 0; j < 10; j++ {
			if x, y := ra.Intn(100), rb.Intn(100); x != y {
				t.Fatalf("source %d draw %d: %d != %d", i, j, x, y)
			}
		}
	}
}

// TestSeederSourcesDiffer ensures consecutive sources are not copies of each other.
func TestSeederSourcesDiffer(t *testing.T) {
	s := NewSeeder(7)
	first, second := s.New(), s.New()

	same := true
	for j := 0; j < 20; j++ {
		if first.Int63() != second.Int63() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected consecutive sources to produce different sequences")
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed returned error: %v", err)
	}
}
