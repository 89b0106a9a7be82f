package levels

import "testing"

func TestEmbeddedSequenceLevelsLoad(t *testing.T) {
	seq, err := LoadSequence()
	if err != nil {
		t.Fatalf("load sequence: %v", err)
	}
	if seq.Count() == 0 {
		t.Fatalf("expected at least one level")
	}

	for i := 0; i < seq.Count(); i++ {
		name, ok := seq.Name(i)
		if !ok {
			t.Fatalf("missing name at %d", i)
		}
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevelFromFS(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			agents := 0
			coins := 0
			for _, e := range lvl.Entities {
				switch e.Type {
				case "agent":
					agents++
				case "coin":
					coins++
				}
				if lvl.Tile(0, e.X, e.Y) != 0 {
					t.Fatalf("%s at %d,%d sits inside a wall", e.Type, e.X, e.Y)
				}
			}
			if agents != 1 {
				t.Fatalf("expected one agent, got %d", agents)
			}
			if coins == 0 {
				t.Fatalf("expected coins")
			}
		})
	}
}

func TestSequenceLookup(t *testing.T) {
	seq, err := ParseSequence([]byte("levels: [a, b, c]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	tests := []struct {
		name string
		want int
	}{
		{"a", 0},
		{"c", 2},
		{"c.json", 2},
		{"missing", -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := seq.Index(tc.name); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}

	if _, ok := seq.Name(3); ok {
		t.Fatalf("expected out of range name lookup to fail")
	}
	if _, err := ParseSequence([]byte("levels: []\n")); err == nil {
		t.Fatalf("expected empty sequence to fail")
	}
}

func TestParseLevelRejectsMismatchedLayer(t *testing.T) {
	_, err := ParseLevel([]byte(`{"width":2,"height":2,"layers":[[1,1,1]]}`))
	if err == nil {
		t.Fatalf("expected short layer to be rejected")
	}
}

func TestTileOutOfRange(t *testing.T) {
	lvl := &Level{Width: 2, Height: 1, Layers: [][]int{{0, 5}}}
	if got := lvl.Tile(0, 1, 0); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	for _, c := range [][3]int{{1, 0, 0}, {0, 2, 0}, {0, -1, 0}, {0, 0, 1}} {
		if got := lvl.Tile(c[0], c[1], c[2]); got != 0 {
			t.Fatalf("expected 0 for %v, got %d", c, got)
		}
	}
}
