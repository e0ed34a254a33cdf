package domain

import "testing"

func TestRgeFileName(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/data/trimsp", "/data/trimsp/LCCO_E1000.rge"},
		{"/data/trimsp/", "/data/trimsp/LCCO_E1000.rge"},
	}
	for _, c := range cases {
		s := RgeStartup{DataPath: c.path, FlnPre: "LCCO_E"}
		if got := s.RgeFileName(1000); got != c.want {
			t.Errorf("RgeFileName(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

func TestRgeDataZMaxAndClone(t *testing.T) {
	var empty RgeData
	if empty.ZMax() != -1.0 {
		t.Fatalf("expected -1 for empty table")
	}

	d := RgeData{Energy: 1000, Depth: []float64{1, 2, 3}, Amplitude: []float64{1, 1, 1}, NN: []float64{0.3, 0.3, 0.3}}
	if d.ZMax() != 3 {
		t.Fatalf("expected zMax 3, got %v", d.ZMax())
	}

	c := d.Clone()
	c.Depth[0] = 42
	if d.Depth[0] != 1 {
		t.Fatalf("clone shares depth slice")
	}
}
