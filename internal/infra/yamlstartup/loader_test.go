package yamlstartup

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

func TestLoadRgeStartup(t *testing.T) {
	s, err := NewLoader().LoadRgeStartup(filepath.Join("testdata", "depth_profile_startup.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.RgeStartup{DataPath: "/data/trimsp", FlnPre: "LCCO_E", Energies: []int{1000, 2500, 5000}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("got %+v, want %+v", s, want)
	}
}

func TestLoadRgeStartup_MissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(path, []byte("trim_sp: {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewLoader().LoadRgeStartup(path)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
	for _, want := range []string{"data_path", "rge_fln_pre", "no implantation energies"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestLoadRgeStartup_Errors(t *testing.T) {
	cases := []struct {
		name string
		file string
		opts []Option
		kind domain.ErrorKind
	}{
		{"missing file", "nope.yaml", nil, domain.KindNotFound},
		{"float energy", "float_energy.yaml", nil, domain.KindInvalidConfig},
		{"zero energy", "zero_energy.yaml", nil, domain.KindInvalidConfig},
		{"energy beyond int range", "huge_energy.yaml", nil, domain.KindInvalidConfig},
		{"unknown key strict", "unknown_key.yaml", []Option{WithStrict(true)}, domain.KindInvalidConfig},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewLoader(c.opts...).LoadRgeStartup(filepath.Join("testdata", c.file))
			if !domain.IsKind(err, c.kind) {
				t.Fatalf("expected %s, got %v", c.kind, err)
			}
		})
	}
}

func TestLoadRgeStartup_UnknownKeyLenient(t *testing.T) {
	if _, err := NewLoader().LoadRgeStartup(filepath.Join("testdata", "unknown_key.yaml")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRgeStartup_EnergyMessages(t *testing.T) {
	cases := map[string]string{
		"float_energy.yaml": "1000.5 is not an integer",
		"zero_energy.yaml":  "0 is not positive",
		"huge_energy.yaml":  "is out-of-range",
	}
	for file, want := range cases {
		_, err := NewLoader().LoadRgeStartup(filepath.Join("testdata", file))
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Errorf("%s: expected %q in %v", file, want, err)
		}
	}
}
