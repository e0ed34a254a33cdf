package xmlstartup

import (
	"encoding/xml"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

func TestLoadRgeStartup(t *testing.T) {
	s, err := NewLoader().LoadRgeStartup(filepath.Join("testdata", "depth_profile_startup.xml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.DataPath != "/data/trimsp" {
		t.Fatalf("expected data path inside trim_sp, got %q", s.DataPath)
	}
	if s.FlnPre != "LCCO_E" {
		t.Fatalf("expected prefix LCCO_E, got %q", s.FlnPre)
	}
	if !reflect.DeepEqual(s.Energies, []int{1000, 2500, 5000}) {
		t.Fatalf("unexpected energies %v", s.Energies)
	}
}

func TestLoadRgeStartup_Invalid(t *testing.T) {
	cases := []struct {
		file string
		kind domain.ErrorKind
		msg  string
	}{
		{"missing_prefix.xml", domain.KindInvalidConfig, "<rge_fln_pre> content is missing"},
		{"bad_energy.xml", domain.KindInvalidConfig, "not an integer"},
		{"negative_energy.xml", domain.KindInvalidConfig, "'-250' is not positive"},
		{"broken.xml", domain.KindInvalidConfig, ""},
		{"does_not_exist.xml", domain.KindNotFound, ""},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			path := filepath.Join("testdata", c.file)
			_, err := NewLoader().LoadRgeStartup(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !domain.IsKind(err, c.kind) {
				t.Fatalf("expected kind %s, got %v", c.kind, err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("expected path in error, got %v", err)
			}
			if c.msg != "" && !strings.Contains(err.Error(), c.msg) {
				t.Fatalf("expected %q in error, got %v", c.msg, err)
			}
		})
	}
}

func TestRgeHandler_EmptyDocument(t *testing.T) {
	h := NewRgeHandler()
	if err := Parse(strings.NewReader("<root/>"), h); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if h.IsValid() {
		t.Fatal("expected invalid handler for document without trim_sp")
	}
	for _, want := range []string{"data_path", "rge_fln_pre", "no implantation energies"} {
		if !strings.Contains(h.Err().Error(), want) {
			t.Errorf("expected %q in %v", want, h.Err())
		}
	}
}

type recorder struct {
	events []string
}

func (r *recorder) OnStartDocument()                      { r.events = append(r.events, "start-doc") }
func (r *recorder) OnEndDocument()                        { r.events = append(r.events, "end-doc") }
func (r *recorder) OnStartElement(n string, _ []xml.Attr) { r.events = append(r.events, "<"+n) }
func (r *recorder) OnEndElement(n string)                 { r.events = append(r.events, n+">") }
func (r *recorder) OnCharacters(s string)                 { r.events = append(r.events, "'"+s+"'") }
func (r *recorder) OnComment(s string)                    { r.events = append(r.events, "#"+s) }
func (r *recorder) OnWarning(string)                      {}
func (r *recorder) OnError(string)                        {}
func (r *recorder) OnFatalError(string)                   { r.events = append(r.events, "fatal") }

func TestParse_EventOrder(t *testing.T) {
	r := &recorder{}
	if err := Parse(strings.NewReader("<a><!--c--><b>x</b></a>"), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"start-doc", "<a", "#c", "<b", "'x'", "b>", "a>", "end-doc"}
	if !reflect.DeepEqual(r.events, want) {
		t.Fatalf("events = %v, want %v", r.events, want)
	}
}

func TestParse_StopsOnError(t *testing.T) {
	r := &recorder{}
	if err := Parse(strings.NewReader("<a><b></a><c/>"), r); err == nil {
		t.Fatal("expected syntax error")
	}
	last := r.events[len(r.events)-1]
	if last != "fatal" {
		t.Fatalf("expected parsing to stop with fatal, got %v", r.events)
	}
}

func TestLoadMagProxStartup(t *testing.T) {
	s, err := NewLoader().LoadMagProxStartup(filepath.Join("testdata", "mag_proximity_startup.xml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(s.Energies, []float64{2.5, 5.0}) {
		t.Fatalf("expected non-float energy to be skipped, got %v", s.Energies)
	}
	want := []string{"/data/trimsp/Cu_E2.5.rge", "/data/trimsp/Cu_E5.0.rge"}
	if !reflect.DeepEqual(s.Files, want) {
		t.Fatalf("files = %v, want %v", s.Files, want)
	}
}
