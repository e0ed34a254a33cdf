// Package startupgen writes depth profile startup files, as xml or, for a
// .yaml/.yml path, as yaml.
package startupgen

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"gopkg.in/yaml.v3"
)

type Generator struct {
	comment string
}

type Option func(*Generator)

// WithComment sets the text of the <comment> element.
func WithComment(c string) Option {
	return func(g *Generator) { g.comment = c }
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{comment: "TRIM.SP rge-files used by the depth profile user functions"}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ ports.StartupGenerator = (*Generator)(nil)

type xmlStartup struct {
	XMLName xml.Name `xml:"depth_profile"`
	Comment string   `xml:"comment,omitempty"`
	TrimSP  struct {
		DataPath  string `xml:"data_path"`
		RgeFlnPre string `xml:"rge_fln_pre"`
		Energies  []int  `xml:"energy_list>energy"`
	} `xml:"trim_sp"`
}

type yamlStartup struct {
	TrimSP struct {
		DataPath  string `yaml:"data_path"`
		RgeFlnPre string `yaml:"rge_fln_pre"`
		Energy    []int  `yaml:"energy,flow"`
	} `yaml:"trim_sp"`
}

// Generate writes startup to path. An existing file is only replaced if force
// is set.
func (g *Generator) Generate(path string, startup domain.RgeStartup, force bool) error {
	if err := validate(startup); err != nil {
		return &domain.OpError{
			Op:   "startupgen.generate",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err),
		}
	}

	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return &domain.OpError{
				Op:   "startupgen.generate",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  errors.New("file exists (use force to overwrite)"),
			}
		}
	}

	var (
		b   []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = g.marshalYAML(startup)
	default:
		b, err = g.marshalXML(startup)
	}
	if err != nil {
		return &domain.OpError{Op: "startupgen.generate", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "startupgen.generate", Kind: domain.KindExecution, Path: path, Err: err}
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return &domain.OpError{Op: "startupgen.generate", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

func (g *Generator) marshalXML(s domain.RgeStartup) ([]byte, error) {
	var x xmlStartup
	x.Comment = g.comment
	x.TrimSP.DataPath = s.DataPath
	x.TrimSP.RgeFlnPre = s.FlnPre
	x.TrimSP.Energies = s.Energies

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(x); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (g *Generator) marshalYAML(s domain.RgeStartup) ([]byte, error) {
	var y yamlStartup
	y.TrimSP.DataPath = s.DataPath
	y.TrimSP.RgeFlnPre = s.FlnPre
	y.TrimSP.Energy = s.Energies

	body, err := yaml.Marshal(y)
	if err != nil {
		return nil, err
	}
	if g.comment == "" {
		return body, nil
	}
	return append([]byte("# "+g.comment+"\n"), body...), nil
}

func validate(s domain.RgeStartup) error {
	var errs []error
	if s.DataPath == "" {
		errs = append(errs, errors.New("data path is missing"))
	}
	if s.FlnPre == "" {
		errs = append(errs, errors.New("rge file name prefix is missing"))
	}
	if len(s.Energies) == 0 {
		errs = append(errs, errors.New("no implantation energies given"))
	}
	for _, e := range s.Energies {
		switch {
		case e <= 0:
			errs = append(errs, fmt.Errorf("energy %d is not positive", e))
		case e > math.MaxInt32:
			errs = append(errs, fmt.Errorf("energy %d is out-of-range", e))
		}
	}
	return errors.Join(errs...)
}
