// Package profileplot draws normalized stopping profiles n(z) with gonum/plot.
// The image format follows the file extension (png, svg, pdf, eps, jpg, tif).
package profileplot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type Renderer struct {
	width  vg.Length
	height vg.Length
}

type Option func(*Renderer)

// WithSizeCM sets the image size in cm.
func WithSizeCM(width, height float64) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = vg.Length(width) * vg.Centimeter
		}
		if height > 0 {
			r.height = vg.Length(height) * vg.Centimeter
		}
	}
}

func NewRenderer(opts ...Option) *Renderer {
	cfg := domain.DefaultConfig().Plot
	r := &Renderer{
		width:  vg.Length(cfg.WidthCM) * vg.Centimeter,
		height: vg.Length(cfg.HeightCM) * vg.Centimeter,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ProfileRenderer = (*Renderer)(nil)

func (r *Renderer) Render(path string, title string, sets []domain.RgeData) error {
	if len(sets) == 0 {
		return &domain.OpError{
			Op:   "profileplot.render",
			Kind: domain.KindInvalidData,
			Path: path,
			Err:  errors.New("nothing to plot"),
		}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "depth (nm)"
	p.Y.Label.Text = "n(z) (1/nm)"
	p.Legend.Top = true

	lines := make([]any, 0, 2*len(sets))
	for _, s := range sets {
		lines = append(lines, fmt.Sprintf("%g eV", s.Energy), profileXYs(s))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return &domain.OpError{Op: "profileplot.render", Kind: domain.KindExecution, Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "profileplot.render", Kind: domain.KindExecution, Path: path, Err: err}
		}
	}
	if err := p.Save(r.width, r.height, path); err != nil {
		return &domain.OpError{Op: "profileplot.render", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

func profileXYs(s domain.RgeData) plotter.XYs {
	pts := make(plotter.XYs, len(s.Depth))
	for i := range s.Depth {
		pts[i].X = s.Depth[i]
		pts[i].Y = s.NN[i]
	}
	return pts
}
