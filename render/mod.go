package render

import (
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"golang.org/x/xerrors"
)

const (
	// DefaultImageWidth is the default width for the image of a figure.
	DefaultImageWidth = 9 * vg.Inch
	// DefaultImageHeight is the default height for the image of a figure.
	DefaultImageHeight = 6 * vg.Inch
	// DefaultFormat is the default image format, given as a file extension.
	DefaultFormat = "png"
	// DefaultOutputDir is the default directory where the images are written.
	DefaultOutputDir = "plots"
)

// Options contains the parameters of the images produced by a renderer.
type Options struct {
	Width     vg.Length
	Height    vg.Length
	Format    string
	OutputDir string
}

// NewOptions creates the options with the default values overridden by the
// list of options.
func NewOptions(opts []Option) *Options {
	o := &Options{
		Width:     DefaultImageWidth,
		Height:    DefaultImageHeight,
		Format:    DefaultFormat,
		OutputDir: DefaultOutputDir,
	}

	for _, f := range opts {
		f(o)
	}

	return o
}

// Option is a function that changes the options of a renderer.
type Option func(opts *Options)

// WithSize is an option to change the size of the images.
func WithSize(width, height vg.Length) Option {
	return func(opts *Options) {
		opts.Width = width
		opts.Height = height
	}
}

// WithFormat is an option to change the format of the images. The format is
// the extension of the file, e.g. png, svg, pdf or eps.
func WithFormat(format string) Option {
	return func(opts *Options) {
		opts.Format = format
	}
}

// WithOutputDir is an option to change the directory where the images are
// written.
func WithOutputDir(dir string) Option {
	return func(opts *Options) {
		opts.OutputDir = dir
	}
}

// Renderer draws the figures of the experiments and saves them as images.
type Renderer struct {
	opts *Options

	factory   func() (*plot.Plot, error)
	processor func(*plot.Plot, ...plot.Plotter)
}

// NewRenderer creates a renderer using the options.
func NewRenderer(opts ...Option) *Renderer {
	return &Renderer{
		opts:      NewOptions(opts),
		factory:   newPlot,
		processor: addPlotters,
	}
}

// Options returns the options of the renderer.
func (r *Renderer) Options() Options {
	return *r.opts
}

// Save writes an image of the plot in the output directory. It returns the
// path of the file.
func (r *Renderer) Save(p *plot.Plot, name string) (string, error) {
	err := os.MkdirAll(r.opts.OutputDir, 0755)
	if err != nil {
		return "", xerrors.Errorf("couldn't create directory: %v", err)
	}

	path := filepath.Join(r.opts.OutputDir, name+"."+r.opts.Format)

	err = p.Save(r.opts.Width, r.opts.Height, path)
	if err != nil {
		// The lib creates the file anyway even if the format is not supported
		// so it needs to be removed on failure.
		os.Remove(path)

		return "", xerrors.Errorf("couldn't save '%s': %v", path, err)
	}

	return path, nil
}

func (r *Renderer) newPlot(title, xlabel, ylabel string) (*plot.Plot, error) {
	p, err := r.factory()
	if err != nil {
		return nil, err
	}

	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	return p, nil
}

func newPlot() (*plot.Plot, error) {
	return plot.New(), nil
}

func addPlotters(p *plot.Plot, ps ...plot.Plotter) {
	p.Add(ps...)
}

// seriesColors returns n distinct colors of the qualitative palette. The
// default colors of plotutil are used when the palette is too small.
func seriesColors(n int) []color.Color {
	colors := make([]color.Color, n)

	size := n
	if size < 3 {
		size = 3
	}

	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size)
	if err != nil {
		for i := range colors {
			colors[i] = plotutil.Color(i)
		}

		return colors
	}

	copy(colors, pal.Colors())

	return colors
}
