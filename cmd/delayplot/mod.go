package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"go.dedis.ch/delayplot"
	"go.dedis.ch/delayplot/experiment"
	"go.dedis.ch/delayplot/render"
	"go.dedis.ch/delayplot/results"
	"golang.org/x/xerrors"
)

var rendererFactory = newRenderer

const (
	// DefaultInputFilePath is the default file path that will be read to find
	// the analysis results.
	DefaultInputFilePath = "../results/AnalysesResultForPythonSeaborn.csv"

	errNoInput   = "couldn't read the analysis results"
	errNoConfig  = "couldn't read the configuration"
	errMakePlot  = "couldn't create the plots"
	errMakeTable = "couldn't create the tables"
)

func main() {
	err := run(os.Args, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "delayplot: %+v\n", err)
		os.Exit(1)
	}
}

func run(args []string, writer io.Writer) error {
	outputFlags := []cli.Flag{
		&cli.PathFlag{
			Name:  "output",
			Usage: "directory where the images are written",
			Value: render.DefaultOutputDir,
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "format of the images (png, svg, pdf, eps)",
			Value: render.DefaultFormat,
		},
	}

	app := &cli.App{
		Name:   "delayplot",
		Usage:  "Draw the worst-case delays of the delay-bound analyses",
		Writer: writer,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  "input",
				Usage: "semicolon-delimited file of the analysis results",
				Value: DefaultInputFilePath,
			},
			&cli.PathFlag{
				Name:  "config",
				Usage: "TOML file describing the experiments",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print debug messages",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				log.SetLevel(log.DebugLevel)
			}

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "bars",
				Usage: "draw a bar chart of the flow for each experiment group",
				Flags: outputFlags,
				Action: func(c *cli.Context) error {
					return generate(c, c.Path("output"), c.String("format"), (*delayplot.Pipeline).RunBars)
				},
			},
			{
				Name:  "heatmap",
				Usage: "draw a heatmap of every flow for each experiment group",
				Flags: outputFlags,
				Action: func(c *cli.Context) error {
					return generate(c, c.Path("output"), c.String("format"), (*delayplot.Pipeline).RunHeatmaps)
				},
			},
			{
				Name:  "summary",
				Usage: "print the statistics of the delays of each network",
				Action: func(c *cli.Context) error {
					table, cfg, err := readInputs(c)
					if err != nil {
						return err
					}

					pl := delayplot.NewPipeline(table, nil)

					return printSummaries(c.App.Writer, pl, cfg)
				},
			},
			{
				Name:  "show",
				Usage: "print the rows and the matrices of each experiment group",
				Action: func(c *cli.Context) error {
					table, cfg, err := readInputs(c)
					if err != nil {
						return err
					}

					pl := delayplot.NewPipeline(table, nil)

					return printExperiments(c.App.Writer, pl, cfg)
				},
			},
		},
	}

	// Without a command, every figure is drawn with the default output.
	app.Action = func(c *cli.Context) error {
		err := generate(c, render.DefaultOutputDir, render.DefaultFormat, (*delayplot.Pipeline).RunBars)
		if err != nil {
			return err
		}

		return generate(c, render.DefaultOutputDir, render.DefaultFormat, (*delayplot.Pipeline).RunHeatmaps)
	}

	return app.Run(args)
}

type runner func(*delayplot.Pipeline, experiment.Config) ([]string, error)

func generate(c *cli.Context, output, format string, fn runner) error {
	table, cfg, err := readInputs(c)
	if err != nil {
		return err
	}

	r := rendererFactory(output, format)
	pl := delayplot.NewPipeline(table, r)

	paths, err := fn(pl, cfg)
	if err != nil {
		return xerrors.Errorf("%s: %v", errMakePlot, err)
	}

	log.WithField("images", len(paths)).Debug("figures written")

	return nil
}

func newRenderer(output, format string) delayplot.Renderer {
	return render.NewRenderer(render.WithOutputDir(output), render.WithFormat(format))
}

func readInputs(c *cli.Context) (results.Table, experiment.Config, error) {
	cfg := experiment.DefaultConfig()

	if c.IsSet("config") {
		var err error
		cfg, err = experiment.LoadConfig(c.Path("config"))
		if err != nil {
			return nil, cfg, xerrors.Errorf("%s: %v", errNoConfig, err)
		}
	}

	table, err := results.LoadFile(c.Path("input"))
	if err != nil {
		return nil, cfg, xerrors.Errorf("%s: %v", errNoInput, err)
	}

	log.WithFields(log.Fields{"path": c.Path("input"), "rows": table.Len()}).Debug("results loaded")

	return table, cfg, nil
}
