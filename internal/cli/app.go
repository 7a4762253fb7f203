package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	urfave "github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/metric/noop"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/agriscore/internal/application/usecase"
	"github.com/bibbank/agriscore/internal/domain/service"
	"github.com/bibbank/agriscore/internal/infrastructure/messaging"
	"github.com/bibbank/agriscore/internal/infrastructure/metrics"
	"github.com/bibbank/agriscore/internal/infrastructure/ml"
	"github.com/bibbank/agriscore/pkg/observability"
)

const (
	engineKey = "engine"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs to stderr (optional, default: false)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}

	seedFlag = &urfave.Int64Flag{
		Name:  "seed",
		Usage: "Credit model training seed",
		Value: ml.DefaultSeed,
	}

	samplesFlag = &urfave.IntFlag{
		Name:  "samples",
		Usage: "Synthetic training set size",
		Value: ml.DefaultSamples,
	}

	treesFlag = &urfave.IntFlag{
		Name:  "trees",
		Usage: "Number of trees in the credit model",
		Value: ml.DefaultTrees,
	}

	noiseSeedFlag = &urfave.Int64Flag{
		Name:  "noise-seed",
		Usage: "Seed for yield noise (optional, random when unset)",
	}

	noNoiseFlag = &urfave.BoolFlag{
		Name:  "no-noise",
		Usage: "Disable yield noise (factor fixed at 1.0)",
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	app := NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// NewApp builds the agriscore CLI writing results to out and logs to errOut.
func NewApp(out, errOut io.Writer) *urfave.App {
	return &urfave.App{
		Name:            "agriscore",
		Version:         fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:        time.Now(),
		HideHelpCommand: true,
		Usage:           "Offline agricultural credit, loan risk and yield scoring",
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []urfave.Flag{
			debugFlag,
			formatFlag,
			seedFlag,
			samplesFlag,
			treesFlag,
			noiseSeedFlag,
			noNoiseFlag,
		},
		Commands: []*urfave.Command{
			creditCmd,
			riskCmd,
			yieldCmd,
			trainCmd,
			certsCmd,
		},
		Before: func(c *urfave.Context) error {
			f := strings.ToLower(c.String(formatFlag.Name))
			if f != formatJSON && f != formatYAML && f != "yml" {
				return fmt.Errorf("unsupported format %q", f)
			}

			engine, err := buildEngine(c)
			if err != nil {
				return err
			}
			c.App.Metadata[engineKey] = engine
			return nil
		},
		After: func(c *urfave.Context) error {
			if engine, ok := c.App.Metadata[engineKey].(*usecase.Engine); ok {
				return engine.Close(c.Context)
			}
			return nil
		},
	}
}

func buildEngine(c *urfave.Context) (*usecase.Engine, error) {
	level := "warn"
	if c.Bool(debugFlag.Name) {
		level = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:   level,
		Format:  "text",
		Service: "agriscore",
		Output:  c.App.ErrWriter,
	})

	recorder, err := metrics.NewRecorder(noop.NewMeterProvider())
	if err != nil {
		return nil, err
	}

	var perturbation service.Perturbation
	switch {
	case c.Bool(noNoiseFlag.Name):
		perturbation = service.FixedPerturbation(1.0)
	case c.IsSet(noiseSeedFlag.Name):
		perturbation = service.NewNormalPerturbation(c.Int64(noiseSeedFlag.Name), 1.0, 0.1)
	default:
		seed, err := ml.NewSeed()
		if err != nil {
			return nil, err
		}
		perturbation = service.NewNormalPerturbation(seed, 1.0, 0.1)
	}

	trainerCfg := ml.DefaultTrainerConfig()
	trainerCfg.Seed = c.Int64(seedFlag.Name)
	trainerCfg.Samples = c.Int(samplesFlag.Name)
	trainerCfg.Trees = c.Int(treesFlag.Name)

	return usecase.NewEngine(usecase.EngineDeps{
		Store:        ml.NewModelStore(),
		Trainer:      ml.NewTrainer(trainerCfg, logger),
		Publisher:    messaging.NewLogEventPublisher(logger),
		Metrics:      recorder,
		Perturbation: perturbation,
		Logger:       logger,
	}), nil
}

func getEngine(c *urfave.Context) *usecase.Engine {
	return c.App.Metadata[engineKey].(*usecase.Engine)
}

func encode(c *urfave.Context, v any) error {
	f := strings.ToLower(c.String(formatFlag.Name))
	if f == formatYAML || f == "yml" {
		enc := yaml.NewEncoder(c.App.Writer)
		defer enc.Close()
		return enc.Encode(v)
	}
	e := json.NewEncoder(c.App.Writer)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

func optionalFloat(c *urfave.Context, name string) *float64 {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Float64(name)
	return &v
}

func optionalString(c *urfave.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}

func optionalBool(c *urfave.Context, name string) *bool {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Bool(name)
	return &v
}
