package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/dither"
	"github.com/cwbudde/algo-audiofx/dsp/effectchain"
	"github.com/cwbudde/algo-audiofx/dsp/effects/reverb"
	"github.com/cwbudde/algo-audiofx/dsp/spectrum"
	"github.com/cwbudde/algo-audiofx/internal/audioio"
	"github.com/cwbudde/algo-audiofx/internal/cli"
	"github.com/cwbudde/algo-audiofx/measure/ir"
)

var version = "0.1.0"

const description = "Offline mono audio effects: gain, normalize, reverb, smoothing, soft limiting and zero-phase Butterworth filters"

// lowestReportBand is the upper edge of the first band-energy report band.
const lowestReportBand = 31.25

// CLI defines the command-line interface
type CLI struct {
	Version bool            `short:"v" help:"Show version information"`
	Config  kong.ConfigFlag `short:"c" help:"Load flag defaults from a JSON file"`
	Input   string          `arg:"" optional:"" type:"existingfile" help:"Audio file to process (wav, mp3, ogg)"`
	Output  string          `short:"o" type:"path" placeholder:"FILE" help:"Processed 16-bit WAV output"`

	Settings string `type:"existingfile" placeholder:"FILE" help:"JSON settings document; replaces all stage flags"`

	GainDB      float64 `name:"gain-db" help:"Gain in dB"`
	Normalize   bool    `help:"Normalize to the target peak"`
	TargetPeak  float64 `default:"0.99" help:"Normalization target peak in (0, 1]"`
	Reverb      bool    `help:"Add convolution reverb"`
	ReverbIR    string  `name:"reverb-ir" type:"existingfile" placeholder:"FILE" help:"Impulse response file, instead of a synthesised one"`
	SmoothingK  int     `name:"smoothing-k" default:"1" help:"Moving-average length; 1 disables"`
	Limiter     float64 `default:"0.9" help:"Soft limiter threshold; 0 or >= 1 disables"`
	LowPass     float64 `name:"low-pass" placeholder:"HZ" help:"Low-pass cutoff; 0 disables"`
	HighPass    float64 `name:"high-pass" placeholder:"HZ" help:"High-pass cutoff; 0 disables"`
	BandLow     float64 `name:"band-low" placeholder:"HZ" help:"Band-pass low edge; 0 disables"`
	BandHigh    float64 `name:"band-high" placeholder:"HZ" help:"Band-pass high edge; 0 disables"`
	FilterOrder int     `name:"filter-order" default:"5" help:"Butterworth order shared by all filters"`

	Original string `type:"path" placeholder:"FILE" help:"Also write the mono original as 16-bit WAV"`
	Dither   string `default:"none" enum:"none,rectangular,triangular" help:"Dither added before 16-bit quantization (none, rectangular, triangular)"`
	Report   bool   `help:"Print an octave band-energy report of the output"`
	Strict   bool   `help:"Fail instead of skipping a frequency filter that breaks at runtime"`
	LogLevel string `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("audiofx"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/audiofx/config.json"),
		kong.Help(cli.StyledHelpPrinter(description)),
	)

	if cliArgs.Version {
		cli.PrintVersion(os.Stdout, version)
		os.Exit(0)
	}

	if cliArgs.Input == "" || cliArgs.Output == "" {
		cli.PrintError(os.Stderr, "an input file and --output are required")
		_ = ctx.PrintUsage(false)
		os.Exit(1)
	}

	logger, err := newLogger(cliArgs.LogLevel, os.Stderr)
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := run(cliArgs, os.Stdout, logger); err != nil {
		cli.PrintError(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newLogger(level string, out io.Writer) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

// run decodes the input, runs the pipeline and writes the results.
func run(args *CLI, stdout io.Writer, logger logrus.FieldLogger) error {
	start := time.Now()
	registry := audioio.DefaultRegistry()

	in, err := registry.LoadMono(args.Input)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"file":        args.Input,
		"samples":     in.Len(),
		"sample_rate": in.SampleRate,
	}).Info("decoded input")

	settings, irPath, err := args.settings()
	if err != nil {
		return err
	}

	if settings.Reverb {
		kernel, err := loadKernel(registry, irPath, in.SampleRate)
		if err != nil {
			return err
		}
		settings.ReverbIR = &kernel
	}

	ditherType, err := dither.ParseType(args.Dither)
	if err != nil {
		return err
	}

	chain := effectchain.New(
		effectchain.WithLogger(logger),
		effectchain.WithStrictFilters(args.Strict),
	)

	res, err := chain.Process(in, settings)
	if err != nil {
		return err
	}

	if err := audioio.EncodeFile(args.Output, res.Waveform, dither.WithType(ditherType)); err != nil {
		return err
	}

	if args.Original != "" {
		if err := audioio.EncodeFile(args.Original, in, dither.WithType(ditherType)); err != nil {
			return err
		}
	}

	cli.PrintSummary(stdout, args.Input, args.Output, in, res, time.Since(start))

	if args.Report {
		printReport(stdout, res.Waveform, logger)
		if settings.ReverbIR != nil {
			printKernelReport(stdout, *settings.ReverbIR, logger)
		}
	}

	return nil
}

func printReport(w io.Writer, out core.Waveform, logger logrus.FieldLogger) {
	p, err := spectrum.Analyze(out)
	if err != nil {
		logger.WithError(err).Warn("band report unavailable")
		return
	}

	bands, err := p.Report(spectrum.OctaveEdges(lowestReportBand, out.SampleRate))
	if err != nil {
		logger.WithError(err).Warn("band report unavailable")
		return
	}

	cli.PrintBandReport(w, bands)
}

// loadKernel reads the impulse response at path, or synthesizes the default
// kernel at sampleRate when path is empty.
func loadKernel(registry *audioio.Registry, path string, sampleRate int) (core.Waveform, error) {
	if path == "" {
		return reverb.SynthesizeIR(sampleRate)
	}

	kernel, err := registry.LoadMono(path)
	if err != nil {
		return core.Waveform{}, fmt.Errorf("loading impulse response: %w", err)
	}
	return kernel, nil
}

func printKernelReport(w io.Writer, kernel core.Waveform, logger logrus.FieldLogger) {
	m, err := ir.Analyze(kernel)
	if err != nil {
		logger.WithError(err).Warn("reverb report unavailable")
		return
	}

	cli.PrintKernelReport(w, kernel, m)
}
