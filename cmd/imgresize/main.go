// Package main provides the CLI entry point for imgresize.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/five82/imgresize"
	"github.com/five82/imgresize/internal/config"
	"github.com/five82/imgresize/internal/discovery"
	"github.com/five82/imgresize/internal/geometry"
	"github.com/five82/imgresize/internal/kernel"
	"github.com/five82/imgresize/internal/logging"
	"github.com/five82/imgresize/internal/reporter"
	"github.com/five82/imgresize/internal/util"
)

const (
	appName    = "imgresize"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "resize":
		err = runResize(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "info":
		err = runInfo(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("%s version %s\n", appName, appVersion)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - batch image resizing tool

Usage:
  %s <command> [options]

Commands:
  resize    Resize a single image
  batch     Resize every image in a directory
  info      Print an image's dimensions, channels, and format
  version   Print version information
  help      Show this help message

Run '%s <command> --help' for command-specific options.
`, appName, appName, appName)
}

// resizeArgs holds the parsed arguments for the resize command.
type resizeArgs struct {
	input         string
	output        string
	width         int
	height        int
	scale         float64
	quality       int
	filter        string
	noAspectRatio bool
	overwrite     bool
}

func runResize(args []string) error {
	fs := flag.NewFlagSet("resize", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Resize a single image.

Usage:
  %s resize [options] INPUT OUTPUT [w] [h]

Options:
  -w, --width N         Target width in pixels
  -h, --height N        Target height in pixels
  -s, --scale F         Scale factor applied to both dimensions (e.g. 0.5)
  -q, --quality N       Encoder quality 1-100. Default: %d
  -f, --filter FILTER   Resample filter: mitchell, catmull-rom, box, triangle
  --no-aspect-ratio     Do not preserve aspect ratio (with only -w or -h, the other dimension keeps its source size)
  -o, --overwrite       Allow overwriting the input file
`, appName, config.DefaultQuality)
	}

	var ra resizeArgs
	fs.IntVar(&ra.width, "w", 0, "Target width")
	fs.IntVar(&ra.width, "width", 0, "Target width")
	fs.IntVar(&ra.height, "h", 0, "Target height")
	fs.IntVar(&ra.height, "height", 0, "Target height")
	fs.Float64Var(&ra.scale, "s", 0, "Scale factor")
	fs.Float64Var(&ra.scale, "scale", 0, "Scale factor")
	fs.IntVar(&ra.quality, "q", config.DefaultQuality, "Encoder quality")
	fs.IntVar(&ra.quality, "quality", config.DefaultQuality, "Encoder quality")
	fs.StringVar(&ra.filter, "f", "", "Resample filter")
	fs.StringVar(&ra.filter, "filter", "", "Resample filter")
	fs.BoolVar(&ra.noAspectRatio, "no-aspect-ratio", false, "Do not preserve aspect ratio")
	fs.BoolVar(&ra.overwrite, "o", false, "Allow overwriting the input file")
	fs.BoolVar(&ra.overwrite, "overwrite", false, "Allow overwriting the input file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	positional := fs.Args()
	if len(positional) < 2 {
		return fmt.Errorf("input and output paths are required: %s resize INPUT OUTPUT", appName)
	}
	ra.input, ra.output = positional[0], positional[1]

	// Accept trailing [w] [h] positional arguments as an alternative to
	// -w/-h, per the resize INPUT OUTPUT [w] [h] surface.
	if len(positional) >= 3 && ra.width == 0 {
		w, err := strconv.Atoi(positional[2])
		if err != nil {
			return fmt.Errorf("invalid width %q: %w", positional[2], err)
		}
		ra.width = w
	}
	if len(positional) >= 4 && ra.height == 0 {
		h, err := strconv.Atoi(positional[3])
		if err != nil {
			return fmt.Errorf("invalid height %q: %w", positional[3], err)
		}
		ra.height = h
	}

	opts, err := resolveResizeOptions(ra)
	if err != nil {
		return err
	}

	r, err := imgresize.New(
		imgresize.WithQuality(opts.Quality),
		imgresize.WithFilter(opts.Filter),
		conditionalOption(ra.overwrite, imgresize.WithOverwriteInput()),
	)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := r.Resize(ra.input, ra.output, opts); err != nil {
		return err
	}
	fmt.Printf("resized %s -> %s in %s\n", ra.input, ra.output, util.FormatDuration(time.Since(start).Seconds()))
	return nil
}

// resolveResizeOptions derives geometry mode and filter from the resize
// command's flags/positional arguments.
func resolveResizeOptions(ra resizeArgs) (imgresize.ResizeOptions, error) {
	opts := imgresize.DefaultResizeOptions()
	opts.Quality = ra.quality
	opts.KeepAspectRatio = !ra.noAspectRatio
	opts.OverwriteInput = ra.overwrite

	switch {
	case ra.width > 0 && ra.height > 0:
		opts.Mode = geometry.ExactSize
		opts.TargetWidth = ra.width
		opts.TargetHeight = ra.height
	case ra.width > 0:
		opts.Mode = geometry.FitWidth
		opts.TargetWidth = ra.width
	case ra.height > 0:
		opts.Mode = geometry.FitHeight
		opts.TargetHeight = ra.height
	case ra.scale > 0:
		opts.Mode = geometry.ScalePercent
		opts.ScalePercent = ra.scale
	default:
		opts.Mode = geometry.ScalePercent
		opts.ScalePercent = 1.0
	}

	if ra.filter != "" {
		f, err := kernel.ParseFilter(ra.filter)
		if err != nil {
			return opts, err
		}
		opts.Filter = f
	}

	return opts, nil
}

// batchArgs holds the parsed arguments for the batch command.
type batchArgs struct {
	inputDir    string
	outputDir   string
	width       int
	height      int
	scale       float64
	quality     int
	filter      string
	threads     int
	stopOnError bool
	maxSpeed    bool
	logDir      string
	verbose     bool
	noLog       bool
	jsonOutput  bool
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Resize every image in a directory.

Usage:
  %s batch [options] INPUT_DIR OUTPUT_DIR

Options:
  -w, --width N         Target width in pixels
  -h, --height N        Target height in pixels
  -s, --scale F         Scale factor applied to both dimensions (e.g. 0.5)
  -q, --quality N       Encoder quality 1-100. Default: %d
  -f, --filter FILTER   Resample filter: mitchell, catmull-rom, box, triangle
  -t, --threads N       Worker thread count. Default: auto (GOMAXPROCS)
  --stop-on-error       Abort the batch on the first failure
  --max-speed           Prefer pipeline mode for large batches
  -l, --log-dir <PATH>  Log directory (defaults to ~/.local/state/imgresize/logs)
  -v, --verbose         Enable verbose output for troubleshooting
  --no-log              Disable log file creation
  --json                Emit machine-readable NDJSON progress instead of terminal output
`, appName, config.DefaultQuality)
	}

	var ba batchArgs
	fs.IntVar(&ba.width, "w", 0, "Target width")
	fs.IntVar(&ba.width, "width", 0, "Target width")
	fs.IntVar(&ba.height, "h", 0, "Target height")
	fs.IntVar(&ba.height, "height", 0, "Target height")
	fs.Float64Var(&ba.scale, "s", 0, "Scale factor")
	fs.Float64Var(&ba.scale, "scale", 0, "Scale factor")
	fs.IntVar(&ba.quality, "q", config.DefaultQuality, "Encoder quality")
	fs.IntVar(&ba.quality, "quality", config.DefaultQuality, "Encoder quality")
	fs.StringVar(&ba.filter, "f", "", "Resample filter")
	fs.StringVar(&ba.filter, "filter", "", "Resample filter")
	fs.IntVar(&ba.threads, "t", 0, "Worker thread count")
	fs.IntVar(&ba.threads, "threads", 0, "Worker thread count")
	fs.BoolVar(&ba.stopOnError, "stop-on-error", false, "Abort on first failure")
	fs.BoolVar(&ba.maxSpeed, "max-speed", false, "Prefer pipeline mode")
	fs.StringVar(&ba.logDir, "l", "", "Log directory")
	fs.StringVar(&ba.logDir, "log-dir", "", "Log directory")
	fs.BoolVar(&ba.verbose, "v", false, "Enable verbose output")
	fs.BoolVar(&ba.verbose, "verbose", false, "Enable verbose output")
	fs.BoolVar(&ba.noLog, "no-log", false, "Disable log file creation")
	fs.BoolVar(&ba.jsonOutput, "json", false, "Emit NDJSON progress")

	if err := fs.Parse(args); err != nil {
		return err
	}

	positional := fs.Args()
	if len(positional) < 2 {
		return fmt.Errorf("input and output directories are required: %s batch INPUT_DIR OUTPUT_DIR", appName)
	}
	ba.inputDir, ba.outputDir = positional[0], positional[1]

	return executeBatch(ba)
}

func executeBatch(ba batchArgs) error {
	inputDir, err := filepath.Abs(ba.inputDir)
	if err != nil {
		return fmt.Errorf("invalid input directory: %w", err)
	}
	outputDir, err := filepath.Abs(ba.outputDir)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}
	if err := util.EnsureDirectory(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logDir := ba.logDir
	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		logDir = filepath.Join(homeDir, ".local", "state", appName, "logs")
	}
	logger, err := logging.Setup(logDir, ba.verbose, ba.noLog)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	if logger != nil {
		defer func() { _ = logger.Close() }()
	}

	files, err := discovery.FindImageFilesWithLogging(inputDir, logger)
	if err != nil {
		return fmt.Errorf("failed to discover image files: %w", err)
	}

	ra := resizeArgs{width: ba.width, height: ba.height, scale: ba.scale, quality: ba.quality, filter: ba.filter}
	opts, err := resolveResizeOptions(ra)
	if err != nil {
		return err
	}
	logger.Info("Resize options: mode=%s quality=%d filter=%s", opts.Mode, opts.Quality, opts.Filter)
	logger.Info("Threads=%d stop_on_error=%v max_speed=%v", ba.threads, ba.stopOnError, ba.maxSpeed)

	var rep reporter.Reporter = reporter.NewTerminalReporter()
	if ba.jsonOutput {
		rep = reporter.NewJSONReporter()
	}

	r, err := imgresize.New(
		imgresize.WithQuality(opts.Quality),
		imgresize.WithFilter(opts.Filter),
		imgresize.WithThreads(ba.threads),
		conditionalOption(ba.stopOnError, imgresize.WithStopOnError()),
		conditionalOption(ba.maxSpeed, imgresize.WithMaxSpeed()),
	)
	if err != nil {
		return err
	}

	resolvedThreads := config.BatchOptions{NumThreads: ba.threads}.ResolvedThreads()
	rep.BatchStarted(reporter.BatchStartInfo{
		TotalFiles: len(files.Files),
		FileList:   files.Files,
		OutputDir:  outputDir,
		MaxSpeed:   ba.maxSpeed,
		Threads:    resolvedThreads,
	})

	start := time.Now()
	result := r.BatchWithOptions(files.Files, outputDir, opts)
	elapsed := time.Since(start)

	summary := reporter.BatchSummary{
		SuccessfulCount: result.Success,
		FailedCount:     result.Failed,
		TotalFiles:      result.Total,
		TotalDuration:   elapsed,
		Errors:          result.Errors,
	}
	rep.BatchComplete(summary)

	if result.Failed > 0 {
		for _, e := range result.Errors {
			logger.Warn("%s", e)
		}
		logger.Error("batch finished with %d of %d files failed", result.Failed, result.Total)
		if path := logger.FilePath(); path != "" {
			fmt.Printf("Log file: %s\n", path)
		}
		return fmt.Errorf("%d of %d files failed", result.Failed, result.Total)
	}
	if path := logger.FilePath(); path != "" {
		fmt.Printf("Log file: %s\n", path)
	}
	return nil
}

// conditionalOption returns opt when enabled is true, and a no-op option
// otherwise, so optional flags can be threaded into imgresize.New's
// variadic option list without branching on each call site.
func conditionalOption(enabled bool, opt imgresize.Option) imgresize.Option {
	if enabled {
		return opt
	}
	return func(*config.Config) {}
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Print an image's dimensions, channels, and format.

Usage:
  %s info IMAGE
`, appName)
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	positional := fs.Args()
	if len(positional) < 1 {
		return fmt.Errorf("an image path is required: %s info IMAGE", appName)
	}

	info, err := imgresize.ProbeImage(positional[0])
	if err != nil {
		return err
	}
	fmt.Printf("width:    %d\n", info.Width)
	fmt.Printf("height:   %d\n", info.Height)
	fmt.Printf("channels: %d\n", info.Channels)
	fmt.Printf("format:   %s\n", info.Format)
	return nil
}
