package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	layertar "github.com/kataras/layer-tar"
	"github.com/kataras/layer-tar/pkg/archive"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const version = layertar.Version

type flags struct {
	output     string
	compress   string
	pathNames  bool
	dryRun     bool
	reportFile string
	force      bool
	logJSON    bool
	quiet      bool
}

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags

	rootCmd := &cobra.Command{
		Use:   "layer-tar [input.svg]",
		Short: "Export the leaf layers of an SVG file as a tar archive",
		Long: "Writes one SVG document per leaf layer (a named Inkscape layer without named sublayers) " +
			"into a tar archive. Every document keeps the shared non-layer content of the source.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(f, stderr)
			err := run(cmd, args, f, logger, stdin, stdout, stderr)
			if err != nil {
				if logger != nil {
					logger.Errorf("%v", err)
				} else {
					color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
				}
			}
			return err
		},
	}

	rootCmd.Flags().StringVarP(&f.output, "output", "o", "-", "Output archive file, - for standard output")
	rootCmd.Flags().StringVarP(&f.compress, "compress", "c", "none", "Compression: none, gzip, zstd (guessed from the output name when unset)")
	rootCmd.Flags().BoolVar(&f.pathNames, "path-names", false, "Name entries after the full layer path instead of the layer label")
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Do not write an archive, print the export report to standard output")
	rootCmd.Flags().StringVar(&f.reportFile, "report", "", "Also write the markdown export report to this file")
	rootCmd.Flags().BoolVarP(&f.force, "force", "f", false, "Write the archive even when standard output is a terminal")
	rootCmd.Flags().BoolVar(&f.logJSON, "log-json", false, "Log as JSON lines")
	rootCmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Do not print progress")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "layer-tar version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

func run(cmd *cobra.Command, args []string, f flags, logger layertar.Logger, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	compression := archive.CompressionNone
	if cmd.Flags().Changed("compress") {
		if compression, err = archive.ParseCompression(f.compress); err != nil {
			return err
		}
	} else if f.output != "-" {
		compression = archive.CompressionForPath(f.output)
	}

	opts := layertar.Options{
		Compression: compression,
		PathNames:   f.pathNames,
		Logger:      logger,
	}

	if len(args) == 1 && args[0] != "-" {
		opts.InputPath = args[0]
	} else {
		opts.Input = stdin
		opts.DocumentName = "stdin"
	}

	switch {
	case f.dryRun:
		opts.Output = io.Discard
	case f.output == "-":
		if isTerminal(stdout) && !f.force {
			return errors.New("refusing to write a binary archive to a terminal, use --output or --force")
		}
		opts.Output = stdout
	default:
		out, cerr := os.Create(f.output)
		if cerr != nil {
			return fmt.Errorf("create output: %w", cerr)
		}
		defer func() {
			if cerr := out.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		opts.Output = out
	}

	pretty := !f.quiet && !f.logJSON
	if pretty {
		cyan := color.New(color.FgCyan)
		cyan.Fprintln(stderr, "\n🗂  SVG Leaf Layer Export")
		cyan.Fprintln(stderr, "========================")
		cyan.Fprintln(stderr)
	}

	start := time.Now()
	result, err := layertar.Run(opts)
	if err != nil {
		return err
	}

	if f.reportFile != "" {
		if err := os.WriteFile(f.reportFile, []byte(result.Markdown), 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if f.dryRun {
		fmt.Fprint(stdout, result.Markdown)
	}

	if pretty {
		printSummary(stderr, result, f, time.Since(start))
	}

	return nil
}

func printSummary(w io.Writer, result *layertar.Result, f flags, took time.Duration) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	var total int64
	for _, l := range result.Layers {
		total += l.Size
	}

	cyan.Fprintln(w, "\n📊 Export Summary:")
	fmt.Fprintf(w, "  • Leaf layers: %d\n", len(result.Layers))
	fmt.Fprintf(w, "  • Archive size (uncompressed documents): %s\n", humanize.Bytes(uint64(total)))
	if len(result.Duplicates) > 0 {
		yellow.Fprintf(w, "  • Duplicate entry names: %d\n", len(result.Duplicates))
	}
	if f.reportFile != "" {
		fmt.Fprintf(w, "  • Report: %s\n", f.reportFile)
	}

	switch {
	case f.dryRun:
		green.Fprintf(w, "\n✨ Dry run finished in %s, nothing written\n\n", took.Round(time.Millisecond))
	case f.output == "-":
		green.Fprintf(w, "\n✨ Archive written to standard output in %s\n\n", took.Round(time.Millisecond))
	default:
		green.Fprintf(w, "\n✨ Archive written to %s in %s\n\n", f.output, took.Round(time.Millisecond))
	}
}

func newLogger(f flags, stderr io.Writer) layertar.Logger {
	switch {
	case f.quiet:
		return nil
	case f.logJSON:
		logger := logrus.New()
		logger.SetOutput(stderr)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
		return logger
	default:
		return &cliLogger{w: stderr}
	}
}

// isTerminal reports whether w is an interactive terminal. Tests replace it.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// cliLogger implements layertar.Logger with colored output. It writes to
// standard error because standard output may carry the archive.
type cliLogger struct {
	w io.Writer
}

func (l *cliLogger) Infof(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, format+"\n", args...)
}

func (l *cliLogger) Warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(l.w, "⚠ "+format+"\n", args...)
}

func (l *cliLogger) Errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(l.w, "✗ "+format+"\n", args...)
}
