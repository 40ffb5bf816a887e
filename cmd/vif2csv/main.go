package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Froscht/ProfoundVifReader/pkg/vifreader"
)

var (
	rootCmd = &cobra.Command{
		Use:   "vif2csv [files...]",
		Short: "Convert VIB vibration telemetry logs to CSV",
		Long:  "vif2csv locates and decodes VIB records from instrument log files and writes one quoted CSV row per record.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}

	flagHeader    bool
	flagNoCounter bool
	flagToday     bool
	flagLong      bool
	flagDay       string
	flagOutput    string
	flagEncoding  string
)

func init() {
	rootCmd.Flags().BoolVar(&flagHeader, "header", false, "emit a two-line column header before the first file")
	rootCmd.Flags().BoolVar(&flagNoCounter, "no-counter", false, "omit the running counter column")
	rootCmd.Flags().BoolVar(&flagToday, "today", false, "output only records dated today")
	rootCmd.Flags().BoolVar(&flagLong, "long", false, "extended output precision (four decimal places)")
	rootCmd.Flags().StringVar(&flagDay, "day", "", `output only records from the given day ("YYYY-MM-DD" or "YY-MM-DD")`)
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write CSV to a file instead of stdout")
	rootCmd.Flags().StringVar(&flagEncoding, "encoding", "", "output encoding, utf-8 or cp1252 (default: cp1252 on stdout, utf-8 to files)")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	opts := vifreader.Options{
		Header:     flagHeader,
		Counter:    !flagNoCounter,
		TodayOnly:  flagToday,
		LongFormat: flagLong,
		DateFilter: flagDay,
	}

	out, closeOut, err := openOutput(flagOutput, flagEncoding)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); cerr != nil {
			logrus.WithError(cerr).Error("flush output")
		}
	}()

	ctx := cmd.Context()
	failed := 0
	for i, path := range args {
		fileOpts := opts
		fileOpts.Header = opts.Header && i == 0
		result, err := vifreader.ProcessFile(ctx, path, out, fileOpts)
		if err != nil {
			logrus.WithError(err).Errorf("can't process %q", path)
			failed++
			continue
		}
		logrus.Infof("%s: %s", path, result)
	}
	if failed == len(args) {
		return fmt.Errorf("no input file could be processed")
	}
	return nil
}

// openOutput selects the destination and encoding. The instrument vendor's
// tooling historically emitted Windows-1252 on the console, so stdout keeps
// that default while files default to UTF-8.
func openOutput(path, enc string) (io.Writer, func() error, error) {
	var (
		dst  io.Writer = os.Stdout
		file *os.File
	)
	cp1252 := path == ""
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, fmt.Errorf("create output %q: %w", path, err)
		}
		file = f
		dst = f
	}
	switch enc {
	case "":
	case "utf-8":
		cp1252 = false
	case "cp1252":
		cp1252 = true
	default:
		if file != nil {
			file.Close()
		}
		return nil, nil, fmt.Errorf("unknown encoding %q: use utf-8 or cp1252", enc)
	}

	buffered := bufio.NewWriter(dst)
	var (
		out io.Writer = buffered
		tw  *transform.Writer
	)
	if cp1252 {
		tw = transform.NewWriter(buffered, encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()))
		out = tw
	}

	closeOut := func() error {
		var first error
		if tw != nil {
			first = tw.Close()
		}
		if err := buffered.Flush(); err != nil && first == nil {
			first = err
		}
		if file != nil {
			if err := file.Close(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}
	return out, closeOut, nil
}
