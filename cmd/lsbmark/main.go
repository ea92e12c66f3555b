// lsbmark hides text in the least-significant bits of an image.
//
// Usage:
//
//	lsbmark embed -i <in> -o <out.png> (-m <text> | -f <file>)
//	lsbmark extract -i <in> [-o <file>] [--raw]
//	lsbmark capacity -i <in>
//	lsbmark analyze -i <in> [--fraction 1.0]
package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"

	"github.com/spf13/pflag"
	"github.com/yyyoichi/lsbmark"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	_ "golang.org/x/image/webp"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "lsbmark: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errors.New("missing command")
	}
	switch args[0] {
	case "embed":
		return runEmbed(args[1:], stdout, stderr)
	case "extract":
		return runExtract(args[1:], stdout, stderr)
	case "capacity":
		return runCapacity(args[1:], stdout, stderr)
	case "analyze":
		return runAnalyze(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// common holds the flags every command accepts.
type common struct {
	input   string
	verbose bool
	lenient bool
}

func newFlagSet(name string, stderr io.Writer, c *common) *pflag.FlagSet {
	fs := pflag.NewFlagSet("lsbmark "+name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&c.input, "input", "i", "", "input image (png, jpeg, bmp, tiff, webp)")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "log diagnostics to stderr")
	fs.BoolVar(&c.lenient, "lenient", false, "accept length headers that are not a whole number of bytes")
	return fs
}

func (c *common) steg(stderr io.Writer) (*lsbmark.Steg, error) {
	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return lsbmark.New(
		lsbmark.WithLogger(logger),
		lsbmark.WithStrictLength(!c.lenient),
	)
}

func (c *common) load() (image.Image, error) {
	if c.input == "" {
		return nil, errors.New("--input is required")
	}
	f, err := os.Open(c.input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", c.input, err)
	}
	return img, nil
}

func runEmbed(args []string, stdout, stderr io.Writer) error {
	var (
		c           common
		output      string
		message     string
		messageFile string
	)
	fs := newFlagSet("embed", stderr, &c)
	fs.StringVarP(&output, "output", "o", "", "output image (.png, .bmp or .tif)")
	fs.StringVarP(&message, "message", "m", "", "message to hide")
	fs.StringVarP(&messageFile, "file", "f", "", "read the message from a file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if output == "" {
		return errors.New("--output is required")
	}
	encode, err := encoder(output)
	if err != nil {
		return err
	}
	if fs.Changed("message") == (messageFile != "") {
		return errors.New("exactly one of --message or --file is required")
	}
	if messageFile != "" {
		b, err := os.ReadFile(messageFile)
		if err != nil {
			return err
		}
		message = string(b)
	}

	s, err := c.steg(stderr)
	if err != nil {
		return err
	}
	src, err := c.load()
	if err != nil {
		return err
	}
	marked, err := s.EmbedImage(src, message)
	if err != nil {
		return err
	}
	if err := save(output, marked, encode); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "embedded %d bytes into %s\n", len(message), output)
	return nil
}

func runExtract(args []string, stdout, stderr io.Writer) error {
	var (
		c      common
		output string
		raw    bool
	)
	fs := newFlagSet("extract", stderr, &c)
	fs.StringVarP(&output, "output", "o", "", "write the message to a file instead of stdout")
	fs.BoolVar(&raw, "raw", false, "skip UTF-8 validation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := c.steg(stderr)
	if err != nil {
		return err
	}
	src, err := c.load()
	if err != nil {
		return err
	}
	pix := lsbmark.ToNRGBA(src).Pix
	var data []byte
	if raw {
		data, err = s.ExtractBytes(pix)
	} else {
		var text string
		text, err = s.Extract(pix)
		data = []byte(text)
	}
	if err != nil {
		return err
	}
	if output != "" {
		return os.WriteFile(output, data, 0o644)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

func runCapacity(args []string, stdout, stderr io.Writer) error {
	var c common
	fs := newFlagSet("capacity", stderr, &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	src, err := c.load()
	if err != nil {
		return err
	}
	n := len(lsbmark.ToNRGBA(src).Pix)
	fmt.Fprintf(stdout, "pixels:   %d\n", n/4)
	fmt.Fprintf(stdout, "bits:     %d\n", lsbmark.Capacity(n))
	fmt.Fprintf(stdout, "message:  %d bytes\n", lsbmark.MaxMessageBytes(n))
	return nil
}

func runAnalyze(args []string, stdout, stderr io.Writer) error {
	var (
		c        common
		fraction float64
	)
	fs := newFlagSet("analyze", stderr, &c)
	fs.Float64Var(&fraction, "fraction", 1, "share of the usable bytes to inspect, from the start of the image")
	if err := fs.Parse(args); err != nil {
		return err
	}
	src, err := c.load()
	if err != nil {
		return err
	}
	r := lsbmark.AnalyzePrefix(lsbmark.ToNRGBA(src).Pix, fraction)
	fmt.Fprintf(stdout, "samples:     %d\n", r.Samples)
	fmt.Fprintf(stdout, "ones ratio:  %.4f\n", r.OnesRatio)
	fmt.Fprintf(stdout, "chi-square:  %.2f\n", r.ChiSquare)
	fmt.Fprintf(stdout, "probability: %.4f\n", r.Probability)
	return nil
}

// encoder picks a lossless encoder by extension; PNG by default.
func encoder(path string) (func(io.Writer, image.Image) error, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	case ".jpg", ".jpeg", ".webp":
		return nil, fmt.Errorf("%s is lossy and would destroy the message", ext)
	default:
		return png.Encode, nil
	}
}

func save(path string, img image.Image, encode func(io.Writer, image.Image) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `lsbmark: hide text in the least-significant bits of an image

Usage:
  lsbmark embed -i <in> -o <out.png> (-m <text> | -f <file>)
  lsbmark extract -i <in> [-o <file>] [--raw]
  lsbmark capacity -i <in>
  lsbmark analyze -i <in> [--fraction 1.0]

Common flags:
  -i, --input     input image (png, jpeg, bmp, tiff, webp)
  -v, --verbose   log diagnostics to stderr
      --lenient   accept length headers that are not a whole number of bytes
`)
}
