// Command pptx2scene converts a .pptx file into its JSON scene description.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/VantageDataChat/pptxscene"
)

func main() {
	var (
		configPath  = flag.String("config", "", "YAML options file")
		out         = flag.String("out", "", "output file (default stdout)")
		slideNum    = flag.Int("slide", 0, "convert only this slide (1-based)")
		strict      = flag.Bool("strict", false, "fail on the first slide error")
		concurrency = flag.Int("concurrency", -1, "slides converted in parallel (0 = unlimited)")
		noEmbed     = flag.Bool("no-embed", false, "emit media part names instead of data: URIs")
		verbose     = flag.Bool("v", false, "log recovered element errors")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: pptx2scene [flags] file.pptx\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := pptxscene.DefaultOptions()
	if *configPath != "" {
		loaded, err := pptxscene.LoadOptions(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
		opts = loaded
	}
	if *strict {
		opts.Strict = true
	}
	if *concurrency >= 0 {
		opts.Concurrency = *concurrency
	}
	if *noEmbed {
		opts.EmbedMedia = false
	}
	opts.Logger = logger

	src := flag.Arg(0)
	doc, err := pptxscene.Open(src, pptxscene.WithOptions(opts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read: %v\n", err)
		os.Exit(1)
	}
	if err := doc.Err(); err != nil {
		logger.Warn("some slides failed to convert", "file", src, "error", err)
	}

	var payload any = doc
	if *slideNum != 0 {
		slide, err := doc.GetSlide(*slideNum - 1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "slide %d: %v\n", *slideNum, err)
			os.Exit(1)
		}
		payload = slide
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	logger.Info("converted", "file", src, "slides", doc.SlideCount(), "layout", doc.Layout)
}
