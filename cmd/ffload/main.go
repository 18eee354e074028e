package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/maxwell-fr/ffreader/internal/config"
	"github.com/maxwell-fr/ffreader/internal/database"
	"github.com/maxwell-fr/ffreader/internal/ingestion"
	"github.com/maxwell-fr/ffreader/internal/layout"
	"github.com/maxwell-fr/ffreader/pkg/export"
	"github.com/maxwell-fr/ffreader/pkg/flatfile"
)

type options struct {
	layoutPath string
	inputPath  string
	format     string
	fields     string
	outPath    string
	store      bool
}

func parseFlags() (*options, error) {
	opts := &options{}
	flag.StringVar(&opts.layoutPath, "layout", "", "path to the YAML layout file (required)")
	flag.StringVar(&opts.inputPath, "file", "", "path to the fixed-width input file (required)")
	flag.StringVar(&opts.format, "format", "csv", "output format: csv or json")
	flag.StringVar(&opts.fields, "fields", "", "comma-separated field projection for CSV output (default: all fields)")
	flag.StringVar(&opts.outPath, "out", "", "output file path (default: stdout)")
	flag.BoolVar(&opts.store, "store", false, "persist records to Postgres (requires DATABASE_URL)")
	flag.Parse()

	if opts.layoutPath == "" || opts.inputPath == "" {
		return nil, fmt.Errorf("both -layout and -file are required")
	}
	if opts.format != "csv" && opts.format != "json" {
		return nil, fmt.Errorf("unknown format %q: expected csv or json", opts.format)
	}
	return opts, nil
}

func load(opts *options) (*flatfile.DataFile, error) {
	defs, loadOpts, err := layout.ParseFile(opts.layoutPath)
	if err != nil {
		return nil, err
	}

	loader, err := flatfile.NewLoader(defs, loadOpts)
	if err != nil {
		return nil, err
	}

	if !opts.store {
		return loader.Load(opts.inputPath)
	}

	cfg, err := config.New(true)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbpool, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer dbpool.Close()

	store := database.NewPostgresStore(context.Background(), dbpool)
	service := ingestion.NewService(store, loader, cfg.CopyBatchSize)
	if err := service.Setup(); err != nil {
		return nil, err
	}

	return service.Execute(opts.inputPath)
}

func write(opts *options, df *flatfile.DataFile) error {
	var out io.Writer = os.Stdout
	if opts.outPath != "" {
		file, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", opts.outPath, err)
		}
		defer file.Close()
		out = file
	}

	if opts.format == "json" {
		return export.JSON(out, df)
	}

	var fields []string
	if opts.fields != "" {
		fields = strings.Split(opts.fields, ",")
	}
	return export.CSV(out, df, fields)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	opts, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	df, err := load(opts)
	if errors.Is(err, ingestion.ErrAlreadyProcessed) {
		log.Printf("File %s already processed, nothing to do.", opts.inputPath)
		return
	}
	if err != nil {
		log.Fatalf("Error loading %s: %v", opts.inputPath, err)
	}

	for _, w := range df.Warnings() {
		log.Printf("WARN: %s", w)
	}

	if err := write(opts, df); err != nil {
		log.Fatalf("Error writing output: %v", err)
	}
}
