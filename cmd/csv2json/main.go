package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"csv2json/internal/config"
	"csv2json/internal/convert"
	"csv2json/internal/db"
	"csv2json/internal/history"
	"csv2json/internal/keymap"
	"csv2json/internal/schema"
)

var version = "v1.0"

type flags struct {
	envFile   string
	keysPath  string
	tokenizer string
	strict    bool
	validate  bool
	escape    bool
	trace     bool
	plan      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("csv2json: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "csv2json <source.csv> <target.json>",
		Short: "Convert a CSV file into a JSON array of objects",
		Long: `csv2json reads a CSV file whose first row holds the column names and writes
a single-line JSON array with one object per data row. Column names become camelCase
keys; integer cells become JSON numbers, everything else stays a string.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.envFile, "env", "", "Env file to load (default: .env if present)")
	fl.StringVar(&f.keysPath, "keys", "", "YAML/JSON file with header -> key overrides")
	fl.StringVar(&f.tokenizer, "tokenizer", convert.TokenizerSmart, "Tokenizer: smart | rfc4180")
	fl.BoolVar(&f.strict, "strict", false, "Fail on rows whose cell count differs from the header")
	fl.BoolVar(&f.validate, "validate", false, "Check the output is valid JSON before writing it")
	fl.BoolVar(&f.escape, "escape", false, "Escape keys and string values as JSON strings")
	fl.BoolVar(&f.trace, "trace", false, "Log every field as it is typed")
	fl.BoolVar(&f.plan, "plan", false, "Show plan and exit")
	return cmd
}

// arg returns args[i], or "" so a missing path fails at the read step.
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func run(cmd *cobra.Command, args []string, f flags) error {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	applyFlags(cmd, cfg, f)

	src, dst := arg(args, 0), arg(args, 1)

	if f.plan {
		printPlan(cmd.OutOrStdout(), cfg, src, dst)
		return nil
	}

	keys, err := keymap.Load(cfg.KeysPath)
	if err != nil {
		return err
	}

	opt := convert.Options{
		Tokenizer: cfg.Tokenizer,
		Keys:      keys,
		Validate:  cfg.Validate,
	}
	opt.JSON.Escape = cfg.Escape
	opt.JSON.Strict = cfg.Strict
	if cfg.Trace {
		opt.JSON.Trace = func(key, raw string, v schema.Value) {
			log.Printf("[TRACE] prop=%s val=%q kind=%s", key, raw, v.Kind)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	start := time.Now()
	res, err := convert.File(ctx, src, dst, opt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if res.Mismatched > 0 {
		log.Printf("[WARN] %d of %d rows did not match the header width (%d); extra cells or keys were dropped",
			res.Mismatched, res.Rows, len(res.Headers))
	}
	log.Printf("[OK] %s -> %s rows=%d keys=%d bytes=%d time=%s",
		src, dst, res.Rows, len(res.Headers), len(res.JSON), elapsed)

	if cfg.History {
		recordHistory(ctx, cfg, history.Run{
			Source:     src,
			Target:     dst,
			Rows:       res.Rows,
			Mismatched: res.Mismatched,
			Bytes:      len(res.JSON),
			StartedAt:  start,
			Duration:   elapsed,
		})
	}
	return nil
}

// applyFlags lets explicitly set flags win over env/.env values.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) {
	fl := cmd.Flags()
	if fl.Changed("keys") {
		cfg.KeysPath = f.keysPath
	}
	if fl.Changed("tokenizer") {
		cfg.Tokenizer = f.tokenizer
	}
	if fl.Changed("strict") {
		cfg.Strict = f.strict
	}
	if fl.Changed("validate") {
		cfg.Validate = f.validate
	}
	if fl.Changed("escape") {
		cfg.Escape = f.escape
	}
	if fl.Changed("trace") {
		cfg.Trace = f.trace
	}
}

// recordHistory never fails the conversion; problems are logged.
func recordHistory(ctx context.Context, cfg *config.Config, r history.Run) {
	conn, err := db.Open(ctx, cfg)
	if err != nil {
		log.Printf("[WARN] history: db open failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	if err := history.EnsureTable(ctx, conn); err != nil {
		log.Printf("[WARN] history: %v", err)
		return
	}
	if err := history.Record(ctx, conn, r); err != nil {
		log.Printf("[WARN] history: %v", err)
		return
	}
	log.Printf("[OK] history recorded in %s", history.Table)
}

func printPlan(w io.Writer, cfg *config.Config, src, dst string) {
	fmt.Fprintf(w, "==== csv2json %s Execution Plan ====\n", version)
	fmt.Fprintf(w, "Source             : %s\n", src)
	fmt.Fprintf(w, "Target             : %s\n", dst)
	fmt.Fprintf(w, "Tokenizer          : %s\n", cfg.Tokenizer)
	fmt.Fprintf(w, "Key overrides      : %s\n", cfg.KeysPath)
	fmt.Fprintf(w, "Strict rows        : %v\n", cfg.Strict)
	fmt.Fprintf(w, "Validate output    : %v\n", cfg.Validate)
	fmt.Fprintf(w, "Escape strings     : %v\n", cfg.Escape)
	fmt.Fprintf(w, "Trace fields       : %v\n", cfg.Trace)
	fmt.Fprintf(w, "Timeout            : %s\n", cfg.Timeout)
	fmt.Fprintf(w, "History            : %v\n", cfg.History)
	if cfg.History {
		fmt.Fprintf(w, "History DB         : %s@%s:%d/%s\n", cfg.MySQLUser, cfg.MySQLHost, cfg.MySQLPort, cfg.MySQLDB)
	}
}
