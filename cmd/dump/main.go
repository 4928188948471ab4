package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"InventoryDump/internal/formatter"
	"InventoryDump/internal/model"
	"InventoryDump/internal/output"
	"InventoryDump/internal/repository"
	"InventoryDump/internal/service"
	"InventoryDump/pkg/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const usageExamples = `
Examples:
  # Dump all tables in readable format
  dump

  # Dump as JSON
  dump --format json

  # Dump specific table only
  dump --table virtualMachines

  # Save to file
  dump --output azure_dump.json --format json
`

type options struct {
	format     string
	table      string
	output     string
	configPath string
	dbPath     string
	driver     string
	debug      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	setupLogging(opts.debug, stderr)

	cfg := config.Locate(opts.configPath)
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}
	if opts.driver != "" {
		cfg.Database.Driver = opts.driver
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}

	d := &dumper{
		cfg:    cfg,
		table:  opts.table,
		output: opts.output,
		stdout: stdout,
		log:    logrus.WithField("run_id", uuid.New().String()),
	}
	if err := d.dump(context.Background()); err != nil {
		report(stdout, err)
		if model.IsCode(err, model.CodeQuery) {
			// 查询错误带有调用栈
			d.log.Debugf("dump failed: %+v", errors.Unwrap(err))
		} else {
			d.log.Debugf("dump failed: %v", err)
		}
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.format, "format", "", "Output format: json or table (default: table)")
	fs.StringVar(&opts.table, "table", "", "Dump specific table only")
	fs.StringVar(&opts.output, "output", "", "Output file (default: stdout)")
	fs.StringVar(&opts.configPath, "config", config.DefaultConfigPath, "Config file naming the inventory database (ini or yaml)")
	fs.StringVar(&opts.dbPath, "db", "", "Database path, overrides the config file")
	fs.StringVar(&opts.driver, "driver", "", "Database driver: sqlite or duckdb (default: by file extension)")
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Dump Azure objects from CloudGuard Controller database")
		fmt.Fprintln(stderr, "\nUsage:\n  dump [--format json|table] [--table TABLE_NAME] [--output FILE]\n\nFlags:")
		fs.PrintDefaults()
		fmt.Fprint(stderr, usageExamples)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, err
	}
	switch opts.format {
	case "", formatter.FormatJSON, formatter.FormatTable:
	default:
		err := fmt.Errorf("invalid value %q for -format: expected json or table", opts.format)
		fmt.Fprintln(stderr, err)
		fs.Usage()
		return nil, err
	}
	return opts, nil
}

func setupLogging(debug bool, out io.Writer) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

type dumper struct {
	cfg    *config.Config
	table  string
	output string
	stdout io.Writer
	log    *logrus.Entry
}

// dump 完整的导出流程，连接在所有路径上都会关闭
func (d *dumper) dump(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	dbPath := d.cfg.Database.Path
	if _, statErr := os.Stat(dbPath); statErr != nil {
		if os.IsNotExist(statErr) {
			return model.ErrMissingDatabase(dbPath)
		}
		return statErr
	}

	driver := d.cfg.DriverFor(dbPath)
	repo, err := repository.Open(driver, dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := repo.Close(); cerr != nil {
			d.log.Warnf("Failed to close database: %v", cerr)
		}
	}()
	d.log.Infof("Connected to database: %s (%s)", dbPath, driver)

	res, err := service.NewDumpService(repo).Dump(ctx, d.table)
	if err != nil {
		return err
	}

	f, err := formatter.New(d.cfg.Output.Format, formatter.Options{
		DatabasePath: dbPath,
		MaxRecords:   d.cfg.Output.MaxRecords,
	})
	if err != nil {
		return err
	}
	content, err := f.Format(res)
	if err != nil {
		return err
	}

	w := output.NewWriter(d.output, d.stdout)
	if err := w.Write(content); err != nil {
		return err
	}
	if w.ToFile() {
		fmt.Fprintf(d.stdout, "✅ Output written to: %s\n", w.Path())
	}

	printSummary(d.stdout, res)
	return nil
}

func printSummary(out io.Writer, res *model.DumpResult) {
	fmt.Fprintln(out, "\n📋 Summary:")
	fmt.Fprintf(out, "   Tables: %d\n", res.Len())
	fmt.Fprintf(out, "   Total records: %d\n", res.TotalRecords())
	for _, name := range res.Tables() {
		dump, _ := res.Get(name)
		fmt.Fprintf(out, "   - %s: %d records\n", name, dump.Info.RowCount)
	}
}

// report 把错误转换为面向用户的提示
func report(out io.Writer, err error) {
	de, ok := model.AsDumpError(err)
	if !ok {
		fmt.Fprintf(out, "❌ Error: %v\n", err)
		return
	}

	switch de.Code {
	case model.CodeMissingDatabase:
		fmt.Fprintf(out, "❌ Database not found at: %s\n", de.Path)
		fmt.Fprintln(out, "💡 Run the Azure scanning process first:")
		fmt.Fprintln(out, "   python3 /opt/CPvsec-R82/scripts/azure/vsec.py [options]")
	case model.CodeEmptySchema:
		fmt.Fprintln(out, "❌ No tables found in database.")
	case model.CodeTableNotFound:
		fmt.Fprintf(out, "❌ Table '%s' not found.\n", de.Table)
		fmt.Fprintf(out, "Available tables: %s\n", strings.Join(de.Tables, ", "))
	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}
}
