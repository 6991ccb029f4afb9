package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	oohsales "github.com/happy6team/ooh-marketing-sales"
	"github.com/happy6team/ooh-marketing-sales/catalog"
	"github.com/happy6team/ooh-marketing-sales/config"
	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/extract"
	"github.com/happy6team/ooh-marketing-sales/logging"
	"github.com/happy6team/ooh-marketing-sales/pipeline"
	"github.com/happy6team/ooh-marketing-sales/proposal"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			os.Exit(exit.ExitCode())
		}
		log.Fatal(err)
	}
}

// application carries state shared by the Before hook, the commands and
// the After hook.
type application struct {
	registry    *prometheus.Registry
	closeLog    func() error
	serviceOpts []oohsales.ServiceOption
	now         func() time.Time
}

func newApp(stdout, stderr io.Writer, serviceOpts ...oohsales.ServiceOption) *cli.App {
	a := &application{
		registry:    prometheus.NewRegistry(),
		serviceOpts: serviceOpts,
		now:         time.Now,
	}
	return &cli.App{
		Name:      "oohsales",
		Usage:     "Match brands with fresh marketing activity to outdoor advertising media",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Also write JSON logs to this file, rotated by size",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to .env file (default: .env when present)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write pipeline metrics in Prometheus text format to this file on exit",
			},
		},
		Before: a.setupLogger,
		After:  a.finish,
		// Commands report their own failures; main maps exit codes.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:   "build-index",
				Usage:  "Embed the media dataset into the catalog index",
				Action: a.buildIndexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"d"},
						Usage:   "Path to the media dataset (.csv or .xlsx)",
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Catalog collection name",
					},
					&cli.BoolFlag{
						Name:  "append",
						Usage: "Upsert into the existing collection instead of replacing it",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed per request",
					},
				},
			},
			{
				Name:   "search",
				Usage:  "Print the media closest to a free-text query",
				Action: a.searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Query text",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "k",
						Usage: "Number of results",
						Value: 5,
					},
				},
			},
			{
				Name:   "run",
				Usage:  "Extract brands for a category and match each one to a medium",
				Action: a.runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "category",
						Usage:    "Brand category to prospect (" + strings.Join(core.Categories, ", ") + ")",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "window",
						Usage: "Time window for news search (default: current month)",
					},
					&cli.StringFlag{
						Name:  "owner",
						Usage: "Sales owner who signs the outreach",
					},
					&cli.StringFlag{
						Name:  "corpus-file",
						Usage: "Read the news corpus from a file instead of web search",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (text, json, yaml)",
						Value: "text",
					},
				},
			},
			{
				Name:   "match-brand",
				Usage:  "Match one brand and write a proposal workbook",
				Action: a.matchBrandCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "brand",
						Usage: "Brand name",
					},
					&cli.StringFlag{
						Name:  "issue",
						Usage: "Recent issue (default: the stored issue for the brand)",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Core product summary",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Brand category",
					},
					&cli.StringFlag{
						Name:  "owner",
						Usage: "Sales owner who signs the outreach",
					},
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "Directory for the proposal workbook",
					},
				},
			},
			{
				Name:   "set-status",
				Usage:  "Move a brand to another sales stage",
				Action: a.setStatusCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "brand",
						Usage:    "Brand name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "status",
						Usage:    "Sales stage (" + joinStatuses(core.SalesStatuses) + ")",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "note",
						Usage: "Note stored with the status",
					},
				},
			},
		},
	}
}

func (a *application) setupLogger(c *cli.Context) error {
	logger, closeLog, err := logging.New(logging.Options{
		Level:   c.String("log-level"),
		File:    c.String("log-file"),
		Console: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.closeLog = closeLog
	return nil
}

func (a *application) finish(c *cli.Context) error {
	var errs []error
	if path := c.String("metrics-file"); path != "" {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics: %w", err))
		}
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *application) loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"), c.String("env-file"))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *application) openService(c *cli.Context, cfg *config.Config, extra ...oohsales.ServiceOption) (*oohsales.Service, error) {
	if slog.Default().Enabled(c.Context, slog.LevelDebug) {
		cfg.Database.Debug = true
	}
	opts := []oohsales.ServiceOption{
		oohsales.WithRegisterer(a.registry),
		oohsales.WithLogger(slog.Default()),
	}
	opts = append(opts, a.serviceOpts...)
	opts = append(opts, extra...)
	svc, err := oohsales.NewService(c.Context, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open service: %w", err)
	}
	return svc, nil
}

func (a *application) buildIndexCommand(c *cli.Context) error {
	cfg, err := a.loadConfig(c)
	if err != nil {
		return err
	}
	if v := c.String("collection"); v != "" {
		cfg.Catalog.Collection = v
	}
	if c.IsSet("batch-size") {
		if c.Int("batch-size") <= 0 {
			return fmt.Errorf("batch-size must be greater than 0")
		}
		cfg.Catalog.BatchSize = c.Int("batch-size")
	}
	dataset := c.String("dataset")
	if dataset == "" {
		dataset = cfg.Catalog.Dataset
	}
	if dataset == "" {
		return fmt.Errorf("dataset path is required")
	}

	mode, err := catalog.ParseBuildMode(cfg.Catalog.BuildMode)
	if err != nil {
		return err
	}
	if c.Bool("append") {
		mode = catalog.BuildAppend
	}

	svc, err := a.openService(c, cfg, oohsales.WithProgress(c.App.ErrWriter))
	if err != nil {
		return err
	}
	defer svc.Close()

	fmt.Fprintf(c.App.ErrWriter, "Dataset: %s\n", dataset)
	fmt.Fprintf(c.App.ErrWriter, "Collection: %s (%s)\n", cfg.Catalog.Collection, mode)
	fmt.Fprintln(c.App.ErrWriter)

	manifest, err := svc.BuildCatalog(c.Context, dataset, mode)
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Indexed %d media into %q (digest %s)\n", manifest.Count, manifest.Collection, manifest.Digest)
	return nil
}

func (a *application) searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(c.String("query"))
	if query == "" {
		return fmt.Errorf("query is required")
	}
	k := c.Int("k")
	if k <= 0 {
		return fmt.Errorf("k must be greater than 0")
	}

	cfg, err := a.loadConfig(c)
	if err != nil {
		return err
	}
	svc, err := a.openService(c, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	hits, err := svc.Search(c.Context, query, k)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(hits) == 0 {
		fmt.Fprintln(c.App.Writer, "No media found.")
		return nil
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tNAME\tLOCATION\tTYPE\tDISTANCE")
	for i, hit := range hits {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%.4f\n", i+1, hit.Media.MediaID, hit.Media.Name,
			hit.Media.Location, hit.Media.MediaType, hit.Distance)
	}
	return tw.Flush()
}

func (a *application) runCommand(c *cli.Context) error {
	format := strings.ToLower(c.String("format"))
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q: must be one of text, json, yaml", format)
	}
	if err := core.ValidateCategory(strings.TrimSpace(c.String("category"))); err != nil {
		return err
	}

	cfg, err := a.loadConfig(c)
	if err != nil {
		return err
	}
	owner := c.String("owner")
	if owner == "" {
		owner = cfg.Pipeline.Owner
	}

	var extra []oohsales.ServiceOption
	if path := c.String("corpus-file"); path != "" {
		extra = append(extra, oohsales.WithCorpus(extract.FileCorpus{Path: path}))
	}
	svc, err := a.openService(c, cfg, extra...)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := svc.Run(c.Context, pipeline.RunRequest{
		Category: c.String("category"),
		Window:   c.String("window"),
		Owner:    owner,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return printResult(c.App.Writer, format, result)
}

func joinStatuses(statuses []core.SalesStatus) string {
	names := make([]string, len(statuses))
	for i, status := range statuses {
		names[i] = string(status)
	}
	return strings.Join(names, ", ")
}

func (a *application) setStatusCommand(c *cli.Context) error {
	brand := strings.TrimSpace(c.String("brand"))
	if brand == "" {
		return fmt.Errorf("brand name is required")
	}
	status := core.SalesStatus(strings.TrimSpace(c.String("status")))
	if err := core.ValidateSalesStatus(status); err != nil {
		return err
	}

	cfg, err := a.loadConfig(c)
	if err != nil {
		return err
	}
	svc, err := a.openService(c, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.SalesStore().UpdateSalesStatus(c.Context, brand, status, c.String("note")); err != nil {
		return fmt.Errorf("status update failed: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "%s: %s\n", brand, status)
	return nil
}

func printResult(w io.Writer, format string, result *pipeline.RunResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(w, "Run %s: %s, %s\n", result.RunID, result.Category, result.Window)
	fmt.Fprintf(w, "Matched %d, skipped %d\n\n", result.Matched(), result.Skipped())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BRAND\tSTATUS\tMEDIA\tDETAIL")
	for _, o := range result.Outcomes {
		if o.Matched() {
			fmt.Fprintf(tw, "%s\t%s\t%d %s\t%s\n", o.Brand.Name, o.Status, o.Match.MediaID, o.Match.MediaName, o.Brand.Issue)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t-\t%s\n", o.Brand.Name, o.Status, o.Reason)
	}
	return tw.Flush()
}

// proposalReport is the single-line JSON printed by match-brand.
type proposalReport struct {
	Success   bool   `json:"success"`
	Brand     string `json:"brand,omitempty"`
	FilePath  string `json:"file_path,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (a *application) matchBrandCommand(c *cli.Context) error {
	path, brand, err := a.matchBrand(c)
	if err != nil {
		slog.Error("match-brand failed", "brand", brand, "err", err)
		if encErr := json.NewEncoder(c.App.Writer).Encode(proposalReport{Error: err.Error()}); encErr != nil {
			return encErr
		}
		return cli.Exit("", 1)
	}
	return json.NewEncoder(c.App.Writer).Encode(proposalReport{
		Success:   true,
		Brand:     brand,
		FilePath:  path,
		CreatedAt: a.now().Format(time.RFC3339),
	})
}

func (a *application) matchBrand(c *cli.Context) (string, string, error) {
	name := strings.TrimSpace(c.String("brand"))
	if name == "" {
		return "", "", errors.New("brand name is required")
	}

	cfg, err := a.loadConfig(c)
	if err != nil {
		return "", name, err
	}
	owner := c.String("owner")
	if owner == "" {
		owner = cfg.Pipeline.Owner
	}
	outDir := c.String("out-dir")
	if outDir == "" {
		outDir = cfg.Pipeline.OutputDir
	}

	svc, err := a.openService(c, cfg)
	if err != nil {
		return "", name, err
	}
	defer svc.Close()

	outcome, err := svc.MatchBrand(c.Context, pipeline.BrandRequest{
		Name:        name,
		Issue:       c.String("issue"),
		Description: c.String("description"),
		Category:    c.String("category"),
		Owner:       owner,
	})
	if err != nil {
		return "", name, err
	}

	writer := proposal.NewWriter(outDir, proposal.WithLogger(slog.Default()), proposal.WithClock(a.now))
	path, err := writer.Write(outcome.Brand, outcome.Match)
	if err != nil {
		return "", name, err
	}
	return path, name, nil
}
