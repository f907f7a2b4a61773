package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/velski/habopt/internal/config"
	"github.com/velski/habopt/internal/db"
	"github.com/velski/habopt/internal/model"
	"github.com/velski/habopt/internal/optimize"
	"github.com/velski/habopt/internal/report"
	"github.com/velski/habopt/internal/roster"
)

const ConfigPath = "habopt.yaml"

type options struct {
	configPath string
	rosterPath string
	verbose    bool
	noColor    bool

	useDB       bool
	dbParty     string
	saveParty   string
	deleteParty string
	listParties bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	var opts options
	flag.StringVar(&opts.configPath, "config", ConfigPath, "config file")
	flag.StringVar(&opts.rosterPath, "roster", "", "roster file (default: pick from roster dir)")
	flag.BoolVar(&opts.verbose, "verbose", false, "print per-character reports without prompting")
	flag.BoolVar(&opts.noColor, "no-color", false, "disable colorized output")
	flag.BoolVar(&opts.useDB, "db", false, "use the roster database")
	flag.StringVar(&opts.dbParty, "party", "", "load this stored party (implies -db)")
	flag.StringVar(&opts.saveParty, "save", "", "store the roster under this party name (implies -db)")
	flag.StringVar(&opts.deleteParty, "delete", "", "delete this stored party (implies -db)")
	flag.BoolVar(&opts.listParties, "list", false, "list stored parties (implies -db)")
	flag.Parse()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.LoadTool(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out := newPrinter(os.Stdout, cfg.Color && !opts.noColor)
	in := bufio.NewScanner(os.Stdin)

	dbMode := opts.useDB || opts.dbParty != "" || opts.saveParty != "" ||
		opts.deleteParty != "" || opts.listParties

	var store *db.DB
	if dbMode {
		store, err = db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to roster store: %w", err)
		}
		defer store.Close()
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
	}

	switch {
	case opts.listParties:
		names, err := store.ListParties(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil

	case opts.deleteParty != "":
		if err := store.DeleteParty(ctx, opts.deleteParty); err != nil {
			return err
		}
		slog.Info("party deleted", "party", opts.deleteParty)
		return nil
	}

	party, source, err := loadParty(ctx, opts, cfg, store, in, out)
	if err != nil {
		return err
	}
	slog.Info("roster loaded", "source", source, "members", len(party))

	if opts.saveParty != "" {
		if err := store.SaveParty(ctx, opts.saveParty, party); err != nil {
			return err
		}
		slog.Info("party saved", "party", opts.saveParty)
	}

	verbose := opts.verbose || cfg.Verbose
	if !verbose {
		verbose = promptYes(in, out, "Print per-character reports? [y/N] ")
	}

	if verbose {
		out.header("characters")
		for _, c := range party {
			text, err := report.Character(c)
			if err != nil {
				return err
			}
			out.block(text)
		}
	}

	// Per-attacker scans are independent pure computations; fan them out.
	results := make([]optimize.AttackerResult, len(party))
	g := new(errgroup.Group)
	for i, c := range party {
		g.Go(func() error {
			res, err := optimize.BestSelfBuffs(c, party)
			if err != nil {
				return fmt.Errorf("optimizing %q: %w", c.Name(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out.header("best self-buffs per attacker")
	for i, c := range party {
		out.block(report.Attacker(c, results[i]))
	}

	best, err := optimize.BestAssignment(party)
	if err != nil {
		return fmt.Errorf("optimizing party: %w", err)
	}
	out.header("party-wide optimum")
	out.block(report.Party(party, best))
	return nil
}

// loadParty resolves the roster from, in order: a stored party, an explicit
// roster file, the configured default, or an interactive pick from the
// roster directory.
func loadParty(ctx context.Context, opts options, cfg config.Tool, store *db.DB, in *bufio.Scanner, out *printer) ([]*model.Character, string, error) {
	if opts.dbParty != "" {
		party, err := store.LoadParty(ctx, opts.dbParty)
		return party, "db:" + opts.dbParty, err
	}

	path := opts.rosterPath
	if path == "" && cfg.DefaultRoster != "" {
		path = cfg.DefaultRoster
	}
	if path == "" {
		candidates, err := roster.Discover(cfg.RosterDir)
		if err != nil {
			return nil, "", err
		}
		if len(candidates) == 0 {
			return nil, "", fmt.Errorf("no %s files in %s", roster.Ext, cfg.RosterDir)
		}
		path, err = pickRoster(in, out, candidates)
		if err != nil {
			return nil, "", err
		}
	}

	party, err := roster.Load(path)
	return party, path, err
}

// pickRoster prompts for one of the discovered roster files. A single
// candidate is taken without prompting.
func pickRoster(in *bufio.Scanner, out *printer, candidates []string) (string, error) {
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	out.header("rosters")
	for i, path := range candidates {
		fmt.Fprintf(out.w, "  %d) %s\n", i+1, path)
	}
	for {
		fmt.Fprintf(out.w, "Select roster [1-%d]: ", len(candidates))
		if !in.Scan() {
			return "", fmt.Errorf("no roster selected")
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= 1 && n <= len(candidates) {
			return candidates[n-1], nil
		}
	}
}

func promptYes(in *bufio.Scanner, out *printer, prompt string) bool {
	fmt.Fprint(out.w, prompt)
	if !in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(in.Text()))
	return answer == "y" || answer == "yes"
}
