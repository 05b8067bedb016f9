package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"docspell/internal/config"
	"docspell/internal/dump"
	"docspell/internal/model"
	"docspell/internal/report"
	"docspell/internal/spell"
	"docspell/internal/tui"
	"docspell/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(repo, currentVer string) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		fmt.Fprintln(os.Stderr, "No release repository configured (set update.repository to owner/name).")
		return
	}
	githubTag := &latest.GithubTag{
		Owner:      owner,
		Repository: name,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not check for updates: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Printf("A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("Download it from https://github.com/%s/releases\n", repo)
	} else {
		fmt.Printf("You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	os.Exit(run())
}

// run parses flags, performs the requested mode and returns the exit status.
func run() int {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: docspell [options] <file>...\n\n")
		fmt.Fprintf(os.Stderr, "docspell spell checks the documentation comments of C++ sources.\n")
		fmt.Fprintf(os.Stderr, "Comments are read from clang's AST dump and words are checked with hunspell.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  docspell src/*.hpp                 # Report unrecognized words\n")
		fmt.Fprintf(os.Stderr, "  docspell -e -p ~/.dict.txt foo.hpp # Fail on unrecognized words\n")
		fmt.Fprintf(os.Stderr, "  docspell --std c++17 -I include -t foo.hpp\n")
		fmt.Fprintf(os.Stderr, "  docspell --json foo.hpp > report.json\n")
	}

	configFlag := pflag.StringP("config", "c", "", "Read settings from the given YAML file")
	dictFlag := pflag.StringP("personal-dict", "p", "", "Full path to a personal dictionary")
	includeFlag := pflag.StringArrayP("include-dir", "I", nil, "Add directory to include search path (repeatable)")
	stdFlag := pflag.String("std", "", fmt.Sprintf("Language standard, one of %v (default %s)", dump.Standards, dump.DefaultStandard))
	allFlag := pflag.BoolP("all-comments", "a", false, "Check all comments, not just documentation comments")
	errorExitFlag := pflag.BoolP("error-exit", "e", false, "Exit with status 1 if there were unrecognized words")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Log diagnostics to stderr")
	jsonFlag := pflag.BoolP("json", "j", false, "Output the results as JSON")
	tuiFlag := pflag.BoolP("tui", "t", false, "Browse the results in a terminal UI")
	webFlag := pflag.BoolP("web", "w", false, "Serve the results on "+web.DefaultAddr)
	addrFlag := pflag.String("addr", web.DefaultAddr, "Listen address for --web")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return 0
	}

	if *versionFlag {
		fmt.Printf("docspell version %s\n", model.Version)
		return 0
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *updateFlag {
		checkUpdate(cfg.Update.Repository, model.Version)
		return 0
	}

	files := pflag.Args()
	if len(files) == 0 {
		pflag.Usage()
		return 1
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %q does not exist\n", f)
			return 1
		}
	}

	// Flags override the configuration.
	if *stdFlag != "" {
		if err := dump.ValidateStandard(*stdFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg.Generator.Std = *stdFlag
	}
	cfg.Generator.IncludeDirs = append(cfg.Generator.IncludeDirs, *includeFlag...)
	if *allFlag {
		cfg.Generator.AllComments = true
	}
	if *dictFlag != "" {
		cfg.Engine.PersonalDict = *dictFlag
	}

	logger := config.NewLogger(cfg.Log, *verboseFlag, os.Stderr)
	logger.Debug("arguments", "files", files, "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	switch {
	case *tuiFlag:
		return runTuiMode(ctx, cfg, files, *errorExitFlag, logger)
	case *webFlag:
		return runWebMode(ctx, cfg, files, *addrFlag, *errorExitFlag, logger)
	case *jsonFlag:
		return runJsonMode(ctx, cfg, files, *errorExitFlag, logger)
	default:
		return runReportMode(ctx, cfg, files, *errorExitFlag, logger)
	}
}

// check runs one spelling session over files. The session is closed,
// and the engine reaped, on every return path.
func check(ctx context.Context, cfg config.Config, files []string, logger *slog.Logger, emit func(model.FileReport) error) (result model.RunResult, err error) {
	runner := dump.NewRunner(cfg.Clang(), logger)
	if err := runner.Available(); err != nil {
		return result, err
	}

	session, err := spell.Start(ctx, cfg.Hunspell(),
		spell.WithAcceptMarkers(cfg.Engine.AcceptMarkers),
		spell.WithLogger(logger),
	)
	if err != nil {
		return result, fmt.Errorf("start spelling engine: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil && err == nil {
			err = cerr
		}
		logger.Debug("spelling session closed", "queries", session.Queries())
	}()

	checker := report.NewChecker(runner, session, dump.NewExtractor(cfg.ExtractRules(), logger), cfg.Tokenizer(), logger)
	return checker.Run(ctx, files, emit)
}

func fatal(logger *slog.Logger, err error) int {
	logger.Error("run failed", "error", err)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// exitStatus maps a finished run to the process status.
func exitStatus(logger *slog.Logger, result model.RunResult, err error, errorExit bool) int {
	if err != nil {
		return fatal(logger, err)
	}
	return result.ExitCode(errorExit)
}

// tuiExitStatus reads the outcome from the program's final model.
func tuiExitStatus(logger *slog.Logger, final tea.Model, errorExit bool) int {
	fm, ok := final.(tui.AppModel)
	if !ok {
		return 1
	}
	return exitStatus(logger, fm.Result, fm.Err, errorExit)
}

func runReportMode(ctx context.Context, cfg config.Config, files []string, errorExit bool, logger *slog.Logger) int {
	result, err := check(ctx, cfg, files, logger, func(fr model.FileReport) error {
		return report.WriteText(os.Stdout, fr)
	})
	return exitStatus(logger, result, err, errorExit)
}

func runJsonMode(ctx context.Context, cfg config.Config, files []string, errorExit bool, logger *slog.Logger) int {
	result, err := check(ctx, cfg, files, logger, nil)
	if err != nil {
		return fatal(logger, err)
	}
	err = report.WriteJSON(os.Stdout, result)
	return exitStatus(logger, result, err, errorExit)
}

func runTuiMode(ctx context.Context, cfg config.Config, files []string, errorExit bool, logger *slog.Logger) int {
	m := tui.InitialModel(func() (model.RunResult, error) {
		return check(ctx, cfg, files, logger, nil)
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	return tuiExitStatus(logger, final, errorExit)
}

func runWebMode(ctx context.Context, cfg config.Config, files []string, addr string, errorExit bool, logger *slog.Logger) int {
	result, err := check(ctx, cfg, files, logger, nil)
	if err != nil {
		return fatal(logger, err)
	}
	fmt.Printf("Serving results for %d file(s) at http://%s\n", len(result.Files), addr)
	err = web.StartServer(ctx, addr, web.NewServer(result, logger), logger)
	return exitStatus(logger, result, err, errorExit)
}
