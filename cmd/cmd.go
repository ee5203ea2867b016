package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/honganh1206/datetime/api"
	"github.com/honganh1206/datetime/config"
	"github.com/honganh1206/datetime/datetime"
	"github.com/honganh1206/datetime/history"
	"github.com/honganh1206/datetime/lexer"
	"github.com/honganh1206/datetime/utils"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envPath    string
	verbose    bool
	noHistory  bool
	remoteURL  string

	cfg config.Config
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var ErrNoMatch = errors.New("no known format matches the input")

// reportedError marks an error whose diagnostic has already been printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(envPath); err != nil && verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Error loading .env file: %v\n", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	var err error
	cfg, err = config.Load(configPath)
	return err
}

// record stores one attempt. Failures are logged, never returned.
func record(cmd *cobra.Command, rec *history.Record) {
	if noHistory {
		return
	}

	db, err := history.InitDB(cfg.DBPath)
	if err != nil {
		slog.Warn("history unavailable", "path", cfg.DBPath, "err", err)
		return
	}
	defer db.Close()

	m := history.Model{DB: db}
	if err := m.Save(cmd.Context(), rec); err != nil {
		slog.Warn("failed to save history", "err", err)
	}
}

func ParseHandler(cmd *cobra.Command, args []string) error {
	input, pattern := args[0], args[1]

	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	if remoteURL != "" {
		return remoteParse(cmd, input, pattern, out)
	}

	dt, err := datetime.Parse(input, pattern)
	if err != nil {
		record(cmd, history.NewRecord(input, pattern, false, nil, err))
		fmt.Fprint(cmd.ErrOrStderr(), utils.RenderDiagnostic(err))
		return reportedError{err}
	}
	record(cmd, history.NewRecord(input, pattern, false, &dt, nil))

	fmt.Fprintln(cmd.OutOrStdout(), dt)

	if out != "" {
		formatted, err := dt.Format(out)
		if err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), utils.RenderDiagnostic(err))
			return reportedError{err}
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatted)
	}

	return nil
}

func GuessHandler(cmd *cobra.Command, args []string) error {
	input := args[0]

	if remoteURL != "" {
		return remoteGuess(cmd, input)
	}

	dt, format, ok := datetime.Guess(input)
	if !ok {
		record(cmd, history.NewRecord(input, "", true, nil, ErrNoMatch))
		return fmt.Errorf("%w: %q", ErrNoMatch, input)
	}
	record(cmd, history.NewRecord(input, format, true, &dt, nil))

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", dt, format)
	return nil
}

func TokensHandler(cmd *cobra.Command, args []string) error {
	tokens, err := lexer.Tokenize(args[0])
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), utils.RenderDiagnostic(err))
		return reportedError{err}
	}

	headers := []string{"#", "Kind", "Pattern", "Width"}
	var data [][]string
	for i, tok := range tokens {
		width := "-"
		if w := tok.Width(); w > 0 {
			width = strconv.Itoa(w)
		}
		data = append(data, []string{strconv.Itoa(i + 1), tok.Kind.String(), tok.Specifier(), width})
	}

	return utils.RenderTable(cmd.OutOrStdout(), headers, data)
}

func FormatsHandler(cmd *cobra.Command, args []string) error {
	formats := datetime.Candidates()
	if remoteURL != "" {
		var err error
		if formats, err = api.NewClient(remoteURL).Formats(cmd.Context()); err != nil {
			return err
		}
	}

	headers := []string{"#", "Format"}
	var data [][]string
	for i, f := range formats {
		data = append(data, []string{strconv.Itoa(i + 1), f})
	}

	return utils.RenderTable(cmd.OutOrStdout(), headers, data)
}

func HistoryHandler(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	id, err := cmd.Flags().GetString("id")
	if err != nil {
		return err
	}

	if remoteURL != "" {
		return remoteHistory(cmd, id, limit)
	}

	db, err := history.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer db.Close()

	m := history.Model{DB: db}

	if id != "" {
		r, err := m.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return renderHistory(cmd, []*history.Record{r})
	}

	records, err := m.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	return renderHistory(cmd, records)
}

func renderHistory(cmd *cobra.Command, records []*history.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No history found.")
		return nil
	}

	headers := []string{"ID", "Created", "Input", "Format", "Result"}
	var data [][]string
	for _, r := range records {
		result := r.Error
		if r.Result != nil {
			result = r.Result.String()
		}
		format := r.Format
		if r.Guessed {
			format += " (guessed)"
		}
		data = append(data, []string{
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			r.Input,
			format,
			result,
		})
	}

	return utils.RenderTable(cmd.OutOrStdout(), headers, data)
}

func NewCLI() *cobra.Command {
	parseCmd := &cobra.Command{
		Use:     "parse <input> <pattern>",
		Short:   "Parse input against a strptime-style pattern",
		Example: `  datetime parse "2023-10-15 14:30:00" "%Y-%m-%d %H:%M:%S"`,
		Args:    cobra.ExactArgs(2),
		RunE:    ParseHandler,
	}
	parseCmd.Flags().StringP("out", "o", "", "Render the result with this pattern as well")

	guessCmd := &cobra.Command{
		Use:   "guess <input>",
		Short: "Parse input by trying the known formats in order",
		Args:  cobra.ExactArgs(1),
		RunE:  GuessHandler,
	}

	tokensCmd := &cobra.Command{
		Use:   "tokens <pattern>",
		Short: "Show how a pattern is tokenized",
		Args:  cobra.ExactArgs(1),
		RunE:  TokensHandler,
	}

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List the formats tried by guess, in order",
		Args:  cobra.NoArgs,
		RunE:  FormatsHandler,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent parse attempts",
		Args:  cobra.NoArgs,
		RunE:  HistoryHandler,
	}
	historyCmd.Flags().IntP("limit", "n", 20, "Number of records to show (0 for all)")
	historyCmd.Flags().String("id", "", "Show a single record")

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Check that a server is reachable (uses --remote, or " + api.DefaultURL + ")",
		Args:  cobra.NoArgs,
		RunE:  PingHandler,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  ServeHandler,
	}
	serveCmd.Flags().String("addr", "", "Listen address (defaults to the configured addr)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Try patterns interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return TUI()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of datetime",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "datetime version %s (commit: %s, built: %s)\n", Version, GitCommit, BuildTime)
		},
	}

	rootCmd := &cobra.Command{
		Use:               "datetime",
		Short:             "Parse and guess date/time strings",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "./.env", "Path to .env file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noHistory, "no-history", false, "Do not record attempts")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Run parse, guess, formats and history against a running server, e.g. "+api.DefaultURL)

	rootCmd.AddCommand(parseCmd, guessCmd, tokensCmd, formatsCmd, historyCmd, pingCmd, serveCmd, tuiCmd, versionCmd, completionCmd())

	return rootCmd
}

// run executes root and prints any error that has not been shown yet.
func run(root *cobra.Command) error {
	err := root.Execute()
	if err == nil {
		return nil
	}

	var reported reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

func Execute() {
	if err := run(NewCLI()); err != nil {
		os.Exit(1)
	}
}
