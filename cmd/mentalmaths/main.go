// Package main provides the CLI entrypoint for mental-maths.
package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ayeshaa24/mental-maths/internal/config"
	"github.com/ayeshaa24/mental-maths/internal/generator"
	"github.com/ayeshaa24/mental-maths/internal/logger"
	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/operator"
	"github.com/ayeshaa24/mental-maths/internal/profile"
	"github.com/ayeshaa24/mental-maths/internal/stats"
	"github.com/ayeshaa24/mental-maths/internal/tui"
)

const (
	defaultTier        = string(profile.Easy)
	defaultRevealDelay = 150 * time.Millisecond
	defaultLogLevel    = "info"
	defaultLogFormat   = "pretty"
)

// quizFlags are shared by the root and sheet commands.
type quizFlags struct {
	tier        string
	custom      string
	revealDelay time.Duration
	maxAttempts int
	seed        int64
	logLevel    string
	logFormat   string
}

var (
	rootFlags  quizFlags
	sheetFlags quizFlags

	sheetAnswers bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mentalmaths",
		Short:         "Timed mental arithmetic drills",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}
	addQuizFlags(rootCmd, &rootFlags)
	rootCmd.Flags().DurationVar(&rootFlags.revealDelay, "reveal-delay", defaultRevealDelay, "pause before the next question after a correct answer")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newOpsCmd())
	rootCmd.AddCommand(newSheetCmd())
	return rootCmd
}

func addQuizFlags(cmd *cobra.Command, f *quizFlags) {
	cmd.Flags().StringVar(&f.tier, "tier", defaultTier, "difficulty tier ("+tierNames()+")")
	cmd.Flags().StringVar(&f.custom, "custom", "", `custom levels, e.g. "mul=3,add=1" or "1,0,3,0,0,0,0,0"`)
	cmd.Flags().IntVar(&f.maxAttempts, "max-attempts", generator.DefaultMaxAttempts, "rejected attempts allowed per question")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (0 uses the clock)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", defaultLogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", defaultLogFormat, "log format (pretty, json)")
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadQuizConfig(cmd, &rootFlags)
	if err != nil {
		return err
	}

	logFile, err := logger.OpenFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	log := logger.Setup(rootFlags.logLevel, rootFlags.logFormat, logFile)
	log.Info().
		Str("selection", cfg.Selection.String()).
		Dur("reveal_delay", cfg.RevealDelay).
		Msg("starting mental-maths")

	gen := newGenerator(cfg, log)
	m := tui.NewModel(cfg, gen, log)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadQuizConfig merges the config file under the flags and validates the result.
func loadQuizConfig(cmd *cobra.Command, f *quizFlags) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyQuizConfig(cmd, f, fileCfg); err != nil {
		return model.Config{}, err
	}
	cfg, err := buildConfig(cmd, f)
	if err != nil {
		return model.Config{}, err
	}
	if err := validateConfig(cfg, f); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func applyQuizConfig(cmd *cobra.Command, f *quizFlags, fileCfg config.FileConfig) error {
	applyStringConfig(cmd, "tier", &f.tier, fileCfg.Quiz.Tier)
	applyStringConfig(cmd, "custom", &f.custom, fileCfg.Quiz.Custom)
	applyIntConfig(cmd, "max-attempts", &f.maxAttempts, fileCfg.Quiz.MaxAttempts)
	applyInt64Config(cmd, "seed", &f.seed, fileCfg.Quiz.Seed)
	applyStringConfig(cmd, "log-level", &f.logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &f.logFormat, fileCfg.Log.Format)
	if err := applyDurationConfig(cmd, "reveal-delay", &f.revealDelay, fileCfg.Quiz.RevealDelay); err != nil {
		return err
	}
	return nil
}

// buildConfig resolves the selection. An explicit --tier flag wins over a
// custom selection coming from the config file.
func buildConfig(cmd *cobra.Command, f *quizFlags) (model.Config, error) {
	cfg := model.Config{
		RevealDelay: f.revealDelay,
		MaxAttempts: f.maxAttempts,
		Seed:        f.seed,
	}
	useCustom := strings.TrimSpace(f.custom) != ""
	if cmd.Flags().Changed("tier") && !cmd.Flags().Changed("custom") {
		useCustom = false
	}
	if useCustom {
		c, err := profile.ParseCustom(f.custom)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid --custom value: %w", err)
		}
		sel, err := profile.ForCustom(c)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid --custom value: %w", err)
		}
		cfg.Selection = sel
		return cfg, nil
	}
	tier, err := profile.ParseTier(f.tier)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --tier value: %w", err)
	}
	sel, err := profile.ForTier(tier)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid --tier value: %w", err)
	}
	cfg.Selection = sel
	return cfg, nil
}

func validateConfig(cfg model.Config, f *quizFlags) error {
	if cfg.RevealDelay < 0 {
		return fmt.Errorf("--reveal-delay must be >= 0")
	}
	if cfg.MaxAttempts <= 0 {
		return fmt.Errorf("--max-attempts must be > 0")
	}
	if !logger.ValidFormat(f.logFormat) {
		return fmt.Errorf("--log-format must be pretty or json")
	}
	if _, err := zerolog.ParseLevel(f.logLevel); err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	return nil
}

func newGenerator(cfg model.Config, log zerolog.Logger) *generator.Generator {
	opts := []generator.Option{
		generator.WithMaxAttempts(cfg.MaxAttempts),
		generator.WithLogger(log),
	}
	if cfg.Seed != 0 {
		opts = append(opts, generator.WithSeed(cfg.Seed))
	}
	return generator.New(opts...)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newOpsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List operators and difficulty tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOps(cmd.OutOrStdout())
		},
	}
}

func writeOps(w io.Writer) error {
	lines := []string{"Operators:"}
	for _, op := range operator.Slots() {
		status := op.Category().String()
		if !op.Selectable() {
			status = "reserved"
		}
		lines = append(lines, fmt.Sprintf("  %-2s %-5s %s", op.Symbol(), op.Name(), status))
	}
	lines = append(lines, "", "Tiers:")
	for _, p := range profile.Profiles() {
		label := p.Label
		if !p.Enabled {
			label += " (disabled)"
		}
		lines = append(lines, fmt.Sprintf("  %-9s %s", p.Tier, label))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Print a worksheet of generated questions",
		Args:  cobra.NoArgs,
		RunE:  runSheetCmd,
	}
	addQuizFlags(cmd, &sheetFlags)
	cmd.Flags().BoolVar(&sheetAnswers, "answers", false, "include answers")
	return cmd
}

func runSheetCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadQuizConfig(cmd, &sheetFlags)
	if err != nil {
		return err
	}
	log := logger.Setup(sheetFlags.logLevel, sheetFlags.logFormat, cmd.ErrOrStderr())
	questions, err := newGenerator(cfg, log).Generate(cfg.Selection)
	if err != nil {
		return fmt.Errorf("failed to generate questions: %w", err)
	}
	log.Debug().Str("selection", cfg.Selection.String()).Int("questions", len(questions)).Msg("worksheet generated")
	if err := stats.RenderWorksheet(cmd.OutOrStdout(), questions, sheetAnswers); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func tierNames() string {
	tiers := profile.Tiers()
	names := make([]string, 0, len(tiers))
	for _, t := range tiers {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# mental-maths configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# tier = %q               # One of: %s
# custom = "mul=3,add=1"      # Custom levels per operator (1-5); overrides tier
# reveal-delay = %q       # Pause before the next question
# max-attempts = %d         # Rejected attempts allowed per question
# seed = 0                    # Random seed (0 uses the clock)

[log]
# level = %q              # debug, info, warn, error
# format = %q           # pretty or json
`,
		defaultTier,
		tierNames(),
		defaultRevealDelay.String(),
		generator.DefaultMaxAttempts,
		defaultLogLevel,
		defaultLogFormat,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
