package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wbrown/steno_lexer"
	"github.com/wbrown/steno_lexer/resources"
	"github.com/wbrown/steno_lexer/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	rsrcFlag   string

	cfg    *Config
	logger *zap.Logger
)

// session is a loaded rule set ready for queries.
type session struct {
	matcher      *steno_lexer.RuleMatcher
	lexer        *steno_lexer.Lexer
	translations map[string]string
}

var rootCmd = &cobra.Command{
	Use:   "steno_lexer",
	Short: "Break steno chords down into the rules that produce a word",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return err
		}
		if rsrcFlag != "" {
			cfg.Resources = rsrcFlag
		}
		zapConfig := zap.NewProductionConfig()
		level, levelErr := zapcore.ParseLevel(cfg.LogLevel)
		if levelErr != nil {
			return fmt.Errorf("bad log level: %w", levelErr)
		}
		if verbose {
			level = zapcore.DebugLevel
		}
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// loadSession resolves the configured resources and builds a matcher and
// lexer over them.
func loadSession(cfg *Config, logger *zap.Logger) (*session, error) {
	rsrcs, err := resources.ResolveResources(cfg.Resources, logger)
	if err != nil {
		return nil, err
	}
	defer rsrcs.Cleanup()
	rules, err := rsrcs.Rules()
	if err != nil {
		return nil, err
	}
	translations, skipped, err := rsrcs.Translations()
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		logger.Warn("skipped translations outside the layout",
			zap.Int("count", len(skipped)))
	}
	matcher := steno_lexer.NewRuleMatcher(
		steno_lexer.WithLogger(logger),
		steno_lexer.WithCacheSize(cfg.CacheSize),
		steno_lexer.WithStarNames(cfg.StarNames),
	)
	if err := matcher.SetRules(rules); err != nil {
		return nil, err
	}
	matcher.SetTranslations(translations)
	lexer := steno_lexer.NewLexer(matcher,
		steno_lexer.WithMaxSteps(cfg.MaxSteps),
		steno_lexer.WithThreads(cfg.Threads),
		steno_lexer.WithLexerLogger(logger),
	)
	return &session{matcher, lexer, translations}, nil
}

func printAnalysis(w io.Writer, analysis *steno_lexer.Analysis) {
	fmt.Fprintf(w, "%s → %q (%d letters matched)\n",
		analysis.Keys.Rtfcre(), analysis.Letters, analysis.MatchedLetters)
	for _, rule := range analysis.Rules {
		fmt.Fprintf(w, "  %-12s %-10s %q\n", rule.Name, rule.Keys.Rtfcre(),
			rule.Letters)
	}
	if !analysis.Complete() {
		fmt.Fprintf(w, "  unmatched: %s\n", analysis.UnmatchedKeys.Rtfcre())
	}
}

var matchCmd = &cobra.Command{
	Use:   "match KEYS LETTERS",
	Short: "List the candidate rules for the start of a chord",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cfg, logger)
		if err != nil {
			return err
		}
		keys, err := types.ParseRTFCRE(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for rule := range s.matcher.Match(keys, args[1], keys, args[1], nil) {
			fmt.Fprintf(out, "%-12s %-10s %-8s %q\n", rule.Name,
				rule.Keys.Rtfcre(), rule.Class(), rule.Letters)
		}
		return nil
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze KEYS WORD",
	Short: "Break a chord down into rules for a word",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cfg, logger)
		if err != nil {
			return err
		}
		analysis, err := s.lexer.Analyze(args[0], args[1])
		if err != nil {
			return err
		}
		printAnalysis(cmd.OutOrStdout(), analysis)
		return nil
	},
}

var textCmd = &cobra.Command{
	Use:   "text SENTENCE...",
	Short: "Analyze every word of a sentence found in the translations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cfg, logger)
		if err != nil {
			return err
		}
		analyses, err := s.lexer.AnalyzeText(strings.Join(args, " "),
			s.translations)
		if err != nil {
			return err
		}
		for _, analysis := range analyses {
			printAnalysis(cmd.OutOrStdout(), analysis)
		}
		return nil
	},
}

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Analyze every entry of the translations dictionary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cfg, logger)
		if err != nil {
			return err
		}
		results, err := s.lexer.AnalyzeAll(cmd.Context(), s.translations)
		if err != nil {
			return err
		}
		complete := 0
		chords := make([]string, 0, len(results))
		for chord, analysis := range results {
			chords = append(chords, chord)
			if analysis.Complete() {
				complete++
			}
		}
		sort.Strings(chords)
		for _, chord := range chords {
			printAnalysis(cmd.OutOrStdout(), results[chord])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d/%d complete\n", complete,
			len(results))
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the prefix tree of the loaded rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), s.matcher.Tree().String())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML config file")
	rootCmd.PersistentFlags().StringVarP(&rsrcFlag, "resources", "r", "",
		"rule set: embedded id, directory or base URL")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(dictCmd)
	rootCmd.AddCommand(treeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
