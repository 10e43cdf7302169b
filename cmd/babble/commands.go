package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ctodd/babble/pkg/corpus"
	"github.com/ctodd/babble/pkg/markov"
)

var (
	configPath string

	flagCount       int
	flagSeed        uint64
	flagMaxSteps    int
	flagTemperature float64
	flagTopK        int

	config *Config
	logger *slog.Logger
	db     *sql.DB
	store  *corpus.Store
)

var rootCmd = &cobra.Command{
	Use:     "babble",
	Short:   "Markov chain sentence generator",
	Long:    "babble trains a first-order Markov chain on a speaker's corpus and generates novel, stylistically similar sentences.",
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		config, err = LoadConfig(configPath)
		if err != nil {
			return err
		}

		var level slog.Level
		if err = level.UnmarshalText([]byte(config.LogLevel)); err != nil {
			level = slog.LevelInfo
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		if err = os.MkdirAll(config.DataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}

		db, err = initDB(config.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		if err = corpus.SetupSchema(db); err != nil {
			return fmt.Errorf("failed to set up schema: %w", err)
		}
		store, err = corpus.NewStore(db)
		if err != nil {
			return fmt.Errorf("failed to create corpus store: %w", err)
		}
		store.SetLogger(logger)
		return nil
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			store.Close()
		}
		if db != nil {
			_ = db.Close()
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import <speaker> <file>",
	Short: "Import a corpus file for a speaker",
	Long: `Import a corpus file for a speaker.

The file must contain one training sentence per line; blank lines are
skipped. The speaker is created if it does not exist, and repeated imports
append to the existing corpus.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, path := args[0], args[1]

		f, err := os.Open(filepath.Clean(path))
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()

		ctx := cmd.Context()
		speaker, err := store.GetSpeaker(ctx, name)
		if err != nil {
			speaker, err = store.AddSpeaker(ctx, name)
			if err != nil {
				return err
			}
		}

		n, err := store.Import(ctx, speaker, f)
		if err != nil {
			return err
		}
		fmt.Printf("imported %d sentences for %q\n", n, name)
		return nil
	},
}

var babbleCmd = &cobra.Command{
	Use:   "babble <speaker>",
	Short: "Generate sentences in a speaker's style",
	Long: `Generate sentences in a speaker's style.

The speaker's stored corpus is tokenized and built into a transition model,
then each sentence is produced by a random walk over the model. With --seed
the output is fully reproducible.

Examples:
  babble babble yoda
  babble babble yoda -n 5 --seed 42
  babble babble yoda --temperature 0.7 --top-k 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		speaker, err := store.GetSpeaker(ctx, args[0])
		if err != nil {
			return err
		}
		text, err := store.Text(ctx, speaker)
		if err != nil {
			return err
		}

		model, err := markov.Train(text)
		if err != nil {
			return err
		}
		stats := model.Stats()
		logger.Debug("model built",
			slog.String("speaker", speaker.Name),
			slog.Int("vocabulary", stats.Vocabulary),
			slog.Int("transitions", stats.Transitions),
		)

		// Flags win over config file values.
		count := flagCount
		if !cmd.Flags().Changed("count") && config.DefaultCount > 0 {
			count = config.DefaultCount
		}
		maxSteps := flagMaxSteps
		if !cmd.Flags().Changed("max-steps") && config.MaxSteps > 0 {
			maxSteps = config.MaxSteps
		}

		opts := []markov.BabbleOption{
			markov.WithMaxSteps(maxSteps),
			markov.WithTemperature(flagTemperature),
			markov.WithTopK(flagTopK),
		}
		if cmd.Flags().Changed("seed") {
			opts = append(opts, markov.WithSeed(flagSeed))
		}

		babbler := markov.NewBabbler(model, opts...)
		babbler.SetLogger(logger)

		sentences, err := babbler.BabbleMany(count)
		for _, s := range sentences {
			fmt.Println(s)
		}
		return err
	},
}

var speakersCmd = &cobra.Command{
	Use:   "speakers",
	Short: "List speakers in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		speakers, err := store.ListSpeakers(cmd.Context())
		if err != nil {
			return err
		}
		for _, sp := range speakers {
			fmt.Println(sp.Name)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus store statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("speakers: %d\ntotal sentences: %d\n", stats.Speakers, stats.TotalLines)

		names := make([]string, 0, len(stats.LineCounts))
		for name := range stats.LineCounts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %s: %d\n", name, stats.LineCounts[name])
		}
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <speaker>",
	Short: "Delete a speaker's corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		speaker, err := store.GetSpeaker(ctx, args[0])
		if err != nil {
			return err
		}
		if err = store.RemoveSpeaker(ctx, speaker); err != nil {
			return err
		}
		fmt.Printf("removed %q\n", speaker.Name)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.json", "path to the config file")

	babbleCmd.Flags().IntVarP(&flagCount, "count", "n", 1, "number of sentences to generate")
	babbleCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "random seed for reproducible output")
	babbleCmd.Flags().IntVar(&flagMaxSteps, "max-steps", markov.DefaultMaxSteps, "random-walk step bound")
	babbleCmd.Flags().Float64Var(&flagTemperature, "temperature", 1.0, "sampling temperature (1.0 = plain categorical draw)")
	babbleCmd.Flags().IntVar(&flagTopK, "top-k", 0, "restrict each draw to the k most frequent successors (0 = off)")

	babbleCmd.ValidArgsFunction = speakerList
	removeCmd.ValidArgsFunction = speakerList

	rootCmd.AddCommand(importCmd, babbleCmd, speakersCmd, statsCmd, removeCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// speakerList is used by shell completion for commands taking a speaker name.
func speakerList(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if store == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	speakers, err := store.ListSpeakers(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, sp := range speakers {
		if strings.HasPrefix(sp.Name, toComplete) {
			names = append(names, sp.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
