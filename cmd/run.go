package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"jobmatch/internal/ingest"
	"jobmatch/internal/logger"
	"jobmatch/internal/match"
	"jobmatch/internal/report"
	"jobmatch/internal/store"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptPrintReport = "Print the report"
	PromptSummary     = "Summary by jobseeker"
	PromptDumpToFile  = "Dump recommendations to file"
	PromptSaveResults = "Save results to the database"
	PromptQuit        = "Quit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptPrintReport, PromptSummary, PromptDumpToFile, PromptSaveResults, PromptQuit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the jobmatch main command",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "print the report without the interactive menu")
	runCmd.Flags().Float64P("min-score", "m", 0, "drop recommendations scoring below this threshold")
	runCmd.Flags().Int("workers", 0, "jobseekers ranked concurrently (0 ranks serially)")
	runCmd.Flags().StringP("format", "o", "", "report format: table, csv or json")
	runCmd.Flags().Bool("save", false, "persist the report into the database after ranking")

	viper.BindPFlag("min-score", runCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("workers", runCmd.Flags().Lookup("workers"))
	viper.BindPFlag("output.format", runCmd.Flags().Lookup("format"))
	viper.BindPFlag("output.save", runCmd.Flags().Lookup("save"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.JobseekersFile == "" || config.JobsFile == "" {
		logger.Fatal("both collections are required under jobseekers-file and jobs-file")
	}

	if config.Database == "" {
		config.Database = store.InMemory
	}

	if config.Output == nil {
		config.Output = &OutputConfig{}
	}

	reader := ingest.NewReader(logger)

	seekers, err := reader.Jobseekers(config.JobseekersFile)
	if err != nil {
		logger.Fatal("reading jobseekers", zap.Error(err))
	}

	logger.Info("reading jobseekers", zap.Int("count", len(seekers)), zap.String("file", config.JobseekersFile))

	jobs, err := reader.Jobs(config.JobsFile)
	if err != nil {
		logger.Fatal("reading jobs", zap.Error(err))
	}

	logger.Info("reading jobs", zap.Int("count", len(jobs)), zap.String("file", config.JobsFile))

	db, err := store.Open(config.Database)
	if err != nil {
		logger.Fatal("opening the database", zap.Error(err), zap.String("database", config.Database))
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		logger.Fatal("migrating the database", zap.Error(err))
	}

	if err := store.SaveSnapshot(ctx, db.Pool, seekers, jobs); err != nil {
		logger.Fatal("persisting the collections", zap.Error(err))
	}

	// Rank what the store holds, so the report always reflects the persisted
	// snapshot.
	seekers, jobs, err = store.LoadSnapshot(ctx, db.Pool)
	if err != nil {
		logger.Fatal("loading the collections", zap.Error(err))
	}

	snap := match.NewSnapshot(seekers, jobs)

	logger.Info("starting the matching",
		zap.Int("jobseekers", snap.Jobseekers()),
		zap.Int("jobs", snap.Jobs()),
		zap.Int("pairs", snap.Pairs()),
		zap.Float64("min_score", config.MinScore),
	)

	recs, err := match.Rank(snap, match.Options{MinScore: config.MinScore, Workers: config.Workers})
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	logger.Info("ranking finished", zap.Int("recommendations", len(recs)))

	if config.Output.Save {
		if err := saveResults(ctx, db, logger, recs); err != nil {
			logger.Fatal("saving results", zap.Error(err))
		}
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := writeReport(config, recs); err != nil {
			logger.Fatal("writing the report", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, db, logger, config, recs); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, db *store.DB, logger *zap.Logger, config *Config, recs []match.Recommendation) error {
	switch action {
	case PromptPrintReport:
		return writeReport(config, recs)
	case PromptSummary:
		pretty, _ := json.MarshalIndent(report.SummaryByJobseeker(recs), "", "  ")
		logger.Info(string(pretty), zap.Int("recommendations", len(recs)))
		return nil
	case PromptDumpToFile:
		filename, err := report.DumpToTmpFile(recs)
		if err != nil {
			return fmt.Errorf("dump recommendations to file: %w", err)
		}
		logger.Info("dumping recommendations to file", zap.String("filename", filename))
		return nil
	case PromptSaveResults:
		return saveResults(ctx, db, logger, recs)
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// writeReport renders the report to stdout, or to the configured output file.
func writeReport(config *Config, recs []match.Recommendation) error {
	if config.Output.File == "" {
		return report.Write(os.Stdout, config.Output.Format, recs)
	}

	file, err := os.Create(config.Output.File)
	if err != nil {
		return err
	}
	defer file.Close()

	return report.Write(file, config.Output.Format, recs)
}

func saveResults(ctx context.Context, db *store.DB, logger *zap.Logger, recs []match.Recommendation) error {
	if err := store.SaveMatches(ctx, db.Pool, recs); err != nil {
		return fmt.Errorf("save results: %w", err)
	}

	count, err := store.CountMatches(ctx, db.Pool)
	if err != nil {
		return fmt.Errorf("count saved results: %w", err)
	}

	logger.Info("saved results to the database", zap.Int("count", count))

	return nil
}
