package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pv-go/internal/app"
	"pv-go/internal/config"
	"pv-go/internal/pv"
	"pv-go/internal/stats"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a PVApp. The caller must defer
// a.Close(). logName becomes the basename of this invocation's log file.
func newApp(logName string, observer pv.ProgressObserver) (*app.PVApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewPVApp(cfg, logName, observer)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// resolveWorkDir picks the batch directory: the argument if given,
// otherwise the intake directory under the archive root.
func resolveWorkDir(a *app.PVApp, args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	return a.Layout().ProcessDir(), nil
}

// progressObserver renders a terminal progress bar for a batch run. It
// writes to stderr so tables and summaries on stdout stay clean.
type progressObserver struct {
	bar *progressbar.ProgressBar
}

func (o *progressObserver) Start(total int) {
	o.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("archiving"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (o *progressObserver) FileDone(file pv.MediaFile, outcome pv.Outcome, s *pv.RunStats) {
	if o.bar == nil {
		return
	}
	o.bar.Describe(fmt.Sprintf("archiving (%d ok, %d err)", s.Succeeded(), s.Errored))
	o.bar.Add(1)
}

func (o *progressObserver) Finish(*pv.RunStats) {
	if o.bar != nil {
		o.bar.Finish()
	}
}

var rootCmd = &cobra.Command{
	Use:   "pv",
	Short: "Photo and video archiver",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["root"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Archive root: %s\n", cfg.Root)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Root:              %s\n", cfg.Root)
		fmt.Printf("Log Dir:           %s\n", cfg.LogDir)
		fmt.Printf("Database:          %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Handle Duplicates: %v\n", cfg.Archive.HandleDuplicates)
		return nil
	},
}

// archive command
var archiveCmd = &cobra.Command{
	Use:   "archive [DIR]",
	Short: "Rename and archive media files from a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skipDuplicates, _ := cmd.Flags().GetBool("skip-duplicates")

		logName := "__process"
		if len(args) > 0 {
			logName = filepath.Base(args[0])
		}

		a, err := newApp(logName, &progressObserver{})
		if err != nil {
			return err
		}
		defer a.Close()

		workDir, err := resolveWorkDir(a, args)
		if err != nil {
			return fmt.Errorf("resolving directory: %w", err)
		}

		result, err := a.Archive(workDir, skipDuplicates)
		if err != nil {
			return fmt.Errorf("archive failed: %w", err)
		}

		s := result.Stats
		fmt.Printf("Processed %d of %d file(s): %d archived, %d snapshotted, %d duplicated, %d skipped, %d errored\n",
			s.Processed, s.Total, s.Archived, s.Snapshotted, s.Duplicated, s.Skipped, s.Errored)

		fmt.Println("\nChanges:")
		stats.RenderDeltas(os.Stdout, result.Deltas)
		return nil
	},
}

// preview command
var previewCmd = &cobra.Command{
	Use:   "preview [DIR]",
	Short: "Show the canonical names a run would produce, without moving anything",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("pv", nil)
		if err != nil {
			return err
		}
		defer a.Close()

		workDir, err := resolveWorkDir(a, args)
		if err != nil {
			return fmt.Errorf("resolving directory: %w", err)
		}

		renames, err := a.Preview(workDir)
		if err != nil {
			return fmt.Errorf("preview failed: %w", err)
		}

		if len(renames) == 0 {
			fmt.Println("No media files found.")
			return nil
		}
		for _, r := range renames {
			fmt.Printf("%s -> %s\n", r.Source, r.Canonical)
		}
		return nil
	},
}

// stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-month archive contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("pv", nil)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := a.StatsReport()
		if err != nil {
			return err
		}

		stats.Render(os.Stdout, report)
		return nil
	},
}

// recover command
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Rename counter-suffixed duplicates back to their original names",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("pv", nil)
		if err != nil {
			return err
		}
		defer a.Close()

		restored, err := a.Recover()
		if err != nil {
			return fmt.Errorf("recover failed: %w", err)
		}

		fmt.Printf("Recovered %d file(s)\n", restored)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recorded archive runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("pv", nil)
		if err != nil {
			return err
		}
		defer a.Close()

		runs, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}

		for _, r := range runs {
			duration := ""
			if !r.FinishedAt.IsZero() {
				duration = r.FinishedAt.Sub(r.StartedAt).Truncate(time.Millisecond).String()
			}
			fmt.Printf("%.8s  %-8s  %s  %-7s  %d/%d ok  %s\n",
				r.ID,
				r.Operation,
				r.StartedAt.Format("2006-01-02 15:04:05"),
				r.Status,
				r.Stats.Succeeded(),
				r.Stats.Total,
				duration,
			)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	archiveCmd.Flags().Bool("skip-duplicates", false, "leave colliding files in place instead of relocating both contenders")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to show")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(historyCmd)
}
