package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/recyclerview/recycler/internal/config"
	"github.com/recyclerview/recycler/internal/db"
	"github.com/recyclerview/recycler/internal/feed"
	"github.com/recyclerview/recycler/internal/log"
	"github.com/recyclerview/recycler/internal/source"
	"github.com/recyclerview/recycler/internal/tui"
	"github.com/recyclerview/recycler/internal/window"
)

var rootCmd = &cobra.Command{
	Use:   "recycler",
	Short: "Browse large paged datasets with a fixed pool of recycled views",
	Long: heredoc.Doc(`
		Recycler renders an endless scrollable feed while keeping the number
		of live item views bounded: once the pool is full, scrolling rebinds
		the views that left the screen instead of creating new ones.
	`),
	RunE: run,
}

func Execute() {
	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.Int("page-size", 0, "records fetched per page (the pool holds twice this)")
	f.Int("rows", 0, "rows to seed into an empty database")
	f.String("data-dir", "", "directory for the database and logs")
	f.Bool("demo", false, "use a generated in-memory source instead of SQLite")
	f.Bool("debug", false, "verbose logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	flags := cmd.Flags()
	if flags.Changed("page-size") {
		cfg.PageSize, _ = flags.GetInt("page-size")
	}
	if flags.Changed("rows") {
		cfg.Rows, _ = flags.GetInt("rows")
	}
	if flags.Changed("data-dir") {
		cfg.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("demo") {
		cfg.Demo, _ = flags.GetBool("demo")
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := log.Setup(cfg.LogPath(), cfg.Debug); err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	ctx := cmd.Context()
	var src source.Source[feed.Item]
	if cfg.Demo {
		src = source.NewGenerated(cfg.PageSize, cfg.Rows)
	} else {
		sqlDB, err := db.Connect(ctx, cfg.DatabasePath())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer sqlDB.Close()
		if err := db.Seed(ctx, sqlDB, cfg.Rows); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
		src = source.NewSQLite(sqlDB, cfg.PageSize)
	}

	factory := feed.NewFactory(feed.DefaultCardWidth)
	model, err := tui.New(window.Config[feed.Item]{
		FetchPage:  src.FetchPage,
		CreateView: factory.Create,
		BindView:   factory.Bind,
		PageSize:   cfg.PageSize,
	})
	if err != nil {
		return err
	}

	slog.Info("starting", "page_size", cfg.PageSize, "demo", cfg.Demo)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
