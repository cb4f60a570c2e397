package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/timegrid/internal/auth"
	"github.com/julianstephens/timegrid/internal/cli"
	"github.com/julianstephens/timegrid/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/timegrid/timegrid.db"`
	User    string `help:"User identifier to operate on." default:"local"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize timegrid storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive timetable." default:"1"`
	Day      cli.DayCmd      `cmd:"" help:"Show the timetable for a day."`
	Week     cli.WeekCmd     `cmd:"" help:"Show the timetable for a week."`
	Data     cli.DataCmd     `cmd:"" help:"Show completion history and subject totals."`
	Settings cli.SettingsCmd `cmd:"" help:"Show or change settings."`
	Subject  struct {
		Add    cli.SubjectAddCmd    `cmd:"" help:"Add a subject."`
		List   cli.SubjectListCmd   `cmd:"" help:"List subjects."`
		Delete cli.SubjectDeleteCmd `cmd:"" help:"Delete a subject."`
	} `cmd:"" help:"Manage subjects."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the store."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("timegrid"),
		kong.Description("Weekly timetable planner with completion tracking"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Storage backend follows the config extension.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
		Auth:  auth.NewLocalProvider(CLI.User),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
