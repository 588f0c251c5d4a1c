package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/kvstore"
	"github.com/julianstephens/growlog/internal/logging"
	"github.com/julianstephens/growlog/internal/registry"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Storage file path." type:"path" default:"~/.config/growlog/growlog.db"`
	Compress bool   `help:"Compress stored values." default:"true" negatable:""`

	Init  cli.InitCmd `cmd:"" help:"Initialize growlog storage."`
	Tui   cli.TuiCmd  `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Plant struct {
		Add       cli.PlantAddCmd       `cmd:"" help:"Add a new plant."`
		List      cli.PlantListCmd      `cmd:"" help:"List plants."`
		Rename    cli.PlantRenameCmd    `cmd:"" help:"Rename a plant."`
		Phase     cli.PlantPhaseCmd     `cmd:"" help:"Change a plant's growth phase."`
		Archive   cli.PlantArchiveCmd   `cmd:"" help:"Move a plant to the archive."`
		Unarchive cli.PlantUnarchiveCmd `cmd:"" help:"Restore an archived plant."`
		Delete    cli.PlantDeleteCmd    `cmd:"" help:"Permanently delete a plant."`
	} `cmd:"" help:"Manage plants."`
	Event struct {
		Add    cli.EventAddCmd    `cmd:"" help:"Log a care event."`
		Remove cli.EventRemoveCmd `cmd:"" help:"Remove a logged event by position."`
		List   cli.EventListCmd   `cmd:"" help:"List a plant's events."`
	} `cmd:"" help:"Manage care events."`
	Measure struct {
		Height cli.MeasureHeightCmd `cmd:"" help:"Record a height measurement for selected plants."`
		Weight cli.MeasureWeightCmd `cmd:"" help:"Record a weight measurement for selected plants."`
	} `cmd:"" help:"Record measurements."`
	Select    cli.SelectCmd      `cmd:"" help:"Toggle plants in the bulk-operation selection."`
	Selection struct {
		Clear cli.SelectClearCmd `cmd:"" help:"Clear the selection."`
		List  cli.SelectListCmd  `cmd:"" help:"Show the selection."`
	} `cmd:"" help:"Manage the bulk-operation selection."`
	Card struct {
		Add    cli.CardAddCmd    `cmd:"" help:"Add a quick card."`
		List   cli.CardListCmd   `cmd:"" help:"List quick cards."`
		Delete cli.CardDeleteCmd `cmd:"" help:"Delete a quick card."`
		Pin    cli.CardPinCmd    `cmd:"" help:"Pin or unpin a quick card."`
		Apply  cli.CardApplyCmd  `cmd:"" help:"Apply a quick card to a plant."`
	} `cmd:"" help:"Manage quick cards."`
	Export   cli.ExportCmd `cmd:"" help:"Export all plants as JSON."`
	Import   cli.ImportCmd `cmd:"" help:"Import plants from an export file."`
	Snapshot struct {
		Create  cli.SnapshotCreateCmd  `cmd:"" help:"Snapshot the storage file."`
		List    cli.SnapshotListCmd    `cmd:"" help:"List retained snapshots."`
		Restore cli.SnapshotRestoreCmd `cmd:"" help:"Restore a snapshot."`
	} `cmd:"" help:"Manage storage snapshots."`
	Debug struct {
		Keys cli.DebugKeysCmd `cmd:"" help:"List stored keys."`
	} `cmd:"" hidden:"" help:"Inspection helpers."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("growlog"),
		kong.Description("Plant cultivation tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	logging.Setup(CLI.Config)

	// Storage backend follows the config file extension.
	var store kvstore.Store
	if strings.HasSuffix(CLI.Config, ".json") {
		store = kvstore.NewFileStore(CLI.Config, CLI.Compress)
	} else {
		store = kvstore.NewSQLiteStore(CLI.Config, CLI.Compress)
	}

	plants := registry.Plants(store)
	appCtx := &cli.Context{
		Store:  store,
		Plants: plants,
		Cards:  registry.Cards(store),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
