package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/growlog/internal/backup"
)

type ExportCmd struct {
	Output string `short:"o" help:"Write the export to a file instead of stdout." type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	data, err := ctx.Plants.ExportAll()
	if err != nil {
		return err
	}

	if c.Output == "" {
		fmt.Println(data)
		return nil
	}
	if err := os.WriteFile(c.Output, []byte(data), 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("Exported %d active and %d archived plant(s) to %s\n",
		len(ctx.Plants.Active()), len(ctx.Plants.Archived()), c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	// Import replaces collections wholesale, so snapshot the store first.
	mgr := backup.NewManager(ctx.Store.Path())
	if snap, err := mgr.CreateSnapshot(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: pre-import snapshot failed: %v\n", err)
	} else {
		fmt.Printf("Created snapshot: %s\n", filepath.Base(snap))
	}

	if err := ctx.Plants.ImportAll(string(data)); err != nil {
		return fmt.Errorf("import failed, existing data untouched: %w", err)
	}
	fmt.Printf("Imported %d active and %d archived plant(s)\n",
		len(ctx.Plants.Active()), len(ctx.Plants.Archived()))
	return nil
}

type SnapshotCreateCmd struct{}

func (c *SnapshotCreateCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Store.Path())
	snap, err := mgr.CreateSnapshot()
	if err != nil {
		return fmt.Errorf("snapshot failed: %w", err)
	}
	fmt.Printf("✓ Snapshot created: %s\n", filepath.Base(snap))
	return nil
}

type SnapshotListCmd struct{}

func (c *SnapshotListCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Store.Path())
	snapshots, err := mgr.ListSnapshots()
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		fmt.Println("No snapshots found.")
		fmt.Printf("Snapshots are stored in: %s\n", mgr.Dir())
		return nil
	}

	fmt.Printf("Available snapshots (%d total, keeping most recent %d):\n\n",
		len(snapshots), backup.MaxSnapshots)
	for _, s := range snapshots {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			s.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(s.Path),
			float64(s.Size)/1024.0)
	}
	return nil
}

type SnapshotRestoreCmd struct {
	File  string `arg:"" help:"Path or filename of the snapshot to restore."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *SnapshotRestoreCmd) Run(ctx *Context) error {
	if err := ctx.load(); err != nil {
		return err
	}

	mgr := backup.NewManager(ctx.Store.Path())
	path := c.File
	if !filepath.IsAbs(path) {
		if candidate := filepath.Join(mgr.Dir(), c.File); fileExists(candidate) {
			path = candidate
		}
	}
	if !fileExists(path) {
		return fmt.Errorf("snapshot not found: %s", path)
	}

	if !c.Force && !confirm("This will replace your current storage with the snapshot. Continue?") {
		fmt.Println("Restore cancelled.")
		return nil
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close storage: %v\n", err)
	}
	if err := mgr.RestoreSnapshot(path); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	fmt.Println("✓ Storage restored successfully!")
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
