package cli

import (
	"fmt"

	"github.com/julianstephens/timegrid/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(cliCtx *Context) error {
	m := backup.NewManager(cliCtx.Store.GetConfigPath())
	path, err := m.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(cliCtx *Context) error {
	m := backup.NewManager(cliCtx.Store.GetConfigPath())
	backups, err := m.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Printf("Backups in %s:\n", m.BackupDir())
	for _, b := range backups {
		fmt.Printf("  %s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore from."`
}

func (c *BackupRestoreCmd) Run(cliCtx *Context) error {
	m := backup.NewManager(cliCtx.Store.GetConfigPath())
	if err := m.Restore(c.Path); err != nil {
		return err
	}
	fmt.Println("Store restored.")
	return nil
}
