package cli

import (
	"context"
	"fmt"

	"github.com/farmily/farmily/internal/common"
)

func (a *App) backupEnabled(ctx context.Context, op string) error {
	if a.backup == nil || !a.backup.Enabled() {
		return a.fail(ctx, op, fmt.Errorf("%w: set FARMILY_BACKUP_BUCKET to enable backups", common.ErrDisabled))
	}
	return nil
}

// Backup uploads the herd to the configured bucket.
func (a *App) Backup(ctx context.Context) error {
	if err := a.backupEnabled(ctx, "backup"); err != nil {
		return err
	}
	key, err := a.backup.Export(ctx)
	if err != nil {
		return a.fail(ctx, "backup", err)
	}
	a.printf("Backup saved as %s\n", key)
	return nil
}

// Restore lists the backups, newest first, and restores the chosen one.
func (a *App) Restore(ctx context.Context) error {
	if err := a.backupEnabled(ctx, "restore"); err != nil {
		return err
	}
	keys, err := a.backup.List(ctx)
	if err != nil {
		return a.fail(ctx, "restore", err)
	}
	if len(keys) == 0 {
		a.println(a.palette().muted.Render("No backups found"))
		return nil
	}

	i, err := GetChoice(a.reader, "Backup to restore", keys, 0, a.out)
	if err != nil {
		return a.fail(ctx, "restore", err)
	}
	n, err := a.backup.Restore(ctx, keys[i])
	if err != nil {
		return a.fail(ctx, "restore", err)
	}
	a.printf("Restored %d records from %s\n", n, keys[i])
	return nil
}
