package cli

import (
	"context"
	"errors"
	"fmt"
)

var errSnapshotsDisabled = errors.New("snapshots not available")

func (a *App) snapshotService() (SnapshotService, error) {
	if a.snapshots == nil {
		fmt.Fprintln(a.out, "Backups are only available with a local store and a configured bucket")
		return nil, errSnapshotsDisabled
	}
	return a.snapshots, nil
}

// Backup uploads every stored account to the snapshot bucket.
func (a *App) Backup(ctx context.Context) error {
	s, err := a.snapshotService()
	if err != nil {
		return err
	}

	key, n, err := s.Backup(ctx)
	if err != nil {
		a.logger.Error(ctx, "backup failed", "error", err)
		fmt.Fprintln(a.out, "Backup failed")
		return err
	}

	fmt.Fprintf(a.out, "Saved %d users to %s\n", n, key)
	return nil
}

// Restore merges a snapshot into the store. Without a key the newest
// snapshot is used.
func (a *App) Restore(ctx context.Context, key string) error {
	s, err := a.snapshotService()
	if err != nil {
		return err
	}

	if key == "" {
		list, err := s.List(ctx)
		if err != nil {
			a.logger.Error(ctx, "list snapshots failed", "error", err)
			fmt.Fprintln(a.out, "Could not list backups")
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(a.out, "No backups found")
			return nil
		}
		key = list[0].Key
		fmt.Fprintf(a.out, "Using newest backup %s\n", key)
	}

	restored, skipped, err := s.Restore(ctx, key)
	if err != nil {
		a.logger.Error(ctx, "restore failed", "key", key, "error", err)
		fmt.Fprintln(a.out, "Restore failed")
		return err
	}

	fmt.Fprintf(a.out, "Restored %d users, skipped %d existing\n", restored, skipped)
	return nil
}
