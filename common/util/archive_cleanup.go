package util

import (
	"context"
	"log/slog"
	"time"
)

const (
	ArchivePrefix        = "arsip-zip/"
	ArchiveRetention     = 24 * time.Hour
	archiveCleanupPeriod = 6 * time.Hour
)

// StartArchiveCleanupJob starts a background job that removes downloaded zip archives
// older than ArchiveRetention. The job stops when ctx is cancelled.
func StartArchiveCleanupJob(ctx context.Context, store BlobStore, bucketName string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in archive cleanup job", "panic", r)
			}
		}()

		slog.Info("Archive cleanup job: Initial run starting")
		CleanupOldArchives(ctx, store, bucketName, time.Now().Add(-ArchiveRetention))

		ticker := time.NewTicker(archiveCleanupPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Archive cleanup job stopped")
				return
			case <-ticker.C:
				slog.Info("Archive cleanup job: Scheduled run starting")
				CleanupOldArchives(ctx, store, bucketName, time.Now().Add(-ArchiveRetention))
			}
		}
	}()

	slog.Info("Archive cleanup job started successfully", "bucket", bucketName, "retention", ArchiveRetention.String())
}

// CleanupOldArchives deletes archives last modified before cutoff and returns how many were removed.
func CleanupOldArchives(ctx context.Context, store BlobStore, bucketName string, cutoff time.Time) int {
	startTime := time.Now()

	names, err := store.ListOlderThan(ctx, bucketName, ArchivePrefix, cutoff)
	if err != nil {
		slog.Error("CleanupOldArchives: List failed", "bucket", bucketName, "error", err)
		return 0
	}

	deleted := 0
	for _, name := range names {
		if err := store.Delete(ctx, bucketName, name); err != nil {
			slog.Warn("CleanupOldArchives: Delete failed", "object", name, "error", err)
			continue
		}
		deleted++
	}

	slog.Info("CleanupOldArchives: Completed", "deleted", deleted, "duration", time.Since(startTime))
	return deleted
}
