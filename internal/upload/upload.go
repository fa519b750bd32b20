package upload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Stats tracks upload progress.
type Stats struct {
	FilesTotal    int
	FilesUploaded int
	FilesSkipped  int
	FilesErrored  int

	SessionsImported int
	SessionsSkipped  int
	SessionsRejected int
}

// Uploader walks a directory of exported session archives and POSTs the ones
// not yet uploaded to the liftlog server.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
	stats  Stats
}

// New creates a new Uploader.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run uploads all pending archive files, oldest first.
func (u *Uploader) Run() (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(u.dir, "*.json"))
	if err != nil {
		return &u.stats, fmt.Errorf("scanning %s: %w", u.dir, err)
	}
	sort.Strings(files)

	for _, f := range files {
		u.stats.FilesTotal++

		relPath, _ := filepath.Rel(u.dir, f)
		info, err := os.Stat(f)
		if err != nil {
			u.log.Warn("stat failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			u.log.Warn("hash failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		uploaded, err := u.state.IsUploaded(relPath, info.Size(), hash)
		if err != nil {
			u.log.Warn("state check failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}
		if uploaded {
			u.stats.FilesSkipped++
			continue
		}

		data, err := os.ReadFile(f)
		if err != nil {
			u.log.Warn("read failed", "file", f, "error", err)
			u.stats.FilesErrored++
			continue
		}

		if u.dryRun {
			u.log.Info("dry-run: would upload", "file", relPath, "bytes", len(data))
			continue
		}

		result, err := u.client.SendArchive(data)
		if err != nil {
			u.log.Warn("upload failed", "file", relPath, "error", err)
			u.stats.FilesErrored++
			continue
		}

		u.stats.SessionsImported += result.SessionsImported
		u.stats.SessionsSkipped += result.SessionsSkipped
		u.stats.SessionsRejected += result.SessionsRejected
		for _, msg := range result.Rejected {
			u.log.Warn("server rejected", "file", relPath, "reason", msg)
		}

		if err := u.state.MarkUploaded(relPath, info.Size(), hash); err != nil {
			u.log.Warn("failed to mark uploaded", "file", relPath, "error", err)
		}
		u.stats.FilesUploaded++

		u.log.Info("uploaded archive",
			"file", relPath,
			"sessions", result.SessionsImported,
			"skipped", result.SessionsSkipped,
		)
	}

	return &u.stats, nil
}
