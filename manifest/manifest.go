// Package manifest builds file manifests of directory trees. A build runs in
// two stages: a scan discovers every regular file below a root, an index
// pass then records per-file facts (and optional BLAKE3 checksums) for the
// discovered paths. Files that fail or disappear between the stages are
// logged and skipped rather than failing the build.
package manifest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/briarfell/jotter/internal/queue"
	"github.com/briarfell/jotter/walk"
	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

type walkProvider interface {
	WalkFiles(root string, visit walk.VisitFunc)
}

type osProvider interface {
	Open(name string) (*os.File, error)
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Statfs(path string, buf *unix.Statfs_t) error
}

// Entry describes a single regular file recorded in a [Manifest].
type Entry struct {
	Path     string    `json:"path"               yaml:"path"`
	Size     uint64    `json:"size"               yaml:"size"`
	Mode     string    `json:"mode"               yaml:"mode"`
	ModTime  time.Time `json:"modTime"            yaml:"modTime"`
	Checksum string    `json:"checksum,omitempty" yaml:"checksum,omitempty"`
}

// Manifest is the result of scanning and indexing a directory tree.
type Manifest struct {
	Root        string     `json:"root"               yaml:"root"`
	GeneratedAt time.Time  `json:"generatedAt"        yaml:"generatedAt"`
	FileCount   int        `json:"fileCount"          yaml:"fileCount"`
	TotalSize   uint64     `json:"totalSize"          yaml:"totalSize"`
	Capacity    *DiskStats `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Entries     []Entry    `json:"entries"            yaml:"entries"`
}

// DiskStats holds capacity information for the filesystem below a root.
type DiskStats struct {
	TotalSize uint64 `json:"totalSize" yaml:"totalSize"`
	FreeSpace uint64 `json:"freeSpace" yaml:"freeSpace"`
}

// Status is a point-in-time snapshot of a build in flight, for display
// purposes.
type Status struct {
	ScanActive   bool
	ScanComplete bool
	Discovered   int
	BytesIndexed uint64
	Indexing     queue.Progress
}

// Builder is the principal implementation for manifest builds.
type Builder struct {
	walkHandler walkProvider
	osHandler   osProvider
	unixHandler unixProvider

	withChecksums bool

	pathQueue    *queue.Queue[string]
	scanActive   atomic.Bool
	scanComplete atomic.Bool
	bytesIndexed atomic.Uint64
}

// NewBuilder returns a pointer to a new manifest [Builder]. With
// withChecksums enabled, every indexed file is additionally hashed.
func NewBuilder(walkHandler walkProvider, osHandler osProvider, unixHandler unixProvider, withChecksums bool) *Builder {
	return &Builder{
		walkHandler:   walkHandler,
		osHandler:     osHandler,
		unixHandler:   unixHandler,
		withChecksums: withChecksums,
		pathQueue:     queue.NewQueue[string](),
	}
}

// Scan walks the tree below root and queues every regular file for later
// indexing, returning the number of queued paths. The walk itself always
// runs to completion; a cancelled context only stops further discovered
// paths from being queued.
func (b *Builder) Scan(ctx context.Context, root string) int {
	b.scanActive.Store(true)
	defer func() {
		b.scanActive.Store(false)
		b.scanComplete.Store(true)
	}()

	found := 0
	b.walkHandler.WalkFiles(root, func(path string) {
		if ctx.Err() != nil {
			return
		}

		b.pathQueue.Enqueue(path)
		found++
	})

	return found
}

// Index drains the queue of scanned paths sequentially, recording an
// [Entry] per path. Paths that fail to index are logged and skipped. An
// error is only returned for context cancellation.
func (b *Builder) Index(ctx context.Context) ([]Entry, error) {
	entries := []Entry{}

	err := b.pathQueue.DequeueAndProcess(ctx, func(path string) int {
		entry, err := b.indexFile(ctx, path)
		if err != nil {
			slog.Warn("Skipped file: failure during indexing",
				"path", path,
				"err", err,
			)

			return queue.DecisionSkipped
		}

		entries = append(entries, entry)
		b.bytesIndexed.Add(entry.Size)

		return queue.DecisionSuccess
	})
	if err != nil {
		return nil, fmt.Errorf("(manifest) %w", err)
	}

	return entries, nil
}

func (b *Builder) indexFile(ctx context.Context, path string) (Entry, error) {
	info, err := b.osHandler.Stat(path)
	if err != nil {
		return Entry{}, fmt.Errorf("(manifest) failed to stat: %w", err)
	}

	if !info.Mode().IsRegular() {
		return Entry{}, fmt.Errorf("(manifest) %w: %s", ErrNotRegularFile, path)
	}

	entry := Entry{
		Path:    path,
		Size:    handleSize(info.Size()),
		Mode:    info.Mode().Perm().String(),
		ModTime: info.ModTime(),
	}

	if b.withChecksums {
		checksum, err := b.checksumFile(ctx, path)
		if err != nil {
			return Entry{}, fmt.Errorf("(manifest) failed to checksum: %w", err)
		}
		entry.Checksum = checksum
	}

	return entry, nil
}

// Build runs a full scan and index pass over root and assembles the
// resulting [Manifest].
func (b *Builder) Build(ctx context.Context, root string) (*Manifest, error) {
	root = walk.NormalizePath(root)

	found := b.Scan(ctx, root)
	slog.Info("Scan complete:", "root", root, "files", found)

	if ctx.Err() != nil {
		return nil, fmt.Errorf("(manifest) %w", ctx.Err())
	}

	entries, err := b.Index(ctx)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		Root:        root,
		GeneratedAt: time.Now(),
		FileCount:   len(entries),
		TotalSize:   totalSize(entries),
		Entries:     entries,
	}

	if stats, err := b.DiskUsage(root); err != nil {
		slog.Warn("Could not establish disk usage for root",
			"root", root,
			"err", err,
		)
	} else {
		manifest.Capacity = &stats
	}

	slog.Info("Manifest complete:",
		"root", root,
		"files", manifest.FileCount,
		"totalSize", humanize.Bytes(manifest.TotalSize),
	)

	return manifest, nil
}

// Status reports the current stage states of a build in flight.
func (b *Builder) Status() Status {
	indexing := b.pathQueue.Progress()

	return Status{
		ScanActive:   b.scanActive.Load(),
		ScanComplete: b.scanComplete.Load(),
		Discovered:   indexing.TotalItems,
		BytesIndexed: b.bytesIndexed.Load(),
		Indexing:     indexing,
	}
}

// DiskUsage probes the filesystem holding path for its capacity
// information.
func (b *Builder) DiskUsage(path string) (DiskStats, error) {
	var stat unix.Statfs_t
	if err := b.unixHandler.Statfs(path, &stat); err != nil {
		return DiskStats{}, fmt.Errorf("(manifest-diskstats) failed to statfs: %w", err)
	}

	return DiskStats{
		TotalSize: stat.Blocks * handleSize(stat.Bsize),
		FreeSpace: stat.Bavail * handleSize(stat.Bsize),
	}, nil
}

func totalSize(entries []Entry) uint64 {
	var total uint64
	for _, entry := range entries {
		total += entry.Size
	}

	return total
}

func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
