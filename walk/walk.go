// Package walk implements sequential depth-first traversal of directory
// trees. Every regular file below a root is reported to a caller-supplied
// visitor; paths that cannot be inspected are logged and skipped without
// failing the rest of the traversal.
package walk

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	Stat(name string) (os.FileInfo, error)
}

// VisitFunc is called once for every regular file encountered during a walk,
// with the normalized path of that file. The visitor cannot abort the walk.
type VisitFunc func(path string)

// Handler is the principal implementation for directory tree walks.
type Handler struct {
	osHandler osProvider
}

// NewHandler returns a pointer to a new walk [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
	}
}

// WalkFiles traverses the tree rooted at root in depth-first pre-order and
// calls visit for every regular file it encounters. Directory entries are
// processed in listing order, each directory in full before the next
// sibling. Symbolic links are followed, with files reached through a link
// reported under the link path; anything that is neither a regular file nor
// a directory is skipped. A path that cannot be inspected or listed is
// logged with [slog.Warn] and abandoned together with everything below it,
// WalkFiles itself never fails. The traversal is strictly sequential and
// visit is never called concurrently; cyclic link structures are not
// detected and can keep the walk from terminating.
func (h *Handler) WalkFiles(root string, visit VisitFunc) {
	workList := []string{root}

	for len(workList) > 0 {
		path := workList[len(workList)-1]
		workList = workList[:len(workList)-1]

		children, err := h.walkStep(path, visit)
		if err != nil {
			slog.Warn("Failure for path during walking of directory tree (was skipped)",
				"path", path,
				"err", err,
			)

			continue
		}

		// Pushed in reverse, so children pop off in listing order.
		for i := len(children) - 1; i >= 0; i-- {
			workList = append(workList, children[i])
		}
	}
}

// walkStep inspects a single pending path. For a directory it returns the
// child paths to walk next, for a regular file it invokes the visitor. An
// error abandons only the subtree below path, never the walk itself.
func (h *Handler) walkStep(path string, visit VisitFunc) ([]string, error) {
	info, err := h.osHandler.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("(walk) failed to stat: %w", err)
	}

	switch {
	case info.IsDir():
		entries, err := h.osHandler.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("(walk) failed to readdir: %w", err)
		}

		children := make([]string, 0, len(entries))
		for _, entry := range entries {
			children = append(children, filepath.Join(path, entry.Name()))
		}

		return children, nil

	case info.Mode().IsRegular():
		visit(NormalizePath(path))
	}

	return nil, nil
}

// NormalizePath collapses every run of repeated path separators in path to a
// single separator. Other path oddities, such as trailing separators or
// relative segments, are left as given.
func NormalizePath(path string) string {
	sep := string(filepath.Separator)

	for strings.Contains(path, sep+sep) {
		path = strings.ReplaceAll(path, sep+sep, sep)
	}

	return path
}
