package downloader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// workspace is the private temporary directory of one download request.
type workspace struct {
	dir string
}

func newWorkspace(base string) (*workspace, error) {
	if base != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare temp dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(base, "ytdl-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &workspace{dir: dir}, nil
}

func (w *workspace) attemptDir(n int) (string, error) {
	dir := filepath.Join(w.dir, "attempt-"+strconv.Itoa(n))
	if err := os.Mkdir(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create attempt dir: %w", err)
	}
	return dir, nil
}

func (w *workspace) remove() error {
	return os.RemoveAll(w.dir)
}

// findOutput locates the finished media file of an attempt, preferring the
// requested extension. Partial and fragment files are skipped.
func findOutput(dir, ext string) (string, error) {
	var preferred, fallback string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := d.Name()
		if isPartial(name) {
			return nil
		}
		switch {
		case strings.EqualFold(filepath.Ext(name), "."+ext):
			if preferred == "" {
				preferred = path
			}
		case fallback == "":
			fallback = path
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if preferred != "" {
		return preferred, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("no output file in %s", dir)
}

func isPartial(name string) bool {
	for _, suffix := range []string{".part", ".ytdl", ".temp", ".tmp"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return strings.Contains(name, ".part-Frag")
}
