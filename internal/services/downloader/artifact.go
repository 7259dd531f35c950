package downloader

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Ghazanfar1991/youtube-app/internal/services/formats"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// Artifact is a finished download. Reading it streams the file; closing it
// removes the whole request workspace.
type Artifact struct {
	VideoID     string
	Title       string
	FileName    string
	Ext         string
	ContentType string
	Path        string
	Size        int64
	ModTime     time.Time
	Selection   formats.Selection
	Attempts    []Attempt

	file      *os.File
	workspace *workspace
	closeOnce sync.Once
	closeErr  error
}

func newArtifact(path string, ws *workspace, title string) (*Artifact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	return &Artifact{
		Title:       title,
		FileName:    title + "." + ext,
		Ext:         ext,
		ContentType: utils.ContentTypeForExtension(ext),
		Path:        path,
		Size:        stat.Size(),
		ModTime:     stat.ModTime(),
		file:        file,
		workspace:   ws,
	}, nil
}

func (a *Artifact) Read(p []byte) (int, error) {
	return a.file.Read(p)
}

func (a *Artifact) Seek(offset int64, whence int) (int64, error) {
	return a.file.Seek(offset, whence)
}

// Close releases the file and deletes the workspace. It is safe to call
// more than once.
func (a *Artifact) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.file.Close()
		if err := a.workspace.remove(); err != nil && a.closeErr == nil {
			a.closeErr = err
		}
	})
	return a.closeErr
}
