package downloader

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gosimple/slug"

	"github.com/Ghazanfar1991/youtube-app/internal/services/storage"
	"github.com/Ghazanfar1991/youtube-app/internal/utils"
)

// Archiver copies finished downloads to object storage.
type Archiver struct {
	storage storage.StorageInterface
}

func NewArchiver(s storage.StorageInterface) *Archiver {
	return &Archiver{storage: s}
}

// ArchiveKey is the object key of an artifact:
// youtube/<videoId>/<title>-<selector>.<ext>.
func ArchiveKey(a *Artifact) string {
	title := slug.Make(a.Title)
	if title == "" {
		title = "video"
	}
	selector := slug.Make(a.Selection.Format)
	if selector == "" {
		selector = "default"
	}
	return fmt.Sprintf("youtube/%s/%s-%s.%s", a.VideoID, title, selector, a.Ext)
}

// Archive uploads the artifact unless an object with the same key exists.
// It reads the file through its own handle and leaves the artifact open.
func (ar *Archiver) Archive(ctx context.Context, a *Artifact) (string, error) {
	key := ArchiveKey(a)

	exists, err := ar.storage.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		utils.LogDebug(ctx, "Artifact already archived", utils.Fields{"s3_key": key})
		return key, nil
	}

	file, err := os.Open(a.Path)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to hash artifact: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind artifact: %w", err)
	}

	var strategy string
	if n := len(a.Attempts); n > 0 {
		strategy = string(a.Attempts[n-1].Strategy)
	}
	metadata := map[string]string{
		"video_id":  a.VideoID,
		"file_name": a.FileName,
		"format":    a.Selection.Format,
		"generic":   strconv.FormatBool(a.Selection.Generic),
		"strategy":  strategy,
		"sha256":    fmt.Sprintf("%x", hasher.Sum(nil)),
		"platform":  "youtube",
	}

	if err := ar.storage.UploadWithMetadata(ctx, key, file, a.Size, a.ContentType, metadata); err != nil {
		return "", err
	}

	utils.LogInfo(ctx, "Artifact archived", utils.Fields{
		"s3_key": key,
		"bucket": ar.storage.BucketName(),
		"size":   a.Size,
	})
	return key, nil
}
