package file

import (
	"fmt"
	"os"
	"path/filepath"

	"voltraggio/internal/core/domain"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

// ReadAsset returns the content of a static reply file. It reads from disk on
// every call so assets can be swapped while the bot runs.
func ReadAsset(path string) (domain.Asset, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrAssetUnreadable, err)
		log.Error().Err(err).Str("path", path).Send()
		return domain.Asset{}, err
	}

	return domain.Asset{Name: filepath.Base(path), Data: buf}, nil
}

// WriteAtomic replaces path with data through a temp file in the same
// directory, so readers never observe a partial write.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id.String()))

	log.Debug().Int("bytes", len(data)).Str("path", tmpPath).Msg("creating temp file")

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("error creating temp file %w", err)
	}
	defer RemoveTempFile(tmpPath)

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("error writing temp file %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("error syncing temp file %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing temp file %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("error replacing %s %w", path, err)
	}

	// best effort, some filesystems refuse to sync directories
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	log.Debug().Str("path", path).Msg("replaced file")

	return nil
}

// RemoveTempFile removes a leftover temp file. A missing file is not an error.
func RemoveTempFile(path string) {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		log.Warn().Str("path", path).Err(err).Msg("could not clean up temp file")
	}
}
