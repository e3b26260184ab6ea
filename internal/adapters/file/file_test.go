package file

import (
	"os"
	"path/filepath"
	"testing"

	"voltraggio/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAsset(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "fish.gif")
	require.NoError(t, os.WriteFile(existing, []byte("GIF89a"), 0o600))

	tests := []struct {
		name    string
		path    string
		want    domain.Asset
		wantErr bool
	}{
		{
			name: "success",
			path: existing,
			want: domain.Asset{Name: "fish.gif", Data: []byte("GIF89a")},
		},
		{
			name:    "missing file",
			path:    filepath.Join(dir, "nope.gif"),
			wantErr: true,
		},
		{
			name:    "directory",
			path:    dir,
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadAsset(tc.path)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrAssetUnreadable)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadAssetReadsEveryTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.gif")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o600))

	first, err := ReadAsset(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("two"), 0o600))

	second, err := ReadAsset(path)
	require.NoError(t, err)

	assert.Equal(t, []byte("one"), first.Data)
	assert.Equal(t, []byte("two"), second.Data)
}

func TestWriteAtomic(t *testing.T) {
	tests := []struct {
		name     string
		existing []byte
		content  []byte
	}{
		{
			name:    "new file",
			content: []byte("{}\n"),
		},
		{
			name:     "replaces existing",
			existing: []byte("old content that is longer"),
			content:  []byte("new"),
		},
		{
			name:    "empty content",
			content: []byte{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "settings.json")
			if tc.existing != nil {
				require.NoError(t, os.WriteFile(path, tc.existing, 0o600))
			}

			require.NoError(t, WriteAtomic(path, tc.content, 0o600))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.content, got)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file must not be left behind")
		})
	}
}

func TestWriteAtomicMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "settings.json")

	require.Error(t, WriteAtomic(path, []byte("x"), 0o600))
}

func TestRemoveTempFileMissing(t *testing.T) {
	assert.NotPanics(t, func() {
		RemoveTempFile(filepath.Join(t.TempDir(), "ghost"))
	})
}
