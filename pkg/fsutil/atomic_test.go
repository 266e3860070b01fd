package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdrender/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []byte
		content  []byte
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "new file", content: []byte("rendered\n"), mode: 0o600, wantMode: 0o600},
		{name: "overwrites existing", existing: []byte("old"), content: []byte("new\n"), mode: 0o644, wantMode: 0o644},
		{name: "zero mode uses default", content: []byte("x"), wantMode: fsutil.DefaultFileMode},
		{name: "empty content", content: []byte{}, mode: 0o644, wantMode: 0o644},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "out.txt")
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(path, tt.existing, 0o644))
			}

			require.NoError(t, fsutil.WriteAtomic(context.Background(), path, tt.content, tt.mode))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)

			stat, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, stat.Mode().Perm())

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp file left behind")
		})
	}

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "out.txt")
		require.Error(t, fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0))
	})

	t.Run("canceled context leaves file untouched", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")
		require.NoError(t, os.WriteFile(path, []byte("keep"), 0o644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.ErrorIs(t, fsutil.WriteAtomic(ctx, path, []byte("lost"), 0), context.Canceled)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "keep", string(got))
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		existing    []byte
		content     []byte
		wantWritten bool
	}{
		{name: "missing file", content: []byte("a"), wantWritten: true},
		{name: "different content", existing: []byte("a"), content: []byte("b"), wantWritten: true},
		{name: "identical content", existing: []byte("same\n"), content: []byte("same\n"), wantWritten: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "out.txt")
			if tt.existing != nil {
				require.NoError(t, os.WriteFile(path, tt.existing, 0o644))
			}

			written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, tt.content, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWritten, written)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, got)
		})
	}
}
