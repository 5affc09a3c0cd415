package fsutil_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdmark/pkg/fsutil"
)

// FuzzWriteAtomicFunc writes content in two pieces and expects to read it
// back whole, with no temporary file left beside it.
func FuzzWriteAtomicFunc(f *testing.F) {
	for _, seed := range []string{"", "# heading\n", "a\r\nb\rc\n", "\xef\xbb\xbfbom", "\x00\x01\x02"} {
		f.Add([]byte(seed), uint8(len(seed)/2))
	}

	f.Fuzz(func(t *testing.T, content []byte, split uint8) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tree.json")
		cut := min(int(split), len(content))

		err := fsutil.WriteAtomicFunc(context.Background(), path, fsutil.DefaultFileMode, func(w io.Writer) error {
			if _, err := w.Write(content[:cut]); err != nil {
				return err
			}
			_, err := w.Write(content[cut:])
			return err
		})
		require.NoError(t, err)

		got, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, string(content), string(got))
		assert.Equal(t, fsutil.HashContent(content), info.Hash)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
