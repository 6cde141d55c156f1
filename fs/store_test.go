package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "precedent/서울행법_2020구합1234.md"

func TestFileStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("stages documents until commit", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		store := fs.NewFileStore(base, "output")

		require.NoError(t, store.Save(context.Background(), sampleDocument()))

		assert.FileExists(t, filepath.Join(base, "output.tmp", samplePath))
		assert.NoDirExists(t, filepath.Join(base, "output"))
	})

	t.Run("rejects two documents with the same file", func(t *testing.T) {
		t.Parallel()

		store := fs.NewFileStore(t.TempDir(), "output")
		require.NoError(t, store.Save(context.Background(), sampleDocument()))

		clash := sampleDocument()
		clash.DocNumber = "서울행법/2020구합1234"
		err := store.Save(context.Background(), clash)

		assert.Equal(t, taxdoc.ECONFLICT, taxdoc.ErrorCode(err))
		assert.Len(t, store.Index(), 1)
	})

	t.Run("honors cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := fs.NewFileStore(t.TempDir(), "output").Save(ctx, sampleDocument())

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		store := fs.NewFileStore(t.TempDir(), "output")
		var wg sync.WaitGroup
		for _, n := range []string{"2020두1", "2020두2", "2020두3", "2020두4"} {
			wg.Go(func() {
				doc := sampleDocument()
				doc.DocNumber = n
				assert.NoError(t, store.Save(context.Background(), doc))
			})
		}
		wg.Wait()

		index := store.Index()
		require.Len(t, index, 4)
		assert.Equal(t, "precedent/2020두1.md", index[0].Path)
	})
}

func TestFileStore_Commit(t *testing.T) {
	t.Parallel()

	t.Run("replaces the output directory and writes the index", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		stale := filepath.Join(base, "output", "stale.md")
		require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0755))
		require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

		store := fs.NewFileStore(base, "output")
		require.NoError(t, store.Save(context.Background(), sampleDocument()))
		require.NoError(t, store.Commit())

		out := filepath.Join(base, "output")
		assert.FileExists(t, filepath.Join(out, samplePath))
		assert.NoFileExists(t, stale)
		assert.NoDirExists(t, filepath.Join(base, "output.tmp"))

		index, err := fs.ReadIndex(out)
		require.NoError(t, err)
		assert.Equal(t, []fs.IndexEntry{{
			Path:        samplePath,
			DocNumber:   "서울행법 2020구합1234",
			Type:        "precedent",
			Structure:   "table-only",
			ContentHash: "0011223344556677",
		}}, index)
	})

	t.Run("empty batch commits an empty index", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		require.NoError(t, fs.NewFileStore(base, "output").Commit())

		index, err := fs.ReadIndex(filepath.Join(base, "output"))
		require.NoError(t, err)
		assert.Empty(t, index)
	})
}

func TestFileStore_Abort(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	store := fs.NewFileStore(base, "output")
	require.NoError(t, store.Save(context.Background(), sampleDocument()))

	require.NoError(t, store.Abort())

	assert.NoDirExists(t, filepath.Join(base, "output.tmp"))
	assert.Empty(t, store.Index())
}

func TestReadIndex(t *testing.T) {
	t.Parallel()

	t.Run("missing index is not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.ReadIndex(t.TempDir())
		assert.Equal(t, taxdoc.ENOTFOUND, taxdoc.ErrorCode(err))
	})

	t.Run("malformed index is invalid", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, fs.IndexFile), []byte("documents: [\n"), 0644))

		_, err := fs.ReadIndex(dir)
		assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
	})
}
