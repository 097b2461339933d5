package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLiteBackend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "knowledge_base.db")
	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, path
}

func TestSQLiteBackend_EmptyOnFirstRun(t *testing.T) {
	b, _ := newTestSQLite(t)
	assert.Equal(t, Empty(), b.Load())
}

func TestSQLiteBackend_RoundTripPreservesOrder(t *testing.T) {
	b, path := newTestSQLite(t)

	kb := Empty()
	kb.Append(Record{Question: "zeta", Answer: "last letter"})
	kb.Append(Record{Question: "alpha", Answer: "first letter"})
	kb.Append(Record{Question: "alpha", Answer: "duplicate"})
	require.NoError(t, b.Save(kb))
	assert.Equal(t, kb, b.Load())

	// A fresh handle sees the same data.
	require.NoError(t, b.Close())
	reopened, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, kb, reopened.Load())
}

func TestSQLiteBackend_SaveOverwrites(t *testing.T) {
	b, _ := newTestSQLite(t)

	first := Empty()
	first.Append(Record{Question: "a", Answer: "1"})
	first.Append(Record{Question: "b", Answer: "2"})
	require.NoError(t, b.Save(first))

	second := Empty()
	second.Append(Record{Question: "c", Answer: "3"})
	require.NoError(t, b.Save(second))

	assert.Equal(t, second, b.Load())
}

func TestSQLiteBackend_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.db")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	b, err := NewSQLiteBackend(path)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, Empty(), b.Load())

	// The recreated database is usable.
	kb := Empty()
	kb.Append(Record{Question: "q", Answer: "a"})
	require.NoError(t, b.Save(kb))
	assert.Equal(t, kb, b.Load())
}

func TestNewBackend(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "kb.json")
	sqlitePath := filepath.Join(dir, "kb.db")

	b, err := NewBackend("", jsonPath, sqlitePath)
	require.NoError(t, err)
	assert.Equal(t, "json:"+jsonPath, b.Describe())

	b, err = NewBackend("sqlite", jsonPath, sqlitePath)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "sqlite:"+sqlitePath, b.Describe())

	_, err = NewBackend("chroma", jsonPath, sqlitePath)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
