package knowledge

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBackend struct {
	kb    *KnowledgeBase
	err   error
	saves int
}

func (f *failingBackend) Load() *KnowledgeBase         { return f.kb.Clone() }
func (f *failingBackend) Save(kb *KnowledgeBase) error { f.saves++; return f.err }
func (f *failingBackend) Describe() string             { return "failing" }
func (f *failingBackend) Close() error                 { return nil }

func TestBrain_TeachThenLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	backend := NewJSONBackend(path)
	brain := NewBrain(backend)

	_, _, ok := brain.Lookup("foo?")
	assert.False(t, ok)

	require.NoError(t, brain.Teach("foo?", "bar"))

	question, answer, ok := brain.Lookup("foo?")
	require.True(t, ok)
	assert.Equal(t, "foo?", question)
	assert.Equal(t, "bar", answer)

	assert.Equal(t, []Record{{Question: "foo?", Answer: "bar"}}, backend.Load().Questions)
}

func TestBrain_TeachKeepsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	backend := NewJSONBackend(path)
	brain := NewBrain(backend)

	require.NoError(t, brain.Teach("hi", "first"))
	require.NoError(t, brain.Teach("hi", "second"))

	stored := backend.Load()
	assert.Equal(t, 2, stored.Len())
	assert.Equal(t, Stats{Records: 2, Questions: 1}, brain.Stats())

	_, answer, ok := brain.Lookup("hi")
	require.True(t, ok)
	assert.Equal(t, "first", answer)
}

func TestBrain_TeachSaveFailureRollsBack(t *testing.T) {
	backend := &failingBackend{kb: Empty(), err: errors.New("disk full")}
	brain := NewBrain(backend)

	err := brain.Teach("q", "a")
	require.Error(t, err)
	assert.Equal(t, 1, backend.saves)
	assert.Equal(t, 0, brain.Snapshot().Len())

	_, _, ok := brain.Lookup("q")
	assert.False(t, ok)
}

func TestBrain_SnapshotIsCopy(t *testing.T) {
	brain := NewBrain(&failingBackend{kb: Empty()})
	require.NoError(t, brain.Teach("q", "a"))

	snap := brain.Snapshot()
	snap.Questions[0].Answer = "changed"
	snap.Append(Record{Question: "extra"})

	_, answer, ok := brain.Lookup("q")
	require.True(t, ok)
	assert.Equal(t, "a", answer)
	assert.Equal(t, 1, brain.Snapshot().Len())
}

func TestBrain_ConcurrentTeach(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	backend := NewJSONBackend(path)
	brain := NewBrain(backend)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, brain.Teach("q", "a"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, backend.Load().Len())
}
