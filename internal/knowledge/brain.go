package knowledge

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Brain is the knowledge base shared by every session. It is loaded once
// and all reads and writes go through a single lock, so the
// load-fully/mutate/overwrite-fully contract holds across sessions.
type Brain struct {
	mu      sync.Mutex
	backend Backend
	kb      *KnowledgeBase
}

// Stats summarizes the knowledge base.
type Stats struct {
	Records   int
	Questions int // distinct question texts
}

func NewBrain(backend Backend) *Brain {
	kb := backend.Load()
	logrus.WithFields(logrus.Fields{
		"backend": backend.Describe(),
		"records": kb.Len(),
	}).Info("knowledge base loaded")
	return &Brain{backend: backend, kb: kb}
}

// Lookup finds the closest known question to query and returns it with its
// answer.
func (b *Brain) Lookup(query string) (question, answer string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	question, ok = FindBestMatch(query, b.kb.QuestionTexts())
	if !ok {
		return "", "", false
	}
	answer, ok = GetAnswer(question, b.kb)
	if !ok {
		return "", "", false
	}
	return question, answer, true
}

// Teach appends the pair and persists the whole knowledge base. If the save
// fails the append is undone and the error returned.
func (b *Brain) Teach(question, answer string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(b.kb.Questions)
	b.kb.Append(Record{Question: question, Answer: answer})
	if err := b.backend.Save(b.kb); err != nil {
		b.kb.Questions = b.kb.Questions[:n]
		return err
	}
	logrus.WithFields(logrus.Fields{
		"backend": b.backend.Describe(),
		"records": b.kb.Len(),
	}).Info("learned new response")
	return nil
}

// Snapshot returns a copy of the current knowledge base.
func (b *Brain) Snapshot() *KnowledgeBase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.kb.Clone()
}

func (b *Brain) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]struct{}, b.kb.Len())
	for _, r := range b.kb.Questions {
		seen[r.Question] = struct{}{}
	}
	return Stats{Records: b.kb.Len(), Questions: len(seen)}
}
