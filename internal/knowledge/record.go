// Package knowledge stores taught question/answer pairs and finds the
// closest known question for a query.
package knowledge

import (
	"encoding/json"
	"maps"
)

// Record is a single taught question/answer pair. The question text is the
// de facto key; nothing enforces uniqueness.
type Record struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`

	// Extra holds stored fields this program does not use. They are written
	// back unchanged by the JSON backend.
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// KnowledgeBase is the ordered collection of records. Insertion order is
// teaching order.
type KnowledgeBase struct {
	Questions []Record `json:"questions" yaml:"questions"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Empty returns a knowledge base with no records. Questions is non-nil so
// it serializes as [] rather than null.
func Empty() *KnowledgeBase {
	return &KnowledgeBase{Questions: []Record{}}
}

// Append adds r to the end of the sequence. Duplicates are kept.
func (kb *KnowledgeBase) Append(r Record) {
	kb.Questions = append(kb.Questions, r)
}

// QuestionTexts returns the question of every record in insertion order.
func (kb *KnowledgeBase) QuestionTexts() []string {
	out := make([]string, len(kb.Questions))
	for i, r := range kb.Questions {
		out[i] = r.Question
	}
	return out
}

func (kb *KnowledgeBase) Len() int {
	return len(kb.Questions)
}

// Clone returns a deep copy.
func (kb *KnowledgeBase) Clone() *KnowledgeBase {
	out := &KnowledgeBase{
		Questions: make([]Record, len(kb.Questions)),
		Extra:     maps.Clone(kb.Extra),
	}
	for i, r := range kb.Questions {
		r.Extra = maps.Clone(r.Extra)
		out.Questions[i] = r
	}
	return out
}
