// Package session drives one user's ask/answer/teach cycle against a shared
// knowledge base.
package session

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/srclos-net/learnbot/internal/knowledge"
)

const (
	TeachPrompt       = "I don't know the answer. Can you teach me?"
	LearnedAck        = "Thank you! I learned a new response."
	SkippedAck        = "Okay, skipping that one."
	TeachFailedPrefix = "Sorry, I couldn't save that: "
)

type State int

const (
	// Idle means no question is waiting for an answer.
	Idle State = iota
	// AwaitingTeach means the last question was unknown and the next
	// Teach call supplies its answer.
	AwaitingTeach
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingTeach:
		return "awaiting_teach"
	default:
		return "unknown"
	}
}

type ReplyKind int

const (
	// ReplyIgnored means the submission was blank (or there was nothing to
	// teach) and nothing changed.
	ReplyIgnored ReplyKind = iota
	ReplyAnswer
	ReplyTeachPrompt
	ReplyLearned
	ReplySkipped
	ReplyError
)

// Reply is what the bot says back for one submission.
type Reply struct {
	Kind ReplyKind
	Text string
	// Matched is the known question that produced an answer.
	Matched string
}

// Session holds the per-user pending question. The knowledge base itself
// lives in the Brain and may be shared by many sessions.
type Session struct {
	id      string
	brain   *knowledge.Brain
	pending string
	log     *logrus.Entry
}

func New(brain *knowledge.Brain) *Session {
	id := uuid.NewString()
	return &Session{
		id:    id,
		brain: brain,
		log:   logrus.WithField("session", id),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	if s.pending != "" {
		return AwaitingTeach
	}
	return Idle
}

// Pending returns the question awaiting an answer, or "" when idle.
func (s *Session) Pending() string { return s.pending }

// Ask looks up query. A blank query is ignored. Asking while a question is
// pending replaces it.
func (s *Session) Ask(query string) Reply {
	if strings.TrimSpace(query) == "" {
		return Reply{Kind: ReplyIgnored}
	}

	question, answer, ok := s.brain.Lookup(query)
	if ok {
		s.log.WithFields(logrus.Fields{"query": query, "matched": question}).Debug("answered")
		s.pending = ""
		return Reply{Kind: ReplyAnswer, Text: answer, Matched: question}
	}

	s.log.WithField("query", query).Debug("no match, awaiting teach")
	s.pending = query
	return Reply{Kind: ReplyTeachPrompt, Text: TeachPrompt}
}

// Teach records answer for the pending question and persists it before
// acknowledging. A blank answer skips the pending question. If persisting
// fails the pending question is kept so the user can try again.
func (s *Session) Teach(answer string) (Reply, error) {
	if s.pending == "" {
		return Reply{Kind: ReplyIgnored}, nil
	}
	if strings.TrimSpace(answer) == "" {
		s.log.WithField("question", s.pending).Debug("teach skipped")
		s.pending = ""
		return Reply{Kind: ReplySkipped, Text: SkippedAck}, nil
	}

	if err := s.brain.Teach(s.pending, answer); err != nil {
		s.log.WithError(err).WithField("question", s.pending).Error("teach failed")
		return Reply{Kind: ReplyError, Text: TeachFailedPrefix + err.Error()}, err
	}
	s.log.WithField("question", s.pending).Debug("taught")
	s.pending = ""
	return Reply{Kind: ReplyLearned, Text: LearnedAck}, nil
}

// Submit routes input to Teach while a question is pending and to Ask
// otherwise, mirroring a single input box.
func (s *Session) Submit(input string) (Reply, error) {
	if s.State() == AwaitingTeach {
		return s.Teach(input)
	}
	return s.Ask(input), nil
}
