// Package session drives a quiz question by question.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ayeshaa24/mental-maths/internal/model"
	"github.com/ayeshaa24/mental-maths/internal/profile"
)

var (
	// ErrSessionComplete is returned for transitions after the last question.
	ErrSessionComplete = errors.New("session already complete")
	// ErrSessionClosed is returned for transitions after Close.
	ErrSessionClosed = errors.New("session closed")
	// ErrBatchSize is returned when a batch does not hold model.BatchSize questions.
	ErrBatchSize = errors.New("unexpected question count")
)

// Generator produces question batches for a selection.
type Generator interface {
	Generate(sel profile.Selection) ([]model.Question, error)
}

// Session owns one quiz run. It is not safe for concurrent use.
type Session struct {
	id        string
	selection profile.Selection
	questions []model.Question
	progress  int

	startedAt     time.Time
	endedAt       time.Time
	questionStart time.Time
	capturedAt    time.Time
	awaiting      bool
	closed        bool

	now     func() time.Time
	log     zerolog.Logger
	baseLog zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, mainly for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger attaches a logger for lifecycle events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New wraps a generated batch. The session and first question start now.
// Timings on the incoming questions are cleared.
func New(questions []model.Question, sel profile.Selection, opts ...Option) (*Session, error) {
	if len(questions) != model.BatchSize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrBatchSize, len(questions), model.BatchSize)
	}
	s := &Session{
		id:        uuid.NewString(),
		selection: sel,
		questions: make([]model.Question, len(questions)),
		now:       time.Now,
		log:       zerolog.Nop(),
	}
	copy(s.questions, questions)
	for i := range s.questions {
		s.questions[i].Timing = model.Timing{}
	}
	for _, opt := range opts {
		opt(s)
	}
	s.baseLog = s.log
	s.log = s.log.With().Str("session_id", s.id).Logger()
	s.startedAt = s.now()
	s.questionStart = s.startedAt
	s.log.Info().Str("selection", sel.String()).Msg("session started")
	return s, nil
}

// Start generates a batch for sel and wraps it in a new session.
func Start(gen Generator, sel profile.Selection, opts ...Option) (*Session, error) {
	questions, err := gen.Generate(sel)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	return New(questions, sel, opts...)
}

// Restart closes s and starts a fresh session with the same selection.
func (s *Session) Restart(gen Generator) (*Session, error) {
	s.Close()
	next, err := Start(gen, s.selection, WithClock(s.now), WithLogger(s.baseLog))
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("next_session_id", next.id).Msg("session restarted")
	return next, nil
}

// Submit compares text against the current answer. On an exact match the
// elapsed time is captured immediately and the question waits for Reveal;
// later submissions for the same question report false.
func (s *Session) Submit(text string) (bool, error) {
	if err := s.checkActive(); err != nil {
		return false, err
	}
	if s.awaiting {
		return false, nil
	}
	if !s.questions[s.progress].Matches(text) {
		return false, nil
	}
	s.capture(false)
	s.awaiting = true
	return true, nil
}

// Advance records the current question's timing if it has not been captured
// yet, either the skip sentinel or the elapsed time, and moves to the next
// question. After the last question the session completes.
func (s *Session) Advance(skip bool) error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if s.questions[s.progress].Timing.Status == model.TimingPending {
		s.capture(skip)
	}
	if s.capturedAt.IsZero() {
		s.capturedAt = s.now()
	}
	s.awaiting = false
	s.progress++
	if s.progress == len(s.questions) {
		s.endedAt = s.capturedAt
		s.log.Info().
			Dur("total", s.endedAt.Sub(s.startedAt)).
			Int("skipped", s.countSkipped()).
			Msg("session complete")
		return nil
	}
	s.questionStart = s.now()
	return nil
}

// Skip records the skip sentinel and advances without delay.
func (s *Session) Skip() error {
	if err := s.checkActive(); err != nil {
		return err
	}
	s.log.Debug().Int("progress", s.progress).Msg("question skipped")
	return s.Advance(true)
}

// Reveal shows the next question after a matched answer.
func (s *Session) Reveal() error {
	if err := s.checkActive(); err != nil {
		return err
	}
	if !s.awaiting {
		return fmt.Errorf("no answer awaiting reveal at question %d", s.progress)
	}
	return s.Advance(false)
}

// Close tears the session down; later transitions fail with ErrSessionClosed.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if !s.Complete() {
		s.log.Info().Int("progress", s.progress).Msg("session abandoned")
	}
}

func (s *Session) capture(skip bool) {
	now := s.now()
	q := &s.questions[s.progress]
	if skip {
		q.Timing = model.Timing{Status: model.TimingSkipped}
	} else {
		q.Timing = model.Timing{Status: model.TimingAnswered, Seconds: now.Sub(s.questionStart).Seconds()}
	}
	s.capturedAt = now
}

func (s *Session) checkActive() error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.Complete() {
		return ErrSessionComplete
	}
	return nil
}

func (s *Session) countSkipped() int {
	n := 0
	for _, q := range s.questions {
		if q.Timing.Skipped() {
			n++
		}
	}
	return n
}

// ID returns the unique session id.
func (s *Session) ID() string {
	return s.id
}

// Selection returns the selection the batch was generated from.
func (s *Session) Selection() profile.Selection {
	return s.selection
}

// Current returns the displayed question; ok is false once complete.
func (s *Session) Current() (model.Question, bool) {
	if s.Complete() {
		return model.Question{}, false
	}
	return s.questions[s.progress], true
}

// Progress returns the 0-based index of the current question.
func (s *Session) Progress() int {
	return s.progress
}

// Fraction returns progress as a fraction of the batch.
func (s *Session) Fraction() float64 {
	return float64(s.progress) / float64(len(s.questions))
}

// Complete reports whether every question has been answered or skipped.
func (s *Session) Complete() bool {
	return s.progress >= len(s.questions)
}

// Closed reports whether the session was torn down.
func (s *Session) Closed() bool {
	return s.closed
}

// AwaitingReveal reports whether the current question was matched and is
// waiting for the next one to be shown.
func (s *Session) AwaitingReveal() bool {
	return s.awaiting
}

// Questions returns a copy of the batch.
func (s *Session) Questions() []model.Question {
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// EndedAt returns when the last question was answered or skipped; zero until complete.
func (s *Session) EndedAt() time.Time {
	return s.endedAt
}
