// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"

	"github.com/ayeshaa24/mental-maths/internal/operator"
	"github.com/ayeshaa24/mental-maths/internal/profile"
)

// BatchSize is the number of questions in every quiz.
const BatchSize = 10

// Config defines quiz settings after flags and the config file are merged.
type Config struct {
	Selection   profile.Selection
	RevealDelay time.Duration
	MaxAttempts int
	Seed        int64
}

// TimingStatus tracks whether a question has been answered or skipped.
type TimingStatus int

const (
	TimingPending TimingStatus = iota
	TimingAnswered
	TimingSkipped
)

// SkipLabel is shown in place of a time for skipped questions.
const SkipLabel = "SKIP"

// Timing is the per-question elapsed time, or the skip sentinel.
type Timing struct {
	Status  TimingStatus
	Seconds float64
}

// Skipped reports whether the question was skipped.
func (t Timing) Skipped() bool {
	return t.Status == TimingSkipped
}

// Answered reports whether the question was answered.
func (t Timing) Answered() bool {
	return t.Status == TimingAnswered
}

func (t Timing) String() string {
	switch t.Status {
	case TimingSkipped:
		return SkipLabel
	case TimingAnswered:
		return fmt.Sprintf("%.1f sec", t.Seconds)
	default:
		return "-"
	}
}

// Question is one quiz item.
type Question struct {
	First    float64
	Second   float64
	Operator operator.Operator
	Display  string
	Answer   string
	Timing   Timing
}

// Matches reports whether text is exactly the canonical answer.
func (q Question) Matches(text string) bool {
	return text == q.Answer
}
