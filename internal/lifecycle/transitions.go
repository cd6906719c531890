package lifecycle

import (
	"context"
	"strconv"
	"strings"
	"time"

	"examctl/internal/answers"
	"examctl/internal/apiclient"
	"examctl/internal/exam"
	"examctl/internal/timing"
)

// load fetches the exam, its status and the answer-key preview. Exam and
// status failures are fatal; a missing preview degrades to the fallback total.
func (c *Controller) load(ctx context.Context) {
	c.view = ViewLoading
	c.fatalErr = ""
	c.publish()

	e, err := c.api.GetExam(ctx, c.id)
	if err != nil {
		c.fail("load exam", err)
		return
	}
	report, err := c.api.GetStatus(ctx, c.id)
	if err != nil {
		c.fail("load status", err)
		return
	}

	c.exam = e
	c.status = e.Status
	if exam.Advances(c.status, report.Status) {
		c.status = report.Status
		c.exam.Status = report.Status
	}
	if report.StartTime != nil {
		start := *report.StartTime
		c.exam.StartTime = &start
	}

	var preview *exam.Preview
	if p, err := c.api.AnswerKeyPreview(ctx, c.id); err != nil {
		c.log.Warn().Err(err).Msg("answer key preview unavailable")
	} else {
		preview = &p
	}
	c.total, c.totalSource = answers.ResolveTotal(preview, c.fallbackTotal)
	if c.totalSource == answers.FromFallback {
		c.log.Warn().Int("total", c.total).Msg("question count unknown, using fallback")
	}

	c.answers = answers.NewSet(c.total)
	c.restoreAnswers(e.Answers)
	c.gate = answers.NewGate(c.exam.Mode == exam.ModeStopwatch)
	c.log.Info().
		Str("mode", string(c.exam.Mode)).
		Str("status", string(c.status)).
		Int("total", c.total).
		Str("total_source", string(c.totalSource)).
		Msg("exam loaded")
	c.enter()
}

// restoreAnswers loads the answers the server already holds. An inferred
// question count grows to cover them; an explicit one rejects the overflow.
func (c *Controller) restoreAnswers(held exam.Answers) {
	if c.totalSource != answers.FromServer {
		highest := 0
		for q, option := range held {
			if n, ok := questionNumber(q); ok && strings.TrimSpace(option) != "" {
				highest = max(highest, n)
			}
		}
		if highest > c.total {
			c.log.Warn().
				Int("total", c.total).
				Int("highest_answer", highest).
				Str("total_source", string(c.totalSource)).
				Msg("growing question count to cover saved answers")
			c.total = highest
			c.answers.SetTotal(highest)
		}
	}
	for q, option := range held {
		if strings.TrimSpace(option) == "" {
			continue
		}
		n, ok := questionNumber(q)
		if !ok {
			c.log.Warn().Str("question", q).Msg("dropping saved answer with invalid question number")
			continue
		}
		if _, err := c.answers.Select(n, option); err != nil {
			c.log.Warn().Err(err).Str("question", q).Str("option", option).Msg("dropping saved answer")
		}
	}
}

func (c *Controller) fail(op string, err error) {
	c.log.Error().Err(err).Str("op", op).Msg("load failed")
	c.view = ViewError
	c.fatalErr = apiclient.Message(err)
	c.stopTasks()
}

// enter sets the view for the current status and manages scheduled tasks.
func (c *Controller) enter() {
	switch c.status {
	case exam.StatusPending:
		c.view = ViewStart
		c.stopTasks()
	case exam.StatusActive:
		c.view = ViewActive
		c.rebuildTimers()
		if c.poll == nil {
			c.startTasks()
		}
	default:
		c.stopTasks()
		c.gate.Cancel()
		if c.result != nil {
			c.view = ViewResult
		} else {
			c.view = ViewFinished
		}
	}
}

// rebuildTimers projects timing from the server's start instant. A countdown
// already at zero is submitted on the next tick.
func (c *Controller) rebuildTimers() {
	now := c.clock.Now()
	switch c.exam.Mode {
	case exam.ModeTimer:
		c.countdown = timing.NewCountdown(c.exam.AllowedDuration(), c.exam.StartTime)
		c.countdown.Tick(now)
	default:
		c.stopwatch = timing.NewStopwatch(c.exam.StartTime)
		c.stopwatch.Tick(now)
	}
}

// advance moves the local status one legal step.
func (c *Controller) advance(next exam.Status) bool {
	if err := exam.CheckTransition(c.status, next); err != nil {
		c.log.Warn().Err(err).Msg("ignoring transition")
		return false
	}
	c.log.Info().Str("from", string(c.status)).Str("to", string(next)).Msg("status changed")
	c.status = next
	c.exam.Status = next
	c.enter()
	return true
}

func (c *Controller) start(ctx context.Context) {
	if c.status != exam.StatusPending {
		c.inlineErr = "exam has already been started"
		return
	}
	c.starting = true
	c.inlineErr = ""
	c.publish()

	started, err := c.api.StartExam(ctx, c.id)
	c.starting = false
	if err != nil {
		c.log.Warn().Err(err).Msg("start failed")
		c.inlineErr = apiclient.Message(err)
		return
	}
	c.exam = started
	c.refresh(ctx)
	c.advance(exam.StatusActive)
}

// refresh re-reads the exam and status after a write. The start response is
// kept when the re-read fails.
func (c *Controller) refresh(ctx context.Context) {
	e, err := c.api.GetExam(ctx, c.id)
	if err != nil {
		c.log.Warn().Err(err).Msg("refresh exam failed")
		return
	}
	e.Status = c.exam.Status
	c.exam = e
	report, err := c.api.GetStatus(ctx, c.id)
	if err != nil {
		c.log.Warn().Err(err).Msg("refresh status failed")
		return
	}
	if report.StartTime != nil {
		start := *report.StartTime
		c.exam.StartTime = &start
	}
}

// submit sends a confirmed manual submission.
func (c *Controller) submit(ctx context.Context) {
	if c.status != exam.StatusActive {
		c.inlineErr = c.notActiveMessage()
		return
	}
	c.submitting = true
	c.inlineErr = ""
	c.publish()

	answered := c.answers.Snapshot()
	result, err := c.api.SubmitAnswers(ctx, c.id, answered)
	c.submitting = false
	if err != nil {
		c.log.Warn().Err(err).Msg("submit failed")
		c.inlineErr = apiclient.Message(err)
		return
	}
	c.log.Info().Int("answered", answers.AnsweredCount(answered)).Float64("score", result.Score).Msg("answers submitted")
	c.result = &result
	c.advance(exam.StatusCompleted)
}

// autoSubmit submits the current answers once when time runs out. The local
// status becomes expired whether or not the submission succeeds.
func (c *Controller) autoSubmit(ctx context.Context, trigger string) {
	if c.autoSubmitted || c.status != exam.StatusActive {
		return
	}
	c.autoSubmitted = true
	c.stopTasks()
	c.gate.Cancel()
	c.submitting = true
	c.publish()

	answered := c.answers.Snapshot()
	log := c.log.With().Str("trigger", trigger).Int("answered", answers.AnsweredCount(answered)).Logger()
	if len(answered) == 0 {
		log.Info().Msg("auto-submitting with no answers")
	}
	result, err := c.api.SubmitAnswers(ctx, c.id, answered)
	c.submitting = false
	if err != nil {
		log.Error().Err(err).Msg("auto-submit failed")
	} else {
		log.Info().Float64("score", result.Score).Msg("auto-submitted")
		c.result = &result
	}
	c.advance(exam.StatusExpired)
}

// pollStatus reconciles with the server's status projection.
func (c *Controller) pollStatus(ctx context.Context) {
	if c.status != exam.StatusActive {
		return
	}
	report, err := c.api.GetStatus(ctx, c.id)
	if err != nil {
		c.log.Warn().Err(err).Msg("status poll failed")
		return
	}
	if report.StartTime != nil && !sameInstant(c.exam.StartTime, *report.StartTime) {
		start := *report.StartTime
		c.exam.StartTime = &start
		c.rebuildTimers()
	}
	if report.Status == c.status {
		return
	}
	if !exam.Advances(c.status, report.Status) {
		c.log.Warn().Str("local", string(c.status)).Str("remote", string(report.Status)).Msg("ignoring status regression")
		return
	}
	switch report.Status {
	case exam.StatusExpired:
		c.autoSubmit(ctx, "server")
	case exam.StatusCompleted:
		c.log.Info().Msg("exam completed elsewhere")
		c.advance(exam.StatusCompleted)
	}
}

// tick advances the countdown or stopwatch.
func (c *Controller) tick(ctx context.Context, now time.Time) {
	if c.status != exam.StatusActive {
		return
	}
	if c.countdown != nil && c.exam.Mode == exam.ModeTimer {
		c.countdown.Tick(now)
		if c.countdown.Expired() {
			c.autoSubmit(ctx, "countdown")
		}
		return
	}
	if c.stopwatch != nil {
		c.stopwatch.Tick(now)
	}
}

func sameInstant(current *time.Time, other time.Time) bool {
	return current != nil && current.Equal(other)
}

func questionNumber(key string) (int, bool) {
	n, err := strconv.Atoi(key)
	return n, err == nil && n > 0
}
