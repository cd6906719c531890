// Package lifecycle drives one exam attempt on the client: loading, starting,
// answering, submitting and reconciling with the server's status.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"examctl/internal/answers"
	"examctl/internal/exam"
	"examctl/internal/schedule"
	"examctl/internal/timing"
)

const (
	// DefaultPollInterval is the status poll cadence while active.
	DefaultPollInterval = time.Second
	// DefaultTickInterval is the countdown/stopwatch cadence while active.
	DefaultTickInterval = time.Second
)

// Names of the scheduled tasks owned by the controller.
const (
	TaskPoll      = "poll"
	TaskCountdown = "countdown"
	TaskStopwatch = "stopwatch"
)

var (
	// ErrNotActive is returned for answer or submit actions outside an active exam.
	ErrNotActive = errors.New("exam is not active")
	// ErrAutoSubmitOnly is reported when a timer exam is submitted by hand.
	ErrAutoSubmitOnly = errors.New("this exam is submitted automatically when time runs out")
)

// API is the subset of the exam server the controller talks to.
type API interface {
	GetExam(ctx context.Context, id string) (exam.Exam, error)
	GetStatus(ctx context.Context, id string) (exam.StatusReport, error)
	StartExam(ctx context.Context, id string) (exam.Exam, error)
	SubmitAnswers(ctx context.Context, id string, answers exam.Answers) (exam.Result, error)
	AnswerKeyPreview(ctx context.Context, id string) (exam.Preview, error)
}

// Options configures a Controller.
type Options struct {
	ExamID        string
	API           API
	Clock         timing.Clock
	Scheduler     schedule.Scheduler
	Logger        zerolog.Logger
	Observer      Observer
	PollInterval  time.Duration
	TickInterval  time.Duration
	FallbackTotal int
}

// Controller owns the state of one exam attempt. All mutation happens on the
// goroutine executing Run.
type Controller struct {
	id        string
	api       API
	clock     timing.Clock
	scheduler schedule.Scheduler
	log       zerolog.Logger
	observer  Observer

	pollInterval  time.Duration
	tickInterval  time.Duration
	fallbackTotal int

	view        View
	exam        exam.Exam
	status      exam.Status
	answers     *answers.Set
	total       int
	totalSource answers.Resolution
	gate        answers.Gate
	countdown   *timing.Countdown
	stopwatch   *timing.Stopwatch

	poll  schedule.Handle
	ticks schedule.Handle

	starting      bool
	submitting    bool
	autoSubmitted bool
	inlineErr     string
	fatalErr      string
	result        *exam.Result
	done          bool
}

// New builds a controller. Zero-valued options fall back to real time, real
// tickers and the default intervals.
func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = timing.RealClock{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Real{}
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.FallbackTotal <= 0 {
		opts.FallbackTotal = answers.DefaultTotal
	}
	return &Controller{
		id:            opts.ExamID,
		api:           opts.API,
		clock:         opts.Clock,
		scheduler:     opts.Scheduler,
		log:           opts.Logger.With().Str("component", "lifecycle").Str("exam_id", opts.ExamID).Logger(),
		observer:      opts.Observer,
		pollInterval:  opts.PollInterval,
		tickInterval:  opts.TickInterval,
		fallbackTotal: opts.FallbackTotal,
		view:          ViewLoading,
		answers:       answers.NewSet(0),
	}
}

// Run loads the exam and processes actions and scheduled ticks until Quit,
// a closed action channel, or ctx cancellation. Every scheduled task is
// stopped before Run returns.
func (c *Controller) Run(ctx context.Context, actions <-chan Action) error {
	defer c.stopTasks()
	c.load(ctx)
	c.publish()
	for !c.done {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case action, ok := <-actions:
			if !ok {
				return nil
			}
			c.handle(ctx, action)
		case <-schedule.Chan(c.poll):
			c.pollStatus(ctx)
		case <-schedule.Chan(c.ticks):
			c.tick(ctx, c.clock.Now())
		}
		c.publish()
	}
	return nil
}

// Snapshot returns a copy of the current state. It must only be called from
// the goroutine running the controller.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		View:          c.view,
		Exam:          cloneExam(c.exam),
		Status:        c.status,
		Answers:       c.answers.Snapshot(),
		Answered:      c.answers.AnsweredCount(),
		Total:         c.total,
		TotalSource:   c.totalSource,
		CanSubmit:     c.gate.CanSubmit() && c.status == exam.StatusActive,
		Confirming:    c.gate.Pending(),
		Starting:      c.starting,
		Submitting:    c.submitting,
		AutoSubmitted: c.autoSubmitted,
		Error:         c.inlineErr,
		Fatal:         c.fatalErr,
		Result:        cloneResult(c.result),
		Now:           c.clock.Now(),
	}
	if c.countdown != nil {
		s.Remaining = c.countdown.Remaining()
		s.Warning = c.countdown.Warning()
		s.Critical = c.countdown.Critical()
		s.Progress = c.countdown.Progress()
	}
	if c.stopwatch != nil {
		s.Elapsed = c.stopwatch.Elapsed()
	}
	return s
}

func (c *Controller) publish() {
	c.observer.OnSnapshot(c.Snapshot())
}

func (c *Controller) handle(ctx context.Context, action Action) {
	c.log.Debug().Stringer("action", action.Kind).Int("question", action.Question).Msg("action")
	switch action.Kind {
	case ActionStart:
		c.start(ctx)
	case ActionSelect:
		c.selectAnswer(action.Question, action.Option)
	case ActionClear:
		if c.status != exam.StatusActive {
			c.inlineErr = c.notActiveMessage()
			return
		}
		c.answers.Clear(action.Question)
		c.inlineErr = ""
	case ActionRequestSubmit:
		if c.status != exam.StatusActive {
			c.inlineErr = c.notActiveMessage()
			return
		}
		if !c.gate.Request() {
			c.log.Debug().Msg("manual submission not offered for this mode")
			c.inlineErr = ErrAutoSubmitOnly.Error()
			return
		}
		c.inlineErr = ""
	case ActionConfirmSubmit:
		if c.gate.Confirm() {
			c.submit(ctx)
		}
	case ActionCancelSubmit:
		c.gate.Cancel()
	case ActionReload:
		if c.view == ViewError {
			c.load(ctx)
		}
	case ActionQuit:
		c.done = true
		c.stopTasks()
	}
}

func (c *Controller) selectAnswer(question int, option string) {
	if c.status != exam.StatusActive {
		c.inlineErr = c.notActiveMessage()
		return
	}
	if _, err := c.answers.Select(question, option); err != nil {
		c.inlineErr = err.Error()
		return
	}
	c.inlineErr = ""
}

func (c *Controller) notActiveMessage() string {
	if c.status.Terminal() {
		return exam.ErrTerminal.Error()
	}
	return ErrNotActive.Error()
}

// stopTasks cancels the poll and timer tasks. Safe to call repeatedly.
func (c *Controller) stopTasks() {
	c.poll = schedule.Stop(c.poll)
	c.ticks = schedule.Stop(c.ticks)
}

// startTasks begins polling and ticking for an active exam.
func (c *Controller) startTasks() {
	c.stopTasks()
	c.poll = c.scheduler.Every(TaskPoll, c.pollInterval)
	name := TaskStopwatch
	if c.exam.Mode == exam.ModeTimer {
		name = TaskCountdown
	}
	c.ticks = c.scheduler.Every(name, c.tickInterval)
}
