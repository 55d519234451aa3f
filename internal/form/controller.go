package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/interpret"
)

// Texts rendered by the controller.
const (
	PromptMessage   = "Please share your dream."
	FallbackMessage = "No interpretation available."
	FailureMessage  = "We could not reach the interpreter. Please try again in a moment."

	IdleLabel = "Interpret dream"
	BusyLabel = "Interpreting..."
)

// ErrBusy is returned when a submission arrives while another is in flight.
var ErrBusy = errors.New("submission already in flight")

// Phase is the state of the trigger control.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBusy
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBusy:
		return "busy"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome describes how a submission ended.
type Outcome int

const (
	// OutcomeRejected: refused because another submission was in flight.
	OutcomeRejected Outcome = iota
	// OutcomePrompted: the dream was blank; nothing was sent.
	OutcomePrompted
	// OutcomeInterpreted: the server's interpretation was rendered.
	OutcomeInterpreted
	// OutcomeEmpty: the server answered without an interpretation.
	OutcomeEmpty
	// OutcomeFailed: transport, status or decode failure.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRejected:
		return "rejected"
	case OutcomePrompted:
		return "prompted"
	case OutcomeInterpreted:
		return "interpreted"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Controller mediates one request/response cycle per submission and reflects
// it into a Display and a Trigger.
type Controller struct {
	interpreter interpret.Interpreter
	display     Display
	trigger     Trigger
	logger      *zap.Logger
	timeout     time.Duration

	mu    sync.Mutex
	phase Phase
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger. Failures are logged at error level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout bounds each interpretation request. Zero leaves the caller's
// context as the only bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewController binds the controller to its surfaces and puts the trigger in
// the idle state.
func NewController(interpreter interpret.Interpreter, display Display, trigger Trigger, opts ...Option) (*Controller, error) {
	if interpreter == nil {
		return nil, fmt.Errorf("interpreter is nil")
	}
	if display == nil {
		return nil, fmt.Errorf("display is nil")
	}
	if trigger == nil {
		return nil, fmt.Errorf("trigger is nil")
	}
	c := &Controller{
		interpreter: interpreter,
		display:     display,
		trigger:     trigger,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.trigger.SetEnabled(true)
	c.trigger.SetLabel(IdleLabel)
	return c, nil
}

// Phase reports whether a submission is in flight.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Submit runs one submission for the raw "dream" field value. It blocks until
// the request settles. The returned error is ErrBusy when the submission was
// rejected; every other outcome is reported through the surfaces and the
// Outcome value.
func (c *Controller) Submit(ctx context.Context, raw string) (Outcome, error) {
	dream := strings.TrimSpace(raw)
	if outcome, started := c.begin(dream); !started {
		if outcome == OutcomeRejected {
			return outcome, ErrBusy
		}
		return outcome, nil
	}
	defer c.settle()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.interpreter.Interpret(ctx, dream)
	if err != nil {
		c.logger.Error("interpret request failed",
			zap.Error(err),
			zap.Int("dream_length", len(dream)),
		)
		c.display.ShowMessage(FailureMessage)
		return OutcomeFailed, nil
	}

	if resp.Interpretation == "" {
		c.display.ShowMessage(FallbackMessage)
		return OutcomeEmpty, nil
	}
	c.display.ShowMessage(resp.Interpretation)
	return OutcomeInterpreted, nil
}

// begin moves Idle -> Busy and engages the loading state. A blank dream is
// answered with the prompt instead. Both decisions are made under c.mu, so a
// prompt is never drawn while another submission is in flight. The outcome
// only matters when started is false.
func (c *Controller) begin(dream string) (outcome Outcome, started bool) {
	c.mu.Lock()
	if c.phase == PhaseBusy {
		c.mu.Unlock()
		return OutcomeRejected, false
	}
	if dream == "" {
		c.display.ShowMessage(PromptMessage)
		c.mu.Unlock()
		return OutcomePrompted, false
	}
	c.phase = PhaseBusy
	c.mu.Unlock()

	c.trigger.SetEnabled(false)
	c.trigger.SetLabel(BusyLabel)
	c.display.ShowLoading()
	return OutcomeInterpreted, true
}

// settle moves Busy -> Idle and restores the trigger.
func (c *Controller) settle() {
	c.trigger.SetEnabled(true)
	c.trigger.SetLabel(IdleLabel)

	c.mu.Lock()
	c.phase = PhaseIdle
	c.mu.Unlock()
}
