package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/looplab/fsm"
)

// Operator is an arithmetic operator applied by Math.
type Operator int

// Supported operators.
const (
	Add Operator = iota + 1
	Subtract
	Multiply
	Divide
)

var operatorNames = map[string]Operator{
	"+":        Add,
	"add":      Add,
	"-":        Subtract,
	"sub":      Subtract,
	"subtract": Subtract,
	"*":        Multiply,
	"mul":      Multiply,
	"multiply": Multiply,
	"/":        Divide,
	"div":      Divide,
	"divide":   Divide,
}

// Division follows IEEE 754: a zero divisor yields ±Inf or NaN, which
// NormalizeValue then refuses to write.
var operatorFuncs = map[Operator]func(a, b float64) float64{
	Add:      func(a, b float64) float64 { return a + b },
	Subtract: func(a, b float64) float64 { return a - b },
	Multiply: func(a, b float64) float64 { return a * b },
	Divide:   func(a, b float64) float64 { return a / b },
}

// ParseOperator parses an operator symbol (+, -, *, /) or name (add, sub,
// subtract, mul, multiply, div, divide).
func ParseOperator(s string) (Operator, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return 0, fmt.Errorf("%w: no operator provided", ErrUnsupportedOperator)
	}
	op, ok := operatorNames[name]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", ErrUnsupportedOperator, s)
	}
	return op, nil
}

func (o Operator) String() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseOperator.
func (o *Operator) UnmarshalText(text []byte) error {
	op, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*o = op
	return nil
}

// Apply returns a op b.
func (o Operator) Apply(a, b float64) (float64, error) {
	fn, ok := operatorFuncs[o]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperator, o)
	}
	return fn(a, b), nil
}

// applyExact returns a op b for integers. ok is false if the result
// overflows an int64 or, for division, is not a whole number.
func (o Operator) applyExact(a, b int64) (r int64, ok bool) {
	switch o {
	case Add:
		r = a + b
		return r, (b >= 0) == (r >= a)
	case Subtract:
		r = a - b
		return r, (b >= 0) == (r <= a)
	case Multiply:
		if a == 0 || b == 0 {
			return 0, true
		}
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return 0, false
		}
		r = a * b
		return r, r/b == a
	case Divide:
		if b == 0 || (a == math.MinInt64 && b == -1) || a%b != 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}

// Math states and events.
const (
	mathStart      = "start"
	mathFetching   = "fetching"
	mathValidating = "validating"
	mathComputing  = "computing"
	mathWriting    = "writing"
	mathDone       = "done"
	mathFailed     = "failed"

	evFetch     = "fetch"
	evMissing   = "missing"
	evFound     = "found"
	evValidated = "validated"
	evComputed  = "computed"
	evWritten   = "written"
	evFail      = "fail"
)

// mathRun is a single fetch-then-write Math call. Each state's enter callback
// does the work of that step and fires the event leading out of it, so a
// single fetch event runs the machine to done or failed.
type mathRun struct {
	c       *Client
	key     string
	op      Operator
	value   any
	operand number
	machine *fsm.FSM

	current Value
	target  number
	write   any
	conf    Confirmation
	err     error
}

func newMathRun(c *Client, key string, op Operator, value any, operand number) *mathRun {
	m := &mathRun{c: c, key: key, op: op, value: value, operand: operand}
	logger := c.logger.With("key", key, "op", op.String())

	m.machine = fsm.NewFSM(
		mathStart,
		fsm.Events{
			{Name: evFetch, Src: []string{mathStart}, Dst: mathFetching},
			{Name: evMissing, Src: []string{mathFetching}, Dst: mathWriting},
			{Name: evFound, Src: []string{mathFetching}, Dst: mathValidating},
			{Name: evValidated, Src: []string{mathValidating}, Dst: mathComputing},
			{Name: evComputed, Src: []string{mathComputing}, Dst: mathWriting},
			{Name: evWritten, Src: []string{mathWriting}, Dst: mathDone},
			{
				Name: evFail,
				Src:  []string{mathFetching, mathValidating, mathComputing, mathWriting},
				Dst:  mathFailed,
			},
		},
		fsm.Callbacks{
			"before_event": func(_ context.Context, e *fsm.Event) {
				logger.Debug("math transition", slog.String("event", e.Event),
					slog.String("from", e.Src), slog.String("to", e.Dst))
			},
			"enter_" + mathFetching:   m.fetch,
			"enter_" + mathValidating: m.validate,
			"enter_" + mathComputing:  m.compute,
			"enter_" + mathWriting:    m.store,
		},
	)

	return m
}

func (m *mathRun) fetch(ctx context.Context, _ *fsm.Event) {
	current, err := m.c.Fetch(ctx, m.key)
	if err != nil {
		m.fail(ctx, err)
		return
	}
	m.current = current
	if !current.Exists() {
		m.write = m.value
		m.next(ctx, evMissing)
		return
	}
	m.next(ctx, evFound)
}

func (m *mathRun) validate(ctx context.Context, _ *fsm.Event) {
	target, ok := m.current.number()
	if !ok {
		m.fail(ctx, fmt.Errorf("%w: key '%s' holds %s", ErrNotANumber, m.key, m.current.raw))
		return
	}
	m.target = target
	m.next(ctx, evValidated)
}

// compute keeps integer arithmetic exact, and falls back to float64 when
// either side is fractional, the result overflows, or a division has a
// remainder.
func (m *mathRun) compute(ctx context.Context, _ *fsm.Event) {
	if m.target.exact && m.operand.exact {
		if r, ok := m.op.applyExact(m.target.i, m.operand.i); ok {
			m.write = r
			m.next(ctx, evComputed)
			return
		}
	}
	r, err := m.op.Apply(m.target.f, m.operand.f)
	if err != nil {
		m.fail(ctx, err)
		return
	}
	m.write = r
	m.next(ctx, evComputed)
}

func (m *mathRun) store(ctx context.Context, _ *fsm.Event) {
	conf, err := m.c.Set(ctx, m.key, m.write)
	if err != nil {
		m.fail(ctx, err)
		return
	}
	m.conf = conf
	m.next(ctx, evWritten)
}

func (m *mathRun) next(ctx context.Context, event string) {
	if err := m.machine.Event(ctx, event); err != nil {
		m.fail(ctx, fmt.Errorf("math state machine: %w", err))
	}
}

// fail records err and moves the machine to the failed state. The fail event
// ignores ctx cancelation, since a canceled request is itself a failure to
// record.
func (m *mathRun) fail(ctx context.Context, err error) {
	if m.err == nil {
		m.err = err
	}
	if ferr := m.machine.Event(context.WithoutCancel(ctx), evFail); ferr != nil {
		m.err = errors.Join(m.err, fmt.Errorf("math state machine: %w", ferr))
	}
}

func (m *mathRun) run(ctx context.Context) (Confirmation, error) {
	if err := m.machine.Event(ctx, evFetch); err != nil {
		return "", fmt.Errorf("math state machine: %w", err)
	}

	if m.err != nil {
		return "", m.err
	}
	if state := m.machine.Current(); state != mathDone {
		return "", fmt.Errorf("math state machine: stopped in state '%s'", state)
	}
	return m.conf, nil
}

// Math applies op to the number stored under key and value, and stores the
// result. If key has no value, value is stored as is.
//
// When both numbers are integers that fit in an int64 the result is computed
// exactly. Otherwise, or if the exact result would overflow or have a
// fractional part, Math computes in float64.
//
// Math is a fetch followed by a set, and is not atomic: concurrent calls on
// the same key can overwrite each other's result. The wire protocol has no
// compare-and-swap to prevent this.
func (c *Client) Math(ctx context.Context, key string, op Operator, value any) (Confirmation, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	if _, ok := operatorFuncs[op]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedOperator, op)
	}
	if err := ValidateValue(value); err != nil {
		return "", err
	}
	operand, ok := toNumber(value)
	if !ok {
		return "", fmt.Errorf("%w: operand %v is not a number", ErrInvalidValue, value)
	}
	if err := checkFinite(operand.f); err != nil {
		return "", err
	}

	return newMathRun(c, key, op, value, operand).run(ctx)
}

// Add adds value to the number stored under key.
func (c *Client) Add(ctx context.Context, key string, value any) (Confirmation, error) {
	return c.Math(ctx, key, Add, value)
}

// Subtract subtracts value from the number stored under key.
func (c *Client) Subtract(ctx context.Context, key string, value any) (Confirmation, error) {
	return c.Math(ctx, key, Subtract, value)
}
