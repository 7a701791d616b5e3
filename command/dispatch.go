package command

import (
	"context"
)

// MaxDepth is how many nested redispatches a single input line may cause.
const MaxDepth = 8

type Result int

const (
	// Empty means the line held no tokens and nothing was dispatched.
	Empty Result = iota
	Handled
	// Unknown means the name resolved to CatchAll.
	Unknown
	// Malformed means the handler rejected its arguments.
	Malformed
	// TooDeep means a redispatch chain exceeded MaxDepth.
	TooDeep
)

func (r Result) String() string {
	switch r {
	case Empty:
		return "empty"
	case Handled:
		return "handled"
	case Unknown:
		return "unknown"
	case Malformed:
		return "malformed"
	case TooDeep:
		return "too deep"
	}
	return "invalid"
}

// Outcome describes how a dispatch ended. Name is the command name that
// produced Result, which for failed redispatches is the inner command.
type Outcome struct {
	Result Result
	Name   string
}

func (o Outcome) OK() bool {
	return o.Result == Handled || o.Result == Empty
}

// Args is the argument record handed to a Handler.
type Args[A any] struct {
	// Name is the command name actually used, after shorthand expansion.
	Name string
	// Tokens is the whitespace split of Full, Tokens[0] == Name.
	Tokens []string
	// Full is the input line after shorthand expansion.
	Full string
	// Actor is who the command runs on behalf of.
	Actor A

	ctx        context.Context
	line       Line
	depth      int
	inner      *Outcome
	dispatcher *Dispatcher[A]
}

func (a *Args[A]) Context() context.Context {
	return a.ctx
}

// Rest returns Full from the start of token k with inner spacing intact.
func (a *Args[A]) Rest(k int) string {
	return a.line.Rest(k)
}

// Depth is 0 for lines typed by a connection and grows by one for every
// redispatch.
func (a *Args[A]) Depth() int {
	return a.depth
}

// Redispatch runs line as a new command issued by actor, one level deeper
// than a. It runs synchronously within the current dispatch.
func (a *Args[A]) Redispatch(line string, actor A) Outcome {
	o := a.dispatcher.dispatch(a.ctx, line, actor, a.depth+1)
	if o.Result != Handled && o.Result != Empty {
		a.inner = &o
	}
	return o
}

// Dispatcher expands, tokenizes, resolves and invokes commands. It holds
// no state beyond its registry and is safe for concurrent use.
type Dispatcher[A any] struct {
	registry *Registry[A]
}

func NewDispatcher[A any](registry *Registry[A]) *Dispatcher[A] {
	return &Dispatcher[A]{
		registry: registry,
	}
}

func (d *Dispatcher[A]) Registry() *Registry[A] {
	return d.registry
}

// Dispatch runs raw on behalf of actor.
func (d *Dispatcher[A]) Dispatch(ctx context.Context, raw string, actor A) Outcome {
	return d.dispatch(ctx, raw, actor, 0)
}

func (d *Dispatcher[A]) dispatch(ctx context.Context, raw string, actor A, depth int) Outcome {
	line := Tokenize(Expand(raw))
	if line.Empty() {
		return Outcome{Result: Empty}
	}
	name := line.Tokens[0]
	if depth > MaxDepth {
		return Outcome{Result: TooDeep, Name: name}
	}
	handler, found := d.registry.Resolve(name)
	args := &Args[A]{
		Name:       name,
		Tokens:     line.Tokens,
		Full:       line.Full,
		Actor:      actor,
		ctx:        ctx,
		line:       line,
		depth:      depth,
		dispatcher: d,
	}
	if handler(args) {
		return Outcome{Result: Handled, Name: name}
	}
	if args.inner != nil {
		return *args.inner
	}
	if !found {
		return Outcome{Result: Unknown, Name: name}
	}
	return Outcome{Result: Malformed, Name: name}
}
