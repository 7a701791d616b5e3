package game

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/zond/tabletop"
	"github.com/zond/tabletop/audit"
	"github.com/zond/tabletop/color"
	"github.com/zond/tabletop/command"
)

type Args = command.Args[*Entity]

type Options struct {
	// Transcript, if set, records everything broadcast to the whole room.
	Transcript Transcript
	// Audit, if set, receives session and DM events.
	Audit *audit.Logger
	// Dice returns a uniformly random integer in [1, sides].
	Dice func(sides int) int
}

// Game owns the instance and the dispatcher that runs commands against it.
type Game struct {
	instance   *Instance
	dispatcher *command.Dispatcher[*Entity]
	audit      *audit.Logger
	dice       func(sides int) int
}

func New(opts Options) (*Game, error) {
	g := &Game{
		instance: NewInstance(opts.Transcript),
		audit:    opts.Audit,
		dice:     opts.Dice,
	}
	if g.dice == nil {
		g.dice = func(sides int) int {
			return rand.IntN(sides) + 1
		}
	}
	registry, err := command.NewRegistry(g.commands()...)
	if err != nil {
		return nil, tabletop.WithStack(err)
	}
	g.dispatcher = command.NewDispatcher(registry)
	return g, nil
}

func (g *Game) Instance() *Instance {
	return g.instance
}

// Connect creates the entity for a new participant and adds it to the
// instance.
func (g *Game) Connect(ctx context.Context, name string, dm bool, conn Conn) (*Entity, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	e := NewEntity(g.instance, name, dm, conn)
	if err := g.instance.Join(e); err != nil {
		return nil, err
	}
	g.audit.Log(ctx, "SESSION_START", audit.SessionStart{
		Name:   e.name,
		Remote: audit.Remote(ctx),
		DM:     dm,
	})
	g.instance.Announce(ctx, e,
		"",
		color.Colorize(fmt.Sprintf("[SERVER] %s has joined the session.", e.name), color.BYellow))
	return e, nil
}

// Disconnect removes e after its connection went away without a logout.
// It is a no-op if e already left.
func (g *Game) Disconnect(ctx context.Context, e *Entity) {
	if !g.instance.Leave(e) {
		return
	}
	g.audit.Log(ctx, "SESSION_END", audit.SessionEnd{
		Name:  e.name,
		Cause: "disconnect",
	})
	g.instance.Shout(ctx, e, color.Colorize(fmt.Sprintf("[SERVER] %s has lost connection.", e.name), color.BYellow))
}

// Handle dispatches line on behalf of actor and tells the actor when the
// line could not be run.
func (g *Game) Handle(ctx context.Context, actor *Entity, line string) command.Outcome {
	outcome := g.dispatcher.Dispatch(ctx, line, actor)
	switch outcome.Result {
	case command.Unknown:
		actor.Send(fmt.Sprintf("Unknown command: %q. Type \"help\" for a list of commands.", outcome.Name))
	case command.Malformed:
		actor.Send(fmt.Sprintf("That's not how %q works. Type \"help %s\" for details.", outcome.Name, outcome.Name))
	case command.TooDeep:
		actor.Send("Too many nested commands, giving up.")
	}
	return outcome
}

func logError(msg string, err error) {
	log.Printf("%s: %v\n%s", msg, err, tabletop.StackTrace(err))
}
