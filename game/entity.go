package game

import (
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/zond/tabletop"
)

// Conn is the transport behind a connected entity.
type Conn interface {
	Send(text string) error
	Close() error
}

// Entity is a participant in an Instance. Real participants have a Conn
// and live in Instance connections, masked identities have neither.
type Entity struct {
	name      string
	dm        bool
	instance  *Instance
	conn      Conn
	puppeteer *Entity

	mu     sync.RWMutex
	status string

	// departed is set before the connection closes. Sends check it first,
	// and depart never waits for a write in flight.
	departed atomic.Bool
}

func NewEntity(instance *Instance, name string, dm bool, conn Conn) *Entity {
	return &Entity{
		name:     name,
		dm:       dm,
		instance: instance,
		conn:     conn,
	}
}

// Mask returns a short lived identity called name, controlled by e. It
// shares the instance and permissions of e but is never connected, and
// messages sent to it reach e.
func (e *Entity) Mask(name string) *Entity {
	return &Entity{
		name:      name,
		dm:        e.dm,
		instance:  e.instance,
		puppeteer: e,
	}
}

func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) IsDM() bool {
	return e.dm
}

func (e *Entity) Instance() *Instance {
	return e.instance
}

// Masked reports whether e is a synthetic identity created by mask.
func (e *Entity) Masked() bool {
	return e.puppeteer != nil
}

func (e *Entity) Status() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

func (e *Entity) SetStatus(status string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = status
}

func (e *Entity) Departed() bool {
	return e.departed.Load()
}

func (e *Entity) depart() {
	e.departed.Store(true)
}

// Send delivers text to e. Departed entities get nothing.
func (e *Entity) Send(text string) {
	if e.departed.Load() {
		return
	}
	if e.puppeteer != nil {
		e.puppeteer.Send(text)
		return
	}
	if e.conn == nil {
		return
	}
	if err := e.conn.Send(text); err != nil && !isClosed(err) {
		log.Printf("sending to %q: %v", e.name, err)
	}
}

// terminate marks e as departed and closes its connection. An already
// closed connection is expected and ignored.
func (e *Entity) terminate() {
	e.depart()
	if e.conn == nil {
		return
	}
	if err := e.conn.Close(); err != nil && !isClosed(err) {
		err = tabletop.WithStack(err)
		log.Printf("closing connection of %q: %v\n%s", e.name, err, tabletop.StackTrace(err))
	}
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
