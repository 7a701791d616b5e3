// Package audit writes session and dungeon master events to a JSON lines
// log.
package audit

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	goccy "github.com/goccy/go-json"
	"github.com/zond/tabletop"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey int

const (
	sessionIDKey contextKey = iota
	remoteKey
)

// WithSessionID tags ctx with the id of the session it belongs to, so every
// audit entry from that session can be correlated.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// WithRemote tags ctx with the remote address of the session.
func WithRemote(ctx context.Context, remote string) context.Context {
	return context.WithValue(ctx, remoteKey, remote)
}

func Remote(ctx context.Context) string {
	if remote, ok := ctx.Value(remoteKey).(string); ok {
		return remote
	}
	return ""
}

// Logger writes audit entries as JSON lines. A nil Logger discards them.
type Logger struct {
	mu  sync.Mutex
	out io.WriteCloser
	enc *goccy.Encoder
	now func() time.Time
}

// New returns a Logger writing to out.
func New(out io.WriteCloser) *Logger {
	return &Logger{
		out: out,
		enc: goccy.NewEncoder(out),
		now: time.Now,
	}
}

// Options configures log file rotation.
type Options struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Open returns a Logger writing to a rotating file at path.
func Open(path string, opts Options) *Logger {
	return New(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	})
}

// Data is implemented by the typed payloads of audit entries.
type Data interface {
	auditData()
}

type Entry struct {
	Time      string `json:"time"`
	SessionID string `json:"session_id,omitempty"`
	Event     string `json:"event"`
	Data      Data   `json:"data"`
}

// SessionStart is logged when an entity joins.
type SessionStart struct {
	Name   string `json:"name"`
	Remote string `json:"remote,omitempty"`
	DM     bool   `json:"dm"`
}

func (SessionStart) auditData() {}

// SessionEnd is logged when an entity leaves, by logout or disconnect.
type SessionEnd struct {
	Name  string `json:"name"`
	Cause string `json:"cause"`
}

func (SessionEnd) auditData() {}

// LoginFailed is logged when a connection is refused an entity.
type LoginFailed struct {
	Name   string `json:"name"`
	Remote string `json:"remote,omitempty"`
	Reason string `json:"reason"`
}

func (LoginFailed) auditData() {}

// Paint is logged when a DM paints a scene part or object.
type Paint struct {
	Actor string `json:"actor"`
	Part  string `json:"part"`
	Tag   string `json:"tag,omitempty"`
}

func (Paint) auditData() {}

// Erase is logged when a DM erases the scene or an object.
type Erase struct {
	Actor string `json:"actor"`
	Part  string `json:"part"`
	Tag   string `json:"tag,omitempty"`
}

func (Erase) auditData() {}

// Wipe is logged when a DM wipes the scene and all objects.
type Wipe struct {
	Actor string `json:"actor"`
}

func (Wipe) auditData() {}

// Mask is logged when a DM issues a command as someone else.
type Mask struct {
	Actor   string `json:"actor"`
	As      string `json:"as"`
	Command string `json:"command"`
	// Depth is how many masks the command was already nested in.
	Depth int `json:"depth,omitempty"`
}

func (Mask) auditData() {}

// Denied is logged when a DM only command is refused.
type Denied struct {
	Actor   string `json:"actor"`
	Command string `json:"command"`
}

func (Denied) auditData() {}

// Log writes an entry. Failures are logged, never returned, since auditing
// must not interrupt the session.
func (l *Logger) Log(ctx context.Context, event string, data Data) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	entry := Entry{
		Time:      l.now().UTC().Format(time.RFC3339Nano),
		SessionID: SessionID(ctx),
		Event:     event,
		Data:      data,
	}
	if err := l.enc.Encode(entry); err != nil {
		err = tabletop.WithStack(err)
		log.Printf("writing audit entry %q: %v\n%s", event, err, tabletop.StackTrace(err))
	}
}

func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out.Close()
}
