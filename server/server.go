// Package server exposes a game over SSH.
package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"

	"github.com/gliderlabs/ssh"
	"github.com/zond/tabletop"
	"github.com/zond/tabletop/audit"
	"github.com/zond/tabletop/game"
	"github.com/zond/tabletop/pemfile"
	"github.com/zond/tabletop/transcript"
	"golang.org/x/term"
)

const (
	prompt  = "> "
	welcome = "Welcome to the table, %s. Type \"help\" for a list of commands."
)

type contextKey int

const (
	dmKey contextKey = iota
)

type Server struct {
	config     Config
	hostKey    []byte
	game       *game.Game
	audit      *audit.Logger
	transcript *transcript.Store
	throttle   *throttle
}

// New prepares the directory, host key, audit log and transcript of a
// server.
func New(ctx context.Context, config Config) (*Server, error) {
	if err := os.MkdirAll(config.Dir, 0700); err != nil {
		return nil, tabletop.WithStack(err)
	}
	keys := pemfile.KeyParams{
		KeyPath:       filepath.Join(config.Dir, "private.pem"),
		SSHPubKeyPath: filepath.Join(config.Dir, "public.pem"),
	}
	hostKey, generated, err := keys.Ensure()
	if err != nil {
		return nil, err
	}
	if generated {
		log.Printf("Generated server key pair in %q", config.Dir)
	}
	s := &Server{
		config:   config,
		hostKey:  hostKey,
		audit:    audit.Open(config.auditPath(), audit.Options{MaxSizeMB: config.AuditMaxSizeMB, MaxBackups: config.AuditMaxBackups}),
		throttle: newThrottle(config.LoginThrottle),
	}
	opts := game.Options{Audit: s.audit}
	if config.Transcript != "" {
		if s.transcript, err = transcript.Open(ctx, config.Transcript); err != nil {
			s.audit.Close()
			return nil, err
		}
		opts.Transcript = s.transcript
	}
	if s.game, err = game.New(opts); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Server) Game() *game.Game {
	return s.game
}

// Close releases the audit log and the transcript.
func (s *Server) Close() error {
	var result error
	if s.transcript != nil {
		result = s.transcript.Close()
	}
	if err := s.audit.Close(); err != nil && result == nil {
		result = err
	}
	return result
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.SSHAddr)
	if err != nil {
		return tabletop.WithStack(err)
	}
	return s.Serve(ctx, l)
}

// Serve accepts SSH connections from l until ctx is done.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &ssh.Server{
		Handler:         s.handleSession,
		PasswordHandler: s.handlePassword,
	}
	if err := srv.SetOption(ssh.HostKeyPEM(s.hostKey)); err != nil {
		return tabletop.WithStack(err)
	}
	fingerprint, err := pemfile.Fingerprint(s.hostKey)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.Printf("Listening on %q with public key %q", l.Addr(), fingerprint)
	if err := srv.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return tabletop.WithStack(err)
	}
	return nil
}

func (s *Server) handlePassword(ctx ssh.Context, password string) bool {
	dm, ok := s.authenticate(audit.WithRemote(ctx, ctx.RemoteAddr().String()), ctx.User(), password)
	if ok {
		ctx.SetValue(dmKey, dm)
	}
	return ok
}

// authenticate accepts an empty password as a player login and the DM
// password as a DM login. Other passwords are refused, and the name has to
// wait out the throttle before its next attempt.
func (s *Server) authenticate(ctx context.Context, name string, password string) (dm bool, ok bool) {
	if password == "" {
		return false, true
	}
	s.throttle.waitIfNeeded(name)
	if s.config.DMPassword != "" && subtle.ConstantTimeCompare([]byte(password), []byte(s.config.DMPassword)) == 1 {
		s.throttle.clearFailure(name)
		return true, true
	}
	s.throttle.recordFailure(name)
	s.audit.Log(ctx, "LOGIN_FAILED", audit.LoginFailed{
		Name:   name,
		Remote: audit.Remote(ctx),
		Reason: "wrong password",
	})
	return false, false
}

func (s *Server) handleSession(sess ssh.Session) {
	ctx := audit.WithSessionID(sess.Context(), tabletop.NextUniqueID())
	ctx = audit.WithRemote(ctx, sess.RemoteAddr().String())
	dm, _ := sess.Context().Value(dmKey).(bool)
	t := term.NewTerminal(sess, prompt)
	conn := &terminalConn{term: t, sess: sess}

	e, err := s.game.Connect(ctx, sess.User(), dm, conn)
	if err != nil {
		var invalid game.InvalidNameError
		switch {
		case errors.Is(err, game.ErrNameTaken):
			fmt.Fprintf(t, "The name %q is already taken.\n", sess.User())
		case errors.As(err, &invalid):
			fmt.Fprintf(t, "%v\n", err)
		default:
			fmt.Fprintf(t, "InternalServerError: %v\n", err)
			log.Printf("connecting %q: %v\n%s", sess.User(), err, tabletop.StackTrace(err))
		}
		s.audit.Log(ctx, "LOGIN_FAILED", audit.LoginFailed{
			Name:   sess.User(),
			Remote: audit.Remote(ctx),
			Reason: err.Error(),
		})
		sess.Exit(1)
		return
	}
	defer s.game.Disconnect(ctx, e)

	e.Send(fmt.Sprintf(welcome, e.Name()))
	s.game.Handle(ctx, e, "look")
	for !e.Departed() {
		line, err := t.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("reading from %q: %v", e.Name(), err)
			}
			return
		}
		s.game.Handle(ctx, e, line)
	}
}

// terminalConn delivers messages through the line editor of a session, so
// they don't garble a half typed line.
type terminalConn struct {
	term *term.Terminal
	sess ssh.Session
}

func (c *terminalConn) Send(text string) error {
	if _, err := io.WriteString(c.term, text+"\n"); err != nil {
		return tabletop.WithStack(err)
	}
	return nil
}

func (c *terminalConn) Close() error {
	return c.sess.Exit(0)
}
