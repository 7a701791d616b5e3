package server

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	// SSHAddr is where to listen for SSH connections.
	SSHAddr string
	// Dir holds the host key and, unless configured elsewhere, the audit log.
	Dir string
	// DMPassword is the SSH password that logs in as a dungeon master.
	// Empty disables DM logins.
	DMPassword string
	// AuditLog is the path of the audit log, <Dir>/audit.log if empty.
	AuditLog string
	// AuditMaxSizeMB and AuditMaxBackups control audit log rotation.
	AuditMaxSizeMB  int
	AuditMaxBackups int
	// Transcript is the path of the SQLite transcript. Empty disables it.
	Transcript string
	// LoginThrottle is how long a name must wait after a failed login.
	LoginThrottle time.Duration
}

func DefaultConfig() Config {
	return Config{
		SSHAddr:         "127.0.0.1:15000",
		Dir:             filepath.Join(os.Getenv("HOME"), ".tabletop"),
		AuditMaxSizeMB:  100,
		AuditMaxBackups: 10,
		LoginThrottle:   10 * time.Second,
	}
}

func (c Config) auditPath() string {
	if c.AuditLog != "" {
		return c.AuditLog
	}
	return filepath.Join(c.Dir, "audit.log")
}
