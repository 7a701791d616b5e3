package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/zond/tabletop/server"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	config := server.DefaultConfig()

	flag.StringVar(&config.SSHAddr, "ssh", config.SSHAddr, "Where to listen to SSH connections.")
	flag.StringVar(&config.Dir, "dir", config.Dir, "Where to save the host key and the audit log.")
	flag.StringVar(&config.DMPassword, "dm_password", os.Getenv("TABLETOP_DM_PASSWORD"), "SSH password that logs in as dungeon master. Empty disables DM logins.")
	flag.StringVar(&config.AuditLog, "audit_log", config.AuditLog, "Path of the audit log. Defaults to audit.log in -dir.")
	flag.StringVar(&config.Transcript, "transcript", config.Transcript, "Path of the SQLite session transcript. Empty disables recap.")
	flag.DurationVar(&config.LoginThrottle, "login_throttle", config.LoginThrottle, "How long a name must wait after a failed login.")
	logPath := flag.String("log", "", "Path of the process log. Empty logs to stderr.")
	logMaxSize := flag.Int("log_max_size", 100, "Max size in megabytes of the process log before it is rotated.")
	logMaxBackups := flag.Int("log_max_backups", 10, "Max number of rotated process logs to keep.")

	flag.Parse()

	if *logPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    *logMaxSize,
			MaxBackups: *logMaxBackups,
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv, err := server.New(ctx, config)
	if err != nil {
		log.Fatal(err)
	}
	defer srv.Close()

	if err := srv.Start(ctx); err != nil {
		log.Fatal(err)
	}
}
