// skirmish-server hosts one battle per SSH connection. Build:
//
//	go build -o skirmish-server ./cmd/server
//
// Usage:
//
//	./skirmish-server [--port 2222] [--key host_key] [--random] [--spectate :8080]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"

	"skirmish/internal/config"
	"skirmish/internal/game"
	"skirmish/internal/logger"
	"skirmish/internal/spectate"
	internalssh "skirmish/internal/ssh"
	"skirmish/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		logger.Log.WithError(err).Fatal("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flag.IntVar(&cfg.SSHPort, "port", cfg.SSHPort, "SSH server port")
	flag.StringVar(&cfg.HostKey, "key", cfg.HostKey, "Path to the PEM-encoded host key (auto-generated if absent)")
	flag.StringVar(&cfg.SpectateAddr, "spectate", cfg.SpectateAddr, "address of the spectator websocket hub")
	flag.BoolVar(&cfg.Random, "random", cfg.Random, "serve generated arenas instead of the sample encounters")
	flag.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP/HTTP")
	flag.Parse()

	logger.Init(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Log.WithError(err).Warn("telemetry shutdown")
			}
		}()
	}

	var hub *spectate.Hub
	if cfg.SpectateAddr != "" {
		hub = spectate.NewHub()
		go func() {
			if err := spectate.Serve(ctx, cfg.SpectateAddr, hub); err != nil {
				logger.Log.WithError(err).Error("spectator hub stopped")
			}
		}()
	}

	signer, err := loadOrCreateHostKey(cfg.HostKey)
	if err != nil {
		return err
	}
	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.SSHPort),
		Handler: func(s gossh.Session) {
			handleSession(ctx, cfg, hub, s)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; add gossh.PublicKeyAuth or
		// gossh.PasswordAuth options for real auth.
		HostSigners: []gossh.Signer{signer},
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("ssh shutdown")
		}
	}()

	logger.Log.WithField("port", cfg.SSHPort).Info("skirmish SSH server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return err
	}
	return nil
}

// handleSession runs one game on the connection's screen. It blocks for
// the duration of the connection so the SSH session stays open.
func handleSession(ctx context.Context, cfg config.Config, hub *spectate.Hub, s gossh.Session) {
	name := internalssh.SanitizeName(s.User())
	log := logger.Log.WithFields(logrus.Fields{"user": name, "remote": s.RemoteAddr().String()})

	screen, err := internalssh.NewScreen(s)
	if errors.Is(err, internalssh.ErrNoPty) {
		fmt.Fprintf(s, "This game requires a PTY. Connect with: ssh -t -p %d <host>\n", cfg.SSHPort)
		return
	}
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.WithError(err).Warn("terminal setup failed")
		return
	}
	defer screen.Fini()

	log.Info("session started")
	opts := game.Options{FrameDelay: game.DefaultFrameDelay, Name: name}
	if hub != nil {
		opts.Watchers = hub
	}
	if err := game.New(screen, sessionConfig(cfg, name), opts).Run(ctx); err != nil {
		log.WithError(err).Error("session failed")
		return
	}
	log.Info("session ended")
}

// pathSafe keeps a user name inside the users directory.
var pathSafe = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

// sessionConfig gives every user their own profile and save under the
// data directory.
func sessionConfig(cfg config.Config, user string) config.Config {
	user = pathSafe.Replace(user)
	if user == "" {
		user = "anonymous"
	}
	dir := filepath.Join(cfg.DataDir, "users", user)
	cfg.ProgressionPath = filepath.Join(dir, "progression.json")
	cfg.SavePath = filepath.Join(dir, "battle.json")
	cfg.DataDir = dir
	return cfg
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Log.WithField("path", path).Info("loaded host key")
			return signer, nil
		}
	}

	logger.Log.WithField("path", path).Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	if pemBlock, err := xssh.MarshalPrivateKey(key, "skirmish server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
			logger.Log.WithError(err).Warn("host key not saved")
		}
	}
	return signer, nil
}
