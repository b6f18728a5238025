package server

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gliderlabs/ssh"

	"python-arcade/internal/audio"
	"python-arcade/internal/game"
	"python-arcade/internal/maps"
	"python-arcade/internal/render"
	"python-arcade/internal/store"
)

// Resources are shared read-only by every session.
type Resources struct {
	Assets *maps.Assets
	Atlas  *render.Atlas
	Bank   *audio.Bank
	Scores store.KV // nil keeps scores for the life of a session only
}

// SSHServer wraps the SSH listener and runs one game per session.
type SSHServer struct {
	addr    string
	hostKey string
	res     Resources

	mu       sync.Mutex
	sessions int
}

// NewSSHServer creates a new SSH server bound to the given address.
func NewSSHServer(addr string, hostKey string, res Resources) *SSHServer {
	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		res:     res,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	// Set host key
	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) track(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions += delta
	return s.sessions
}

// scoreStore returns the player's slice of the shared store.
func (s *SSHServer) scoreStore(username string) game.Store {
	if s.res.Scores == nil {
		return store.NewMemory()
	}
	return store.WithPrefix(s.res.Scores, username+"/")
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	// Require PTY
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	username := sess.User()
	if username == "" {
		username = "Anonymous"
	}

	renderer, err := game.NewRendererFor(s.res.Atlas)
	if err != nil {
		log.Printf("Session %s: %v", username, err)
		return
	}

	log.Printf("Player connected: %s (%d playing)", username, s.track(1))
	defer func() {
		log.Printf("Player disconnected: %s (%d playing)", username, s.track(-1))
	}()

	term := render.NewTerminal(ptyReq.Window.Width, ptyReq.Window.Height)
	var termMu sync.Mutex

	// Setup terminal
	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	io.WriteString(sess, render.EnableMouseDrag())
	io.WriteString(sess, render.ClearScreen())
	defer func() {
		io.WriteString(sess, render.DisableMouseDrag())
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	machine := game.NewMachine(game.Config{
		Assets: s.res.Assets,
		Audio:  audio.NewTimed(s.res.Bank),
		Scores: game.NewScoreboard(s.scoreStore(username)),
	})
	gl := game.NewGameLoop(game.LoopConfig{
		Machine:  machine,
		Renderer: renderer,
		Holds:    game.NewHoldTracker(game.DefaultHoldTimeout),
		Present: func(surface *render.Surface) {
			termMu.Lock()
			term.Compose(surface)
			output := term.Render()
			termMu.Unlock()
			if len(output) > 0 {
				io.WriteString(sess, output)
			}
		},
	})
	go gl.Run()
	defer gl.Stop()

	quitCh := make(chan struct{})

	// Goroutine: read input
	go func() {
		defer close(quitCh)
		buf := make([]byte, 256)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			events, quit := parseInput(buf[:n])
			for _, ev := range events {
				if ev.Kind >= game.TouchStart {
					termMu.Lock()
					px, py := term.ScreenToPixel(int(ev.X), int(ev.Y))
					termMu.Unlock()
					ev.X, ev.Y = float64(px), float64(py)
				}
				gl.Send(ev)
			}
			if quit {
				return
			}
		}
	}()

	// Main loop: handle window resizes until the player leaves
	for {
		select {
		case <-quitCh:
			return
		case <-sess.Context().Done():
			return
		case win, ok := <-winCh:
			if !ok {
				<-quitCh
				return
			}
			// The next frame redraws every cell.
			termMu.Lock()
			term.Resize(win.Width, win.Height)
			termMu.Unlock()
		}
	}
}
