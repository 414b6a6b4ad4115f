package server

import (
	"context"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gopairs/gopairs/internal/frontend"
	"github.com/gopairs/gopairs/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Run starts the server and blocks until the context is canceled.
// An empty addr binds an automatic port on localhost. Once the listener
// is bound, the ServerState (with its Address filled in) is published on
// started, if non-nil.
func Run(ctx context.Context, addr string, resetDelay time.Duration, started chan<- *ServerState) error {
	// Initialize global client state for server-side prerendering without panic
	frontend.InitState()

	serverState := NewServerState()
	if resetDelay > 0 {
		serverState.ResetDelay = resetDelay
	}

	// Register go-app routes so the server knows how to prerender them
	app.Route("/", func() app.Composer { return &frontend.Home{} })
	app.Route("/play", func() app.Composer { return &frontend.Game{} })

	// The web assets and the compiled webassembly
	// are served natively by the go-app framework
	h := &app.Handler{
		Name:        "GoPairs",
		Description: "A memory matching card game",
		Version:     game.Version,
		Styles: []string{
			"/web/css/pico.min.css", // Load pico.css
			"/web/css/main.css",     // Custom styles if any
		},
	}

	mux := http.NewServeMux()

	// Register WebSocket endpoint
	mux.HandleFunc("/ws", serverState.HandleWS)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})

	// Serve the go-app UI
	// We want to serve /web for static files
	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir("web/"))))
	mux.Handle("/", h)

	if addr == "" {
		addr = "127.0.0.1:0"
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	serverState.Address = listener.Addr().String()
	if started != nil {
		started <- serverState
	}

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		log.Printf("Server started on %s", serverState.Address)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()

	// Graceful shutdown with 5 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Shutting down server...")
	return srv.Shutdown(shutdownCtx)
}
