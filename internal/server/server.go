package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	vlog "github.com/casadelapaleta/ventas-site/internal/log"
)

// Config holds preview-server configuration.
type Config struct {
	Port     int
	SiteDir  string        // directory containing the built site
	Open     bool          // open the browser on start
	AllowAll bool          // allow all CORS origins (dev mode)
	Debounce time.Duration // quiet period before a watched change rebuilds (0 = default)
}

// Server serves the built site locally with live reload: every served HTML
// page gets a small script that reconnects to /livereload and reloads the
// page when the watcher broadcasts after a rebuild.
type Server struct {
	cfg        Config
	rebuild    func() error // nil disables rebuilds; reload is still broadcast
	router     chi.Router
	httpServer *http.Server
	log        zerolog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a preview server. rebuild is invoked by the watcher before
// each reload broadcast.
func New(cfg Config, rebuild func() error) *Server {
	s := &Server{
		cfg:     cfg,
		rebuild: rebuild,
		log:     vlog.WithComponent("server"),
		clients: make(map[*websocket.Conn]struct{}),
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/livereload", s.handleLiveReload)

	r.Get("/*", s.serveSite)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// serveSite serves files from the built site. HTML responses get the
// live-reload script injected before </body>.
func (s *Server) serveSite(w http.ResponseWriter, r *http.Request) {
	// Clean as an absolute path so .. cannot escape the site dir.
	rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if rel == "" {
		rel = "index.html"
	}

	fp := filepath.Join(s.cfg.SiteDir, filepath.FromSlash(rel))
	if info, err := os.Stat(fp); err == nil && info.IsDir() {
		fp = filepath.Join(fp, "index.html")
	}

	if !strings.HasSuffix(fp, ".html") {
		http.ServeFile(w, r, fp)
		return
	}

	page, err := os.ReadFile(fp)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(injectReloadScript(page))
}

// liveReloadJS reconnects after rebuild-triggered restarts and reloads the
// page on any broadcast.
const liveReloadJS = `(function () {
  function connect() {
    var ws = new WebSocket("ws://" + location.host + "/livereload");
    ws.onmessage = function () { location.reload(); };
    ws.onclose = function () { setTimeout(connect, 1000); };
  }
  connect();
})();`

// injectReloadScript inserts the live-reload script before </body>, or
// appends it when the page has no closing body tag.
func injectReloadScript(page []byte) []byte {
	script := "<script>" + liveReloadJS + "</script>"
	idx := bytes.LastIndex(page, []byte("</body>"))
	if idx == -1 {
		return append(page, []byte(script)...)
	}

	out := make([]byte, 0, len(page)+len(script))
	out = append(out, page[:idx]...)
	out = append(out, []byte(script)...)
	out = append(out, page[idx:]...)
	return out
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleLiveReload(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	s.addClient(conn)
	defer s.removeClient(conn)

	// Clients never send anything useful; read until the peer goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug().Err(err).Msg("websocket read")
			}
			return
		}
	}
}

func (s *Server) addClient(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[conn] = struct{}{}
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conn.Close()
	delete(s.clients, conn)
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// BroadcastReload tells every connected page to reload itself.
func (s *Server) BroadcastReload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.cfg.Open {
		go openBrowser(fmt.Sprintf("http://localhost:%d", s.cfg.Port))
	}

	s.log.Info().Str("addr", addr).Str("site", s.cfg.SiteDir).Msg("preview server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
