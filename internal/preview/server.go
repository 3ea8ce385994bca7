// Package preview serves the rendered deck over HTTP for a browser preview
// and pushes reload notifications to connected pages over a websocket when
// the deck changes on disk or in the editor.
package preview

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/deckforge/deckforge/internal/logger"
	"github.com/deckforge/deckforge/internal/render"
	"github.com/deckforge/deckforge/internal/resolver"
	"github.com/deckforge/deckforge/internal/store"
	apperrors "github.com/deckforge/deckforge/pkg/errors"
)

// Server exposes a read-only HTML preview of stored decks.
type Server struct {
	echo  *echo.Echo
	store *store.Store
	log   *logger.Logger

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// NewServer wires routes onto a fresh echo instance.
func NewServer(st *store.Store, log *logger.Logger) *Server {
	s := &Server{
		echo:    echo.New(),
		store:   st,
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.GET("/decks/:id", s.handleDeck)
	s.echo.GET("/decks/:id/slides/:slide", s.handleSlide)
	s.echo.GET("/ws", s.handleSocket)
	return s
}

// Start listens on addr until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case <-ctx.Done():
		s.closeClients()
		return s.echo.Shutdown(context.Background())
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Notify tells every connected preview page to reload. Connections that fail
// to take the message are dropped.
func (s *Server) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// ClientCount reports how many preview pages are connected.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func (s *Server) resolveContext(ctx context.Context, deckID string) (resolver.Context, error) {
	deck, err := s.store.GetDeck(ctx, deckID)
	if err != nil {
		return resolver.Context{}, err
	}
	return resolver.Context{Brand: deck.Brand}, nil
}

func (s *Server) handleDeck(c echo.Context) error {
	deckID := c.Param("id")
	rctx, err := s.resolveContext(c.Request().Context(), deckID)
	if err != nil {
		return httpError(err)
	}
	slides, err := s.store.ListSlides(c.Request().Context(), deckID)
	if err != nil {
		return httpError(err)
	}
	return c.HTML(http.StatusOK, page(render.Deck(slides, rctx)))
}

func (s *Server) handleSlide(c echo.Context) error {
	deckID := c.Param("id")
	rctx, err := s.resolveContext(c.Request().Context(), deckID)
	if err != nil {
		return httpError(err)
	}
	doc, err := s.store.GetSlide(c.Request().Context(), deckID, c.Param("slide"))
	if err != nil {
		return httpError(err)
	}
	return c.HTML(http.StatusOK, page(render.Slide(doc, rctx)))
}

func (s *Server) handleSocket(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Debug("preview client connected")

	// Drain the connection so pings and close frames are processed; the
	// server never expects payloads from the page.
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

func httpError(err error) error {
	if apperrors.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// page wraps a rendered fragment in a minimal document that reconnects to
// the reload socket.
func page(body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>deckforge preview</title>
<style>body{margin:0;background:#1E1E2E}.slide{margin:24px auto;box-shadow:0 4px 24px rgba(0,0,0,.4)}</style>
</head>
<body>
%s
<script>
(function connect() {
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function () { location.reload(); };
  ws.onclose = function () { setTimeout(connect, 1000); };
})();
</script>
</body>
</html>`, body)
}
