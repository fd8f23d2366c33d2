package merkdown

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

var (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
)

// PresentationServer serves an HTML preview of a markdown file and tells
// connected browsers to reload whenever Rerender is called.
type PresentationServer struct {
	inputPath  string
	ctx        context.Context
	httpServer *http.Server
	listener   net.Listener
	wsUpgrader websocket.Upgrader

	indexLock  *sync.Mutex
	indexBytes []byte

	connLock        *sync.Mutex
	livereloadConns map[*websocket.Conn]struct{}
}

func NewPresentationServer(ctx context.Context, inputPath, addr string) (*PresentationServer, error) {
	server := &http.Server{
		Addr: addr,
	}

	p := &PresentationServer{
		ctx:             ctx,
		inputPath:       inputPath,
		httpServer:      server,
		indexLock:       &sync.Mutex{},
		connLock:        &sync.Mutex{},
		wsUpgrader:      websocket.Upgrader{},
		livereloadConns: map[*websocket.Conn]struct{}{},
	}

	if err := p.Rerender(); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.HandlerFunc(p.serveIndex))
	mux.Handle("/livereload", http.HandlerFunc(p.livereloadHandler))
	server.Handler = mux

	return p, nil
}

// Handler returns the HTTP handler of the server.
func (p *PresentationServer) Handler() http.Handler {
	return p.httpServer.Handler
}

func (p *PresentationServer) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	p.indexLock.Lock()
	defer p.indexLock.Unlock()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(p.indexBytes)
}

func (p *PresentationServer) livereloadHandler(w http.ResponseWriter, r *http.Request) {
	ws, err := p.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("livereload upgrade failed")
		return
	}

	p.connLock.Lock()
	p.livereloadConns[ws] = struct{}{}
	p.connLock.Unlock()

	ctx, cancel := context.WithCancel(p.ctx)
	go p.drain(cancel, ws)
	go ping(ctx, ws)
}

// drain reads until the browser goes away so control frames are handled.
func (p *PresentationServer) drain(cancel context.CancelFunc, ws *websocket.Conn) {
	defer cancel()
	for {
		if _, _, err := ws.NextReader(); err != nil {
			p.dropConn(ws)
			return
		}
	}
}

func (p *PresentationServer) dropConn(ws *websocket.Conn) {
	p.connLock.Lock()
	delete(p.livereloadConns, ws)
	p.connLock.Unlock()
	ws.Close()
}

func ping(ctx context.Context, ws *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Debug("livereload ping failed")
				return
			}
		}
	}
}

// Rerender parses the input again and notifies all browsers. On a parse
// error the previous page stays in place.
func (p *PresentationServer) Rerender() error {
	pres, err := Parse(p.inputPath)
	if err != nil {
		return err
	}
	index, err := RenderHTML(pres)
	if err != nil {
		return err
	}
	p.indexLock.Lock()
	p.indexBytes = index
	p.indexLock.Unlock()

	p.connLock.Lock()
	defer p.connLock.Unlock()
	for ws := range p.livereloadConns {
		ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ws.WriteMessage(websocket.TextMessage, []byte(`Reload`)); err != nil {
			delete(p.livereloadConns, ws)
			ws.Close()
		}
	}
	return nil
}

// Close shuts the server down gracefully. The run context is usually done
// by now, so the grace period is measured from here.
func (p *PresentationServer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	return p.httpServer.Shutdown(ctx)
}

// Run binds the listen address and serves in the background.
func (p *PresentationServer) Run() error {
	addr := p.httpServer.Addr
	if addr == "" {
		addr = ":http"
	}
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	p.listener = l
	go func() {
		if err := p.httpServer.Serve(l); err != nil && err != http.ErrServerClosed {
			log.WithError(err).WithField("addr", l.Addr().String()).Error("preview server stopped")
		}
	}()
	return nil
}

// Addr returns the bound address once Run succeeded.
func (p *PresentationServer) Addr() net.Addr {
	if p.listener == nil {
		return nil
	}
	return p.listener.Addr()
}
