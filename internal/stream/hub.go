// Package stream broadcasts simulation frames to websocket clients.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/kinesim/internal/graph"
	"github.com/san-kum/kinesim/internal/logging"
	"github.com/san-kum/kinesim/internal/physics"
	"github.com/san-kum/kinesim/internal/scene"
	"github.com/san-kum/kinesim/internal/vmath"
)

const (
	queueSize    = 256
	writeTimeout = 10 * time.Second
)

type ObjectFrame struct {
	Name       string               `json:"name"`
	Quantities map[physics.Kind]any `json:"quantities"`
}

type GraphFrame struct {
	Title string      `json:"title"`
	Last  *vmath.Vec2 `json:"last,omitempty"`
}

// Frame is the state of the scene right after one tick.
type Frame struct {
	Time    float64       `json:"time"`
	Step    int           `json:"step"`
	Objects []ObjectFrame `json:"objects"`
	Graphs  []GraphFrame  `json:"graphs,omitempty"`
}

func NewFrame(t float64, step int, sc *scene.Scene, graphs []*graph.Graph) Frame {
	f := Frame{Time: t, Step: step}
	for _, o := range sc.Objects() {
		f.Objects = append(f.Objects, ObjectFrame{Name: o.Name(), Quantities: o.Snapshot()})
	}
	for _, g := range graphs {
		gf := GraphFrame{Title: g.Title()}
		if p, ok := g.Last(); ok {
			gf.Last = &p
		}
		f.Graphs = append(f.Graphs, gf)
	}
	return f
}

// Hub fans frames out to every connected client. A slow client never
// blocks the simulation: frames are dropped when the queue is full.
type Hub struct {
	log        logging.Logger
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	upgrader   websocket.Upgrader
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
	dropped    atomic.Int64

	scene  *scene.Scene
	graphs []*graph.Graph
}

func NewHub(log logging.Logger) *Hub {
	h := &Hub{
		log:        logging.OrNoOp(log),
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, queueSize),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}

	h.wg.Add(1)
	go h.run()

	return h
}

// Watch selects the scene and graphs OnStep reports.
func (h *Hub) Watch(sc *scene.Scene, graphs []*graph.Graph) {
	h.scene = sc
	h.graphs = graphs
}

// OnStep snapshots the watched scene on the simulation goroutine and
// queues it.
func (h *Hub) OnStep(t float64, step int) {
	if h.scene == nil {
		return
	}
	h.Publish(NewFrame(t, step, h.scene, h.graphs))
}

func (h *Hub) Publish(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		h.log.Warnf("frame %d: %v", f.Step, err)
		return
	}
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		h.dropped.Add(1)
	}
}

// Dropped counts frames discarded because the queue was full.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("websocket upgrade: %v", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			h.log.Debugf("client connected: %s", conn.RemoteAddr())

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case data := <-h.broadcast:
			h.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.RUnlock()

			var failed []*websocket.Conn
			for _, conn := range conns {
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					failed = append(failed, conn)
					conn.Close()
				}
			}

			if len(failed) > 0 {
				h.mu.Lock()
				for _, conn := range failed {
					delete(h.clients, conn)
				}
				h.mu.Unlock()
			}
		}
	}
}

// Close disconnects every client and stops the broadcaster.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	})
	return nil
}
