package watch

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// frame is one rendering of the graph. Revisions start at 1.
type frame struct {
	revision int
	svg      string
}

// broker fans rendered graphs out to the connected live views.
type broker struct {
	mu      sync.Mutex
	clients map[chan frame]struct{}
	latest  frame
}

func newBroker() *broker {
	return &broker{
		clients: make(map[chan frame]struct{}),
	}
}

// subscribe registers a live view. It receives the latest frame right away
// when one exists.
func (b *broker) subscribe() chan frame {
	ch := make(chan frame, 1)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.latest.revision > 0 {
		ch <- b.latest
	}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan frame) {
	b.mu.Lock()
	delete(b.clients, ch)
	close(ch)
	b.mu.Unlock()
}

// publish stores svg as the next revision. A view still holding an unread
// frame has it replaced, so slow views skip straight to the newest graph.
func (b *broker) publish(svg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.latest = frame{revision: b.latest.revision + 1, svg: svg}
	for ch := range b.clients {
		select {
		case <-ch:
		default:
		}
		ch <- b.latest
	}
}

// writeFrame writes f as a "graph" event. SSE data ends at a line break, so
// the SVG travels on a single line.
func writeFrame(w http.ResponseWriter, f frame) {
	svg := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(f.svg)
	fmt.Fprintf(w, "id: %d\nevent: graph\ndata: %s\n\n", f.revision, svg)
}

func newServer(b *broker, port int) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("GET /events", handleSSE(b))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

func handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func handleSSE(b *broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		ch := b.subscribe()
		defer b.unsubscribe(ch)

		for {
			select {
			case <-r.Context().Done():
				return
			case f, ok := <-ch:
				if !ok {
					return
				}
				writeFrame(w, f)
				flusher.Flush()
			}
		}
	}
}
