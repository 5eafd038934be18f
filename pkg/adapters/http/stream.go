package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/observability"
)

// allMachines is the topic receiving the events of every machine.
const allMachines = ""

// StreamManager handles active SSE connections, keyed by machine name.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a channel for the runs of machine ("" for every machine).
// The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(machine string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[machine]; !ok {
		sm.subscribers[machine] = make(map[chan<- string]struct{})
	}
	sm.subscribers[machine][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[machine]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, machine)
			}
		}
	}
}

// Broadcast delivers msg to the subscribers of machine and of every machine.
// Slow subscribers lose messages instead of blocking the run.
func (sm *StreamManager) Broadcast(machine string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	topics := []string{machine}
	if machine != allMachines {
		topics = append(topics, allMachines)
	}
	for _, topic := range topics {
		for ch := range sm.subscribers[topic] {
			select {
			case ch <- msg:
			default:
			}
		}
	}
}

// broadcastHooks publishes every run end to the stream, chained after the configured hooks.
func (s *Server) broadcastHooks() domain.LifecycleHooks {
	publish := domain.LifecycleHooks{
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			data, err := json.Marshal(e)
			if err != nil {
				s.logger.Warn("failed to encode run event", "error", err)
				return
			}
			s.Streams.Broadcast(e.Machine, string(data))
		},
	}
	return observability.Chain(s.hooks, publish)
}

// SubscribeEvents handles the GET /events request (SSE).
// The optional machine query parameter restricts the stream to one machine.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	machine := r.URL.Query().Get("machine")
	ch, cancel := s.Streams.Subscribe(machine)
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: run_end\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
