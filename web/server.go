package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// StateFunc returns the current state document served on /state.
type StateFunc func() interface{}

type Server struct {
	Hub   *Hub
	State StateFunc
}

func NewServer() *Server {
	return &Server{
		Hub: NewHub(),
	}
}

func (s *Server) Start(port int, distDir string) {
	go s.Hub.Run()

	mux := http.NewServeMux()

	// WebSocket stream of published estimates
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.Hub, w, r)
	})

	// Latest estimate snapshot
	if s.State != nil {
		mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(s.State()); err != nil {
				log.Printf("encode /state: %v", err)
			}
		})
	}

	// Static Frontend
	if distDir != "" {
		fs := http.FileServer(http.Dir(distDir))
		mux.Handle("/", fs)
	}

	addr := fmt.Sprintf(":%d", port)
	log.Printf("HTTP Server listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("HTTP server error: %v", err)
	}
}
