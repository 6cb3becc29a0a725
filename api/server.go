// Package api exposes the control surface over http: graphql endpoints for
// querying the current track and tuning presentation params, and a websocket
// feed that pushes an event whenever the displayed track changes.
package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"
	"github.com/graphql-go/graphql"

	"github.com/ellsworth/tunescope/present"
	"github.com/ellsworth/tunescope/track"
)

// Server serves the graphql and feed endpoints.
type Server struct {
	store  *track.Store
	params *present.ParamStore
	schema graphql.Schema

	upgrader  websocket.Upgrader
	pollEvery time.Duration
}

// New creates a Server over the shared track store and param store.
func New(store *track.Store, params *present.ParamStore) (*Server, error) {
	s := &Server{
		store:  store,
		params: params,
		upgrader: websocket.Upgrader{
			// The api binds to localhost; cross-origin pages are fine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pollEvery: 250 * time.Millisecond,
	}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Query executes a graphql query against the server's schema.
func (s *Server) Query(query string, vars map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: vars,
	})
}

// Routes registers the api handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/graphql", s.handleQuery)
	mux.HandleFunc("/api/v2/graphql", s.handleApollo)
	mux.HandleFunc("/api/v1/feed", s.handleFeed)
}

// ListenAndServe serves the api on addr. It blocks.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	s.Routes(mux)
	log.Println("[INFO] api listening on", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	glog.V(2).Info("graphql query: ", query)
	res := s.Query(query, nil)
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleApollo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	apolloQuery := make(map[string]interface{})
	if err := json.Unmarshal(body, &apolloQuery); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	query, ok := apolloQuery["query"].(string)
	if !ok {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}
	variables, _ := apolloQuery["variables"].(map[string]interface{})
	glog.V(2).Info("graphql query: ", query)

	res := s.Query(query, variables)
	if len(res.Errors) > 0 {
		for _, err := range res.Errors {
			log.Println("[ERROR]", err)
		}
	}
	json.NewEncoder(w).Encode(res)
}

// FeedEvent is one message pushed over the websocket feed.
type FeedEvent struct {
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	ArtURL       string    `json:"artUrl,omitempty"`
	RecognizedAt time.Time `json:"recognizedAt"`
	Status       string    `json:"status"`
	Version      uint64    `json:"version"`
}

func eventFor(snap *track.Snapshot) FeedEvent {
	ev := FeedEvent{Status: snap.Status.String(), Version: snap.Version}
	if snap.Current != nil {
		ev.Title = snap.Current.Info.Title
		ev.Artist = snap.Current.Info.Artist
		ev.ArtURL = snap.Current.Info.ArtURL
		ev.RecognizedAt = snap.Current.Info.RecognizedAt
	}
	return ev
}

// handleFeed pushes the current state on connect, then an event every time
// the displayed track changes. The client's reads are drained only to detect
// the close.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[ERROR] feed upgrade:", err)
		return
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()

	var last uint64
	sent := false
	for {
		snap := s.store.Read()
		if !sent || snap.Version != last {
			if err := conn.WriteJSON(eventFor(snap)); err != nil {
				return
			}
			last = snap.Version
			sent = true
		}
		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}
