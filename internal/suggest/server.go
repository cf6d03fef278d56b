package suggest

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// SuggestPath is the route the development server answers on
const SuggestPath = "/api/suggest-times"

// DefaultLabels are served when no labels are configured
var DefaultLabels = []string{"9:00 AM", "11:30 AM", "2:00 PM", "4:30 PM"}

// Server is a stand-in suggestion endpoint that answers the wire contract
// with a fixed list of labels. It does no scheduling of its own.
type Server struct {
	router *mux.Router
	labels []string
	logOut io.Writer
}

func NewServer(labels []string, logOut io.Writer) *Server {
	if len(labels) == 0 {
		labels = DefaultLabels
	}
	s := &Server{
		router: mux.NewRouter(),
		labels: labels,
		logOut: logOut,
	}
	s.registerRoutes()
	return s
}

// Handler returns the router, wrapped with request logging when a log
// writer was given
func (s *Server) Handler() http.Handler {
	if s.logOut == nil {
		return s.router
	}
	return handlers.LoggingHandler(s.logOut, s.router)
}

func (s *Server) registerRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/suggest-times", s.suggestTimes).Methods(http.MethodPost)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) suggestTimes(w http.ResponseWriter, r *http.Request) {
	var body Body
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if len(body.Participants) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "participants required"})
		return
	}
	if _, err := strconv.Atoi(body.Duration); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "duration must be minutes"})
		return
	}
	if body.Timezone == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "timezone required"})
		return
	}

	writeJSON(w, http.StatusOK, s.labels)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
