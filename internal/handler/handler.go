package handler

import (
	"encoding/json"
	"net/http"

	"github.com/courseapp/course-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes assembles the router. Write operations and the current-user lookup
// are wrapped in the Basic-auth middleware; course reads are public.
func (h *Handler) Routes(authenticate mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Welcome).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/users", authenticate(http.HandlerFunc(h.GetCurrentUser))).Methods("GET")
	api.HandleFunc("/users", h.CreateUser).Methods("POST")

	api.HandleFunc("/courses", h.ListCourses).Methods("GET")
	api.HandleFunc("/courses/{id:[0-9]+}", h.GetCourse).Methods("GET")
	api.Handle("/courses", authenticate(http.HandlerFunc(h.CreateCourse))).Methods("POST")
	api.Handle("/courses/{id:[0-9]+}", authenticate(http.HandlerFunc(h.UpdateCourse))).Methods("PUT")
	api.Handle("/courses/{id:[0-9]+}", authenticate(http.HandlerFunc(h.DeleteCourse))).Methods("DELETE")

	// anything unmatched, including wrong methods on known paths
	notFound := http.HandlerFunc(h.RouteNotFound)
	r.NotFoundHandler = notFound
	r.MethodNotAllowedHandler = notFound

	return r
}

// Welcome greets callers on the root route.
func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	h.respondMessage(w, http.StatusOK, "Welcome to the REST API project!")
}

// RouteNotFound is the fallback for unmatched routes.
func (h *Handler) RouteNotFound(w http.ResponseWriter, r *http.Request) {
	h.respondMessage(w, http.StatusNotFound, "Route Not Found")
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

func (h *Handler) respondMessage(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"message": message})
}

func (h *Handler) respondErrors(w http.ResponseWriter, messages []string) {
	h.respondJSON(w, http.StatusBadRequest, map[string][]string{"errors": messages})
}
