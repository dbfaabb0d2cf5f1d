package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/botivate-in/protrackgo/internal/buildinfo"
	"github.com/botivate-in/protrackgo/internal/config"
	"github.com/botivate-in/protrackgo/internal/database"
	"github.com/botivate-in/protrackgo/internal/middleware"
	"github.com/botivate-in/protrackgo/internal/services/sheets"
	"github.com/botivate-in/protrackgo/internal/state"
	ws "github.com/botivate-in/protrackgo/internal/websocket"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and the service handles every endpoint
// needs
type Router struct {
	*mux.Router
	db    *database.DB
	cfg   *config.Config
	sync  *sheets.SyncService
	state *state.Store
	hub   *ws.Hub
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, syncSvc *sheets.SyncService, hub *ws.Hub) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		sync:   syncSvc,
		state:  state.NewStore(db),
		hub:    hub,
	}

	// Scanned QR URLs arrive uppercase; fold every path
	r.Use(middleware.CaseInsensitiveMiddleware)

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg))
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Demand (production orders)
	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders", r.createOrder).Methods("POST")
	api.HandleFunc("/orders/pending", r.listPendingOrders).Methods("GET")
	api.HandleFunc("/orders/{serial}", r.getOrder).Methods("GET")

	// Job cards
	api.HandleFunc("/jobcards", r.listJobCards).Methods("GET")
	api.HandleFunc("/jobcards", r.createJobCard).Methods("POST")
	api.HandleFunc("/jobcards/open", r.listOpenJobCards).Methods("GET")
	api.HandleFunc("/jobcards/pending", r.listPendingJobCards).Methods("GET")
	api.HandleFunc("/jobcards/labels", r.printJobCardLabels).Methods("POST")

	// Actual entries and approvals
	api.HandleFunc("/entries", r.listEntries).Methods("GET")
	api.HandleFunc("/entries", r.createEntry).Methods("POST")
	api.HandleFunc("/entries/pending", r.listPendingApprovals).Methods("GET")
	api.HandleFunc("/entries/history", r.listApprovalHistory).Methods("GET")
	api.HandleFunc("/entries/{serial}/approve", r.approveEntry).Methods("POST")

	// Crushing
	api.HandleFunc("/crushing", r.listCrushing).Methods("GET")
	api.HandleFunc("/crushing", r.createCrushing).Methods("POST")
	api.HandleFunc("/crushing/pending", r.listPendingCrushing).Methods("GET")

	// Master data dropdowns
	api.HandleFunc("/master/products", r.listProducts).Methods("GET")
	api.HandleFunc("/master/supervisors", r.listSupervisors).Methods("GET")
	api.HandleFunc("/master/raw-materials", r.listRawMaterials).Methods("GET")
	api.HandleFunc("/master/crushing-items", r.listCrushingItems).Methods("GET")

	// Photo uploads (proxied to Drive through the gateway)
	api.HandleFunc("/uploads", r.uploadPhoto).Methods("POST")

	// Dashboard summary
	api.HandleFunc("/dashboard", r.getDashboard).Methods("GET")

	// Per-user UI state
	api.HandleFunc("/state/{key}", r.getState).Methods("GET")
	api.HandleFunc("/state/{key}", r.putState).Methods("PUT")
	api.HandleFunc("/state/{key}", r.deleteState).Methods("DELETE")

	// Live refresh socket (token handled in-band is overkill for a
	// broadcast-only feed)
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWs(hub, w, req)
	})

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "local",
	})
}

// getStatus returns the current status
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"version": buildinfo.Version,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// pathVar reads a mux path variable
func pathVar(req *http.Request, name string) string {
	return mux.Vars(req)[name]
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
