package handlers

import "net/http"

// Master-data endpoints back the form dropdowns. The lists come from
// the sync service's cached Master sheet columns, with built-in
// fallbacks when the sheet is unreachable.

func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": r.sync.Products(),
	})
}

func (r *Router) listSupervisors(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": r.sync.Supervisors(),
	})
}

func (r *Router) listRawMaterials(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": r.sync.RawMaterials(),
	})
}

func (r *Router) listCrushingItems(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items": r.sync.CrushingItems(),
	})
}
