package recommend

import (
	"encoding/json"
	"net/http"

	"Pipewrap/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

func (h *Handler) System(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := System(input, h.Catalog)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
