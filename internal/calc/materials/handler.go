package materials

import (
	"encoding/json"
	"net/http"

	"Pipewrap/internal/catalog"
)

type Handler struct {
	Catalog *catalog.Catalog
}

func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.System == "" {
		input.System = catalog.ProwrapCarbon().Name
	}
	m, err := h.Catalog.Get(input.System)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := Estimate(input, m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
