package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

// EquipmentHandler serves equipment and equipment categories.
type EquipmentHandler struct {
	svc service.EquipmentService
}

func NewEquipmentHandler(svc service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{svc: svc}
}

func (h *EquipmentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *EquipmentHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *EquipmentHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.EquipmentCategory
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	c.ID = 0
	if err := h.svc.CreateCategory(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *EquipmentHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var c domain.EquipmentCategory
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	c.ID = id
	if err := h.svc.UpdateCategory(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *EquipmentHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, err := queryID(r, "category_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := domain.EquipmentFilter{
		CategoryID: categoryID,
		Status:     domain.EquipmentStatus(r.URL.Query().Get("status")),
		Query:      r.URL.Query().Get("q"),
	}
	page := pageFromQuery(r)
	items, total, err := h.svc.ListEquipment(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	e, err := h.svc.GetEquipment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e domain.Equipment
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = 0
	if err := h.svc.CreateEquipment(r.Context(), &e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var e domain.Equipment
	if err := decodeJSON(r, &e); err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = id
	if err := h.svc.UpdateEquipment(r.Context(), &e); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteEquipment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EquipmentHandler) register(r *mux.Router) {
	r.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)
	r.HandleFunc("/categories/{id:[0-9]+}", h.GetCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/{id:[0-9]+}", h.UpdateCategory).Methods(http.MethodPut)
	r.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods(http.MethodDelete)

	r.HandleFunc("/equipment", h.List).Methods(http.MethodGet)
	r.HandleFunc("/equipment", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/equipment/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/equipment/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/equipment/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
