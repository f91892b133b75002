package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type MaintenanceHandler struct {
	svc service.MaintenanceService
}

func NewMaintenanceHandler(svc service.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{svc: svc}
}

func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := queryID(r, "equipment_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page := pageFromQuery(r)
	items, total, err := h.svc.ListRecords(r.Context(), equipmentID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *MaintenanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := h.svc.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rec domain.MaintenanceRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	rec.ID = 0
	if err := h.svc.CreateRecord(r.Context(), &rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var rec domain.MaintenanceRecord
	if err := decodeJSON(r, &rec); err != nil {
		writeError(w, r, err)
		return
	}
	rec.ID = id
	if err := h.svc.UpdateRecord(r.Context(), &rec); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteRecord(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MaintenanceHandler) register(r *mux.Router) {
	r.HandleFunc("/maintenance", h.List).Methods(http.MethodGet)
	r.HandleFunc("/maintenance", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/maintenance/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/maintenance/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/maintenance/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
