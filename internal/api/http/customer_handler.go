package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type CustomerHandler struct {
	svc service.CustomerService
}

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	items, total, err := h.svc.ListCustomers(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.svc.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	c.ID = 0
	if err := h.svc.CreateCustomer(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var c domain.Customer
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	c.ID = id
	if err := h.svc.UpdateCustomer(r.Context(), &c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandler) register(r *mux.Router) {
	r.HandleFunc("/customers", h.List).Methods(http.MethodGet)
	r.HandleFunc("/customers", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/customers/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
