package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type PaymentHandler struct {
	svc service.PaymentService
}

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	rentalID, err := queryID(r, "rental_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page := pageFromQuery(r)
	filter := domain.PaymentFilter{RentalID: rentalID, Query: r.URL.Query().Get("q")}
	items, total, err := h.svc.ListPayments(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.svc.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Payment
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = 0
	if err := h.svc.CreatePayment(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var p domain.Payment
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, r, err)
		return
	}
	p.ID = id
	if err := h.svc.UpdatePayment(r.Context(), &p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeletePayment(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentHandler) register(r *mux.Router) {
	r.HandleFunc("/payments", h.List).Methods(http.MethodGet)
	r.HandleFunc("/payments", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/payments/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/payments/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/payments/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
}
