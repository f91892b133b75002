package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/service"
)

type RentalHandler struct {
	svc        service.RentalService
	paymentSvc service.PaymentService
}

func NewRentalHandler(svc service.RentalService, paymentSvc service.PaymentService) *RentalHandler {
	return &RentalHandler{svc: svc, paymentSvc: paymentSvc}
}

type statusRequest struct {
	Status domain.RentalStatus `json:"status"`
}

type returnRequest struct {
	ReturnDate string `json:"return_date"`
}

type quoteRequest struct {
	RentalDate         string              `json:"rental_date"`
	ExpectedReturnDate string              `json:"expected_return_date"`
	Items              []domain.RentalItem `json:"items"`
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	customerID, err := queryID(r, "customer_id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := domain.RentalFilter{
		Status:     domain.RentalStatus(r.URL.Query().Get("status")),
		CustomerID: customerID,
		Query:      r.URL.Query().Get("q"),
	}
	page := pageFromQuery(r)
	items, total, err := h.svc.ListRentals(r.Context(), filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rt, err := h.svc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var rt domain.RentalTransaction
	if err := decodeJSON(r, &rt); err != nil {
		writeError(w, r, err)
		return
	}
	rt.ID = 0
	if err := h.svc.CreateRental(r.Context(), &rt); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (h *RentalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var rt domain.RentalTransaction
	if err := decodeJSON(r, &rt); err != nil {
		writeError(w, r, err)
		return
	}
	rt.ID = id
	if err := h.svc.UpdateRental(r.Context(), &rt); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.svc.DeleteRental(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RentalHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req statusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	rt, err := h.svc.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req returnRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
	}
	rt, err := h.svc.MarkReturned(r.Context(), id, req.ReturnDate)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

// Quote computes day count and total amount for unsaved form state.
func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Quote(req.RentalDate, req.ExpectedReturnDate, req.Items))
}

func (h *RentalHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page := pageFromQuery(r)
	items, total, err := h.paymentSvc.ListPayments(r.Context(), domain.PaymentFilter{RentalID: id}, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, items, total, page)
}

func (h *RentalHandler) register(r *mux.Router) {
	r.HandleFunc("/rentals", h.List).Methods(http.MethodGet)
	r.HandleFunc("/rentals", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/rentals/quote", h.Quote).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id:[0-9]+}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/rentals/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/rentals/{id:[0-9]+}/status", h.ChangeStatus).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id:[0-9]+}/return", h.MarkReturned).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id:[0-9]+}/payments", h.ListPayments).Methods(http.MethodGet)
}
