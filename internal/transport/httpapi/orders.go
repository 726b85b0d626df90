package httpapi

import (
	"errors"
	"log"
	"net/http"

	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/service"
	"demo/ordertrace/internal/validate"
)

type orderHandlers struct {
	svc OrderAPI
}

func (h *orderHandlers) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	writeOrders(w, orders)
}

func (h *orderHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	o, ok, err := h.svc.GetOrder(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *orderHandlers) getNested(w http.ResponseWriter, r *http.Request) {
	first, second := r.PathValue("first"), r.PathValue("second")
	switch {
	case first == "user":
		h.listByUser(w, r, second)
	case second == "with-user":
		h.getWithUser(w, r, first)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *orderHandlers) getWithUser(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := parseID(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, ok, err := h.svc.GetOrderWithUser(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *orderHandlers) listByUser(w http.ResponseWriter, r *http.Request, rawID string) {
	userID, err := parseID(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	orders, err := h.svc.ListOrdersByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Printf("list orders by user: %v", err)
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeInternal(w, r, err)
		return
	}
	writeOrders(w, orders)
}

func (h *orderHandlers) create(w http.ResponseWriter, r *http.Request) {
	var o model.Order
	if err := decodeJSON(r, &o); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validate.ValidateOrder(o); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateOrder(r.Context(), o)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			log.Printf("create order: %v", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternal(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *orderHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	deleted, err := h.svc.DeleteOrder(r.Context(), id)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeOrders(w http.ResponseWriter, orders []model.Order) {
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
