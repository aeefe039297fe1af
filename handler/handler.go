package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/Chris91ss/Proper-Trench-Coats-App/command"
	"github.com/Chris91ss/Proper-Trench-Coats-App/model"
	"github.com/Chris91ss/Proper-Trench-Coats-App/service"
	"github.com/Chris91ss/Proper-Trench-Coats-App/store"
)

// Handler is the HTTP layer over the inventory and basket services. The
// services assume a single logical actor, so one mutex serializes every
// request.
type Handler struct {
	mu        sync.Mutex
	inv       service.InventoryAPI
	basket    *service.Basket
	exporters map[string]store.BasketExporter
}

// NewHandler returns a Handler instance. exporters maps persist targets
// ("csv", "html", "sql") to the exporters wired up in main.
func NewHandler(inv service.InventoryAPI, basket *service.Basket, exporters map[string]store.BasketExporter) *Handler {
	return &Handler{inv: inv, basket: basket, exporters: exporters}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	// Catalog
	r.HandleFunc("/items", h.AddItem).Methods("POST")
	r.HandleFunc("/items", h.ListItems).Methods("GET")
	r.HandleFunc("/items/price-count", h.CountByPriceThreshold).Methods("GET")
	r.HandleFunc("/items/{id:[0-9]+}", h.GetItem).Methods("GET")
	r.HandleFunc("/items/{id:[0-9]+}", h.UpdateItem).Methods("PUT")
	r.HandleFunc("/items/{id:[0-9]+}", h.RemoveItem).Methods("DELETE")

	// History
	r.HandleFunc("/undo", h.Undo).Methods("POST")
	r.HandleFunc("/redo", h.Redo).Methods("POST")

	// Basket
	r.HandleFunc("/basket", h.GetBasket).Methods("GET")
	r.HandleFunc("/basket", h.ClearBasket).Methods("DELETE")
	r.HandleFunc("/basket/add", h.AddToBasket).Methods("POST")
	r.HandleFunc("/basket/remove", h.RemoveFromBasket).Methods("POST")
	r.HandleFunc("/basket/persist", h.PersistBasket).Methods("POST")
}

// --- request shapes ---

type basketAddReq struct {
	ItemID   int64 `json:"item_id"`
	Quantity int   `json:"quantity"`
}

type basketRemoveReq struct {
	ItemID int64 `json:"item_id"`
}

type persistReq struct {
	Target string `json:"target"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

// statusFor maps the error taxonomy to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateID),
		errors.Is(err, command.ErrNothingToUndo),
		errors.Is(err, command.ErrNothingToRedo),
		errors.Is(err, command.ErrIrreversibleState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// --- catalog handlers ---

// AddItem handles POST /items
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req service.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	item, err := h.inv.AddItem(req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// GetItem handles GET /items/{id}
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	item, err := h.inv.GetItem(id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateItem handles PUT /items/{id}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	var req service.ItemFields
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.inv.UpdateItem(id, req); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveItem handles DELETE /items/{id}
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.inv.RemoveItem(id); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ListItems handles GET /items with an optional ?size= filter.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var (
		items []service.ItemDTO
		err   error
	)
	if size := r.URL.Query().Get("size"); size != "" {
		items, err = h.inv.FilterBySize(model.Size(size))
	} else {
		items, err = h.inv.ListItems()
	}
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// CountByPriceThreshold handles GET /items/price-count?threshold=200
func (h *Handler) CountByPriceThreshold(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.ParseFloat(r.URL.Query().Get("threshold"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid threshold"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	below, atOrAbove, err := h.inv.CountByPriceThreshold(threshold)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"below": below, "at_or_above": atOrAbove})
}

// Undo handles POST /undo
func (h *Handler) Undo(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.inv.Undo(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "undone"})
}

// Redo handles POST /redo
func (h *Handler) Redo(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.inv.Redo(); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "redone"})
}

// --- basket handlers ---

// AddToBasket handles POST /basket/add
// body: { "item_id": 1, "quantity": 2 }
func (h *Handler) AddToBasket(w http.ResponseWriter, r *http.Request) {
	var req basketAddReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	item, err := h.inv.GetItem(req.ItemID)
	if err != nil {
		writeErr(w, err)
		return
	}
	snapshot := model.Item{
		ID:         item.ID,
		Size:       item.Size,
		Color:      item.Color,
		Price:      item.Price,
		Quantity:   item.Quantity,
		Photograph: item.Photograph,
	}
	if err := h.basket.Add(snapshot, req.Quantity); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// RemoveFromBasket handles POST /basket/remove
func (h *Handler) RemoveFromBasket(w http.ResponseWriter, r *http.Request) {
	var req basketRemoveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.basket.Remove(req.ItemID); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// GetBasket handles GET /basket
func (h *Handler) GetBasket(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": h.basket.SessionID(),
		"entries":    h.basket.Entries(),
		"total":      h.basket.Total(),
	})
}

// ClearBasket handles DELETE /basket
func (h *Handler) ClearBasket(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.basket.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// PersistBasket handles POST /basket/persist
// body: { "target": "csv" }
func (h *Handler) PersistBasket(w http.ResponseWriter, r *http.Request) {
	var req persistReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	exp, ok := h.exporters[req.Target]
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown persist target"})
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.basket.Persist(exp); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "persisted"})
}
