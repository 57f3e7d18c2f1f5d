package item

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockscan/internal/http/respond"
	"stockscan/internal/inventory"
)

type Handler struct {
	svc *inventory.Service
}

func NewHandler(svc *inventory.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type itemResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	SKU       string     `json:"sku,omitempty"`
	Quantity  int64      `json:"quantity"`
	UnitPrice float64    `json:"unit_price"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(item inventory.Item) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Name:      item.Name,
		SKU:       item.SKU,
		Quantity:  item.Quantity,
		UnitPrice: float64(item.UnitPrice) / 100.0,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListItems(r.Context())
	if err != nil {
		respond.Detail(w, http.StatusInternalServerError, "failed to list items")
		return
	}

	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = toResponse(item)
	}

	respond.JSON(w, http.StatusOK, resp)
}
