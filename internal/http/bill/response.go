package bill

import (
	"time"

	"github.com/google/uuid"

	"stockscan/internal/inventory"
)

type billResponse struct {
	ID          uuid.UUID          `json:"id"`
	BillNumber  string             `json:"bill_number"`
	BillDate    time.Time          `json:"bill_date"`
	BillType    inventory.BillType `json:"bill_type"`
	TotalAmount float64            `json:"total_amount"`
	ImagePath   string             `json:"image_path,omitempty"`
	Items       []billItemResponse `json:"items"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   *time.Time         `json:"updated_at,omitempty"`
}

type billItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	LineTotal float64   `json:"total_price"`
}

func toResponse(b inventory.Bill) billResponse {
	resp := billResponse{
		ID:          b.ID,
		BillNumber:  b.BillNumber,
		BillDate:    b.BillDate,
		BillType:    b.BillType,
		TotalAmount: float64(b.TotalAmount) / 100.0,
		ImagePath:   b.ImagePath,
		Items:       make([]billItemResponse, len(b.Items)),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	for i, li := range b.Items {
		resp.Items[i] = billItemResponse{
			ID:        li.ID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: float64(li.UnitPrice) / 100.0,
			LineTotal: float64(li.LineTotal) / 100.0,
		}
	}

	return resp
}

func toResponseList(bills []inventory.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}
