package bill

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockscan/internal/http/respond"
	"stockscan/internal/inventory"
	"stockscan/internal/scan"
)

// allowedExts mirrors the client-side image whitelist; the server enforces it
// again because uploads can come from any HTTP client.
var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type Handler struct {
	svc       *inventory.Service
	extractor scan.Extractor
	uploadDir string
	maxBytes  int64
}

func NewHandler(svc *inventory.Service, extractor scan.Extractor, uploadDir string, maxBytes int64) *Handler {
	return &Handler{
		svc:       svc,
		extractor: extractor,
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/upload/", h.upload)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.ListBills(r.Context())
	if err != nil {
		respond.Detail(w, http.StatusInternalServerError, "failed to list bills")
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(bills))
}

type uploadResponse struct {
	Message    string `json:"message"`
	BillNumber string `json:"bill_number"`
	Items      int    `json:"items"`
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		respond.Detail(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	billType := inventory.BillType(r.FormValue("bill_type"))
	if !billType.Valid() {
		respond.Detail(w, http.StatusBadRequest, inventory.ErrInvalidBillType.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Detail(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExts[ext] {
		respond.Detail(w, http.StatusBadRequest, "unsupported image")
		return
	}

	imagePath, err := h.saveImage(file, ext)
	if err != nil {
		slog.Error("failed to store bill image", "error", err)
		respond.Detail(w, http.StatusInternalServerError, "failed to store bill image")

		return
	}

	text, err := h.extractor.ExtractText(r.Context(), imagePath)
	if err != nil {
		slog.Error("text extraction failed", "image", imagePath, "error", err)
		respond.Detail(w, http.StatusUnprocessableEntity, "could not read text from the bill image")

		return
	}

	lines, err := scan.Parse(strings.NewReader(text))
	if err != nil {
		respond.Detail(w, http.StatusUnprocessableEntity, "could not parse bill text")
		return
	}

	params := inventory.ApplyBillParams{
		Type:      billType,
		Date:      time.Now().UTC(),
		ImagePath: imagePath,
		Lines:     make([]inventory.BillLine, len(lines)),
	}
	for i, line := range lines {
		params.Lines[i] = inventory.BillLine{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	bill, err := h.svc.ApplyBill(r.Context(), params)
	if err != nil {
		if errors.Is(err, inventory.ErrNoLines) {
			respond.Detail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		slog.Error("failed to apply bill", "error", err)
		respond.Detail(w, http.StatusInternalServerError, "failed to update inventory")

		return
	}

	respond.JSON(w, http.StatusOK, uploadResponse{
		Message:    "Inventory updated successfully",
		BillNumber: bill.BillNumber,
		Items:      len(bill.Items),
	})
}

// saveImage writes the upload under the configured directory with a fresh
// name, so concurrent uploads of equally named files cannot clobber each
// other.
func (h *Handler) saveImage(file io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	path := filepath.Join(h.uploadDir, uuid.NewString()+ext)

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}
