package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"lickees/internal/analytics"
	"lickees/internal/catalog"
	"lickees/internal/excel"
	"lickees/internal/messaging"
	"lickees/internal/repository"
	"lickees/internal/service"
	"lickees/internal/settings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	svc      *service.Service
	logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger, validate: validator.New()}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Catalog lists the menu for the given filter, or for the session's saved
// filter when the query names none.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category, search := query.Get("category"), query.Get("search")
	if !query.Has("category") && !query.Has("search") {
		view := h.svc.Session()
		category, search = view.Category, view.Search
	}
	items := h.svc.Catalog(category, search)
	writeJSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"count":      len(items),
		"categories": catalog.Categories(),
	})
}

func (h *Handler) Session(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Session())
}

type navigateRequest struct {
	Screen string `json:"screen" validate:"required"`
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !h.bind(w, r, &req) {
		return
	}
	view, err := h.svc.Navigate(req.Screen)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type filterRequest struct {
	Category string `json:"category" validate:"max=32"`
	Search   string `json:"search" validate:"max=64"`
}

func (h *Handler) SelectFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if !h.bind(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.SelectFilter(req.Category, req.Search))
}

type addItemRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !h.bind(w, r, &req) {
		return
	}
	view, err := h.svc.AddToCart(req.Name)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type quantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !h.bind(w, r, &req) {
		return
	}
	view, err := h.svc.UpdateQuantity(chi.URLParam(r, "name"), req.Delta)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.RemoveFromCart(chi.URLParam(r, "name")))
}

func (h *Handler) ClearCart(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ClearCart())
}

type paymentRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required"`
}

func (h *Handler) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !h.bind(w, r, &req) {
		return
	}
	view, err := h.svc.SelectPaymentMethod(req.PaymentMethod)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	receipt, err := h.svc.Checkout(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.ListSales(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": records, "count": len(records)})
}

func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSale(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.Dashboard(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	name, err := h.svc.ExportReport(r.Context(), r.URL.Query().Get("period"), &buf)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) ShareLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.svc.ShareLink(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": link})
}

func (h *Handler) Inventory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items":     h.svc.Inventory(),
		"low_stock": h.svc.LowStock(),
	})
}

// Level arrives either as a JSON number or as the text the operator typed.
type inventoryLevelRequest struct {
	Level json.RawMessage `json:"level" validate:"max=32"`
}

func (r inventoryLevelRequest) raw() string {
	var text string
	if err := json.Unmarshal(r.Level, &text); err == nil {
		return text
	}
	if string(r.Level) == "null" {
		return ""
	}
	return string(r.Level)
}

func (h *Handler) SetInventoryLevel(w http.ResponseWriter, r *http.Request) {
	var req inventoryLevelRequest
	if !h.bind(w, r, &req) {
		return
	}
	level, err := h.svc.SetInventoryLevel(chi.URLParam(r, "name"), req.raw())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, level)
}

func (h *Handler) ImportInventoryExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	rows, err := excel.ParseInventoryRows(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.ImportInventory(rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"file_name":  header.Filename,
		"total_rows": len(rows),
		"updated":    result.Updated,
		"unmatched":  result.Unmatched,
	})
}

func (h *Handler) GetPhone(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"phone": h.svc.Phone()})
}

type phoneRequest struct {
	Phone string `json:"phone" validate:"max=32"`
}

func (h *Handler) UpdatePhone(w http.ResponseWriter, r *http.Request) {
	var req phoneRequest
	if !h.bind(w, r, &req) {
		return
	}
	phone, err := h.svc.SetPhone(req.Phone)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"phone": phone})
}

// bind decodes and validates the request body, writing a 400 on failure.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := decodeJSON(r, out); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":  "invalid request body",
				"fields": validationFields(invalid),
			})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func validationFields(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInvalidScreen),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, analytics.ErrInvalidPeriod),
		errors.Is(err, settings.ErrInvalidPhone),
		errors.Is(err, repository.ErrEmptyID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnknownItem):
		writeError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, service.ErrNotInCart):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "sale not found")
	case errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrTillBusy):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNoSettings):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, messaging.ErrNoPhone):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrStoreUnavailable):
		writeError(w, http.StatusBadGateway, service.ErrStoreUnavailable.Error())
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
