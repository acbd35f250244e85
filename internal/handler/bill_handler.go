package handler

import (
	"net/http"
	"strconv"

	"pharmacy/internal/config"
	"pharmacy/internal/middleware"
	"pharmacy/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BillHandler struct {
	uc *usecase.BillUsecase
}

func NewBillHandler(uc *usecase.BillUsecase) *BillHandler {
	return &BillHandler{uc: uc}
}

type BillItemRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

type BillCreateRequest struct {
	CustomerName  string            `json:"customer_name"`
	Items         []BillItemRequest `json:"items"`
	TotalAmount   float64           `json:"total_amount"`
	PaymentMethod string            `json:"payment_method"`
}

func (h *BillHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/bills")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.DELETE("/:id", h.remove)
}

func (h *BillHandler) list(c echo.Context) error {
	out, err := h.uc.ListBills(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BillHandler) create(c echo.Context) error {
	var req BillCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	items := make([]usecase.SubmitBillItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.SubmitBillItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	out, err := h.uc.SubmitBill(c.Request().Context(), usecase.SubmitBillInput{
		CustomerName:  req.CustomerName,
		Items:         items,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *BillHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetBill(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *BillHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteBill(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "bill deleted successfully"})
}
