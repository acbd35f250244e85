package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pharmacy/internal/domain/model"
	repo "pharmacy/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 時刻の供給元。テストで差し替える
type Clock interface {
	Now() time.Time
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	clock       Clock
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, clock Clock) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		clock:       clock,
	}
}

// 商品一覧と期限間近リストをまとめて返す
type ProductListOutput struct {
	Products         []model.Product `json:"products"`
	ExpiringProducts []model.Product `json:"expiring_products"`
}

// 全商品に加えて、thresholdDays日以内に期限が切れる商品を抜き出して返す。
// 期限間近の判定窓は [now, now+threshold] の両端含み
func (u *ProductUsecase) ListProducts(ctx context.Context, thresholdDays int) (ProductListOutput, error) {
	if thresholdDays <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid expiry_threshold")
	}

	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := u.clock.Now()
	limit := now.Add(time.Duration(thresholdDays) * 24 * time.Hour)

	expiring := make([]model.Product, 0)
	for _, p := range products {
		if !p.ExpiryDate.Before(now) && !p.ExpiryDate.After(limit) {
			expiring = append(expiring, p)
		}
	}

	return ProductListOutput{
		Products:         products,
		ExpiringProducts: expiring,
	}, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return p, nil
}

type CreateProductInput struct {
	Name         string
	Description  string
	Price        float64
	Quantity     int64
	Category     string
	ExpiryDate   time.Time
	Manufacturer string
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "description required")
	}
	if in.Price < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if strings.TrimSpace(in.Category) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "category required")
	}
	if in.ExpiryDate.IsZero() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "expiry date required")
	}
	if strings.TrimSpace(in.Manufacturer) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "manufacturer required")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     in.Quantity,
		Category:     strings.TrimSpace(in.Category),
		ExpiryDate:   in.ExpiryDate,
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		CreatedAt:    u.clock.Now(),
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return p, nil
}

// 部分更新の入力。nilのフィールドは触らない
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *float64
	Quantity     *int64
	Category     *string
	ExpiryDate   *time.Time
	Manufacturer *string
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	fields := map[string]interface{}{}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "name required")
		}
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		fields["price"] = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return model.Product{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
		}
		fields["quantity"] = *in.Quantity
	}
	if in.Category != nil {
		fields["category"] = strings.TrimSpace(*in.Category)
	}
	if in.ExpiryDate != nil {
		fields["expiry_date"] = *in.ExpiryDate
	}
	if in.Manufacturer != nil {
		fields["manufacturer"] = strings.TrimSpace(*in.Manufacturer)
	}

	if len(fields) == 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	p, err := u.productRepo.Update(ctx, id, fields)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return p, nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.productRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return nil
}
