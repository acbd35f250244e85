package repository

import (
	"context"

	"pharmacy/internal/domain/model"
)

// 請求書の永続化の約束。
// FindAll / FindByID は明細の商品名を解決（populate）した状態で返す。
type BillRepository interface {
	FindAll(ctx context.Context) ([]model.Bill, error)
	FindByID(ctx context.Context, id int64) (model.Bill, error)

	Create(ctx context.Context, b model.Bill) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// 請求書明細の永続化の約束。
type BillItemRepository interface {
	CreateBulk(ctx context.Context, billID int64, items []model.BillItem) error
}
