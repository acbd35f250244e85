package repository

import (
	"context"

	"pharmacy/internal/domain/model"

	"gorm.io/gorm"
)

type BillItemGormRepository struct {
	db *gorm.DB
}

func NewBillItemGormRepository(db *gorm.DB) *BillItemGormRepository {
	return &BillItemGormRepository{db: db}
}

// 明細の一括作成。提出された順序を保つ
func (r *BillItemGormRepository) CreateBulk(ctx context.Context, billID int64, items []model.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]model.BillItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, model.BillItem{
			BillID:    billID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	return r.db.WithContext(ctx).Create(&rows).Error
}
