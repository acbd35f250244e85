package repository

import (
	"context"
	"errors"

	"pharmacy/internal/domain/model"
	repo "pharmacy/internal/repository"

	"gorm.io/gorm"
)

type BillGormRepository struct {
	db *gorm.DB
}

func NewBillGormRepository(db *gorm.DB) *BillGormRepository {
	return &BillGormRepository{db: db}
}

// 全請求書を明細つき（商品名解決済み）で返す
func (r *BillGormRepository) FindAll(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	if err := r.db.WithContext(ctx).Order("id asc").Find(&bills).Error; err != nil {
		return []model.Bill{}, err
	}
	if len(bills) == 0 {
		return []model.Bill{}, nil
	}

	billIDs := make([]int64, 0, len(bills))
	for _, b := range bills {
		billIDs = append(billIDs, b.ID)
	}

	var items []model.BillItem
	if err := r.db.WithContext(ctx).
		Where("bill_id IN ?", billIDs).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.Bill{}, err
	}

	if err := r.resolveProductNames(ctx, items); err != nil {
		return []model.Bill{}, err
	}

	byBill := make(map[int64][]model.BillItem, len(bills))
	for _, it := range items {
		byBill[it.BillID] = append(byBill[it.BillID], it)
	}
	for i := range bills {
		bills[i].Items = byBill[bills[i].ID]
		if bills[i].Items == nil {
			bills[i].Items = []model.BillItem{}
		}
	}

	return bills, nil
}

// IDで請求書を明細つき（商品名解決済み）で取得
func (r *BillGormRepository) FindByID(ctx context.Context, id int64) (model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Bill{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Bill{}, err
	}

	var items []model.BillItem
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", id).
		Order("id asc").
		Find(&items).Error; err != nil {
		return model.Bill{}, err
	}

	if err := r.resolveProductNames(ctx, items); err != nil {
		return model.Bill{}, err
	}

	b.Items = items
	if b.Items == nil {
		b.Items = []model.BillItem{}
	}
	return b, nil
}

// 請求書の作成（明細は BillItemRepository で別途作成）
func (r *BillGormRepository) Create(ctx context.Context, b model.Bill) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return 0, err
	}
	return b.ID, nil
}

// 請求書削除。明細も一緒に消す（在庫は戻さない）
func (r *BillGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Bill{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}

	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", id).
		Delete(&model.BillItem{}).Error; err != nil {
		return err
	}
	return nil
}

// 明細のProductIDから現在の商品名を引いて埋める。
// 商品が削除されていたら "Unknown"
func (r *BillGormRepository) resolveProductNames(ctx context.Context, items []model.BillItem) error {
	if len(items) == 0 {
		return nil
	}

	productIDs := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			productIDs = append(productIDs, it.ProductID)
		}
	}

	var products []model.Product
	if err := r.db.WithContext(ctx).
		Select("id", "name").
		Where("id IN ?", productIDs).
		Find(&products).Error; err != nil {
		return err
	}

	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	for i := range items {
		if name, ok := names[items[i].ProductID]; ok {
			items[i].ProductName = name
		} else {
			items[i].ProductName = "Unknown"
		}
	}
	return nil
}
