package repository

import (
	"context"

	repo "pharmacy/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	bills     repo.BillRepository
	billItems repo.BillItemRepository
	products  repo.ProductRepository
	inventory repo.InventoryRepository
}

func (r *txReposGorm) Bills() repo.BillRepository          { return r.bills }
func (r *txReposGorm) BillItems() repo.BillItemRepository  { return r.billItems }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository { return r.inventory }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			bills:     NewBillGormRepository(tx),
			billItems: NewBillItemGormRepository(tx),
			products:  NewProductGormRepository(tx),
			inventory: NewInventoryGormRepository(tx),
		}
		return fn(r)
	})
}
