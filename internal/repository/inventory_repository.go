package repository

import "context"

type InventoryRepository interface {
	// 在庫が足りるときだけ減算（quantity >= qty の条件付き1文更新）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
}
