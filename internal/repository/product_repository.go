package repository

import (
	"context"
	"errors"

	"pharmacy/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
// Updateは部分更新（渡されたカラムだけ触る）。
type ProductRepository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}
