package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"pharmacy/internal/domain/model"
	repo "pharmacy/internal/repository"
)

// BillNo用のID発行。テストで差し替える
type IDGenerator interface {
	NewID() string
}

type BillUsecase struct {
	billRepo      repo.BillRepository
	productRepo   repo.ProductRepository
	inventoryRepo repo.InventoryRepository
	tx            repo.TransactionManager
	idGen         IDGenerator
	clock         Clock
}

// DI
func NewBillUsecase(
	billRepo repo.BillRepository,
	productRepo repo.ProductRepository,
	inventoryRepo repo.InventoryRepository,
	tx repo.TransactionManager,
	idGen IDGenerator,
	clock Clock,
) *BillUsecase {
	return &BillUsecase{
		billRepo:      billRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		tx:            tx,
		idGen:         idGen,
		clock:         clock,
	}
}

type SubmitBillItem struct {
	ProductID int64
	Quantity  int64
	// 明細の合計金額。呼び出し側の値をそのまま保存する
	Price float64
}

type SubmitBillInput struct {
	CustomerName string
	Items        []SubmitBillItem
	// 合計金額は呼び出し側の申告値。サーバー側で再計算しない
	TotalAmount   float64
	PaymentMethod string
}

// 請求書を登録する。明細を提出順に1件ずつ処理して在庫を減らす。
// 途中の明細で失敗した場合、それより前の減算は戻さない（ロールバックしない）。
// 在庫の減算自体は商品ごとの条件付き更新なので、同一商品への同時送信で
// 在庫がマイナスになることはない。
func (u *BillUsecase) SubmitBill(ctx context.Context, in SubmitBillInput) (model.Bill, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return model.Bill{}, NewHTTPError(http.StatusBadRequest, "customer name required")
	}
	if len(in.Items) == 0 {
		return model.Bill{}, NewHTTPError(http.StatusBadRequest, "at least one item required")
	}
	method := model.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return model.Bill{}, NewHTTPError(http.StatusBadRequest, "invalid payment method")
	}
	for _, it := range in.Items {
		if it.ProductID <= 0 {
			return model.Bill{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
		}
		if it.Quantity < 1 {
			return model.Bill{}, NewHTTPError(http.StatusBadRequest, "quantity must be >= 1")
		}
	}

	// 在庫減算。明細単位で確定し、明細をまたぐ原子性は持たない
	for _, it := range in.Items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			return model.Bill{}, NewHTTPError(http.StatusNotFound, fmt.Sprintf("product %d not found", it.ProductID))
		}
		if err != nil {
			return model.Bill{}, NewHTTPError(http.StatusInternalServerError, err.Error())
		}

		ok, err := u.inventoryRepo.DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
		if err != nil {
			return model.Bill{}, NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !ok {
			return model.Bill{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("insufficient quantity for product %s", p.Name))
		}
	}

	now := u.clock.Now()
	bill := model.Bill{
		BillNo:        u.idGen.NewID(),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		TotalAmount:   in.TotalAmount,
		PaymentMethod: method,
		Date:          now,
	}

	items := make([]model.BillItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, model.BillItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	// 請求書本体と明細の作成だけはひとつのTxにまとめる
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		billID, err := r.Bills().Create(ctx, bill)
		if err != nil {
			return err
		}
		if err := r.BillItems().CreateBulk(ctx, billID, items); err != nil {
			return err
		}

		bill.ID = billID
		for i := range items {
			items[i].BillID = billID
		}
		return nil
	})
	if err != nil {
		return model.Bill{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// 作成直後は商品名を解決しない（ProductIDのまま返す）
	bill.Items = items
	return bill, nil
}

func (u *BillUsecase) ListBills(ctx context.Context) ([]model.Bill, error) {
	bills, err := u.billRepo.FindAll(ctx)
	if err != nil {
		return []model.Bill{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return bills, nil
}

func (u *BillUsecase) GetBill(ctx context.Context, id int64) (model.Bill, error) {
	if id <= 0 {
		return model.Bill{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	b, err := u.billRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Bill{}, NewHTTPError(http.StatusNotFound, "bill not found")
	}
	if err != nil {
		return model.Bill{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return b, nil
}

// 請求書削除。参照していた商品の在庫は戻さない
func (u *BillUsecase) DeleteBill(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.billRepo.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "bill not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return nil
}
