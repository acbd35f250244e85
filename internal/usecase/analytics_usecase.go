package usecase

import (
	"context"
	"net/http"
	"sort"
	"time"

	"pharmacy/internal/domain/model"
	repo "pharmacy/internal/repository"
)

const (
	// 在庫僅少とみなす閾値
	lowStockThreshold = 10

	// 期限間近とみなす窓
	expiringSoonWindow = 30 * 24 * time.Hour

	// 売れ筋の表示件数
	topProductsLimit = 5
)

type ProductSales struct {
	Name         string `json:"name"`
	QuantitySold int64  `json:"quantity_sold"`
}

type DateSales struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type AnalyticsReport struct {
	TotalSales     float64         `json:"total_sales"`
	BillCount      int             `json:"bill_count"`
	InventoryValue float64         `json:"inventory_value"`
	TopProducts    []ProductSales  `json:"top_products"`
	LowStock       []model.Product `json:"low_stock"`
	ExpiringSoon   []model.Product `json:"expiring_soon"`
	SalesByDate    []DateSales     `json:"sales_by_date"`
}

type AnalyticsUsecase struct {
	billRepo    repo.BillRepository
	productRepo repo.ProductRepository
	clock       Clock
}

// DI
func NewAnalyticsUsecase(billRepo repo.BillRepository, productRepo repo.ProductRepository, clock Clock) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		billRepo:    billRepo,
		productRepo: productRepo,
		clock:       clock,
	}
}

// 全請求書（商品名解決済み）と全商品を読んで集計する。保存はしない
func (u *AnalyticsUsecase) Report(ctx context.Context) (AnalyticsReport, error) {
	bills, err := u.billRepo.FindAll(ctx)
	if err != nil {
		return AnalyticsReport{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		return AnalyticsReport{}, NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return BuildAnalyticsReport(bills, products, u.clock.Now()), nil
}

// BuildAnalyticsReport は入力の純関数。副作用なし。
// billsの明細は商品名解決済みであること（未解決分は "Unknown" として集計される）。
func BuildAnalyticsReport(bills []model.Bill, products []model.Product, now time.Time) AnalyticsReport {
	report := AnalyticsReport{
		BillCount:    len(bills),
		TopProducts:  []ProductSales{},
		LowStock:     []model.Product{},
		ExpiringSoon: []model.Product{},
		SalesByDate:  []DateSales{},
	}

	// 売上合計と日別売上。日付キーは最初に現れた順のまま返す
	dateIndex := map[string]int{}
	for _, b := range bills {
		report.TotalSales += b.TotalAmount

		key := b.Date.Local().Format("2006-01-02")
		if idx, ok := dateIndex[key]; ok {
			report.SalesByDate[idx].Total += b.TotalAmount
		} else {
			dateIndex[key] = len(report.SalesByDate)
			report.SalesByDate = append(report.SalesByDate, DateSales{Date: key, Total: b.TotalAmount})
		}
	}

	// 商品名ごとの販売数量。解決できなかった参照は "Unknown" に積む
	salesIndex := map[string]int{}
	sales := []ProductSales{}
	for _, b := range bills {
		for _, it := range b.Items {
			name := it.ProductName
			if name == "" {
				name = "Unknown"
			}
			if idx, ok := salesIndex[name]; ok {
				sales[idx].QuantitySold += it.Quantity
			} else {
				salesIndex[name] = len(sales)
				sales = append(sales, ProductSales{Name: name, QuantitySold: it.Quantity})
			}
		}
	}
	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].QuantitySold > sales[j].QuantitySold
	})
	if len(sales) > topProductsLimit {
		sales = sales[:topProductsLimit]
	}
	report.TopProducts = sales

	for _, p := range products {
		report.InventoryValue += p.Price * float64(p.Quantity)

		if p.Quantity < lowStockThreshold {
			report.LowStock = append(report.LowStock, p)
		}

		// 期限が未来、かつ30日未満先のものだけ
		until := p.ExpiryDate.Sub(now)
		if until > 0 && until < expiringSoonWindow {
			report.ExpiringSoon = append(report.ExpiringSoon, p)
		}
	}

	return report
}
