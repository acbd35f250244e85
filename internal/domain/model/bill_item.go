package model

// 明細は商品をIDで弱参照する。商品名は読み出し時にだけ解決する
// （商品が消えていた場合は "Unknown" になる）。
type BillItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	BillID    int64 `gorm:"not null;index" json:"bill_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	// 保存されない表示用フィールド
	ProductName string `gorm:"-" json:"product_name,omitempty"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	// 明細の合計金額（単価ではない）。送信された値をそのまま保存する
	Price float64 `gorm:"not null" json:"price"`
}
