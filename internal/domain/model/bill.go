package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "Cash"
	PaymentMethodCard PaymentMethod = "Card"
	PaymentMethodUPI  PaymentMethod = "UPI"
)

// 支払い方法が許可された値かどうか
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

type Bill struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	BillNo        string        `gorm:"type:varchar(64);not null;uniqueIndex" json:"bill_no"`
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	Date          time.Time     `gorm:"not null" json:"date"`
	Items         []BillItem    `gorm:"-" json:"items"`
}
