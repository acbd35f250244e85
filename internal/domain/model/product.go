package model

import "time"

type Product struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Price        float64   `gorm:"not null" json:"price"`
	Quantity     int64     `gorm:"not null;default:0" json:"quantity"`
	Category     string    `gorm:"type:varchar(100);not null" json:"category"`
	ExpiryDate   time.Time `gorm:"not null" json:"expiry_date"`
	Manufacturer string    `gorm:"type:varchar(255);not null" json:"manufacturer"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
