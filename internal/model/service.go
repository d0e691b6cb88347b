package model

import "github.com/shopspring/decimal"

// Service is a priced salon service, e.g. a haircut.
type Service struct {
	ID    int64           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

type ServiceRequest struct {
	Name  string          `json:"name" binding:"required,max=100"`
	Price decimal.Decimal `json:"price" binding:"money"`
}
