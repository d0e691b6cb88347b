package model

type Stylist struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Specialty string `db:"specialty" json:"specialty"`
}

type StylistRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Specialty string `json:"specialty" binding:"required,max=100"`
}
