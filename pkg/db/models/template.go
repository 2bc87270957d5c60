package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Template is a shared catalog entry. Inactive templates are hidden from
// selection but never deleted; used_by is maintained by the server.
type Template struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string          `gorm:"column:name;not null"`
	Category  string          `gorm:"column:category;not null"`
	IsFree    bool            `gorm:"column:is_free;not null;default:true"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);column:price;not null;default:0"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	UsedBy    int64           `gorm:"column:used_by;not null;default:0"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
