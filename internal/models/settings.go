package models

import "time"

// StoreSettings is the per-store configuration controlling discount
// percentages, order tags, and single/double draft-order mode. Exactly one
// row exists per shop; it is created with zero-value defaults on first read.
//
// Double mode only takes effect when both DiscountA and DiscountB are
// strictly positive; otherwise the composer silently degrades to single mode.
type StoreSettings struct {
	ID                  uint      `gorm:"primaryKey" json:"-"`
	Shop                string    `gorm:"uniqueIndex;not null;type:varchar(255)" json:"shop"`
	DoubleOrdersEnabled bool      `json:"doubleOrdersEnabled"`
	DiscountA           float64   `json:"discountA"`
	DiscountB           float64   `json:"discountB"`
	TagA                string    `gorm:"type:varchar(255)" json:"tagA"`
	TagB                string    `gorm:"type:varchar(255)" json:"tagB"`
	SingleDiscount      float64   `json:"singleDiscount"`
	SingleTag           string    `gorm:"type:varchar(255)" json:"singleTag"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}

// DashboardData is the read-only aggregation served to the admin UI.
// Every field degrades to its zero value when the upstream read fails.
type DashboardData struct {
	ThemeID         int64         `json:"themeId,omitempty"`
	ThemeName       string        `json:"themeName,omitempty"`
	DraftOrderCount int           `json:"draftOrderCount"`
	Settings        StoreSettings `json:"settings"`
}
