package model

import (
	"time"

	"gorm.io/gorm"
)

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"  // submitted, awaiting review
	QuoteStatusReviewed QuoteStatus = "reviewed" // seen by sales
	QuoteStatusQuoted   QuoteStatus = "quoted"   // pricing sent back to the customer
	QuoteStatusClosed   QuoteStatus = "closed"   // finished or expired
)

// Quote is a request-for-quote submitted from a user's cart. Items are
// inserted in a separate batch after the parent row; a failed batch leaves
// the parent without items (no rollback, retries create a new quote).
type Quote struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Status    QuoteStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Notes     string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User  User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Quote) TableName() string {
	return "quotes"
}

type QuoteItem struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	QuoteID            uint           `gorm:"not null;index" json:"quote_id"`
	ProductID          uint           `gorm:"not null;index" json:"product_id"`
	Quantity           int            `gorm:"not null" json:"quantity"`
	CustomizationNotes string         `gorm:"type:text" json:"customization_notes"`
	SelectedColor      string         `json:"selected_color"`
	CreatedAt          time.Time      `json:"created_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Quote   Quote   `gorm:"foreignKey:QuoteID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (QuoteItem) TableName() string {
	return "quote_items"
}
