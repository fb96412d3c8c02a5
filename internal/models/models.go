package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending        = "Pending"
	StatusProcessing     = "Processing"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
)

var OrderStatuses = []string{StatusPending, StatusProcessing, StatusOutForDelivery, StatusDelivered}

func ValidStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

type Medicine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	Name         string    `gorm:"not null;index"         json:"name"`
	Category     string    `gorm:"not null"               json:"category"`
	Price        float64   `gorm:"not null"               json:"price"`
	Quantity     int       `gorm:"not null"               json:"quantity"`
	Expiry       time.Time `gorm:"not null"               json:"expiry"`
	Manufacturer string    `gorm:"not null"               json:"manufacturer"`
	CreatedAt    time.Time `gorm:"index"                  json:"createdAt"`
	UpdatedAt    time.Time `                              json:"updatedAt"`
}

func (m *Medicine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (Medicine) TableName() string {
	return "medicines"
}

// OrderItem is a snapshot of the medicine at checkout time. MedicineID is a
// weak reference and may dangle after the medicine is deleted.
type OrderItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"          json:"-"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index;not null"      json:"-"`
	Position   int        `gorm:"not null"                      json:"-"`
	MedicineID *uuid.UUID `gorm:"type:uuid"                     json:"medicineId,omitempty"`
	Name       string     `gorm:"not null"                      json:"name"`
	Price      float64    `gorm:"not null"                      json:"price"`
	Quantity   int        `gorm:"not null"                      json:"quantity"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (OrderItem) TableName() string {
	return "order_items"
}

type Order struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"                json:"id"`
	Customer  string      `gorm:"not null;index"                      json:"customer"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64     `gorm:"not null"                            json:"total"`
	Status    string      `gorm:"not null;default:Pending"            json:"status"`
	Notes     string      `gorm:"not null;default:''"                 json:"notes"`
	Date      time.Time   `gorm:"not null"                            json:"date"`
	CreatedAt time.Time   `gorm:"index"                               json:"createdAt"`
	UpdatedAt time.Time   `                                           json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.Date.IsZero() {
		o.Date = time.Now().UTC()
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Name         string    `gorm:"not null;default:Admin"    json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Phone        string    `gorm:"not null;default:''"       json:"phone"`
	Role         string    `gorm:"not null;default:Super Admin" json:"role"`
	CreatedAt    time.Time `                                 json:"createdAt"`
	UpdatedAt    time.Time `                                 json:"updatedAt"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Name == "" {
		a.Name = "Admin"
	}
	if a.Role == "" {
		a.Role = "Super Admin"
	}
	return nil
}

func (Admin) TableName() string {
	return "admins"
}

type Customer struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Name         string    `gorm:"not null;default:''"       json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"      json:"email"`
	Phone        string    `gorm:"not null;default:''"       json:"phone"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	CreatedAt    time.Time `                                 json:"createdAt"`
	UpdatedAt    time.Time `                                 json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Customer) TableName() string {
	return "customers"
}

func All() []any {
	return []any{&Medicine{}, &Order{}, &OrderItem{}, &Admin{}, &Customer{}}
}
