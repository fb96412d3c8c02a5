package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Number accepts a JSON number or a numeric string, as HTML forms send both.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("empty number")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		return n.set(f)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	return n.set(f)
}

// ParseFloat takes "Inf" and "NaN"; neither can be stored or encoded back.
func (n *Number) set(f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Errorf("number must be finite")
	}
	*n = Number(f)
	return nil
}

type MedicineRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Price        *Number `json:"price"`
	Quantity     *Number `json:"quantity"`
	Expiry       *string `json:"expiry"`
	Manufacturer *string `json:"manufacturer"`
}

var expiryLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

func ParseExpiry(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid expiry date %q", s)
}

type SearchResponse struct {
	Total     int64 `json:"total"`
	Medicines any   `json:"medicines"`
}

type UpdateOrderRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type OrderItemRequest struct {
	MedicineID *uuid.UUID `json:"medicineId"`
	Name       string     `json:"name"`
	Price      Number     `json:"price"`
	Quantity   Number     `json:"quantity"`
}

type CreateOrderRequest struct {
	Customer string             `json:"customer"`
	Items    []OrderItemRequest `json:"items"`
	Total    Number             `json:"total"`
	Notes    string             `json:"notes"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Role            *string `json:"role"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

type UserResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

type LoginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}
