package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo"
)

const (
	LowStockThreshold = 10
	MaxActivities     = 5

	maxLowStockAlerts = 3
	maxNewItemAlerts  = 2
)

const (
	ActivityLowStock = "low-stock"
	ActivityNewItem  = "new-item"
	ActivityExpired  = "expired"
)

type Stats struct {
	TotalStock    int64  `json:"totalStock"`
	LowStockCount int64  `json:"lowStockCount"`
	ExpiredCount  int64  `json:"expiredCount"`
	TotalValue    string `json:"totalValue"`
}

type Activity struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"timeAgo"`
	Icon      string    `json:"icon"`
}

// InventoryService recomputes everything from a fresh catalog read on each
// call. Nothing is cached.
type InventoryService struct {
	Repo *repo.GormRepo
	Now  func() time.Time
}

func (s *InventoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *InventoryService) Stats(ctx context.Context) (Stats, error) {
	meds, err := s.Repo.ListMedicines(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(meds, s.now()), nil
}

func (s *InventoryService) Activity(ctx context.Context) ([]Activity, error) {
	meds, err := s.Repo.ListMedicines(ctx)
	if err != nil {
		return nil, err
	}
	return BuildActivityFeed(meds, s.now()), nil
}

func ComputeStats(meds []models.Medicine, now time.Time) Stats {
	st := Stats{TotalStock: int64(len(meds))}
	total := decimal.Zero
	for _, m := range meds {
		if m.Quantity < LowStockThreshold {
			st.LowStockCount++
		}
		if m.Expiry.Before(now) {
			st.ExpiredCount++
		}
		total = total.Add(decimal.NewFromFloat(m.Price).Mul(decimal.NewFromInt(int64(m.Quantity))))
	}
	st.TotalValue = total.StringFixed(2)
	return st
}

// BuildActivityFeed expects meds sorted by createdAt descending. The expiry
// alert names the newest-created expired record, not the most overdue one.
func BuildActivityFeed(meds []models.Medicine, now time.Time) []Activity {
	activities := make([]Activity, 0, maxLowStockAlerts+maxNewItemAlerts+1)

	low := 0
	for _, m := range meds {
		if low == maxLowStockAlerts {
			break
		}
		if m.Quantity > 0 && m.Quantity < LowStockThreshold {
			ts := m.UpdatedAt
			if ts.IsZero() {
				ts = m.CreatedAt
			}
			activities = append(activities, Activity{
				Type:      ActivityLowStock,
				Title:     "Low Stock Alert",
				Message:   fmt.Sprintf("%s is below threshold.", m.Name),
				Detail:    fmt.Sprintf("%d units left", m.Quantity),
				Timestamp: ts,
				Icon:      "alert",
			})
			low++
		}
	}

	for i := 0; i < len(meds) && i < maxNewItemAlerts; i++ {
		m := meds[i]
		activities = append(activities, Activity{
			Type:      ActivityNewItem,
			Title:     "New Item Added",
			Message:   fmt.Sprintf("%s added to inventory.", m.Name),
			Detail:    fmt.Sprintf("%d units", m.Quantity),
			Timestamp: m.CreatedAt,
			TimeAgo:   TimeAgo(m.CreatedAt, now),
			Icon:      "package",
		})
	}

	for _, m := range meds {
		if m.Expiry.Before(now) {
			activities = append(activities, Activity{
				Type:      ActivityExpired,
				Title:     "Expiry Alert",
				Message:   fmt.Sprintf("%s has expired.", m.Name),
				Detail:    "Requires attention",
				Timestamp: m.Expiry,
				Icon:      "bell",
			})
			break
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > MaxActivities {
		activities = activities[:MaxActivities]
	}
	for i := range activities {
		if activities[i].TimeAgo == "" {
			activities[i].TimeAgo = TimeAgo(activities[i].Timestamp, now)
		}
	}
	return activities
}

// TimeAgo buckets the elapsed time into whole minutes, hours or days,
// always rounding down.
func TimeAgo(ts, now time.Time) string {
	minutes := int64(math.Floor(now.Sub(ts).Minutes()))
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes < 1440:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dd", minutes/1440)
	}
}
