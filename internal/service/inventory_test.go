package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo/repotest"
)

var now = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func med(name string, qty int, price float64, expiry, created time.Time) models.Medicine {
	return models.Medicine{
		Name:         name,
		Category:     "General",
		Price:        price,
		Quantity:     qty,
		Expiry:       expiry,
		Manufacturer: "Acme",
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestComputeStats_Empty(t *testing.T) {
	t.Parallel()

	st := ComputeStats(nil, now)
	assert.Equal(t, Stats{TotalValue: "0.00"}, st)
}

func TestComputeStats_OneExpiredLowStockRecord(t *testing.T) {
	t.Parallel()

	meds := []models.Medicine{med("Aspirin", 5, 10, now.AddDate(0, 0, -1), now.Add(-time.Hour))}
	st := ComputeStats(meds, now)
	assert.Equal(t, Stats{TotalStock: 1, LowStockCount: 1, ExpiredCount: 1, TotalValue: "50.00"}, st)

	feed := BuildActivityFeed(meds, now)
	types := make([]string, 0, len(feed))
	for _, a := range feed {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, ActivityLowStock)
	assert.Contains(t, types, ActivityExpired)
	assert.Contains(t, types, ActivityNewItem)
	assert.Len(t, feed, 3)
}

func TestComputeStats_TotalValueRounding(t *testing.T) {
	t.Parallel()

	future := now.AddDate(1, 0, 0)
	meds := []models.Medicine{
		med("a", 3, 0.1, future, now),
		med("b", 1, 0.2, future, now),
		med("c", 7, 1.005, future, now),
	}
	st := ComputeStats(meds, now)
	assert.Equal(t, "7.54", st.TotalValue)
}

func TestLowStock_StatsAndFeedThresholdsDiffer(t *testing.T) {
	t.Parallel()

	future := now.AddDate(1, 0, 0)
	meds := []models.Medicine{
		med("zero", 0, 1, future, now.Add(-1*time.Minute)),
		med("negative", -2, 1, future, now.Add(-2*time.Minute)),
		med("nine", 9, 1, future, now.Add(-3*time.Minute)),
		med("ten", 10, 1, future, now.Add(-4*time.Minute)),
	}

	st := ComputeStats(meds, now)
	assert.EqualValues(t, 3, st.LowStockCount)

	var low []string
	for _, a := range BuildActivityFeed(meds, now) {
		if a.Type == ActivityLowStock {
			low = append(low, a.Message)
		}
	}
	assert.Equal(t, []string{"nine is below threshold."}, low)
}

func TestActivityFeed_CapAndOrder(t *testing.T) {
	t.Parallel()

	past := now.AddDate(0, 0, -3)
	meds := make([]models.Medicine, 0, 8)
	for i := 0; i < 8; i++ {
		meds = append(meds, med("m", 2, 1, past, now.Add(-time.Duration(i+1)*time.Hour)))
	}

	feed := BuildActivityFeed(meds, now)
	require.Len(t, feed, MaxActivities)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].Timestamp.After(feed[i-1].Timestamp), "entry %d out of order", i)
	}
	for _, a := range feed {
		assert.NotEmpty(t, a.TimeAgo)
	}
}

func TestActivityFeed_ExpiryPicksNewestCreated(t *testing.T) {
	t.Parallel()

	meds := []models.Medicine{
		med("fresh", 50, 1, now.AddDate(1, 0, 0), now.Add(-1*time.Hour)),
		med("newer-expired", 50, 1, now.AddDate(0, 0, -1), now.Add(-2*time.Hour)),
		med("most-overdue", 50, 1, now.AddDate(-2, 0, 0), now.Add(-3*time.Hour)),
	}

	var expired []Activity
	for _, a := range BuildActivityFeed(meds, now) {
		if a.Type == ActivityExpired {
			expired = append(expired, a)
		}
	}
	require.Len(t, expired, 1)
	assert.Equal(t, "newer-expired has expired.", expired[0].Message)
	assert.Equal(t, "Requires attention", expired[0].Detail)
	assert.Equal(t, "bell", expired[0].Icon)
	assert.Equal(t, "1d", expired[0].TimeAgo)
}

func TestActivityFeed_LowStockUsesUpdatedAt(t *testing.T) {
	t.Parallel()

	m := med("Aspirin", 4, 1, now.AddDate(1, 0, 0), now.Add(-48*time.Hour))
	m.UpdatedAt = now.Add(-90 * time.Minute)

	feed := BuildActivityFeed([]models.Medicine{m}, now)
	require.Len(t, feed, 2)
	assert.Equal(t, ActivityLowStock, feed[0].Type)
	assert.Equal(t, "4 units left", feed[0].Detail)
	assert.Equal(t, "1h", feed[0].TimeAgo)
	assert.Equal(t, ActivityNewItem, feed[1].Type)
	assert.Equal(t, "4 units", feed[1].Detail)
	assert.Equal(t, "2d", feed[1].TimeAgo)
}

func TestTimeAgo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "0m"},
		{59*time.Minute + 59*time.Second, "59m"},
		{60 * time.Minute, "1h"},
		{23*time.Hour + 59*time.Minute, "23h"},
		{24 * time.Hour, "1d"},
		{71 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now), tt.ago.String())
	}
}

func TestInventoryService_ReadsStore(t *testing.T) {
	t.Parallel()
	r := repotest.New(t)
	ctx := context.Background()

	for _, m := range []models.Medicine{
		med("a", 5, 10, now.AddDate(0, 0, -1), now.Add(-time.Hour)),
		med("b", 20, 1.5, now.AddDate(1, 0, 0), now.Add(-2*time.Hour)),
	} {
		m := m
		_, err := r.CreateMedicine(ctx, &m)
		require.NoError(t, err)
	}

	svc := &InventoryService{Repo: r, Now: func() time.Time { return now }}
	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{TotalStock: 2, LowStockCount: 1, ExpiredCount: 1, TotalValue: "80.00"}, st)

	feed, err := svc.Activity(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(feed), MaxActivities)
	assert.NotEmpty(t, feed)
}
