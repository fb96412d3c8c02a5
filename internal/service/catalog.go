package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/pharmacy/internal/models"
	"github.com/Skotchmaster/pharmacy/internal/repo"
	"github.com/Skotchmaster/pharmacy/internal/search"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
	"github.com/Skotchmaster/pharmacy/pkg/metrics"
	"github.com/Skotchmaster/pharmacy/pkg/mykafka"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Events Publisher
	Index  Indexer
}

func requiredString(v *string) (string, bool) {
	if v == nil {
		return "", false
	}
	s := strings.TrimSpace(*v)
	return s, s != ""
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// wholeQuantity keeps stock counts inside int32 so they survive the round-trip
// through the integer column.
func wholeQuantity(f float64) (int, bool) {
	if !finite(f) || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// medicineFromRequest checks presence and numeric range only. Negative prices and quantities
// are accepted.
func medicineFromRequest(req transport.MedicineRequest) (models.Medicine, error) {
	name, okName := requiredString(req.Name)
	category, okCat := requiredString(req.Category)
	expiryRaw, okExp := requiredString(req.Expiry)
	manufacturer, okMan := requiredString(req.Manufacturer)
	if !okName || !okCat || !okExp || !okMan || req.Price == nil || req.Quantity == nil {
		return models.Medicine{}, fmt.Errorf("%w: all fields are required", ErrValidation)
	}

	if !finite(float64(*req.Price)) {
		return models.Medicine{}, fmt.Errorf("%w: price must be a finite number", ErrValidation)
	}
	qty, ok := wholeQuantity(float64(*req.Quantity))
	if !ok {
		return models.Medicine{}, fmt.Errorf("%w: quantity must be a whole number within range", ErrValidation)
	}
	expiry, err := transport.ParseExpiry(expiryRaw)
	if err != nil {
		return models.Medicine{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return models.Medicine{
		Name:         name,
		Category:     category,
		Price:        float64(*req.Price),
		Quantity:     qty,
		Expiry:       expiry,
		Manufacturer: manufacturer,
	}, nil
}

func (s *CatalogService) List(ctx context.Context) ([]models.Medicine, error) {
	return s.Repo.ListMedicines(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*models.Medicine, error) {
	med, err := s.Repo.GetMedicine(ctx, id)
	if err != nil {
		return nil, notFound(err, "medicine not found")
	}
	return med, nil
}

func (s *CatalogService) Create(ctx context.Context, req transport.MedicineRequest) (*models.Medicine, error) {
	in, err := medicineFromRequest(req)
	if err != nil {
		return nil, err
	}
	med, err := s.Repo.CreateMedicine(ctx, &in)
	if err != nil {
		return nil, err
	}

	metrics.RecordCatalogWrite("create")
	s.reindex(ctx, med)
	publish(ctx, s.Events, mykafka.TopicMedicine, "medicine_created", med.ID.String(), med)
	return med, nil
}

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req transport.MedicineRequest) (*models.Medicine, error) {
	in, err := medicineFromRequest(req)
	if err != nil {
		return nil, err
	}
	med, err := s.Repo.ReplaceMedicine(ctx, id, in)
	if err != nil {
		return nil, notFound(err, "medicine not found")
	}

	metrics.RecordCatalogWrite("update")
	s.reindex(ctx, med)
	publish(ctx, s.Events, mykafka.TopicMedicine, "medicine_updated", med.ID.String(), med)
	return med, nil
}

// Delete never consults orders; their items hold their own snapshot.
func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteMedicine(ctx, id); err != nil {
		return notFound(err, "medicine not found")
	}

	metrics.RecordCatalogWrite("delete")
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("index_delete_failed", "medicine_id", id.String(), "error", err)
		}
	}
	publish(ctx, s.Events, mykafka.TopicMedicine, "medicine_deleted", id.String(), nil)
	return nil
}

// Search prefers the search index and falls back to the database when the
// index is not configured or errors out.
func (s *CatalogService) Search(ctx context.Context, q string, page, size int) (int64, []models.Medicine, error) {
	q = search.Normalize(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	from, limit := search.Calculate(page, size)

	if s.Index != nil {
		total, meds, err := s.Index.Search(ctx, q, from, limit)
		if err == nil {
			return total, meds, nil
		}
		logging.FromContext(ctx).Warn("index_search_failed", "fallback", "db", "error", err)
	}
	return s.Repo.SearchMedicines(ctx, q, from, limit)
}

func (s *CatalogService) reindex(ctx context.Context, med *models.Medicine) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Upsert(ctx, med); err != nil {
		logging.FromContext(ctx).Warn("index_upsert_failed", "medicine_id", med.ID.String(), "error", err)
	}
}
