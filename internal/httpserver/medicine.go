package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/internal/service"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
)

const medicineNotFound = "Medicine not found"

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListMedicines(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.list")

	meds, err := h.Svc.List(ctx)
	if err != nil {
		return serverError(l, "list_medicines_error", "Error fetching medicines", err)
	}
	return c.JSON(http.StatusOK, meds)
}

func (h *CatalogHTTP) GetMedicine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.get")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badID(l, "get_medicine_error", err)
	}

	med, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_medicine_error", err, medicineNotFound, "Error fetching medicine")
	}
	return c.JSON(http.StatusOK, med)
}

func (h *CatalogHTTP) CreateMedicine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.create")

	var req transport.MedicineRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_medicine_error", err)
	}

	med, err := h.Svc.Create(ctx, req)
	if err != nil {
		return fail(l, "create_medicine_error", err, medicineNotFound, "Error adding medicine")
	}

	l.Info("create_medicine_success", "medicine_id", med.ID.String())
	return c.JSON(http.StatusCreated, echo.Map{"message": "Medicine added successfully", "medicine": med})
}

func (h *CatalogHTTP) UpdateMedicine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.update")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badID(l, "update_medicine_error", err)
	}

	var req transport.MedicineRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_medicine_error", err)
	}

	med, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "update_medicine_error", err, medicineNotFound, "Error updating medicine")
	}

	l.Info("update_medicine_success", "medicine_id", med.ID.String())
	return c.JSON(http.StatusOK, echo.Map{"message": "Medicine updated successfully", "medicine": med})
}

func (h *CatalogHTTP) DeleteMedicine(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.delete")

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badID(l, "delete_medicine_error", err)
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_medicine_error", err, medicineNotFound, "Error deleting medicine")
	}

	l.Info("delete_medicine_success", "medicine_id", id.String())
	return c.JSON(http.StatusOK, echo.Map{"message": "Medicine deleted successfully"})
}

func (h *CatalogHTTP) SearchMedicines(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "medicine.search")

	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))

	total, meds, err := h.Svc.Search(ctx, c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_medicines_error", err, "", "Error searching medicines")
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Medicines: meds})
}
