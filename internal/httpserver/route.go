package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/pkg/metrics"
	authmw "github.com/Skotchmaster/pharmacy/pkg/middleware/auth"
	"github.com/Skotchmaster/pharmacy/pkg/tokens"
)

type Deps struct {
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Dashboard *DashboardHTTP
	Orders    *OrderHTTP
	Profile   *ProfileHTTP
	JWTSecret []byte
	Ready     func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"message": "not ready", "error": err.Error()})
			}
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", metrics.Handler())

	e.POST("/admin_register", d.Auth.register(tokens.RoleAdmin))
	e.POST("/admin_login", d.Auth.login(tokens.RoleAdmin))
	e.POST("/customer_register", d.Auth.register(tokens.RoleCustomer))
	e.POST("/customer_login", d.Auth.login(tokens.RoleCustomer))

	jwtMW := authmw.JWT(d.JWTSecret)
	adminOnly := []echo.MiddlewareFunc{jwtMW, authmw.RequireRole(tokens.RoleAdmin)}

	api := e.Group("/api")

	medicines := api.Group("/medicines")
	medicines.GET("", d.Catalog.ListMedicines)
	medicines.GET("/search", d.Catalog.SearchMedicines)
	medicines.GET("/:id", d.Catalog.GetMedicine)
	medicines.POST("", d.Catalog.CreateMedicine, adminOnly...)
	medicines.PUT("/:id", d.Catalog.UpdateMedicine, adminOnly...)
	medicines.DELETE("/:id", d.Catalog.DeleteMedicine, adminOnly...)

	dashboard := api.Group("/dashboard", adminOnly...)
	dashboard.GET("/stats", d.Dashboard.Stats)
	dashboard.GET("/activity", d.Dashboard.Activity)

	orders := api.Group("/orders")
	orders.GET("", d.Orders.ListOrders, adminOnly...)
	orders.PUT("/:id", d.Orders.UpdateOrder, adminOnly...)
	orders.POST("", d.Orders.PlaceOrder, jwtMW, authmw.RequireRole(tokens.RoleCustomer, tokens.RoleAdmin))
	api.GET("/my-orders", d.Orders.MyOrders, jwtMW, authmw.RequireRole(tokens.RoleCustomer))

	profile := api.Group("/admin/profile", adminOnly...)
	profile.GET("", d.Profile.GetProfile)
	profile.PUT("", d.Profile.UpdateProfile)
}
