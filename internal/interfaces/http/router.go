package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/maizepoint-api/internal/application/inventory"
	"github.com/jhoicas/maizepoint-api/internal/application/orders"
	"github.com/jhoicas/maizepoint-api/internal/application/ports"
	"github.com/jhoicas/maizepoint-api/internal/application/usecase"
	"github.com/jhoicas/maizepoint-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	StockUC       *inventory.StockUseCase
	FulfillmentUC *orders.FulfillmentUseCase
	StockReport   ports.StockReportRenderer
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	backOffice := RequireRole(entity.RoleAdmin, entity.RoleStaff)
	anyRole := RequireRole(entity.RoleAdmin, entity.RoleStaff, entity.RoleCustomer)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", anyRole, productHandler.List)
	products.Get("/:id", anyRole, productHandler.GetByID)
	products.Patch("/:id/availability", backOffice, productHandler.SetAvailability)

	// Orders: el caso de uso limita a cada cliente a sus propias órdenes
	ordersGroup := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.FulfillmentUC)
	ordersGroup.Post("/", RequireRole(entity.RoleCustomer), orderHandler.Create)
	ordersGroup.Get("/", anyRole, orderHandler.List)
	ordersGroup.Get("/:id", anyRole, orderHandler.GetByID)
	ordersGroup.Post("/:id/approve", backOffice, orderHandler.Approve)
	ordersGroup.Post("/:id/cancel", anyRole, orderHandler.Cancel)
	ordersGroup.Patch("/:id/status", backOffice, orderHandler.UpdateStatus)

	// Stock (las rutas fijas antes de /:id)
	stock := api.Group("/stock", backOffice)
	stockHandler := NewStockHandler(deps.StockUC, deps.StockReport)
	stock.Get("/alerts", stockHandler.Alerts)
	stock.Get("/movements", stockHandler.ListMovements)
	stock.Get("/report.pdf", stockHandler.Report)
	stock.Post("/receive", stockHandler.Receive)
	stock.Post("/deduct", stockHandler.Deduct)
	stock.Post("/transfer", stockHandler.Transfer)
	stock.Get("/", stockHandler.List)
	stock.Get("/:id", stockHandler.GetByID)
}
