package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC     *usecase.CompanyUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	ProductUC     *usecase.ProductUseCase
	StockUC       *inventory.StockUseCase
	ReservationUC *inventory.ReservationUseCase
	SerialUC      *inventory.SerialUseCase
	QCHoldUC      *inventory.QCHoldUseCase
	PickListUC    *inventory.PickListUseCase
	AuthUC        *auth.AuthUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Solo admin y bodeguero pueden escribir inventario
	stockWriters := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", RequireRole(entity.RoleAdmin), warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", RequireRole(entity.RoleAdmin), warehouseHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", stockWriters, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", stockWriters, productHandler.Update)
	products.Get("/:id/convert-uom", productHandler.ConvertUOM)

	// Inventory: posiciones, validación, movimientos, traslados (protegido)
	invGroup := protected.Group("/inventory")
	stockHandler := NewStockHandler(deps.StockUC)
	invGroup.Get("/stock", stockHandler.GetPosition)
	invGroup.Post("/validate", stockHandler.Validate)
	invGroup.Get("/movements", stockHandler.ListMovements)
	invGroup.Post("/movements", stockWriters, stockHandler.RegisterMovement)
	invGroup.Post("/transfers", stockWriters, stockHandler.Transfer)

	// Reservations (protegido)
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	invGroup.Post("/reservations", reservationHandler.Create)
	invGroup.Get("/reservations", reservationHandler.ListActive)
	invGroup.Put("/reservations/:id/release", reservationHandler.Release)

	// Serial numbers (protegido)
	serialHandler := NewSerialHandler(deps.SerialUC)
	invGroup.Post("/serials", stockWriters, serialHandler.Create)
	invGroup.Get("/serials", serialHandler.ListAvailable)
	invGroup.Put("/serials/status", stockWriters, serialHandler.UpdateStatus)

	// QC holds (protegido)
	qcHandler := NewQCHoldHandler(deps.QCHoldUC)
	invGroup.Post("/qc-holds", stockWriters, qcHandler.Create)
	invGroup.Get("/qc-holds", qcHandler.ListActive)
	invGroup.Put("/qc-holds/:id/release", stockWriters, qcHandler.Release)
	invGroup.Put("/qc-holds/:id/reject", stockWriters, qcHandler.Reject)

	// Pick lists (protegido)
	pickLists := protected.Group("/pick-lists")
	pickHandler := NewPickListHandler(deps.PickListUC)
	pickLists.Post("/", stockWriters, pickHandler.Generate)
	pickLists.Get("/", pickHandler.List)
	pickLists.Get("/:id", pickHandler.GetByID)
	pickLists.Get("/:id/pdf", pickHandler.Sheet)
	pickLists.Put("/details/:detailId", stockWriters, pickHandler.UpdateDetail)
	pickLists.Put("/details/:detailId/short", stockWriters, pickHandler.CloseShort)
}
