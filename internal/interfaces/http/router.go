package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastano/Kardex-api/internal/application/auth"
	"github.com/jmcastano/Kardex-api/internal/application/ledger"
	"github.com/jmcastano/Kardex-api/internal/application/production"
	"github.com/jmcastano/Kardex-api/internal/application/usecase"
	"github.com/jmcastano/Kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	BranchUC      *usecase.BranchUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	MaterialUC    *usecase.MaterialUseCase
	ProductUC     *usecase.ProductUseCase
	StockReportUC *usecase.StockReportUseCase
	TransactionUC *ledger.TransactionUseCase
	OrderUC       *production.OrderUseCase
	FulfillmentUC *production.FulfillmentUseCase
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

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Gates por rol: los movimientos de inventario los operan admin y
	// almacenista; la administración de maestros es de admin; las consultas
	// son para cualquier usuario autenticado (el vendedor consulta
	// disponibilidad antes de comprometer una venta).
	adminOnly := RequireRole(entity.RoleAdmin)
	warehouseOps := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)

	// Branches (protegido; escritura solo admin)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.GetByID)
	branches.Post("/", adminOnly, branchHandler.Create)
	branches.Put("/:id", adminOnly, branchHandler.Update)

	// Warehouses (protegido; escritura solo admin)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Materials (protegido; escritura admin y almacenista)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Post("/", warehouseOps, materialHandler.Create)
	materials.Put("/:id", warehouseOps, materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Products (protegido; escritura admin y almacenista)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", warehouseOps, productHandler.Create)
	products.Put("/:id", warehouseOps, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Transactions (protegido; operaciones de ledger para admin y almacenista)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Post("/", warehouseOps, transactionHandler.Create)
	transactions.Put("/:id", warehouseOps, transactionHandler.Update)
	transactions.Post("/:id/approve", warehouseOps, transactionHandler.Approve)
	transactions.Post("/:id/cancel", warehouseOps, transactionHandler.Cancel)

	// Stock (protegido; solo lectura, disponible para todos los roles)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockReportUC, deps.TransactionUC)
	stock.Get("/warehouses/:id", stockHandler.ByWarehouse)
	stock.Get("/summary", stockHandler.Summary)
	stock.Get("/availability", stockHandler.Availability)

	// Production (protegido; admin y almacenista)
	prod := protected.Group("/production", warehouseOps)
	productionHandler := NewProductionHandler(deps.OrderUC, deps.FulfillmentUC)
	prod.Post("/orders", productionHandler.CreateOrder)
	prod.Get("/orders", productionHandler.ListOrders)
	prod.Get("/orders/:id", productionHandler.GetOrder)
	prod.Post("/orders/:id/completions", productionHandler.SubmitCompletion)
	prod.Get("/orders/:id/fulfillment", productionHandler.Fulfillment)
}
