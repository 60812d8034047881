package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockHandler maneja posiciones de stock, validación y registro de movimientos (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// optionalQuery devuelve un *string para query params opcionales (vacío = nil).
func optionalQuery(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

// GetPosition godoc
// @Summary      Posición de stock de un producto en una bodega
// @Description  Stock actual, reservado, retenido por calidad y disponible.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        variant_id    query  string  false  "ID de variante"
// @Param        bin_id        query  string  false  "ID de ubicación"
// @Success      200  {object}  dto.StockPositionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *StockHandler) GetPosition(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	pos, err := h.uc.GetPosition(c.Context(), GetCompanyID(c), productID, warehouseID,
		optionalQuery(c, "variant_id"), optionalQuery(c, "bin_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.StockPositionResponse{
		ProductID:      pos.ProductID,
		WarehouseID:    pos.WarehouseID,
		VariantID:      pos.VariantID,
		BinID:          pos.BinID,
		CurrentStock:   pos.CurrentStock,
		ReservedStock:  pos.ReservedStock,
		QCHoldStock:    pos.QCHoldStock,
		AvailableStock: pos.AvailableStock,
	})
}

// Validate godoc
// @Summary      Validar un movimiento sin registrarlo
// @Description  Chequeo puntual de disponibilidad. La falta de stock se reporta
//
//	en el cuerpo (is_valid=false), no como error HTTP.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateMovementRequest  true  "type, product_id, warehouse_id, quantity"
// @Success      200   {object}  dto.ValidationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/validate [post]
func (h *StockHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Validate(c.Context(), GetCompanyID(c), in.ProductID, in.WarehouseID,
		in.VariantID, in.BinID, in.Quantity, in.Type)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.ValidationResponse{
		IsValid:        result.IsValid,
		CurrentStock:   result.CurrentStock,
		AvailableStock: result.AvailableStock,
		Message:        result.Message,
	})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Valida y escribe en una sola transacción: bloqueo de fila de
//
//	saldo, chequeo de disponibilidad en salidas y actualización del
//	costo promedio en compras.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, product_id, warehouse_id, quantity, unit_cost (compras)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txID, err := h.uc.RegisterMovement(c.Context(), GetCompanyID(c), GetUserID(c), inventory.MovementInput{
		TransactionID: in.TransactionID,
		Type:          in.Type,
		ProductID:     in.ProductID,
		VariantID:     in.VariantID,
		BinID:         in.BinID,
		WarehouseID:   in.WarehouseID,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{TransactionID: txID})
}

// Transfer godoc
// @Summary      Trasladar stock entre bodegas
// @Description  Genera dos líneas (transfer_out en origen, transfer_in en
//
//	destino) con el mismo transaction_id, de forma atómica.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "product_id, from_warehouse_id, to_warehouse_id, quantity"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	txID, err := h.uc.Transfer(c.Context(), GetCompanyID(c), GetUserID(c), inventory.TransferInput{
		ProductID:       in.ProductID,
		VariantID:       in.VariantID,
		BinID:           in.BinID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Quantity:        in.Quantity,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{TransactionID: txID})
}

// ListMovements godoc
// @Summary      Kardex de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        from        query  string  false  "Fecha inicial (RFC3339)"
// @Param        to          query  string  false  "Fecha final (RFC3339)"
// @Param        limit       query  int     false  "Máximo de filas (default 50)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}  entity.TransactionDetail
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c)
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
		}
		to = &t
	}
	list, err := h.uc.ListMovements(c.Context(), GetCompanyID(c), c.Query("product_id"), from, to, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	if list == nil {
		list = []*entity.TransactionDetail{}
	}
	return c.JSON(list)
}
