package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// SerialHandler maneja números de serie (protegido).
type SerialHandler struct {
	uc *inventory.SerialUseCase
}

// NewSerialHandler construye el handler.
func NewSerialHandler(uc *inventory.SerialUseCase) *SerialHandler {
	return &SerialHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar lote de números de serie
// @Description  Todo-o-nada: un serial duplicado aborta el lote completo.
// @Tags         serials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSerialsRequest  true  "product_id, warehouse_id, serials"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/serials [post]
func (h *SerialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSerialsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in.ProductID, in.WarehouseID, in.VariantID, in.Serials)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "seriales registrados"})
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un lote de seriales
// @Description  Aplica el mismo estado a todo el lote en una transacción; si
//
//	algún serial no existe, nada cambia.
//
// @Tags         serials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSerialStatusRequest  true  "product_id, serials, status"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/serials/status [put]
func (h *SerialHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateSerialStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.uc.UpdateStatus(c.Context(), GetCompanyID(c), in.ProductID, in.Serials, in.Status, in.TransactionID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// ListAvailable godoc
// @Summary      Listar seriales disponibles
// @Tags         serials
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        variant_id    query  string  false  "ID de variante"
// @Success      200  {array}  dto.SerialResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/serials [get]
func (h *SerialHandler) ListAvailable(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	list, err := h.uc.ListAvailable(c.Context(), GetCompanyID(c), productID, warehouseID, optionalQuery(c, "variant_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	items := make([]dto.SerialResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSerialResponse(s))
	}
	return c.JSON(items)
}

func toSerialResponse(s *entity.SerialNumber) dto.SerialResponse {
	return dto.SerialResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		VariantID:         s.VariantID,
		WarehouseID:       s.WarehouseID,
		Serial:            s.Serial,
		Status:            s.Status,
		LastTransactionID: s.LastTransactionID,
	}
}
