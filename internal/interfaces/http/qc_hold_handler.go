package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// QCHoldHandler maneja retenciones de calidad (protegido).
type QCHoldHandler struct {
	uc *inventory.QCHoldUseCase
}

// NewQCHoldHandler construye el handler.
func NewQCHoldHandler(uc *inventory.QCHoldUseCase) *QCHoldHandler {
	return &QCHoldHandler{uc: uc}
}

// Create godoc
// @Summary      Crear retención de calidad
// @Description  La cantidad retenida deja de contar como disponible hasta que
//
//	la inspección la resuelva.
//
// @Tags         qc-holds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQCHoldRequest  true  "product_id, warehouse_id, quantity, reason"
// @Success      201   {object}  dto.QCHoldResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/qc-holds [post]
func (h *QCHoldHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQCHoldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	hold, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), inventory.QCHoldInput{
		ProductID:      in.ProductID,
		VariantID:      in.VariantID,
		WarehouseID:    in.WarehouseID,
		BinID:          in.BinID,
		Quantity:       in.Quantity,
		Reason:         in.Reason,
		InspectorNotes: in.InspectorNotes,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toQCHoldResponse(hold))
}

// Release godoc
// @Summary      Liberar una retención (aprobada por inspección)
// @Description  Solo desde on_hold; resolver dos veces responde 409.
// @Tags         qc-holds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la retención"
// @Param        body  body  dto.ResolveQCHoldRequest  false  "notas de resolución"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/qc-holds/{id}/release [put]
func (h *QCHoldHandler) Release(c *fiber.Ctx) error {
	var in dto.ResolveQCHoldRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	if err := h.uc.Release(c.Context(), GetCompanyID(c), c.Params("id"), in.Notes); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "retención liberada"})
}

// Reject godoc
// @Summary      Rechazar una retención (mercancía no conforme)
// @Tags         qc-holds
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la retención"
// @Param        body  body  dto.ResolveQCHoldRequest  false  "notas de resolución"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/qc-holds/{id}/reject [put]
func (h *QCHoldHandler) Reject(c *fiber.Ctx) error {
	var in dto.ResolveQCHoldRequest
	_ = c.BodyParser(&in) // cuerpo opcional
	if err := h.uc.Reject(c.Context(), GetCompanyID(c), c.Params("id"), in.Notes); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "retención rechazada"})
}

// ListActive godoc
// @Summary      Listar retenciones activas
// @Tags         qc-holds
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true  "ID del producto"
// @Param        warehouse_id  query  string  true  "ID de la bodega"
// @Success      200  {array}  dto.QCHoldResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/qc-holds [get]
func (h *QCHoldHandler) ListActive(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	list, err := h.uc.ListActive(c.Context(), GetCompanyID(c), productID, warehouseID)
	if err != nil {
		return mapDomainError(c, err)
	}
	items := make([]dto.QCHoldResponse, 0, len(list))
	for _, hold := range list {
		items = append(items, *toQCHoldResponse(hold))
	}
	return c.JSON(items)
}

func toQCHoldResponse(h *entity.QCHold) *dto.QCHoldResponse {
	if h == nil {
		return nil
	}
	return &dto.QCHoldResponse{
		ID:             h.ID,
		ProductID:      h.ProductID,
		VariantID:      h.VariantID,
		WarehouseID:    h.WarehouseID,
		BinID:          h.BinID,
		Quantity:       h.Quantity,
		Status:         h.Status,
		Reason:         h.Reason,
		InspectorNotes: h.InspectorNotes,
		HeldAt:         h.HeldAt,
		ResolvedAt:     h.ResolvedAt,
	}
}
