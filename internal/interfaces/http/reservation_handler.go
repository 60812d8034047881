package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ReservationHandler maneja reservas de stock (protegido).
type ReservationHandler struct {
	uc *inventory.ReservationUseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *inventory.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear reserva de stock
// @Description  Garantiza dentro de una transacción que la suma de reservas
//
//	activas más la nueva no exceda el stock actual.
//
// @Tags         reservations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReservationRequest  true  "product_id, warehouse_id, quantity, reference"
// @Success      201   {object}  dto.ReservationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), inventory.ReservationInput{
		ProductID:     in.ProductID,
		VariantID:     in.VariantID,
		WarehouseID:   in.WarehouseID,
		BinID:         in.BinID,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		ExpiresAt:     in.ExpiresAt,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toReservationResponse(res))
}

// Release godoc
// @Summary      Liberar una reserva
// @Description  Idempotente: liberar una reserva ya liberada responde 200.
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la reserva"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations/{id}/release [put]
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	if err := h.uc.Release(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "reserva liberada"})
}

// ListActive godoc
// @Summary      Listar reservas activas
// @Tags         reservations
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "ID del producto"
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        variant_id    query  string  false  "ID de variante"
// @Success      200  {array}  dto.ReservationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [get]
func (h *ReservationHandler) ListActive(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	warehouseID := c.Query("warehouse_id")
	if productID == "" || warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	list, err := h.uc.ListActive(c.Context(), GetCompanyID(c), productID, warehouseID, optionalQuery(c, "variant_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	items := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReservationResponse(r))
	}
	return c.JSON(items)
}

func toReservationResponse(r *entity.StockReservation) *dto.ReservationResponse {
	if r == nil {
		return nil
	}
	return &dto.ReservationResponse{
		ID:            r.ID,
		ProductID:     r.ProductID,
		VariantID:     r.VariantID,
		WarehouseID:   r.WarehouseID,
		BinID:         r.BinID,
		Quantity:      r.Quantity,
		Status:        r.Status,
		ReferenceType: r.ReferenceType,
		ReferenceID:   r.ReferenceID,
		ExpiresAt:     r.ExpiresAt,
		CreatedAt:     r.CreatedAt,
	}
}
