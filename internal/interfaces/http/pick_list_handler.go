package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PickListHandler maneja listas de picking (protegido).
type PickListHandler struct {
	uc *inventory.PickListUseCase
}

// NewPickListHandler construye el handler.
func NewPickListHandler(uc *inventory.PickListUseCase) *PickListHandler {
	return &PickListHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar lista de picking
// @Description  Crea encabezado y líneas con secuencia de recorrido 1..n en el
//
//	orden de los ítems solicitados.
//
// @Tags         pick-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GeneratePickListRequest  true  "warehouse_id, items"
// @Success      201   {object}  dto.PickListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pick-lists [post]
func (h *PickListHandler) Generate(c *fiber.Ctx) error {
	var in dto.GeneratePickListRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.PickItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, inventory.PickItemInput{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			BinID:     it.BinID,
			Quantity:  it.Quantity,
		})
	}
	list, err := h.uc.Generate(c.Context(), GetCompanyID(c), GetUserID(c), in.WarehouseID, items, in.Notes)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPickListResponse(list, nil))
}

// GetByID godoc
// @Summary      Obtener lista de picking con sus líneas
// @Tags         pick-lists
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la lista"
// @Success      200  {object}  dto.PickListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pick-lists/{id} [get]
func (h *PickListHandler) GetByID(c *fiber.Ctx) error {
	list, details, err := h.uc.Get(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toPickListResponse(list, details))
}

// List godoc
// @Summary      Listar listas de picking de una bodega
// @Tags         pick-lists
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "ID de la bodega"
// @Param        limit         query  int     false  "Máximo de filas (default 50)"
// @Param        offset        query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.PickListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pick-lists [get]
func (h *PickListHandler) List(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	limit, offset := parseLimitOffset(c)
	lists, err := h.uc.ListByWarehouse(c.Context(), GetCompanyID(c), warehouseID, limit, offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	items := make([]dto.PickListResponse, 0, len(lists))
	for _, l := range lists {
		items = append(items, *toPickListResponse(l, nil))
	}
	return c.JSON(items)
}

// UpdateDetail godoc
// @Summary      Registrar cantidad recogida en una línea
// @Description  Deriva el estado de la línea (pending/partial/completed).
//
//	Exceder lo requerido responde 409.
//
// @Tags         pick-lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        detailId  path  string  true  "ID de la línea"
// @Param        body      body  dto.UpdatePickQuantityRequest  true  "picked_quantity"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pick-lists/details/{detailId} [put]
func (h *PickListHandler) UpdateDetail(c *fiber.Ctx) error {
	var in dto.UpdatePickQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdatePickQuantity(c.Context(), GetCompanyID(c), c.Params("detailId"), in.PickedQuantity); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "línea actualizada"})
}

// CloseShort godoc
// @Summary      Cerrar una línea como short (sin stock para completar)
// @Description  Solo válido desde pending o partial.
// @Tags         pick-lists
// @Security     Bearer
// @Produce      json
// @Param        detailId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pick-lists/details/{detailId}/short [put]
func (h *PickListHandler) CloseShort(c *fiber.Ctx) error {
	if err := h.uc.CloseLineShort(c.Context(), GetCompanyID(c), c.Params("detailId")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "línea cerrada como short"})
}

// Sheet godoc
// @Summary      Hoja PDF imprimible de la lista
// @Tags         pick-lists
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la lista"
// @Success      200  {file}  byte
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pick-lists/{id}/pdf [get]
func (h *PickListHandler) Sheet(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.GenerateSheet(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pick_list.pdf"`)
	return c.Send(pdfBytes)
}

func toPickListResponse(l *entity.PickList, details []*entity.PickListDetail) *dto.PickListResponse {
	if l == nil {
		return nil
	}
	resp := &dto.PickListResponse{
		ID:          l.ID,
		Number:      l.Number,
		WarehouseID: l.WarehouseID,
		Status:      l.Status,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.PickListDetailResponse{
			ID:               d.ID,
			ProductID:        d.ProductID,
			VariantID:        d.VariantID,
			BinID:            d.BinID,
			RequiredQuantity: d.RequiredQuantity,
			PickedQuantity:   d.PickedQuantity,
			PickSequence:     d.PickSequence,
			Status:           d.Status,
		})
	}
	return resp
}
