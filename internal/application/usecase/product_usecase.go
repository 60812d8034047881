package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. Cost se maneja vía
// movimientos de compra (promedio ponderado), nunca por este caso de uso.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  *logger.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log}
}

// Create crea un nuevo producto. Cost inicia en 0. SKU único por empresa.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	baseUOM := in.BaseUOM
	if baseUOM == "" {
		baseUOM = "PCS"
	}
	if in.PrimaryToSecondaryFactor.IsNegative() || in.SecondaryToBaseFactor.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Cost:        decimal.Zero,

		BaseUOM:                  baseUOM,
		PrimaryUOM:               in.PrimaryUOM,
		SecondaryUOM:             in.SecondaryUOM,
		PrimaryToSecondaryFactor: in.PrimaryToSecondaryFactor,
		SecondaryToBaseFactor:    in.SecondaryToBaseFactor,

		Serialized: in.Serialized,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto validando que pertenezca a la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto (campos opcionales). No toca Cost ni Serialized.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.BaseUOM != nil {
		product.BaseUOM = *in.BaseUOM
	}
	if in.PrimaryUOM != nil {
		product.PrimaryUOM = *in.PrimaryUOM
	}
	if in.SecondaryUOM != nil {
		product.SecondaryUOM = *in.SecondaryUOM
	}
	if in.PrimaryToSecondaryFactor != nil {
		if in.PrimaryToSecondaryFactor.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PrimaryToSecondaryFactor = *in.PrimaryToSecondaryFactor
	}
	if in.SecondaryToBaseFactor != nil {
		if in.SecondaryToBaseFactor.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SecondaryToBaseFactor = *in.SecondaryToBaseFactor
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(companyID string, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// ConvertUOM convierte una cantidad entre dos unidades del producto usando los
// factores almacenados. Si no existe factor entre las unidades, devuelve la
// cantidad sin cambios con Converted=false y deja un warning en el log; nunca
// falla por conversión faltante.
func (uc *ProductUseCase) ConvertUOM(companyID, id, fromUOM, toUOM string, quantity decimal.Decimal) (*dto.ConvertUOMResponse, error) {
	if fromUOM == "" || toUOM == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	result := inventory.Convert(quantity, fromUOM, toUOM, inventory.ConversionsForProduct(product))
	if !result.Converted && uc.log != nil {
		uc.log.Warn().
			Str("product_id", product.ID).
			Str("from_uom", fromUOM).
			Str("to_uom", toUOM).
			Msg("sin factor de conversión entre unidades, cantidad retorna sin convertir")
	}
	return &dto.ConvertUOMResponse{
		ProductID: product.ID,
		FromUOM:   fromUOM,
		ToUOM:     toUOM,
		Input:     quantity,
		Output:    result.Quantity,
		Converted: result.Converted,
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Cost:        p.Cost,

		BaseUOM:                  p.BaseUOM,
		PrimaryUOM:               p.PrimaryUOM,
		SecondaryUOM:             p.SecondaryUOM,
		PrimaryToSecondaryFactor: p.PrimaryToSecondaryFactor,
		SecondaryToBaseFactor:    p.SecondaryToBaseFactor,

		Serialized: p.Serialized,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
