package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	dominv "github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase calcula posiciones de stock, valida movimientos y los registra
// de forma transaccional (bloqueo de fila + chequeo + inserción en una sola tx).
type StockUseCase struct {
	txRunner        TxRunner
	detailRepo      repository.TransactionDetailRepository
	reservationRepo repository.ReservationRepository
	qcRepo          repository.QCHoldRepository
	productRepo     repository.ProductRepository
	warehouseRepo   repository.WarehouseRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner TxRunner,
	detailRepo repository.TransactionDetailRepository,
	reservationRepo repository.ReservationRepository,
	qcRepo repository.QCHoldRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:        txRunner,
		detailRepo:      detailRepo,
		reservationRepo: reservationRepo,
		qcRepo:          qcRepo,
		productRepo:     productRepo,
		warehouseRepo:   warehouseRepo,
	}
}

// ValidationResult es el resultado del chequeo de un movimiento. Las faltas de
// stock se reportan aquí, nunca como error: los errores quedan para fallas de
// lectura (posición no determinable ≠ stock cero).
type ValidationResult struct {
	IsValid        bool
	CurrentStock   decimal.Decimal
	AvailableStock decimal.Decimal
	Message        string
}

// MovementInput entrada para registrar un movimiento simple (entrada o salida).
// UnitCost es obligatorio en entradas de compra para el costo promedio.
type MovementInput struct {
	TransactionID string // opcional: agrupa líneas de un mismo documento
	Type          string
	ProductID     string
	VariantID     *string
	BinID         *string
	WarehouseID   string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
}

// TransferInput entrada para un traslado entre bodegas: genera dos líneas
// (transfer_out en origen, transfer_in en destino) con el mismo TransactionID.
type TransferInput struct {
	ProductID       string
	VariantID       *string
	BinID           *string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
}

// GetPosition calcula la posición de stock sumando líneas de movimiento con
// signo por tipo (tipos desconocidos aportan cero) y descontando reservas
// activas y retenciones de calidad. Un error de lectura significa "posición no
// determinable": el llamador no debe tratarlo como stock cero.
func (uc *StockUseCase) GetPosition(ctx context.Context, companyID, productID, warehouseID string, variantID, binID *string) (*entity.StockPosition, error) {
	details, err := uc.detailRepo.ListForPosition(repository.PositionQuery{
		CompanyID:   companyID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		VariantID:   variantID,
		BinID:       binID,
	})
	if err != nil {
		return nil, fmt.Errorf("listar movimientos de la posición: %w", err)
	}

	current := decimal.Zero
	for _, d := range details {
		switch dominv.Direction(d.TransactionType) {
		case 1:
			current = current.Add(d.Quantity)
		case -1:
			current = current.Sub(d.Quantity)
		}
	}

	key := repository.StockKey{
		CompanyID:   companyID,
		WarehouseID: warehouseID,
		ProductID:   productID,
		VariantID:   variantID,
		BinID:       binID,
	}
	reserved, err := uc.reservationRepo.SumActive(key, time.Now())
	if err != nil {
		return nil, fmt.Errorf("sumar reservas activas: %w", err)
	}
	held, err := uc.qcRepo.SumActive(key)
	if err != nil {
		return nil, fmt.Errorf("sumar retenciones de calidad: %w", err)
	}

	return &entity.StockPosition{
		ProductID:      productID,
		WarehouseID:    warehouseID,
		VariantID:      variantID,
		BinID:          binID,
		CurrentStock:   current,
		ReservedStock:  reserved,
		QCHoldStock:    held,
		AvailableStock: current.Sub(reserved).Sub(held),
	}, nil
}

// Validate chequea un movimiento contra la posición actual. Entradas siempre
// válidas; salidas válidas si la cantidad cabe en lo disponible. Es un chequeo
// puntual sin bloqueo: entre este chequeo y la escritura el stock puede cambiar.
// La ruta estricta es RegisterMovement, que revalida dentro de la misma tx.
func (uc *StockUseCase) Validate(ctx context.Context, companyID, productID, warehouseID string, variantID, binID *string, quantity decimal.Decimal, transactionType string) (*ValidationResult, error) {
	if quantity.LessThan(decimal.Zero) {
		return &ValidationResult{
			IsValid: false,
			Message: "la cantidad no puede ser negativa",
		}, nil
	}

	dir := dominv.Direction(transactionType)
	if dir == 0 {
		return &ValidationResult{
			IsValid: false,
			Message: fmt.Sprintf("tipo de transacción no reconocido: %s", transactionType),
		}, nil
	}

	position, err := uc.GetPosition(ctx, companyID, productID, warehouseID, variantID, binID)
	if err != nil {
		return nil, err
	}

	if dir > 0 {
		// Agregar stock nunca se bloquea por faltante.
		return &ValidationResult{
			IsValid:        true,
			CurrentStock:   position.CurrentStock,
			AvailableStock: position.AvailableStock,
		}, nil
	}

	if quantity.GreaterThan(position.AvailableStock) {
		return &ValidationResult{
			IsValid:        false,
			CurrentStock:   position.CurrentStock,
			AvailableStock: position.AvailableStock,
			Message: fmt.Sprintf("Stock insuficiente. Available: %s, Required: %s",
				position.AvailableStock.String(), quantity.String()),
		}, nil
	}
	return &ValidationResult{
		IsValid:        true,
		CurrentStock:   position.CurrentStock,
		AvailableStock: position.AvailableStock,
	}, nil
}

// RegisterMovement registra un movimiento simple en una sola transacción:
// bloquea el saldo (SELECT FOR UPDATE), revalida disponibilidad en salidas,
// inserta la línea y actualiza el saldo materializado. En entradas de compra
// recalcula el costo promedio ponderado del producto.
func (uc *StockUseCase) RegisterMovement(ctx context.Context, companyID, userID string, input MovementInput) (string, error) {
	dir := dominv.Direction(input.Type)
	if dir == 0 || input.ProductID == "" || input.WarehouseID == "" {
		return "", domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}
	if input.Type == entity.TxTypePurchaseIn && (input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero)) {
		return "", domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return "", domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return "", domain.ErrForbidden
	}
	wh, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return "", fmt.Errorf("leer bodega: %w", err)
	}
	if wh == nil || wh.CompanyID != companyID {
		return "", domain.ErrNotFound
	}

	now := time.Now()
	txID := input.TransactionID
	if txID == "" {
		txID = uuid.New().String()
	}
	key := repository.StockKey{
		CompanyID:   companyID,
		WarehouseID: input.WarehouseID,
		ProductID:   input.ProductID,
		VariantID:   input.VariantID,
		BinID:       input.BinID,
	}

	err = uc.txRunner.RunMovement(ctx, func(
		detailRepo repository.TransactionDetailRepository,
		levelRepo repository.StockLevelRepository,
		reservationRepo repository.ReservationRepository,
		qcRepo repository.QCHoldRepository,
		productRepo repository.ProductRepository,
	) error {
		level, err := levelRepo.GetForUpdate(key)
		if err != nil {
			return err
		}

		if dir < 0 {
			reserved, err := reservationRepo.SumActive(key, now)
			if err != nil {
				return err
			}
			held, err := qcRepo.SumActive(key)
			if err != nil {
				return err
			}
			available := level.Quantity.Sub(reserved).Sub(held)
			if input.Quantity.GreaterThan(available) {
				return domain.ErrInsufficientStock
			}
		}

		unitCost := product.Cost
		if input.UnitCost != nil {
			unitCost = *input.UnitCost
		}
		if input.Type == entity.TxTypePurchaseIn {
			newCost := dominv.WeightedAverageCost(level.Quantity, product.Cost, input.Quantity, unitCost)
			if err := productRepo.UpdateCost(input.ProductID, newCost); err != nil {
				return err
			}
		}

		if err := detailRepo.Create(&entity.TransactionDetail{
			CompanyID:       companyID,
			TransactionID:   txID,
			TransactionType: input.Type,
			ProductID:       input.ProductID,
			VariantID:       input.VariantID,
			BinID:           input.BinID,
			ToWarehouseID:   input.WarehouseID,
			Quantity:        input.Quantity,
			UnitCost:        unitCost,
			CreatedAt:       now,
			CreatedBy:       userID,
		}); err != nil {
			return err
		}

		level.Quantity = level.Quantity.Add(input.Quantity.Mul(decimal.NewFromInt(int64(dir))))
		level.UpdatedAt = now
		return levelRepo.Upsert(level)
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

// Transfer registra un traslado entre bodegas en una sola transacción: bloquea
// ambos saldos, valida disponibilidad en el origen y escribe los dos tramos
// (transfer_out / transfer_in) con el mismo TransactionID.
func (uc *StockUseCase) Transfer(ctx context.Context, companyID, userID string, input TransferInput) (string, error) {
	if input.ProductID == "" || input.FromWarehouseID == "" || input.ToWarehouseID == "" {
		return "", domain.ErrInvalidInput
	}
	if input.FromWarehouseID == input.ToWarehouseID || !input.Quantity.GreaterThan(decimal.Zero) {
		return "", domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil || product == nil {
		return "", domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return "", domain.ErrForbidden
	}
	fromWh, err := uc.warehouseRepo.GetByID(input.FromWarehouseID)
	if err != nil {
		return "", fmt.Errorf("leer bodega origen: %w", err)
	}
	toWh, err := uc.warehouseRepo.GetByID(input.ToWarehouseID)
	if err != nil {
		return "", fmt.Errorf("leer bodega destino: %w", err)
	}
	if fromWh == nil || toWh == nil || fromWh.CompanyID != companyID || toWh.CompanyID != companyID {
		return "", domain.ErrNotFound
	}

	now := time.Now()
	txID := uuid.New().String()
	fromKey := repository.StockKey{
		CompanyID: companyID, WarehouseID: input.FromWarehouseID,
		ProductID: input.ProductID, VariantID: input.VariantID, BinID: input.BinID,
	}
	toKey := repository.StockKey{
		CompanyID: companyID, WarehouseID: input.ToWarehouseID,
		ProductID: input.ProductID, VariantID: input.VariantID, BinID: input.BinID,
	}

	err = uc.txRunner.RunMovement(ctx, func(
		detailRepo repository.TransactionDetailRepository,
		levelRepo repository.StockLevelRepository,
		reservationRepo repository.ReservationRepository,
		qcRepo repository.QCHoldRepository,
		_ repository.ProductRepository,
	) error {
		fromLevel, err := levelRepo.GetForUpdate(fromKey)
		if err != nil {
			return err
		}
		toLevel, err := levelRepo.GetForUpdate(toKey)
		if err != nil {
			return err
		}

		reserved, err := reservationRepo.SumActive(fromKey, now)
		if err != nil {
			return err
		}
		held, err := qcRepo.SumActive(fromKey)
		if err != nil {
			return err
		}
		available := fromLevel.Quantity.Sub(reserved).Sub(held)
		if input.Quantity.GreaterThan(available) {
			return domain.ErrInsufficientStock
		}

		// Tramo de salida: la bodega afectada va en ToWarehouseID.
		outLine := &entity.TransactionDetail{
			CompanyID:       companyID,
			TransactionID:   txID,
			TransactionType: entity.TxTypeTransferOut,
			ProductID:       input.ProductID,
			VariantID:       input.VariantID,
			BinID:           input.BinID,
			ToWarehouseID:   input.FromWarehouseID,
			Quantity:        input.Quantity,
			UnitCost:        product.Cost,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		inLine := &entity.TransactionDetail{
			CompanyID:       companyID,
			TransactionID:   txID,
			TransactionType: entity.TxTypeTransferIn,
			ProductID:       input.ProductID,
			VariantID:       input.VariantID,
			BinID:           input.BinID,
			FromWarehouseID: &input.FromWarehouseID,
			ToWarehouseID:   input.ToWarehouseID,
			Quantity:        input.Quantity,
			UnitCost:        product.Cost,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		if err := detailRepo.Create(outLine); err != nil {
			return err
		}
		if err := detailRepo.Create(inLine); err != nil {
			return err
		}

		fromLevel.Quantity = fromLevel.Quantity.Sub(input.Quantity)
		fromLevel.UpdatedAt = now
		if err := levelRepo.Upsert(fromLevel); err != nil {
			return err
		}
		toLevel.Quantity = toLevel.Quantity.Add(input.Quantity)
		toLevel.UpdatedAt = now
		return levelRepo.Upsert(toLevel)
	})
	if err != nil {
		return "", err
	}
	return txID, nil
}

// ListMovements lista las líneas de movimiento de un producto (kardex), más
// recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.TransactionDetail, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.detailRepo.ListByProduct(companyID, productID, from, to, limit, offset)
}
