package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PickListRepository define el puerto de persistencia para listas de picking
// (encabezado + líneas ordenadas).
type PickListRepository interface {
	CreateHeader(list *entity.PickList) error
	CreateDetail(detail *entity.PickListDetail) error
	GetByID(companyID, id string) (*entity.PickList, error)
	GetDetail(companyID, detailID string) (*entity.PickListDetail, error)
	ListDetails(companyID, pickListID string) ([]*entity.PickListDetail, error)
	UpdateDetailPick(companyID, detailID string, picked decimal.Decimal, status string, at time.Time) error
	UpdateHeaderStatus(companyID, id, status string) error
	ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.PickList, error)
}
