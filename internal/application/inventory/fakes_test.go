package inventory_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Los casos de uso se prueban
// en esta costura porque los adaptadores postgres solo traducen SQL.
// ──────────────────────────────────────────────────────────────────────────────

func ptr(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func keyString(k repository.StockKey) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", k.CompanyID, k.WarehouseID, k.ProductID, deref(k.VariantID), deref(k.BinID))
}

// ── Líneas de movimiento ─────────────────────────────────────────────────────

type fakeDetailRepo struct {
	details []*entity.TransactionDetail
	nextID  int
}

func (r *fakeDetailRepo) Create(d *entity.TransactionDetail) error {
	r.nextID++
	if d.ID == "" {
		d.ID = fmt.Sprintf("det-%d", r.nextID)
	}
	cp := *d
	r.details = append(r.details, &cp)
	return nil
}

func (r *fakeDetailRepo) ListForPosition(q repository.PositionQuery) ([]*entity.TransactionDetail, error) {
	var out []*entity.TransactionDetail
	for _, d := range r.details {
		if d.CompanyID != q.CompanyID || d.ProductID != q.ProductID || d.ToWarehouseID != q.WarehouseID {
			continue
		}
		if q.VariantID != nil && deref(d.VariantID) != *q.VariantID {
			continue
		}
		if q.BinID != nil && deref(d.BinID) != *q.BinID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeDetailRepo) ListByTransaction(companyID, transactionID string) ([]*entity.TransactionDetail, error) {
	var out []*entity.TransactionDetail
	for _, d := range r.details {
		if d.CompanyID == companyID && d.TransactionID == transactionID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDetailRepo) ListByProduct(companyID, productID string, from, to *time.Time, limit, offset int) ([]*entity.TransactionDetail, error) {
	var out []*entity.TransactionDetail
	for _, d := range r.details {
		if d.CompanyID == companyID && d.ProductID == productID {
			out = append(out, d)
		}
	}
	return out, nil
}

// ── Saldos materializados ────────────────────────────────────────────────────

type fakeLevelRepo struct {
	levels map[string]*entity.StockLevel
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{levels: make(map[string]*entity.StockLevel)}
}

func (r *fakeLevelRepo) Get(key repository.StockKey) (*entity.StockLevel, error) {
	if l, ok := r.levels[keyString(key)]; ok {
		cp := *l
		return &cp, nil
	}
	return &entity.StockLevel{
		CompanyID: key.CompanyID, WarehouseID: key.WarehouseID, ProductID: key.ProductID,
		VariantID: key.VariantID, BinID: key.BinID, Quantity: decimal.Zero,
	}, nil
}

func (r *fakeLevelRepo) GetForUpdate(key repository.StockKey) (*entity.StockLevel, error) {
	return r.Get(key)
}

func (r *fakeLevelRepo) Upsert(level *entity.StockLevel) error {
	cp := *level
	r.levels[keyString(repository.StockKey{
		CompanyID: level.CompanyID, WarehouseID: level.WarehouseID, ProductID: level.ProductID,
		VariantID: level.VariantID, BinID: level.BinID,
	})] = &cp
	return nil
}

func (r *fakeLevelRepo) quantity(key repository.StockKey) decimal.Decimal {
	l, _ := r.Get(key)
	return l.Quantity
}

// ── Reservas ─────────────────────────────────────────────────────────────────

type fakeReservationRepo struct {
	reservations map[string]*entity.StockReservation
	nextID       int
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[string]*entity.StockReservation)}
}

func (r *fakeReservationRepo) Create(res *entity.StockReservation) error {
	r.nextID++
	if res.ID == "" {
		res.ID = fmt.Sprintf("res-%d", r.nextID)
	}
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeReservationRepo) GetByID(companyID, id string) (*entity.StockReservation, error) {
	res, ok := r.reservations[id]
	if !ok || res.CompanyID != companyID {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *fakeReservationRepo) Release(companyID, id string, at time.Time) (int64, error) {
	res, ok := r.reservations[id]
	if !ok || res.CompanyID != companyID || res.Status != entity.ReservationStatusActive {
		return 0, nil
	}
	res.Status = entity.ReservationStatusReleased
	res.ReleasedAt = &at
	return 1, nil
}

func (r *fakeReservationRepo) ListActive(companyID, productID, warehouseID string, variantID *string) ([]*entity.StockReservation, error) {
	var out []*entity.StockReservation
	for _, res := range r.reservations {
		if res.CompanyID != companyID || res.ProductID != productID || res.WarehouseID != warehouseID {
			continue
		}
		if res.Status != entity.ReservationStatusActive {
			continue
		}
		if variantID != nil && deref(res.VariantID) != *variantID {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *fakeReservationRepo) SumActive(key repository.StockKey, now time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, res := range r.reservations {
		if res.CompanyID != key.CompanyID || res.ProductID != key.ProductID || res.WarehouseID != key.WarehouseID {
			continue
		}
		if res.Status != entity.ReservationStatusActive || res.Expired(now) {
			continue
		}
		if key.VariantID != nil && deref(res.VariantID) != *key.VariantID {
			continue
		}
		if key.BinID != nil && deref(res.BinID) != *key.BinID {
			continue
		}
		sum = sum.Add(res.Quantity)
	}
	return sum, nil
}

// ── Retenciones de calidad ───────────────────────────────────────────────────

type fakeQCRepo struct {
	holds  map[string]*entity.QCHold
	nextID int
}

func newFakeQCRepo() *fakeQCRepo {
	return &fakeQCRepo{holds: make(map[string]*entity.QCHold)}
}

func (r *fakeQCRepo) Create(h *entity.QCHold) error {
	r.nextID++
	if h.ID == "" {
		h.ID = fmt.Sprintf("qc-%d", r.nextID)
	}
	cp := *h
	r.holds[h.ID] = &cp
	return nil
}

func (r *fakeQCRepo) GetByID(companyID, id string) (*entity.QCHold, error) {
	h, ok := r.holds[id]
	if !ok || h.CompanyID != companyID {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (r *fakeQCRepo) Resolve(companyID, id, status string, notes *string, at time.Time) (int64, error) {
	h, ok := r.holds[id]
	if !ok || h.CompanyID != companyID || h.Status != entity.QCHoldStatusOnHold {
		return 0, nil
	}
	h.Status = status
	h.ResolvedAt = &at
	h.ResolvedNotes = notes
	return 1, nil
}

func (r *fakeQCRepo) ListActive(companyID, productID, warehouseID string) ([]*entity.QCHold, error) {
	var out []*entity.QCHold
	for _, h := range r.holds {
		if h.CompanyID == companyID && h.ProductID == productID && h.WarehouseID == warehouseID &&
			h.Status == entity.QCHoldStatusOnHold {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeQCRepo) SumActive(key repository.StockKey) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, h := range r.holds {
		if h.CompanyID != key.CompanyID || h.ProductID != key.ProductID || h.WarehouseID != key.WarehouseID {
			continue
		}
		if h.Status != entity.QCHoldStatusOnHold {
			continue
		}
		if key.VariantID != nil && deref(h.VariantID) != *key.VariantID {
			continue
		}
		if key.BinID != nil && deref(h.BinID) != *key.BinID {
			continue
		}
		sum = sum.Add(h.Quantity)
	}
	return sum, nil
}

// ── Seriales ─────────────────────────────────────────────────────────────────

type fakeSerialRepo struct {
	serials map[string]*entity.SerialNumber // clave: producto|serial
	nextID  int
}

func newFakeSerialRepo() *fakeSerialRepo {
	return &fakeSerialRepo{serials: make(map[string]*entity.SerialNumber)}
}

func serialKey(productID, serial string) string { return productID + "|" + serial }

func (r *fakeSerialRepo) CreateBulk(serials []*entity.SerialNumber) error {
	for _, s := range serials {
		if _, exists := r.serials[serialKey(s.ProductID, s.Serial)]; exists {
			return domain.ErrDuplicate
		}
	}
	for _, s := range serials {
		r.nextID++
		if s.ID == "" {
			s.ID = fmt.Sprintf("sn-%d", r.nextID)
		}
		cp := *s
		r.serials[serialKey(s.ProductID, s.Serial)] = &cp
	}
	return nil
}

func (r *fakeSerialRepo) ListAvailable(companyID, productID, warehouseID string, variantID *string) ([]*entity.SerialNumber, error) {
	var out []*entity.SerialNumber
	for _, s := range r.serials {
		if s.CompanyID == companyID && s.ProductID == productID && s.WarehouseID == warehouseID &&
			s.Status == entity.SerialStatusAvailable {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSerialRepo) ListBySerials(companyID, productID string, serials []string) ([]*entity.SerialNumber, error) {
	var out []*entity.SerialNumber
	for _, serial := range serials {
		if s, ok := r.serials[serialKey(productID, serial)]; ok && s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSerialRepo) UpdateStatusBulk(companyID, productID string, serials []string, status string, transactionID *string, at time.Time) (int64, error) {
	var affected int64
	for _, serial := range serials {
		s, ok := r.serials[serialKey(productID, serial)]
		if !ok || s.CompanyID != companyID {
			continue
		}
		s.Status = status
		s.LastTransactionID = transactionID
		s.UpdatedAt = at
		affected++
	}
	return affected, nil
}

func (r *fakeSerialRepo) snapshot() map[string]*entity.SerialNumber {
	snap := make(map[string]*entity.SerialNumber, len(r.serials))
	for k, v := range r.serials {
		cp := *v
		snap[k] = &cp
	}
	return snap
}

// ── Listas de picking ────────────────────────────────────────────────────────

type fakePickRepo struct {
	headers map[string]*entity.PickList
	details map[string]*entity.PickListDetail
	nextID  int
}

func newFakePickRepo() *fakePickRepo {
	return &fakePickRepo{
		headers: make(map[string]*entity.PickList),
		details: make(map[string]*entity.PickListDetail),
	}
}

func (r *fakePickRepo) CreateHeader(list *entity.PickList) error {
	r.nextID++
	if list.ID == "" {
		list.ID = fmt.Sprintf("pl-%d", r.nextID)
	}
	cp := *list
	r.headers[list.ID] = &cp
	return nil
}

func (r *fakePickRepo) CreateDetail(detail *entity.PickListDetail) error {
	r.nextID++
	if detail.ID == "" {
		detail.ID = fmt.Sprintf("pld-%d", r.nextID)
	}
	cp := *detail
	r.details[detail.ID] = &cp
	return nil
}

func (r *fakePickRepo) GetByID(companyID, id string) (*entity.PickList, error) {
	l, ok := r.headers[id]
	if !ok || l.CompanyID != companyID {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakePickRepo) GetDetail(companyID, detailID string) (*entity.PickListDetail, error) {
	d, ok := r.details[detailID]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *fakePickRepo) ListDetails(companyID, pickListID string) ([]*entity.PickListDetail, error) {
	var out []*entity.PickListDetail
	for _, d := range r.details {
		if d.CompanyID == companyID && d.PickListID == pickListID {
			out = append(out, d)
		}
	}
	// Orden estable por pick_sequence, como el ORDER BY del adaptador real.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].PickSequence < out[i].PickSequence {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakePickRepo) UpdateDetailPick(companyID, detailID string, picked decimal.Decimal, status string, at time.Time) error {
	d, ok := r.details[detailID]
	if !ok || d.CompanyID != companyID {
		return domain.ErrNotFound
	}
	d.PickedQuantity = picked
	d.Status = status
	d.UpdatedAt = at
	return nil
}

func (r *fakePickRepo) UpdateHeaderStatus(companyID, id, status string) error {
	l, ok := r.headers[id]
	if !ok || l.CompanyID != companyID {
		return domain.ErrNotFound
	}
	l.Status = status
	return nil
}

func (r *fakePickRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.PickList, error) {
	var out []*entity.PickList
	for _, l := range r.headers {
		if l.CompanyID == companyID && l.WarehouseID == warehouseID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ── Catálogo ─────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.CompanyID == companyID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateCost(productID string, cost decimal.Decimal) error {
	if p, ok := r.products[productID]; ok {
		p.Cost = cost
	}
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
	getErr     error // si se fija, GetByID falla (simula caída de la base)
}

func newFakeWarehouseRepo(warehouses ...*entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		cp := *w
		r.warehouses[w.ID] = &cp
	}
	return r
}

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	cp := *w
	r.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.warehouses {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta los callbacks directamente sobre los fakes. Para el
// lote de seriales imita el rollback restaurando el estado si el callback
// devuelve error (todo-o-nada observable en los tests).
type fakeTxRunner struct {
	detailRepo      *fakeDetailRepo
	levelRepo       *fakeLevelRepo
	reservationRepo *fakeReservationRepo
	qcRepo          *fakeQCRepo
	serialRepo      *fakeSerialRepo
	pickRepo        *fakePickRepo
	productRepo     *fakeProductRepo
}

func (r *fakeTxRunner) RunMovement(ctx context.Context, fn func(
	repository.TransactionDetailRepository,
	repository.StockLevelRepository,
	repository.ReservationRepository,
	repository.QCHoldRepository,
	repository.ProductRepository,
) error) error {
	return fn(r.detailRepo, r.levelRepo, r.reservationRepo, r.qcRepo, r.productRepo)
}

func (r *fakeTxRunner) RunReservation(ctx context.Context, fn func(
	repository.StockLevelRepository,
	repository.ReservationRepository,
	repository.QCHoldRepository,
) error) error {
	return fn(r.levelRepo, r.reservationRepo, r.qcRepo)
}

func (r *fakeTxRunner) RunSerials(ctx context.Context, fn func(repository.SerialNumberRepository) error) error {
	snap := r.serialRepo.snapshot()
	if err := fn(r.serialRepo); err != nil {
		r.serialRepo.serials = snap
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunPickList(ctx context.Context, fn func(repository.PickListRepository) error) error {
	return fn(r.pickRepo)
}
