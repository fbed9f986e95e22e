// Package memory implementa el almacén del catálogo en memoria del proceso.
// Se usa en modo demo (STORE_DRIVER=memory) y como doble de los tests; respeta las mismas
// reglas que las consultas SQL del adaptador postgres.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
)

var (
	_ repository.ReportRepository        = (*Store)(nil)
	_ repository.InvoiceRepository       = (*Store)(nil)
	_ repository.ProductRepository       = (*Store)(nil)
	_ repository.PurchaseOrderRepository = purchaseOrderReader{}
)

// Store catálogo completo (productos, órdenes de compra, facturas) protegido por un RWMutex.
type Store struct {
	mu            sync.RWMutex
	products      map[string]*entity.Product
	productBySKU  map[string]string
	orders        map[string]*entity.PurchaseOrder
	orderByNumber map[string]string
	invoices      map[string]*entity.Invoice
	invoiceByNum  map[string]string
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:      make(map[string]*entity.Product),
		productBySKU:  make(map[string]string),
		orders:        make(map[string]*entity.PurchaseOrder),
		orderByNumber: make(map[string]string),
		invoices:      make(map[string]*entity.Invoice),
		invoiceByNum:  make(map[string]string),
	}
}

// ── Escritura (carga de datos del colaborador CRUD / seed) ────────────────────

// CreateProduct registra un producto. SKU único; asigna ID si viene vacío.
func (s *Store) CreateProduct(_ context.Context, p *entity.Product) error {
	if p.SKU == "" || p.StockQuantity < 0 || p.UnitPrice.IsNegative() {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.productBySKU[p.SKU]; dup {
		return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
	}
	cp := *p
	if cp.ID == "" {
		cp.ID = uuid.New().String()
		p.ID = cp.ID
	}
	s.products[cp.ID] = &cp
	s.productBySKU[cp.SKU] = cp.ID
	return nil
}

// CreatePurchaseOrder registra una orden con sus líneas. Una línea por producto.
func (s *Store) CreatePurchaseOrder(_ context.Context, o *entity.PurchaseOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.OrderNumber == "" {
		o.OrderNumber = uuid.New().String()
	}
	if _, dup := s.orderByNumber[o.OrderNumber]; dup {
		return fmt.Errorf("orden %s: %w", o.OrderNumber, domain.ErrDuplicate)
	}
	cp := *o
	if cp.ID == "" {
		cp.ID = uuid.New().String()
		o.ID = cp.ID
	}
	seen := make(map[string]bool, len(o.LineItems))
	cp.LineItems = make([]entity.PurchaseOrderLineItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		if err := s.checkLine(li.ProductID, li.Quantity, li.CostPerUnit, seen); err != nil {
			return fmt.Errorf("orden %s: %w", o.OrderNumber, err)
		}
		if li.ID == "" {
			li.ID = uuid.New().String()
		}
		li.PurchaseOrderID = cp.ID
		cp.LineItems = append(cp.LineItems, li)
	}
	s.orders[cp.ID] = &cp
	s.orderByNumber[cp.OrderNumber] = cp.ID
	return nil
}

// CreateInvoice registra una factura con sus líneas. Una línea por producto.
func (s *Store) CreateInvoice(_ context.Context, inv *entity.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = uuid.New().String()
	}
	if _, dup := s.invoiceByNum[inv.InvoiceNumber]; dup {
		return fmt.Errorf("factura %s: %w", inv.InvoiceNumber, domain.ErrDuplicate)
	}
	cp := *inv
	if cp.ID == "" {
		cp.ID = uuid.New().String()
		inv.ID = cp.ID
	}
	cp.DueDate = entity.Date(cp.DueDate)
	seen := make(map[string]bool, len(inv.LineItems))
	cp.LineItems = make([]entity.InvoiceLineItem, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		if err := s.checkLine(li.ProductID, li.Quantity, li.PriceEach, seen); err != nil {
			return fmt.Errorf("factura %s: %w", inv.InvoiceNumber, err)
		}
		if li.ID == "" {
			li.ID = uuid.New().String()
		}
		li.InvoiceID = cp.ID
		cp.LineItems = append(cp.LineItems, li)
	}
	s.invoices[cp.ID] = &cp
	s.invoiceByNum[cp.InvoiceNumber] = cp.ID
	return nil
}

func (s *Store) checkLine(productID string, qty int, amount decimal.Decimal, seen map[string]bool) error {
	if _, ok := s.products[productID]; !ok {
		return fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	if qty < 0 || amount.IsNegative() {
		return domain.ErrInvalidInput
	}
	if seen[productID] {
		return fmt.Errorf("producto %s repetido: %w", productID, domain.ErrDuplicate)
	}
	seen[productID] = true
	return nil
}

// ── Lectura de registros ──────────────────────────────────────────────────────

// GetBySKU implementa repository.ProductRepository.
func (s *Store) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.productBySKU[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s.products[id]
	return &cp, nil
}

// List implementa repository.ProductRepository (orden por nombre).
func (s *Store) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	s.mu.RLock()
	all := s.sortedProducts(func(*entity.Product) bool { return true })
	s.mu.RUnlock()
	if offset >= len(all) {
		return []*entity.Product{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// GetByNumber implementa repository.InvoiceRepository.
func (s *Store) GetByNumber(_ context.Context, invoiceNumber string) (*entity.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.invoiceByNum[invoiceNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.cloneInvoice(s.invoices[id]), nil
}

// ListByStatus implementa repository.InvoiceRepository.
func (s *Store) ListByStatus(_ context.Context, status string) ([]*entity.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*entity.Invoice{}
	for _, inv := range s.invoices {
		if inv.Status == status {
			out = append(out, s.cloneInvoice(inv))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceNumber < out[j].InvoiceNumber })
	return out, nil
}

// PurchaseOrders expone la lectura de órdenes (repository.PurchaseOrderRepository).
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return purchaseOrderReader{s} }

type purchaseOrderReader struct{ s *Store }

func (r purchaseOrderReader) GetByNumber(ctx context.Context, orderNumber string) (*entity.PurchaseOrder, error) {
	return r.s.GetPurchaseOrder(ctx, orderNumber)
}

// GetPurchaseOrder devuelve la orden con sus líneas o domain.ErrNotFound.
func (s *Store) GetPurchaseOrder(_ context.Context, orderNumber string) (*entity.PurchaseOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.orderByNumber[orderNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	src := s.orders[id]
	cp := *src
	cp.LineItems = make([]entity.PurchaseOrderLineItem, len(src.LineItems))
	for i, li := range src.LineItems {
		p := s.products[li.ProductID]
		li.ProductName, li.ProductSKU = p.Name, p.SKU
		cp.LineItems[i] = li
	}
	return &cp, nil
}

func (s *Store) cloneInvoice(src *entity.Invoice) *entity.Invoice {
	cp := *src
	cp.LineItems = make([]entity.InvoiceLineItem, len(src.LineItems))
	for i, li := range src.LineItems {
		p := s.products[li.ProductID]
		li.ProductName, li.ProductSKU = p.Name, p.SKU
		cp.LineItems[i] = li
	}
	return &cp
}

// sortedProducts copia los productos que cumplen keep, ordenados por nombre. Requiere el lock.
func (s *Store) sortedProducts(keep func(*entity.Product) bool) []*entity.Product {
	out := []*entity.Product{}
	for _, p := range s.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

func invoiceRow(inv *entity.Invoice) repository.InvoiceTotalResult {
	return repository.InvoiceTotalResult{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		InvoiceDate:   inv.InvoiceDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		TotalAmount:   inv.TotalAmount(),
	}
}

func limitRows[T any](rows []T, limit int) []T {
	if limit > 0 && limit < len(rows) {
		return rows[:limit]
	}
	return rows
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func year(t time.Time) int { return t.UTC().Year() }
