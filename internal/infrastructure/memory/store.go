// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en tests de la capa de aplicación: mismas semánticas que
// el adaptador PostgreSQL (transacciones serializadas, rollback total) sin
// necesidad de una BD.
package memory

import (
	"sync"

	"github.com/jhoicas/manufactura-erp/internal/domain/entity"
)

type pairKey struct {
	ProductID  string
	LocationID string
}

// Store guarda todo el estado. mu protege los datos; txMu serializa las
// transacciones del TxRunner (una a la vez, equivalente en efecto al
// aislamiento serializable del adaptador PostgreSQL).
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	ledger           []*entity.LedgerEntry
	balances         map[pairKey]*entity.StockBalance
	products         map[string]*entity.Product
	locations        map[string]*entity.Location
	boms             map[string]*entity.BOM
	productionOrders map[string]*entity.ProductionOrder
	purchaseOrders   map[string]*entity.PurchaseOrder
	poItems          map[string]*entity.PurchaseOrderItem
	salesOrders      map[string]*entity.SalesOrder
	soItems          map[string]*entity.SalesOrderItem
	users            map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		balances:         make(map[pairKey]*entity.StockBalance),
		products:         make(map[string]*entity.Product),
		locations:        make(map[string]*entity.Location),
		boms:             make(map[string]*entity.BOM),
		productionOrders: make(map[string]*entity.ProductionOrder),
		purchaseOrders:   make(map[string]*entity.PurchaseOrder),
		poItems:          make(map[string]*entity.PurchaseOrderItem),
		salesOrders:      make(map[string]*entity.SalesOrder),
		soItems:          make(map[string]*entity.SalesOrderItem),
		users:            make(map[string]*entity.User),
	}
}

// snapshot copia profunda de todo el estado, para rollback.
type snapshot struct {
	ledger           []*entity.LedgerEntry
	balances         map[pairKey]*entity.StockBalance
	products         map[string]*entity.Product
	locations        map[string]*entity.Location
	boms             map[string]*entity.BOM
	productionOrders map[string]*entity.ProductionOrder
	purchaseOrders   map[string]*entity.PurchaseOrder
	poItems          map[string]*entity.PurchaseOrderItem
	salesOrders      map[string]*entity.SalesOrder
	soItems          map[string]*entity.SalesOrderItem
	users            map[string]*entity.User
}

func copyMap[V any](src map[string]*V) map[string]*V {
	dst := make(map[string]*V, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		ledger:           make([]*entity.LedgerEntry, len(s.ledger)),
		balances:         make(map[pairKey]*entity.StockBalance, len(s.balances)),
		products:         copyMap(s.products),
		locations:        copyMap(s.locations),
		boms:             make(map[string]*entity.BOM, len(s.boms)),
		productionOrders: copyMap(s.productionOrders),
		purchaseOrders:   make(map[string]*entity.PurchaseOrder, len(s.purchaseOrders)),
		poItems:          copyMap(s.poItems),
		salesOrders:      make(map[string]*entity.SalesOrder, len(s.salesOrders)),
		soItems:          copyMap(s.soItems),
		users:            copyMap(s.users),
	}
	copy(snap.ledger, s.ledger) // entradas inmutables, copiar el slice basta
	for k, v := range s.balances {
		c := *v
		snap.balances[k] = &c
	}
	for k, v := range s.boms {
		c := *v
		c.Items = append([]entity.BOMItem(nil), v.Items...)
		snap.boms[k] = &c
	}
	for k, v := range s.purchaseOrders {
		c := *v
		c.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		snap.purchaseOrders[k] = &c
	}
	for k, v := range s.salesOrders {
		c := *v
		c.Items = append([]entity.SalesOrderItem(nil), v.Items...)
		snap.salesOrders[k] = &c
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ledger = snap.ledger
	s.balances = snap.balances
	s.products = snap.products
	s.locations = snap.locations
	s.boms = snap.boms
	s.productionOrders = snap.productionOrders
	s.purchaseOrders = snap.purchaseOrders
	s.poItems = snap.poItems
	s.salesOrders = snap.salesOrders
	s.soItems = snap.soItems
	s.users = snap.users
}

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
