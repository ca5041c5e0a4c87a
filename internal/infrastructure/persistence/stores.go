package persistence

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/wss/backend/internal/domain/model"
)

// Persistence modes
const (
	ModeMemory = "memory"
	ModeFile   = "file"
	ModeRedis  = "redis"
)

// FlusherConfig selects the durability engine backing every store
type FlusherConfig struct {
	Mode  string
	Dir   string // snapshot directory for ModeFile
	Redis redis.UniversalClient
}

// Stores bundles one record store per entity type
type Stores struct {
	Warehouses *Store[*model.Warehouse, string]
	Districts  *Store[*model.District, string]
	Customers  *Store[*model.Customer, string]
	Orders     *Store[*model.Order, string]
	OrderItems *Store[*model.OrderItem, string]
	Stocks     *Store[*model.Stock, string]
	Products   *Store[*model.Product, string]
	Carriers   *Store[*model.Carrier, string]
	Payments   *Store[*model.Payment, string]
	Employees  *Store[*model.Employee, string]
}

// NewStores builds all stores over the configured durability engine. newGen
// is called once per store so every store owns its own generator instance.
func NewStores(newGen func() IdentityGenerator[string], cfg FlusherConfig) (*Stores, error) {
	s := &Stores{}
	var err error
	if s.Warehouses, err = buildStore[*model.Warehouse](newGen(), cfg, "warehouses"); err != nil {
		return nil, err
	}
	if s.Districts, err = buildStore[*model.District](newGen(), cfg, "districts"); err != nil {
		return nil, err
	}
	if s.Customers, err = buildStore[*model.Customer](newGen(), cfg, "customers"); err != nil {
		return nil, err
	}
	if s.Orders, err = buildStore[*model.Order](newGen(), cfg, "orders"); err != nil {
		return nil, err
	}
	if s.OrderItems, err = buildStore[*model.OrderItem](newGen(), cfg, "order_items"); err != nil {
		return nil, err
	}
	if s.Stocks, err = buildStore[*model.Stock](newGen(), cfg, "stocks"); err != nil {
		return nil, err
	}
	if s.Products, err = buildStore[*model.Product](newGen(), cfg, "products"); err != nil {
		return nil, err
	}
	if s.Carriers, err = buildStore[*model.Carrier](newGen(), cfg, "carriers"); err != nil {
		return nil, err
	}
	if s.Payments, err = buildStore[*model.Payment](newGen(), cfg, "payments"); err != nil {
		return nil, err
	}
	if s.Employees, err = buildStore[*model.Employee](newGen(), cfg, "employees"); err != nil {
		return nil, err
	}
	return s, nil
}

// NewMemoryStores builds all stores with uuid generators and no durability,
// the setup used by tests and the in-memory persistence mode
func NewMemoryStores() *Stores {
	s, _ := NewStores(
		func() IdentityGenerator[string] { return UUIDGenerator{} },
		FlusherConfig{Mode: ModeMemory},
	)
	return s
}

// ClearAll empties every store, persisting the empty state of each
func (s *Stores) ClearAll() error {
	clears := []func() error{
		s.Warehouses.Clear, s.Districts.Clear, s.Customers.Clear,
		s.Orders.Clear, s.OrderItems.Clear, s.Stocks.Clear,
		s.Products.Clear, s.Carriers.Clear, s.Payments.Clear, s.Employees.Clear,
	}
	for _, clear := range clears {
		if err := clear(); err != nil {
			return err
		}
	}
	return nil
}

// buildStore constructs one store with the flusher the config selects,
// restoring any previously persisted index for the file and redis modes
func buildStore[T Record[T, string]](gen IdentityGenerator[string], cfg FlusherConfig, name string) (*Store[T, string], error) {
	switch cfg.Mode {
	case ModeFile:
		flusher, err := NewFileFlusher[T](cfg.Dir, name)
		if err != nil {
			return nil, fmt.Errorf("build %s store: %w", name, err)
		}
		index, err := flusher.Load()
		if err != nil {
			return nil, fmt.Errorf("restore %s store: %w", name, err)
		}
		return Restore[T, string](gen, flusher, index), nil
	case ModeRedis:
		flusher := NewRedisFlusher[T](cfg.Redis, "wss:"+name)
		index, err := flusher.Load()
		if err != nil {
			return nil, fmt.Errorf("restore %s store: %w", name, err)
		}
		return Restore[T, string](gen, flusher, index), nil
	case ModeMemory, "":
		return NewStore[T, string](gen, NoopFlusher[T, string]{}), nil
	default:
		return nil, fmt.Errorf("unknown persistence mode %q", cfg.Mode)
	}
}
