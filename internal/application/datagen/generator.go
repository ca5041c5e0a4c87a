package datagen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wss/backend/internal/domain/model"
	"github.com/wss/backend/internal/infrastructure/config"
	"github.com/wss/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// originalMarker is embedded in roughly a tenth of the generated product and
// stock data blobs
const originalMarker = "ORIGINAL"

// defaultEmployeePassword is the well-known password of generated terminal
// users
const defaultEmployeePassword = "password"

var (
	firstNames = []string{"Ava", "Ben", "Clara", "David", "Emma", "Felix", "Greta", "Hugo", "Ida", "Jonas"}
	lastNames  = []string{"Bauer", "Fischer", "Hoffmann", "Keller", "Lang", "Meyer", "Richter", "Schmidt", "Weber", "Wolf"}
	cities     = []string{"Bamberg", "Erlangen", "Fuerth", "Nuremberg", "Regensburg", "Wuerzburg"}
	states     = []string{"BW", "BY", "HE", "NW", "SN", "TH"}
	nouns      = []string{"anchor", "barrel", "crate", "drum", "funnel", "gasket", "hinge", "ingot", "jack", "kettle",
		"ladder", "mallet", "nozzle", "pallet", "quiver", "rivet", "socket", "tarp", "valve", "winch"}
)

// Generator populates the record stores with a synthetic wholesale supplier
// model. All records are written through the stores so identifiers come from
// the injected generators.
type Generator struct {
	stores *persistence.Stores
	cfg    config.ModelConfig
	rng    *rand.Rand
	logger *zap.Logger
}

// NewGenerator creates a generator for the given model sizes
func NewGenerator(stores *persistence.Stores, cfg config.ModelConfig, logger *zap.Logger) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		stores: stores,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		logger: logger,
	}
}

// Generate builds and persists the whole model
func (g *Generator) Generate() error {
	start := time.Now()

	products, err := g.generateProducts()
	if err != nil {
		return err
	}
	carriers, err := g.generateCarriers()
	if err != nil {
		return err
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(defaultEmployeePassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash employee password: %w", err)
	}

	for w := 0; w < g.cfg.WarehouseCount; w++ {
		warehouse, err := g.generateWarehouse(w)
		if err != nil {
			return err
		}
		if err := g.generateStocks(warehouse, products); err != nil {
			return err
		}
		for d := 0; d < g.cfg.DistrictsPerWarehouse; d++ {
			district, err := g.generateDistrict(warehouse, d)
			if err != nil {
				return err
			}
			customers, err := g.generateCustomers(district)
			if err != nil {
				return err
			}
			if err := g.generateEmployees(district, string(passwordHash)); err != nil {
				return err
			}
			if err := g.generateOrders(district, customers, products, carriers); err != nil {
				return err
			}
		}
	}

	g.logger.Info("synthetic model generated",
		zap.Int("warehouses", g.stores.Warehouses.Count()),
		zap.Int("districts", g.stores.Districts.Count()),
		zap.Int("customers", g.stores.Customers.Count()),
		zap.Int("products", g.stores.Products.Count()),
		zap.Int("orders", g.stores.Orders.Count()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

func (g *Generator) generateProducts() ([]*model.Product, error) {
	products := make([]*model.Product, 0, g.cfg.ProductCount)
	for i := 0; i < g.cfg.ProductCount; i++ {
		data := g.words(6)
		if g.rng.Intn(10) == 0 {
			data = data + " " + originalMarker
		}
		products = append(products, &model.Product{
			Name:  fmt.Sprintf("%s %s", g.pick(nouns), g.pick(nouns)),
			Price: decimal.NewFromFloat(float64(g.rng.Intn(9900)+100) / 100),
			Data:  data,
		})
	}
	return g.stores.Products.SaveAll(products)
}

func (g *Generator) generateCarriers() ([]*model.Carrier, error) {
	carriers := make([]*model.Carrier, 0, g.cfg.CarrierCount)
	for i := 0; i < g.cfg.CarrierCount; i++ {
		carriers = append(carriers, &model.Carrier{
			Name:        fmt.Sprintf("%s logistics", g.pick(lastNames)),
			PhoneNumber: g.phoneNumber(),
			Address:     g.address(),
		})
	}
	return g.stores.Carriers.SaveAll(carriers)
}

func (g *Generator) generateWarehouse(n int) (*model.Warehouse, error) {
	return g.stores.Warehouses.Save(&model.Warehouse{
		Name:              fmt.Sprintf("Warehouse %d", n),
		Address:           g.address(),
		SalesTax:          g.taxRate(),
		YearToDateBalance: decimal.Zero,
	})
}

func (g *Generator) generateDistrict(warehouse *model.Warehouse, n int) (*model.District, error) {
	return g.stores.Districts.Save(&model.District{
		WarehouseID:       warehouse.ID,
		Name:              fmt.Sprintf("%s district %d", warehouse.Name, n),
		Address:           g.address(),
		SalesTax:          g.taxRate(),
		YearToDateBalance: decimal.Zero,
		NextOrderNumber:   1,
	})
}

func (g *Generator) generateStocks(warehouse *model.Warehouse, products []*model.Product) error {
	stocks := make([]*model.Stock, 0, len(products))
	for _, product := range products {
		data := g.words(6)
		if g.rng.Intn(10) == 0 {
			data = data + " " + originalMarker
		}
		stocks = append(stocks, &model.Stock{
			ProductID:         product.ID,
			WarehouseID:       warehouse.ID,
			Quantity:          g.rng.Intn(91) + 10,
			YearToDateBalance: decimal.Zero,
			Data:              data,
			Dist01:            g.words(3),
			Dist02:            g.words(3),
			Dist03:            g.words(3),
			Dist04:            g.words(3),
			Dist05:            g.words(3),
			Dist06:            g.words(3),
			Dist07:            g.words(3),
			Dist08:            g.words(3),
			Dist09:            g.words(3),
			Dist10:            g.words(3),
		})
	}
	_, err := g.stores.Stocks.SaveAll(stocks)
	return err
}

func (g *Generator) generateCustomers(district *model.District) ([]*model.Customer, error) {
	customers := make([]*model.Customer, 0, g.cfg.CustomersPerDistrict)
	for i := 0; i < g.cfg.CustomersPerDistrict; i++ {
		first := g.pick(firstNames)
		last := g.pick(lastNames)
		credit := model.CreditGood
		if g.rng.Intn(10) == 0 {
			credit = model.CreditBad
		}
		customers = append(customers, &model.Customer{
			DistrictID:        district.ID,
			FirstName:         first,
			MiddleName:        g.pick(firstNames),
			LastName:          last,
			Address:           g.address(),
			PhoneNumber:       g.phoneNumber(),
			Email:             fmt.Sprintf("%s.%s.%d@%s.example.com", first, last, g.rng.Intn(100000), district.ID),
			Since:             time.Now().AddDate(0, -g.rng.Intn(36), 0),
			Credit:            credit,
			CreditLimit:       decimal.NewFromInt(int64(g.rng.Intn(45000) + 5000)),
			Discount:          decimal.NewFromFloat(float64(g.rng.Intn(50)) / 1000),
			Balance:           decimal.Zero,
			YearToDatePayment: decimal.Zero,
			Data:              g.words(10),
		})
	}
	return g.stores.Customers.SaveAll(customers)
}

func (g *Generator) generateEmployees(district *model.District, passwordHash string) error {
	employees := make([]*model.Employee, 0, g.cfg.EmployeesPerDistrict)
	for i := 0; i < g.cfg.EmployeesPerDistrict; i++ {
		first := g.pick(firstNames)
		last := g.pick(lastNames)
		employees = append(employees, &model.Employee{
			DistrictID: district.ID,
			Title:      "Terminal operator",
			FirstName:  first,
			LastName:   last,
			Address:    g.address(),
			Email:      fmt.Sprintf("%s.%s@wss.example.com", first, last),
			Username:   fmt.Sprintf("%s.%s.%d", first, last, g.rng.Intn(100000)),
			Password:   passwordHash,
		})
	}
	_, err := g.stores.Employees.SaveAll(employees)
	return err
}

// generateOrders creates the district's order history: customers order random
// products from the district's own warehouse, the older half already
// fulfilled by a random carrier.
func (g *Generator) generateOrders(district *model.District, customers []*model.Customer, products []*model.Product, carriers []*model.Carrier) error {
	for n := 0; n < g.cfg.OrdersPerDistrict; n++ {
		customer := customers[g.rng.Intn(len(customers))]
		entryDate := time.Now().Add(-time.Duration(g.cfg.OrdersPerDistrict-n) * time.Hour)
		fulfilled := n < g.cfg.OrdersPerDistrict/2

		order := &model.Order{
			DistrictID: district.ID,
			CustomerID: customer.ID,
			Number:     district.NextOrderNumber,
			EntryDate:  entryDate,
			Fulfilled:  fulfilled,
			AllLocal:   true,
		}
		if fulfilled && len(carriers) > 0 {
			order.CarrierID = carriers[g.rng.Intn(len(carriers))].ID
		}
		district.NextOrderNumber++

		itemCount := g.rng.Intn(11) + 5
		order.ItemCount = itemCount
		if _, err := g.stores.Orders.Save(order); err != nil {
			return err
		}

		items := make([]*model.OrderItem, 0, itemCount)
		for i := 0; i < itemCount; i++ {
			product := products[g.rng.Intn(len(products))]
			quantity := g.rng.Intn(10) + 1
			item := &model.OrderItem{
				OrderID:              order.ID,
				ProductID:            product.ID,
				SupplyingWarehouseID: district.WarehouseID,
				Number:               i + 1,
				Quantity:             quantity,
				Amount:               product.Price.Mul(decimal.NewFromInt(int64(quantity))),
			}
			if fulfilled {
				deliveryDate := entryDate.Add(time.Duration(g.rng.Intn(48)) * time.Hour)
				item.DeliveryDate = &deliveryDate
			}
			items = append(items, item)
		}
		if _, err := g.stores.OrderItems.SaveAll(items); err != nil {
			return err
		}
	}

	_, err := g.stores.Districts.Save(district)
	return err
}

func (g *Generator) pick(values []string) string {
	return values[g.rng.Intn(len(values))]
}

func (g *Generator) words(n int) string {
	s := g.pick(nouns)
	for i := 1; i < n; i++ {
		s += " " + g.pick(nouns)
	}
	return s
}

func (g *Generator) address() model.Address {
	return model.Address{
		Street1: fmt.Sprintf("%d %s street", g.rng.Intn(900)+1, g.pick(nouns)),
		ZipCode: fmt.Sprintf("%05d", g.rng.Intn(100000)),
		City:    g.pick(cities),
		State:   g.pick(states),
	}
}

func (g *Generator) phoneNumber() string {
	return fmt.Sprintf("+49 %d %07d", g.rng.Intn(900)+100, g.rng.Intn(10000000))
}

func (g *Generator) taxRate() decimal.Decimal {
	return decimal.New(int64(g.rng.Intn(2001)), -4)
}
