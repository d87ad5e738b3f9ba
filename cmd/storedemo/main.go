package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/maksvovk/store-management/internal/catalog"
	"github.com/maksvovk/store-management/internal/checkout"
	"github.com/maksvovk/store-management/internal/registry"
	"github.com/maksvovk/store-management/internal/sqlstore"
	"github.com/maksvovk/store-management/internal/users"
	"github.com/maksvovk/store-management/pkg/config"
	"github.com/maksvovk/store-management/pkg/db"
	"github.com/maksvovk/store-management/pkg/logger"
	"github.com/maksvovk/store-management/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storedemo"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storedemo",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := sqlstore.Migrate(dbClient.DB()); err != nil {
		logg.Error(context.Background(), "failed to migrate database", err)
		os.Exit(1)
	}

	checkoutMetrics := metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer)

	if err := run(context.Background(), cfg, logg, sqlstore.New(dbClient), checkoutMetrics); err != nil {
		logg.Error(context.Background(), "demo scenario failed", err)
		os.Exit(1)
	}
}

// run seeds a supermarket and walks three customers through checkout: one
// settles, one abandons the cart, one fails on an expired card.
func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, store *sqlstore.Store, checkoutMetrics *metrics.CheckoutMetrics) error {
	reg := registry.New("DB1")

	market, err := catalog.NewStore("SuperSuperSuperMarket", "5 avenue")
	if err != nil {
		return err
	}
	if err := reg.AddStores(market); err != nil {
		return err
	}

	categories, err := seedCategories(reg, market)
	if err != nil {
		return err
	}
	products, err := seedProducts(reg, market, categories)
	if err != nil {
		return err
	}

	cashier, err := users.NewCashier("Maks", "Vovk")
	if err != nil {
		return err
	}
	if err := reg.AddCashiers(cashier); err != nil {
		return err
	}

	customers, err := seedCustomers(ctx, cfg, reg, store)
	if err != nil {
		return err
	}
	if err := store.InsertProducts(ctx, products...); err != nil {
		return err
	}

	ctx = logg.WithStoreID(ctx, market.ID())
	logg.Info(ctx, "supermarket seeded")

	anna, taras, victoria := customers[0], customers[1], customers[2]

	// Anna: bread and a novel, pays part of the bill with cashback.
	if err := anna.SetCashbackCents(30); err != nil {
		return err
	}
	cart1, err := checkout.New(products[0], reg, checkout.WithSink(store))
	if err != nil {
		return err
	}
	if err := cart1.AddProduct(products[4]); err != nil {
		return err
	}
	if err := cart1.SetCashier(cashier); err != nil {
		return err
	}
	if _, err := cart1.AddCustomer(anna.Phone()); err != nil {
		return err
	}
	if _, err := cart1.WithdrawCashback(20); err != nil {
		return err
	}

	start := time.Now()
	receipt, err := cart1.MakePayment(ctx, checkout.PaymentCard{
		Number:   "1234567812345678",
		ExpMonth: 11,
		ExpYear:  2026,
		CVV:      "123",
	})
	checkoutMetrics.ObserveDuration(market.Name(), time.Since(start))
	if err != nil {
		checkoutMetrics.IncFailure(market.Name())
		return err
	}
	checkoutMetrics.IncSuccess(market.Name())
	logg.Info(logg.WithPurchaseRef(logg.WithCustomerID(ctx, anna.ID()), receipt.Reference().String()),
		fmt.Sprintf("checkout settled, paid %d, cashback left %d", receipt.NetPaidCents(), anna.CashbackCents()))

	// Taras: fills a cart and walks away. The cart stays pending and the
	// inventory is untouched.
	cart2, err := checkout.New(products[2], reg, checkout.WithSink(store))
	if err != nil {
		return err
	}
	if err := cart2.AddProduct(products[6]); err != nil {
		return err
	}
	if err := cart2.AddProduct(products[8]); err != nil {
		return err
	}
	if err := cart2.SetCashier(cashier); err != nil {
		return err
	}
	if _, err := cart2.AddCustomer(taras.Phone()); err != nil {
		return err
	}
	logg.Info(logg.WithCustomerID(ctx, taras.ID()),
		fmt.Sprintf("cart abandoned at status %s with total %d", cart2.Status(), cart2.TotalCents()))

	// Victoria: an expired card fails the checkout after a cashback
	// withdrawal. The withdrawal sticks; the stock does not move.
	if err := victoria.SetCashbackCents(1000); err != nil {
		return err
	}
	cart3, err := checkout.New(products[3], reg, checkout.WithSink(store))
	if err != nil {
		return err
	}
	if err := cart3.SetCashier(cashier); err != nil {
		return err
	}
	if _, err := cart3.AddCustomer(victoria.Phone()); err != nil {
		return err
	}
	if _, err := cart3.WithdrawCashback(500); err != nil {
		return err
	}

	start = time.Now()
	_, err = cart3.MakePayment(ctx, checkout.PaymentCard{
		Number:   "3456789034567890",
		ExpMonth: 13,
		ExpYear:  2025,
		CVV:      "456",
	})
	checkoutMetrics.ObserveDuration(market.Name(), time.Since(start))
	if err == nil {
		return fmt.Errorf("expected the expired card to fail")
	}
	checkoutMetrics.IncFailure(market.Name())
	logg.Warn(logg.WithCustomerID(ctx, victoria.ID()),
		fmt.Sprintf("checkout failed at status %s: %v", cart3.Status(), err))

	for _, customer := range customers {
		cctx := logg.WithCustomerID(ctx, customer.ID())
		logg.Info(cctx, fmt.Sprintf("%s %s holds %d cashback across %d purchases",
			customer.Name(), customer.Surname(), customer.CashbackCents(), len(customer.Purchases())))
	}
	return nil
}

func seedCategories(reg *registry.Registry, market *catalog.Store) ([]*catalog.Category, error) {
	names := []string{"Food", "Electronics", "Books", "Clothing", "Toys"}
	categories := make([]*catalog.Category, 0, len(names))
	for _, name := range names {
		category, err := catalog.NewCategory(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := reg.AddCategories(categories...); err != nil {
		return nil, err
	}
	for _, category := range categories {
		if err := reg.AssignCategoryStore(category, market); err != nil {
			return nil, err
		}
	}
	return categories, nil
}

func seedProducts(reg *registry.Registry, market *catalog.Store, categories []*catalog.Category) ([]*catalog.Product, error) {
	seeds := []struct {
		name     string
		price    int64
		quantity int64
		category int
	}{
		{"Bread", 25, 100, 0},
		{"Milk", 30, 80, 0},
		{"Smartphone", 8000, 10, 1},
		{"Laptop", 25000, 5, 1},
		{"NovelBook", 200, 50, 2},
		{"Textbook", 500, 30, 2},
		{"T-shirt", 350, 70, 3},
		{"Jeans", 900, 40, 3},
		{"Puzzle", 150, 60, 4},
		{"Lego Set", 1200, 15, 4},
	}

	products := make([]*catalog.Product, 0, len(seeds))
	for i, seed := range seeds {
		product, err := catalog.NewProduct(seed.name, seed.price, seed.quantity)
		if err != nil {
			return nil, err
		}
		if err := product.SetBarcode(fmt.Sprintf("48200000000%02d", i+1)); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := reg.AddProducts(products...); err != nil {
		return nil, err
	}
	for i, product := range products {
		if err := reg.AssignProductStore(product, market); err != nil {
			return nil, err
		}
		if err := reg.AssignProductCategory(product, categories[seeds[i].category]); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func seedCustomers(ctx context.Context, cfg *config.Config, reg *registry.Registry, store *sqlstore.Store) ([]*users.Customer, error) {
	seeds := []struct {
		name, surname, phone string
	}{
		{"Anna", "Block", "+380991234001"},
		{"Taras", "Shevchenko", "+380991234002"},
		{"Victoria", "Hnatiuk", "+380991234003"},
	}

	customers := make([]*users.Customer, 0, len(seeds))
	for _, seed := range seeds {
		customer, err := users.NewCustomer(seed.name, seed.surname, seed.phone)
		if err != nil {
			return nil, err
		}
		if err := customer.SetPercent(cfg.Checkout.DefaultCashbackPercent); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := reg.AddCustomers(customers...); err != nil {
		return nil, err
	}
	for _, customer := range customers {
		if err := store.InsertCustomer(ctx, customer); err != nil {
			return nil, err
		}
	}
	return customers, nil
}
