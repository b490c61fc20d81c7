package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	cartapp "github.com/solowear/storefront/internal/cart/app"
	cartds "github.com/solowear/storefront/internal/cart/infra/docstore"
	catalogapp "github.com/solowear/storefront/internal/catalog/app"
	catalogds "github.com/solowear/storefront/internal/catalog/infra/docstore"
	checkoutapp "github.com/solowear/storefront/internal/checkout/app"
	checkoutadapter "github.com/solowear/storefront/internal/checkout/infra/adapter"
	"github.com/solowear/storefront/internal/httpapi"
	orderapp "github.com/solowear/storefront/internal/order/app"
	orderds "github.com/solowear/storefront/internal/order/infra/docstore"
	"github.com/solowear/storefront/internal/payment/easypaisa"
	"github.com/solowear/storefront/internal/pricing"
	"github.com/solowear/storefront/internal/store"
	fsstore "github.com/solowear/storefront/internal/store/firestore"
	"github.com/solowear/storefront/internal/store/local"
	"github.com/solowear/storefront/pkg/config"
	"github.com/solowear/storefront/pkg/logger"
	"github.com/solowear/storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	docs := mustStore(ctx, cfg, log)

	// Catalog
	productRepo := catalogds.NewProductRepo(docs)
	catalogSvc := catalogapp.NewService(productRepo)

	// Cart
	cartRepo := cartds.NewCartRepo(docs)
	cartSvc := cartapp.NewService(cartRepo)

	// Orders + payment
	policy := pricing.NewPolicy(cfg.ShippingFlatFee, cfg.TaxRate)
	gateway := easypaisa.New(easypaisa.Config{
		Mode:       cfg.EasyPaisaMode,
		MerchantID: cfg.EasyPaisaMerchantID,
		StoreID:    cfg.EasyPaisaStoreID,
		SecureKey:  cfg.EasyPaisaSecureKey,
	}, docs)
	builder := orderapp.NewBuilder(gateway, policy, cfg.OrderIDPrefix)
	orderRepo := orderds.NewOrderRepo(docs)
	orderSvc := orderapp.NewService(orderRepo)

	// Checkout
	catalogReader := checkoutadapter.NewCatalogServiceReader(catalogSvc)
	checkoutSvc := checkoutapp.NewService(cartSvc, catalogReader, builder, orderRepo, policy, 10)

	router := httpapi.NewRouter(httpapi.Handlers{
		Products: httpapi.NewProductsHandler(catalogSvc),
		Cart:     httpapi.NewCartHandler(cartSvc),
		Checkout: httpapi.NewCheckoutHandler(checkoutSvc),
		Orders:   httpapi.NewOrdersHandler(orderSvc),
	}, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

// mustStore builds the document store: Firestore fronted by a local
// fallback when a project is configured, local only otherwise.
func mustStore(ctx context.Context, cfg config.Config, log *slog.Logger) store.Store {
	localStore, err := local.New(cfg.DataDir)
	if err != nil {
		log.Error("local store init failed", slog.Any("err", err))
		os.Exit(1)
	}

	if cfg.FirestoreDisabled || cfg.GCPProjectID == "" {
		log.Info("firestore disabled, using local store", slog.String("dir", cfg.DataDir))
		return localStore
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.GCPProjectID}, opts...)
	if err != nil {
		log.Error("firebase init failed", slog.Any("err", err))
		os.Exit(1)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		log.Error("firestore client failed", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("firestore connected", slog.String("project", cfg.GCPProjectID))
	return store.NewFallback(fsstore.New(client), localStore, log)
}
