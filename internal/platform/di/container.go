// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/caerux/e-commerce-website/internal/adapters/in/auth"
	"github.com/caerux/e-commerce-website/internal/adapters/out/catalog"
	"github.com/caerux/e-commerce-website/internal/adapters/out/db"
	"github.com/caerux/e-commerce-website/internal/adapters/out/export"
	"github.com/caerux/e-commerce-website/internal/adapters/out/mail"
	"github.com/caerux/e-commerce-website/internal/adapters/out/storage"
	"github.com/caerux/e-commerce-website/internal/application/usecase"
	iddom "github.com/caerux/e-commerce-website/internal/domain/identity"
	proddom "github.com/caerux/e-commerce-website/internal/domain/product"
	appcfg "github.com/caerux/e-commerce-website/internal/infra/config"
)

// Container wires the full storefront application graph.
type Container struct {
	Infra *Infra
	Log   *zap.Logger

	Catalog proddom.Catalog

	// Ids is the identity provider bound to the engine. With
	// AUTH_BACKEND=file it is Auth; with AUTH_BACKEND=firebase it is
	// FirebaseIDs.
	Ids         iddom.Provider
	Auth        *auth.Service
	FirebaseIDs *auth.FirebaseProvider

	Engine   *usecase.CartEngine
	Importer *usecase.CSVImporter
	Checkout *usecase.CheckoutUsecase
}

// NewContainer builds infra and the application graph from cfg and starts
// the cart engine.
func NewContainer(ctx context.Context, cfg *appcfg.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	inf, err := NewInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	c := &Container{Infra: inf, Log: log}

	// Catalog: HTTP listing endpoint when configured, local file otherwise.
	if strings.TrimSpace(cfg.CatalogURL) != "" {
		c.Catalog = catalog.NewHTTPCatalog(cfg.CatalogURL, nil)
	} else {
		c.Catalog = catalog.NewFileCatalog(cfg.CatalogFile)
	}

	// Cart store.
	storeOpts := storage.FactoryOptions{
		FilePath:  cfg.CartFilePath,
		RedisAddr: cfg.RedisAddr,
		Redis:     inf.Redis,
		Logger:    log,
	}
	if inf.Firestore != nil {
		storeOpts.Firestore = inf.Firestore.Client
	}
	store, err := storage.BuildCartStore(cfg.CartStoreBackend, storeOpts)
	if err != nil {
		inf.Close()
		return nil, fmt.Errorf("di: cart store: %w", err)
	}

	// Identity provider.
	switch cfg.AuthBackend {
	case "", "file":
		c.Auth = auth.NewService(auth.NewFileUserDirectory(cfg.UsersFile), cfg.SessionFile, log)
		c.Ids = c.Auth
	case "firebase":
		if inf.FirebaseAuth == nil {
			inf.Close()
			return nil, errors.New("di: AUTH_BACKEND=firebase but firebase auth is unavailable")
		}
		c.FirebaseIDs = auth.NewFirebaseProvider(inf.FirebaseAuth)
		c.Ids = c.FirebaseIDs
	default:
		inf.Close()
		return nil, fmt.Errorf("di: unknown auth backend: %s", cfg.AuthBackend)
	}

	// Cart engine.
	c.Engine = usecase.NewCartEngine(store, c.Catalog, c.Ids, usecase.CartEngineOptions{
		MaxQuantity: cfg.MaxQuantity,
		Notifier:    logNotifier{log: log},
		Logger:      log,
	})
	if err := c.Engine.Start(ctx); err != nil {
		inf.Close()
		return nil, fmt.Errorf("di: cart engine start: %w", err)
	}

	// Order exporters, all optional.
	var exporters []usecase.OrderExporter
	exporters = append(exporters, export.NewCSVFileExporter("orders", log))
	if inf.GCS != nil {
		up, err := export.NewGCSOrderUploader(inf.GCS, cfg.GCSBucket, log)
		if err != nil {
			log.Warn("gcs order uploader disabled", zap.Error(err))
		} else {
			exporters = append(exporters, up)
		}
	}
	if inf.Postgres != nil {
		exporters = append(exporters, db.NewOrderArchivePG(inf.Postgres.Client))
	}
	if strings.TrimSpace(inf.SendGridAPIKey) != "" && strings.TrimSpace(cfg.OrdersNotifyTo) != "" {
		mailer := mail.NewOrderMailer(
			mail.NewSendGridClient(inf.SendGridAPIKey),
			cfg.MailFrom,
			cfg.OrdersNotifyTo,
		)
		exporters = append(exporters, mailer)
	}

	c.Importer = usecase.NewCSVImporter(c.Engine, c.Catalog, log)
	c.Checkout = usecase.NewCheckoutUsecase(c.Engine, c.Catalog, c.Ids, exporters, log)

	return c, nil
}

// logNotifier surfaces quantity-cap notices through the logger. Warn level
// so they reach the user even in quiet mode.
type logNotifier struct{ log *zap.Logger }

func (n logNotifier) QuantityCapped(barcode string, max int) {
	n.log.Warn("quantity capped",
		zap.String("barcode", barcode),
		zap.Int("max", max))
}

// Close stops the engine and releases infra clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Engine != nil {
		c.Engine.Close()
	}
	if c.Infra != nil {
		c.Infra.Close()
	}
}
