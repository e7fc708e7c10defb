// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	appcfg "github.com/caerux/e-commerce-website/internal/infra/config"
	"github.com/caerux/e-commerce-website/internal/infra/database"
	firestoreinfra "github.com/caerux/e-commerce-website/internal/infra/firestore"
	"github.com/caerux/e-commerce-website/internal/infra/secrets"
)

// Infra is the shared runtime infrastructure.
//   - owns external clients (Firestore / GCS / Redis / Postgres / Firebase Auth)
//   - clients required by the configured cart backend are strict (init error
//     aborts startup); everything else is best-effort (warn + continue)
//
// Infra must NOT depend on usecases or adapters.
type Infra struct {
	Config *appcfg.Config
	Log    *zap.Logger

	Firestore     *firestoreinfra.ClientWrapper
	GCS           *storage.Client
	Redis         *redis.Client
	Postgres      *database.DB
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secrets.Provider

	// Resolved once at startup (env or Secret Manager).
	SendGridAPIKey string
}

// NewInfra initializes shared infra from cfg.
func NewInfra(ctx context.Context, cfg *appcfg.Config, log *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	inf := &Infra{Config: cfg, Log: log}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Info("using credentials file for GCP clients")
	}

	// Firestore: strict only when it is the configured cart backend.
	if cfg.CartStoreBackend == "firestore" {
		fs, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, credFile, log)
		if err != nil {
			return nil, fmt.Errorf("di: firestore init: %w", err)
		}
		inf.Firestore = fs
	}

	// Redis: strict only when it is the configured cart backend.
	if cfg.CartStoreBackend == "redis" {
		if strings.TrimSpace(cfg.RedisAddr) == "" {
			inf.Close()
			return nil, errors.New("di: REDIS_ADDR is empty with CART_STORE=redis")
		}
		inf.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := inf.Redis.Ping(ctx).Err(); err != nil {
			inf.Close()
			return nil, fmt.Errorf("di: redis ping: %w", err)
		}
		log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
	}

	// GCS: best-effort, only when an order bucket is configured.
	if strings.TrimSpace(cfg.GCSBucket) != "" {
		gcs, err := newStorageClient(ctx, clientOpts)
		if err != nil {
			log.Warn("gcs client init failed, order upload disabled", zap.Error(err))
		} else {
			inf.GCS = gcs
		}
	}

	// Postgres: best-effort, only when a DSN is configured.
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err := database.NewConnection(cfg.PostgresDSN, log)
		if err != nil {
			log.Warn("postgres init failed, order archive disabled", zap.Error(err))
		} else {
			inf.Postgres = pg
		}
	}

	// Firebase Auth: best-effort, only when a project is configured.
	if strings.TrimSpace(cfg.FirebaseProjectID) != "" {
		fbApp, err := newFirebaseApp(ctx, cfg.FirebaseProjectID, clientOpts)
		if err != nil {
			log.Warn("firebase app init failed", zap.Error(err))
		} else if authClient, err := fbApp.Auth(ctx); err != nil {
			log.Warn("firebase auth init failed", zap.Error(err))
		} else {
			inf.FirebaseAuth = authClient
		}
	}

	// Secret Manager: best-effort, used to resolve the SendGrid key.
	inf.SendGridAPIKey = cfg.SendGridAPIKey
	if strings.TrimSpace(cfg.SendGridSecretName) != "" {
		sm, err := secrets.NewProvider(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Warn("secret manager init failed, order mailer may be disabled", zap.Error(err))
		} else {
			inf.SecretManager = sm
			key, err := sm.Get(ctx, cfg.SendGridSecretName)
			if err != nil {
				log.Warn("sendgrid key resolve failed", zap.Error(err))
			} else {
				inf.SendGridAPIKey = key
			}
		}
	}

	return inf, nil
}

func newStorageClient(ctx context.Context, opts []option.ClientOption) (*storage.Client, error) {
	if len(opts) > 0 {
		return storage.NewClient(ctx, opts...)
	}
	return storage.NewClient(ctx)
}

func newFirebaseApp(ctx context.Context, projectID string, opts []option.ClientOption) (*firebase.App, error) {
	fbCfg := &firebase.Config{ProjectID: projectID}
	if len(opts) > 0 {
		return firebase.NewApp(ctx, fbCfg, opts...)
	}
	return firebase.NewApp(ctx, fbCfg)
}

// Close releases every owned client. Safe on a partially built Infra.
func (inf *Infra) Close() {
	if inf == nil {
		return
	}
	if inf.Firestore != nil {
		_ = inf.Firestore.Close()
	}
	if inf.GCS != nil {
		_ = inf.GCS.Close()
	}
	if inf.Redis != nil {
		_ = inf.Redis.Close()
	}
	if inf.Postgres != nil {
		_ = inf.Postgres.Close()
	}
	if inf.SecretManager != nil {
		_ = inf.SecretManager.Close()
	}
}
