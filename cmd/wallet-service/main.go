// @title         wallet-service API
// @version       1.0
// @description   Выпуск подписанных JWT для сохранения пропусков Google Wallet.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8081
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vbncursed/vkr/wallet-service/docs"
	"github.com/vbncursed/vkr/wallet-service/internal/catalog"
	wcfg "github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
	wh "github.com/vbncursed/vkr/wallet-service/internal/http"
	"github.com/vbncursed/vkr/wallet-service/internal/repo"
	"github.com/vbncursed/vkr/wallet-service/internal/service"
)

func main() {
	cfg := wcfg.Load()
	log := cfg.NewLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sa, err := crypto.LoadServiceAccount(cfg.ServiceAccountFile, cfg.ServiceAccountEmail)
	if err != nil {
		log.Fatalf("service account: %v", err)
	}

	policy, err := catalog.ParseConflictPolicy(cfg.ConflictPolicy)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	hc := sa.HTTPClient(ctx)
	hc.Timeout = cfg.CatalogTimeout
	client := catalog.New(cfg.CatalogBaseURL,
		catalog.WithHTTPClient(hc),
		catalog.WithUserAgent(cfg.ApplicationName),
		catalog.WithConflictPolicy(policy),
		catalog.WithLogger(log.WithField("component", "catalog")),
	)

	pool, err := repo.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := repo.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	store := repo.NewStore(pool)

	svc := service.New(client, store, service.RealClock{}, service.JWTSigner{Identity: sa.Identity}, service.Settings{
		Origins: cfg.Origins,
		Logger:  log.WithField("component", "issuer"),
	})

	e := wh.Router(wh.Deps{
		Service:   svc,
		Pool:      store,
		PublicKey: sa.Identity.PublicKey(),
		KeyID:     sa.KeyID,
		Logger:    log.WithField("component", "http"),
	}, cfg)

	srv := &http.Server{
		Addr:              cfg.Bind,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithFields(cfg.LogFields()).WithField("issuer", sa.Identity.Email).Info("wallet-service listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
}
