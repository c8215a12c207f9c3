// Package app builds the services both binaries run on from configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/acquitrack/internal/config"
	"github.com/MrJamesThe3rd/acquitrack/internal/database"
	"github.com/MrJamesThe3rd/acquitrack/internal/importer"
	"github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest"
	prstore "github.com/MrJamesThe3rd/acquitrack/internal/purchaserequest/store"
	"github.com/MrJamesThe3rd/acquitrack/internal/report"
	"github.com/MrJamesThe3rd/acquitrack/internal/seed"
	"github.com/MrJamesThe3rd/acquitrack/internal/snapshot"
	"github.com/MrJamesThe3rd/acquitrack/internal/vendor"
	vendorstore "github.com/MrJamesThe3rd/acquitrack/internal/vendor/store"
)

type App struct {
	PurchaseRequests *purchaserequest.Service
	Vendors          *vendor.Service
	Reports          *report.Service
	Importer         *importer.Service

	closers []func() error
}

// New wires the stores selected by cfg.Store.Driver into the domain services.
func New(ctx context.Context, cfg *config.Config, opts ...purchaserequest.Option) (*App, error) {
	var (
		prSeed     []*purchaserequest.PurchaseRequest
		vendorSeed []*vendor.Vendor
	)

	if cfg.Store.Seed {
		prSeed = seed.PurchaseRequests()
		vendorSeed = seed.Vendors()
	}

	a := &App{}

	var (
		prRepo     purchaserequest.Repository
		vendorRepo vendor.Repository
	)

	switch cfg.Store.Driver {
	case config.StoreMemory:
		prRepo = prstore.NewMemory(prSeed...)
		vendorRepo = vendorstore.NewMemory(vendorSeed...)
	case config.StoreSQLite:
		db, err := snapshot.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}

		a.closers = append(a.closers, db.Close)

		prs, err := prstore.NewSQLite(ctx, db, prSeed...)
		if err != nil {
			return nil, errors.Join(err, a.Close())
		}

		vendors, err := vendorstore.NewSQLite(ctx, db, vendorSeed...)
		if err != nil {
			return nil, errors.Join(err, a.Close())
		}

		prRepo, vendorRepo = prs, vendors
	case config.StorePostgres:
		db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}

		a.closers = append(a.closers, db.Close)

		prRepo, vendorRepo, err = postgresStores(ctx, db, prSeed, vendorSeed)
		if err != nil {
			return nil, errors.Join(err, a.Close())
		}
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	dir := prstore.NewDirectory(seed.Users(), seed.FundingSources())

	a.PurchaseRequests = purchaserequest.NewService(prRepo, dir, opts...)
	a.Vendors = vendor.NewService(vendorRepo)
	a.Reports = report.NewService(a.PurchaseRequests, a.Vendors)
	a.Importer = importer.NewService()

	slog.Info("stores ready", "driver", cfg.Store.Driver, "seed", cfg.Store.Seed)

	return a, nil
}

func postgresStores(ctx context.Context, db *sql.DB, prSeed []*purchaserequest.PurchaseRequest, vendorSeed []*vendor.Vendor) (*prstore.Postgres, *vendorstore.Postgres, error) {
	prs := prstore.NewPostgres(db)
	if err := prs.Migrate(ctx); err != nil {
		return nil, nil, err
	}

	vendors := vendorstore.NewPostgres(db)
	if err := vendors.Migrate(ctx); err != nil {
		return nil, nil, err
	}

	if _, err := seed.LoadPurchaseRequests(ctx, prs, prSeed); err != nil {
		return nil, nil, err
	}

	if _, err := seed.LoadVendors(ctx, vendors, vendorSeed); err != nil {
		return nil, nil, err
	}

	return prs, vendors, nil
}

// Close releases the underlying database handles.
func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}
