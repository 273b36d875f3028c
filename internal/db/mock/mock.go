package mock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stadslab/internal/backoffice"
	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
	"stadslab/internal/seed"
	"stadslab/internal/store"
	"stadslab/models"
)

// New returns an in-memory sqlite database holding the demo catalog, event
// and manuals under namespace.
func New(ctx context.Context, namespace string) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	name := "stadslab-mock-" + strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		return nil, err
	}

	if err := populate(ctx, db, namespace); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func populate(ctx context.Context, db *gorm.DB, namespace string) error {
	applog.Debug(ctx, "seeding mock database", "namespace", namespace)

	s, err := store.NewGormStore(db, namespace)
	if err != nil {
		return err
	}
	if _, err := seed.Ensure(ctx, s, backoffice.NewService(s, nil), manuals.NewService(s)); err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
