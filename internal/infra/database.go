package infra

import (
	"fmt"

	"github.com/fchandiac/paddy-backend-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies any idempotent SQL patches that GORM
// cannot express (partial indexes, JSONB expression indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		// Map driver errors to gorm sentinels so errors.Is(err,
		// gorm.ErrDuplicatedKey) catches unique violations.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates all tables and applies the SQL patches.
// Also used by integration tests against a throwaway container DB.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Productor{},
		&model.TipoArroz{},
		&model.Temporada{},
		&model.RangoDescuento{},
		&model.Plantilla{},
		&model.Recepcion{},
		&model.Transaccion{},
		&model.TransaccionReferencia{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that GORM AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one default template among live rows.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_plantilla_predeterminada_unica') THEN
		    CREATE UNIQUE INDEX idx_plantilla_predeterminada_unica
		        ON plantillas (predeterminada)
		        WHERE predeterminada AND deleted_at IS NULL;
		  END IF;
		END $$`,
		// Accrual cron query: advances whose detail carries an interest config.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_transacciones_anticipo_interes') THEN
		    CREATE INDEX idx_transacciones_anticipo_interes
		        ON transacciones (fecha)
		        WHERE tipo = 'ANTICIPO' AND detalles -> 'anticipo' -> 'interes' IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
