package infra

import (
	"fmt"
	"regexp"

	"unboxx/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// WatchedTables are the tables whose row changes are published on the
// realtime channel.
var WatchedTables = []string{
	"profiles", "customers", "orders", "order_items", "shipping_addresses",
	"trackings", "products", "product_variants", "invoices", "revenues",
}

var channelName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NewDatabase opens the gorm pool on pgx, runs AutoMigrate, then installs the
// change-notification triggers that feed the realtime hub.
func NewDatabase(dsn, channel string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
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

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := applyRealtimePatches(db, channel); err != nil {
		return nil, fmt.Errorf("realtime patches: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table. It only uses portable DDL so the
// same call prepares the SQLite databases used in tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.AuthUser{},
		&model.Customer{},
		&model.Profile{},
		&model.Order{},
		&model.OrderItem{},
		&model.ShippingAddress{},
		&model.Tracking{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Invoice{},
		&model.Revenue{},
	)
}

// applyRealtimePatches installs notify_table_change() and one AFTER trigger
// per watched table. pg_notify is transactional, so listeners only hear
// about committed rows. Every statement is idempotent.
func applyRealtimePatches(db *gorm.DB, channel string) error {
	if !channelName.MatchString(channel) {
		return fmt.Errorf("invalid channel name %q", channel)
	}

	fn := fmt.Sprintf(`CREATE OR REPLACE FUNCTION notify_table_change() RETURNS trigger AS $$
BEGIN
  PERFORM pg_notify('%s', json_build_object('table', TG_TABLE_NAME, 'op', TG_OP)::text);
  RETURN NULL;
END;
$$ LANGUAGE plpgsql`, channel)
	if err := db.Exec(fn).Error; err != nil {
		return fmt.Errorf("patch notify_table_change: %w", err)
	}

	for _, table := range WatchedTables {
		trigger := fmt.Sprintf(`DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_trigger WHERE tgname = '%[1]s_notify') THEN
    CREATE TRIGGER %[1]s_notify
      AFTER INSERT OR UPDATE OR DELETE ON %[1]s
      FOR EACH ROW EXECUTE FUNCTION notify_table_change();
  END IF;
END $$`, table)
		if err := db.Exec(trigger).Error; err != nil {
			return fmt.Errorf("patch trigger %s: %w", table, err)
		}
	}
	return nil
}
