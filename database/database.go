package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/restopos/ticket-engine/config"
	"github.com/restopos/ticket-engine/models"
)

// Init opens the MySQL connection, runs migrations and seeds the
// ticket-number counter row.
func Init(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the schema and the counter row. Shared with the test
// suites, which run it against in-memory sqlite.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.SettledTicket{},
		&models.TicketCounter{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	counter := models.TicketCounter{Name: "ticket_number", Value: 0}
	if err := db.Where(models.TicketCounter{Name: counter.Name}).FirstOrCreate(&counter).Error; err != nil {
		return fmt.Errorf("failed to seed ticket counter: %w", err)
	}
	return nil
}
