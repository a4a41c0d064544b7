package db

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect abre la conexión a PostgreSQL usando DB_DSN. Las variables se
// cargan primero desde .env si existe.
func Connect() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No se encontró archivo .env, usando variables de entorno del sistema")
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "host=localhost user=creditos password=creditos dbname=creditos_comfaca port=5432 sslmode=disable"
	}

	nivel := logger.Warn
	if os.Getenv("DB_DEBUG") == "true" {
		nivel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(nivel),
	})
	if err != nil {
		log.Println("Error al conectar a la base de datos:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("[DB] Conexión a PostgreSQL establecida")
	return db, nil
}
