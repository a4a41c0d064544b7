package main

import (
	"flag"
	"log"
	"os"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Herramienta de bootstrap: crea un usuario administrador cuando la base de
// datos está vacía y el servidor aún no se ha levantado.
func main() {
	username := flag.String("username", "admin", "username del administrador")
	password := flag.String("password", "", "contraseña del administrador")
	email := flag.String("email", "", "correo del administrador")
	flag.Parse()

	if *password == "" {
		log.Fatal("la contraseña es obligatoria (-password)")
	}

	dsn := os.Getenv("DB_DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Migrate schema if not exists
	if err := db.AutoMigrate(&models.UserModel{}); err != nil {
		log.Fatalf("failed to migrate user model: %v", err)
	}

	var user models.UserModel
	result := db.Where("username = ?", *username).First(&user)
	if result.Error == nil {
		log.Printf("User '%s' already exists", *username)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	newUser := models.UserModel{
		Username: *username,
		Email:    *email,
		Password: string(hashedPassword),
		Roles:    models.Roles{models.RolAdministrator},
	}
	if err := db.Create(&newUser).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	log.Printf("User '%s' created with administrator role", *username)
}
