package seed

import (
	"log"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB) {
	// Users
	var user models.UserModel
	result := db.Where("username = ?", "admin").First(&user)
	if result.Error == nil {
		log.Println("User 'admin' already exists")
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)

		newUser := models.UserModel{
			Username: "admin",
			Email:    "admin@comfaca.com",
			Password: string(hashedPassword),
			Roles:    models.Roles{models.RolAdministrator},
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("Failed to create user: %v\n", err)
		} else {
			log.Println("User 'admin' created")
		}
	}

	// Líneas de crédito base del catálogo
	lineas := []models.LineaCredito{
		{Codigo: "1", Nombre: "Libre inversión", DetalleModalidad: "LIBRE_INVERSION", TasaInteres: 1.8, MontoMaximo: 20000000, PlazoMaximoMeses: 60, Activa: true},
		{Codigo: "2", Nombre: "Vivienda", DetalleModalidad: "VIVIENDA", TasaInteres: 1.2, MontoMaximo: 80000000, PlazoMaximoMeses: 120, Activa: true},
		{Codigo: "3", Nombre: "Educación", DetalleModalidad: "EDUCACION", TasaInteres: 1.0, MontoMaximo: 15000000, PlazoMaximoMeses: 48, Activa: true},
		{Codigo: "4", Nombre: "Vehículo", DetalleModalidad: "VEHICULO", TasaInteres: 1.5, MontoMaximo: 60000000, PlazoMaximoMeses: 72, Activa: true},
	}
	for _, linea := range lineas {
		var existente models.LineaCredito
		if err := db.Where("codigo = ?", linea.Codigo).First(&existente).Error; err == nil {
			continue
		}
		if err := db.Create(&linea).Error; err != nil {
			log.Printf("Failed to create línea de crédito %s: %v\n", linea.Codigo, err)
		} else {
			log.Printf("Línea de crédito %s (%s) created\n", linea.Codigo, linea.Nombre)
		}
	}

	// Convenio de demostración
	var convenio models.EmpresaConvenio
	if err := db.Where("nit = ?", "900123456").First(&convenio).Error; err != nil {
		firmado := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		vence := firmado.AddDate(3, 0, 0)
		demo := models.EmpresaConvenio{
			Nit:                 "900123456",
			RazonSocial:         "Empresa Demo S.A.S.",
			FechaConvenio:       &firmado,
			FechaVencimiento:    &vence,
			Estado:              models.ConvenioActivo,
			RepresentanteNombre: "Representante Demo",
			Ciudad:              "Florencia",
			Departamento:        "Caquetá",
			SectorEconomico:     "Comercio",
			NumeroEmpleados:     50,
			TipoEmpresa:         "Privada",
		}
		if err := db.Create(&demo).Error; err != nil {
			log.Printf("Failed to create convenio demo: %v\n", err)
		} else {
			log.Println("Convenio demo 'Empresa Demo S.A.S.' created")
		}
	}
}
