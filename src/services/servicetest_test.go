package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB abre una base SQLite aislada por prueba con el esquema migrado.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "creditos_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserModel{},
		&models.LineaCredito{},
		&models.EmpresaConvenio{},
		&models.Postulacion{},
		&models.SolicitudCredito{},
		&models.SolicitudSolicitante{},
		&models.SolicitudDocumento{},
		&models.FirmanteSolicitud{},
		&models.SolicitudTimeline{},
		&models.PdfGenerado{},
		&models.ProcesoFirmado{},
		&models.NumeroSolicitudSecuencia{},
	))
	return db
}

// crearSolicitudDePrueba radica una solicitud mínima con número explícito.
func crearSolicitudDePrueba(t *testing.T, svc *SolicitudService, numero, owner string) *models.SolicitudCredito {
	t.Helper()

	solicitud, err := svc.CrearSolicitud(&dtos.CrearSolicitudDTO{
		NumeroSolicitud: numero,
		ValorSolicitud:  5000000,
		PlazoMeses:      24,
		LineaCredito:    "1",
		Solicitante: &dtos.SolicitanteDTO{
			NumeroDocumento: "1117500000",
			Nombres:         "Pedro",
			Apellidos:       "Pérez",
		},
	}, owner)
	require.NoError(t, err)
	return solicitud
}

var (
	rolesAdmin      = models.Roles{models.RolAdministrator}
	rolesTrabajador = models.Roles{models.RolUserTrabajador}
)

func fechaPtr(t time.Time) *time.Time { return &t }
