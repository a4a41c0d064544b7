package utils

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sync"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Algunos documentos migrados del sistema anterior quedaron con su
// ruta_archivo apuntando a Google Drive en lugar del almacenamiento local.

var (
	driveService *drive.Service
	driveOnce    sync.Once
)

func credencialesDrive() ([]byte, error) {
	if path := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_PATH"); path != "" {
		return os.ReadFile(path)
	}
	if raw := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"); raw != "" {
		return []byte(raw), nil
	}
	return nil, fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_PATH o GOOGLE_DRIVE_CREDENTIALS_JSON debe estar configurado")
}

// InitGoogleDriveService inicializa el cliente de Google Drive con la cuenta
// de servicio configurada. Solo se requiere alcance de lectura.
func InitGoogleDriveService() error {
	var initErr error
	driveOnce.Do(func() {
		ctx := context.Background()

		credsBytes, err := credencialesDrive()
		if err != nil {
			initErr = err
			return
		}

		creds, err := google.CredentialsFromJSON(ctx, credsBytes, drive.DriveReadonlyScope)
		if err != nil {
			initErr = fmt.Errorf("error cargando credenciales de Google Drive: %w", err)
			return
		}

		driveService, err = drive.NewService(ctx, option.WithCredentials(creds))
		if err != nil {
			initErr = fmt.Errorf("error creando servicio de Google Drive: %w", err)
			return
		}

		log.Printf("[GOOGLE_DRIVE] Servicio inicializado correctamente")
	})
	return initErr
}

func getDriveService() (*drive.Service, error) {
	if driveService == nil {
		if err := InitGoogleDriveService(); err != nil {
			return nil, err
		}
	}
	return driveService, nil
}

var drivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`id=([a-zA-Z0-9_-]+)`),
	regexp.MustCompile(`/folders/([a-zA-Z0-9_-]+)`),
}

// IsGoogleDriveURL indica si la ruta del documento apunta a Google Drive.
func IsGoogleDriveURL(url string) bool {
	return regexp.MustCompile(`drive\.google\.com`).MatchString(url)
}

// ExtractFileIDFromURL extrae el ID del archivo de una URL de Google Drive.
func ExtractFileIDFromURL(url string) (string, error) {
	for _, re := range drivePatterns {
		if matches := re.FindStringSubmatch(url); len(matches) > 1 {
			return matches[1], nil
		}
	}
	return "", fmt.Errorf("no se pudo extraer el ID del archivo de la URL: %s", url)
}

// DownloadFileFromGoogleDrive descarga el contenido de un archivo de Drive y
// retorna el lector junto con el nombre original del archivo.
func DownloadFileFromGoogleDrive(fileID string) (io.ReadCloser, string, error) {
	service, err := getDriveService()
	if err != nil {
		return nil, "", err
	}

	file, err := service.Files.Get(fileID).Fields("id", "name", "mimeType", "size").Do()
	if err != nil {
		return nil, "", fmt.Errorf("error obteniendo información del archivo: %w", err)
	}

	if file.MimeType == "application/vnd.google-apps.folder" {
		return nil, "", fmt.Errorf("las carpetas de Google Drive no se pueden descargar directamente")
	}

	resp, err := service.Files.Get(fileID).Download()
	if err != nil {
		return nil, "", fmt.Errorf("error descargando archivo: %w", err)
	}

	log.Printf("[GOOGLE_DRIVE] Archivo %s (%s, %d bytes) descargado", file.Name, file.MimeType, file.Size)
	return resp.Body, file.Name, nil
}
