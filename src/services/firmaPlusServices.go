package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FirmantePlus es un firmante tal como lo espera el proveedor de firma.
type FirmantePlus struct {
	Orden           int    `json:"orden"`
	NombreCompleto  string `json:"nombre_completo"`
	NumeroDocumento string `json:"numero_documento"`
	Email           string `json:"email"`
	Rol             string `json:"rol"`
}

// EnvioFirmaResponse es la respuesta del proveedor al enviar un documento.
type EnvioFirmaResponse struct {
	TransaccionID string            `json:"transaccion_id"`
	URLFirmantes  map[string]string `json:"url_firmantes"`
}

// EstadoFirmaResponse es la respuesta del proveedor al consultar un proceso.
type EstadoFirmaResponse struct {
	Estado               string `json:"estado"`
	FirmantesCompletados int    `json:"firmantes_completados"`
	FirmantesPendientes  int    `json:"firmantes_pendientes"`
}

// FirmaPlusService es el cliente HTTP del proveedor externo de firma digital.
type FirmaPlusService struct {
	apiURL      string
	apiKey      string
	callbackURL string
	client      *http.Client
}

// NewFirmaPlusService creates a new instance of FirmaPlusService
func NewFirmaPlusService(apiURL, apiKey, callbackURL string) *FirmaPlusService {
	return &FirmaPlusService{
		apiURL:      apiURL,
		apiKey:      apiKey,
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *FirmaPlusService) hacerRequest(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return s.client.Do(req)
}

// EnviarDocumentoParaFirma envía el PDF (en base64) con su lista de firmantes
// al proveedor y retorna el id de transacción y las URLs de firma.
func (s *FirmaPlusService) EnviarDocumentoParaFirma(ctx context.Context, documentoPath string, firmantes []FirmantePlus, metadata map[string]interface{}) (*EnvioFirmaResponse, error) {
	contenido, err := os.ReadFile(documentoPath)
	if err != nil {
		return nil, fmt.Errorf("error leyendo documento %s: %w", documentoPath, err)
	}

	log.Printf("[FIRMA_PLUS] Enviando documento %s con %d firmantes", filepath.Base(documentoPath), len(firmantes))

	payload := map[string]interface{}{
		"documento":        base64.StdEncoding.EncodeToString(contenido),
		"nombre_documento": filepath.Base(documentoPath),
		"firmantes":        firmantes,
		"metadata":         metadata,
		"callback_url":     s.callbackURL,
	}

	resp, err := s.hacerRequest(ctx, http.MethodPost, "/documentos/enviar", payload)
	if err != nil {
		return nil, fmt.Errorf("error enviando documento a FirmaPlus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error de FirmaPlus al enviar documento: status %d: %s", resp.StatusCode, body)
	}

	var resultado EnvioFirmaResponse
	if err := json.NewDecoder(resp.Body).Decode(&resultado); err != nil {
		return nil, fmt.Errorf("respuesta inválida de FirmaPlus: %w", err)
	}

	log.Printf("[FIRMA_PLUS] Documento enviado, transacción %s", resultado.TransaccionID)
	return &resultado, nil
}

// ConsultarEstadoDocumento consulta el estado del proceso en el proveedor.
func (s *FirmaPlusService) ConsultarEstadoDocumento(ctx context.Context, transaccionID string) (*EstadoFirmaResponse, error) {
	resp, err := s.hacerRequest(ctx, http.MethodGet, "/documentos/"+transaccionID+"/estado", nil)
	if err != nil {
		return nil, fmt.Errorf("error consultando estado en FirmaPlus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error de FirmaPlus al consultar estado: status %d: %s", resp.StatusCode, body)
	}

	var estado EstadoFirmaResponse
	if err := json.NewDecoder(resp.Body).Decode(&estado); err != nil {
		return nil, fmt.Errorf("respuesta inválida de FirmaPlus: %w", err)
	}
	return &estado, nil
}

// DescargarDocumentoFirmado descarga el PDF firmado a la ruta destino.
func (s *FirmaPlusService) DescargarDocumentoFirmado(ctx context.Context, transaccionID, rutaDestino string) error {
	resp, err := s.hacerRequest(ctx, http.MethodGet, "/documentos/"+transaccionID+"/descargar", nil)
	if err != nil {
		return fmt.Errorf("error descargando documento firmado: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error de FirmaPlus al descargar documento: status %d: %s", resp.StatusCode, body)
	}

	if err := os.MkdirAll(filepath.Dir(rutaDestino), 0o755); err != nil {
		return err
	}

	f, err := os.Create(rutaDestino)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return err
	}

	log.Printf("[FIRMA_PLUS] Documento firmado descargado en %s (%d bytes)", rutaDestino, n)
	return nil
}

// CancelarProcesoFirmado cancela el proceso de firma en el proveedor.
func (s *FirmaPlusService) CancelarProcesoFirmado(ctx context.Context, transaccionID string) error {
	resp, err := s.hacerRequest(ctx, http.MethodPost, "/documentos/"+transaccionID+"/cancelar", nil)
	if err != nil {
		return fmt.Errorf("error cancelando proceso en FirmaPlus: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("error de FirmaPlus al cancelar proceso: status %d: %s", resp.StatusCode, body)
	}

	log.Printf("[FIRMA_PLUS] Proceso %s cancelado", transaccionID)
	return nil
}

// VerificarDisponibilidad indica si el proveedor responde su health check.
func (s *FirmaPlusService) VerificarDisponibilidad(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
