package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// GenerarPdfRequest es el payload que espera la API de renderizado.
type GenerarPdfRequest struct {
	SolicitudID      string `json:"solicitud_id"`
	IncluirConvenio  bool   `json:"incluir_convenio"`
	IncluirFirmantes bool   `json:"incluir_firmantes"`
	OutputDir        string `json:"output_dir"`
}

// GenerarPdfData son los metadatos del PDF generado que retorna la API.
type GenerarPdfData struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Tamano   int64  `json:"tamano"`
}

// GenerarPdfResponse es el sobre de respuesta de la API de renderizado.
type GenerarPdfResponse struct {
	Success bool            `json:"success"`
	Data    *GenerarPdfData `json:"data"`
	Error   string          `json:"error"`
}

// GeneradorPdfService es el cliente HTTP del servicio externo (Flask) que
// renderiza el PDF de la solicitud.
type GeneradorPdfService struct {
	baseURL  string
	username string
	password string
	client   *http.Client
}

// El renderizado puede tardar; la llamada se acota a 5 minutos.
const pdfGenerateTimeout = 5 * time.Minute

// NewGeneradorPdfService creates a new instance of GeneradorPdfService
func NewGeneradorPdfService(baseURL, username, password string) *GeneradorPdfService {
	return &GeneradorPdfService{
		baseURL:  baseURL,
		username: username,
		password: password,
		client:   &http.Client{Timeout: pdfGenerateTimeout},
	}
}

// GenerarPdfCreditos invoca la generación del PDF de la solicitud.
func (s *GeneradorPdfService) GenerarPdfCreditos(ctx context.Context, req *GenerarPdfRequest) (*GenerarPdfData, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	log.Printf("[GENERADOR_PDF] Solicitando PDF para solicitud %s", req.SolicitudID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/creditos/generate-pdf", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(s.username, s.password)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error de conexión con API de generación de PDF: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[GENERADOR_PDF] Error en API externa: status=%d body=%s", resp.StatusCode, respBody)
		return nil, fmt.Errorf("error en API de generación de PDF: status %d", resp.StatusCode)
	}

	var parsed GenerarPdfResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("respuesta inválida de API de generación de PDF: %w", err)
	}
	if !parsed.Success || parsed.Data == nil {
		return nil, fmt.Errorf("la API de generación de PDF reportó error: %s", parsed.Error)
	}

	log.Printf("[GENERADOR_PDF] PDF generado: %s (%d bytes)", parsed.Data.Filename, parsed.Data.Tamano)
	return parsed.Data, nil
}

// VerificarSalud consulta el endpoint de salud de la API de renderizado.
func (s *GeneradorPdfService) VerificarSalud(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/health", nil)
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
