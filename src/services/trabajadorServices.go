package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

var ErrTrabajadorNoEncontrado = errors.New("no se encontraron datos del trabajador")

// EmpresaTrabajador es el empleador reportado por la API externa.
type EmpresaTrabajador struct {
	Nit         string `json:"nit"`
	RazonSocial string `json:"razon_social"`
}

// TrabajadorInfo son los datos de afiliación del trabajador que entrega la
// API externa de la caja.
type TrabajadorInfo struct {
	Cedula          string            `json:"cedtra"`
	Nombre          string            `json:"nombre"`
	Apellido1       string            `json:"apellido1"`
	Apellido2       string            `json:"apellido2"`
	Estado          string            `json:"estado"` // 'A' = activo
	FechaAfiliacion string            `json:"fecha_afiliacion"`
	Salario         float64           `json:"salario"`
	Cargo           string            `json:"cargo"`
	Email           string            `json:"email"`
	Empresa         EmpresaTrabajador `json:"empresa"`
}

// NombreCompleto arma el nombre completo del trabajador.
func (t *TrabajadorInfo) NombreCompleto() string {
	return strings.TrimSpace(strings.Join([]string{t.Nombre, t.Apellido1, t.Apellido2}, " "))
}

// TrabajadorService es el cliente HTTP de la API externa de afiliados.
type TrabajadorService struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewTrabajadorService creates a new instance of TrabajadorService
func NewTrabajadorService(baseURL, token string) *TrabajadorService {
	return &TrabajadorService{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// ObtenerDatosTrabajador consulta la información de afiliación por cédula.
func (s *TrabajadorService) ObtenerDatosTrabajador(ctx context.Context, cedula string) (*TrabajadorInfo, error) {
	body, err := json.Marshal(map[string]string{"cedtra": cedula})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/company/informacion_trabajador", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error consultando API de trabajadores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTrabajadorNoEncontrado
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error de API de trabajadores: status %d: %s", resp.StatusCode, respBody)
	}

	var parsed struct {
		Success bool            `json:"success"`
		Data    *TrabajadorInfo `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("respuesta inválida de API de trabajadores: %w", err)
	}
	if !parsed.Success || parsed.Data == nil || parsed.Data.Cedula == "" {
		return nil, ErrTrabajadorNoEncontrado
	}

	log.Printf("[TRABAJADORES] Datos obtenidos para cédula %s (NIT %s)", cedula, parsed.Data.Empresa.Nit)
	return parsed.Data, nil
}
