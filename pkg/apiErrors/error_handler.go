package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro
const (
	// Erros de autenticação e autorização
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrOutOfScope            = "AUTH_011" // Registro fora do escopo de empresa/unidade do usuário

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidStatus       = "VAL_004" // Status inexistente
	ErrEmptySelection      = "VAL_005" // Lista de ids vazia
	ErrMissingPrice        = "VAL_006" // Serviço sem preço configurado
	ErrMissingCriteria     = "VAL_007" // Busca sem nenhum critério
	ErrInvalidPixKey       = "VAL_008" // Chave PIX inválida para o tipo informado
	ErrMethodNotAllowed    = "VAL_009" // Método não suportado pela rota

	// Registros não encontrados
	ErrSaleNotFound         = "NF_001"
	ErrServiceSaleNotFound  = "NF_002"
	ErrServiceNotFound      = "NF_003"
	ErrCommissionerNotFound = "NF_004"
	ErrUnitNotFound         = "NF_005"
	ErrRouteNotFound        = "NF_006"

	// Conflitos de estado
	ErrSameStatus           = "CNF_001" // Status de destino igual ao atual
	ErrTerminalStatus       = "CNF_002" // Venda em estado terminal
	ErrTransitionNotAllowed = "CNF_003" // Transição fora do conjunto configurado
	ErrCrossCompany         = "CNF_004" // Comissionado de outra empresa
	ErrCommissionerDisabled = "CNF_005" // Comissionado desabilitado
	ErrReferencedRecord     = "CNF_006" // Registro referenciado por outra tabela

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrOutOfScope:            http.StatusForbidden,

	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrInvalidStatus:       http.StatusBadRequest,
	ErrEmptySelection:      http.StatusBadRequest,
	ErrMissingPrice:        http.StatusBadRequest,
	ErrMissingCriteria:     http.StatusBadRequest,
	ErrInvalidPixKey:       http.StatusBadRequest,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,

	ErrSaleNotFound:         http.StatusNotFound,
	ErrServiceSaleNotFound:  http.StatusNotFound,
	ErrServiceNotFound:      http.StatusNotFound,
	ErrCommissionerNotFound: http.StatusNotFound,
	ErrUnitNotFound:         http.StatusNotFound,
	ErrRouteNotFound:        http.StatusNotFound,

	ErrSameStatus:           http.StatusConflict,
	ErrTerminalStatus:       http.StatusConflict,
	ErrTransitionNotAllowed: http.StatusConflict,
	ErrCrossCompany:         http.StatusConflict,
	ErrCommissionerDisabled: http.StatusConflict,
	ErrReferencedRecord:     http.StatusConflict,

	ErrInternalServer:    http.StatusInternalServerError,
	ErrDatabaseOperation: http.StatusInternalServerError,
	ErrExternalService:   http.StatusBadGateway,
	ErrCommunication:     http.StatusServiceUnavailable,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP associado ao código
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}
