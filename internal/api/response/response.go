// Package response concentra a escrita de respostas JSON e a leitura de payloads
// usadas por todos os handlers.
package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gotire/internal/domain"
	apperror "gotire/internal/errors"
	"gotire/internal/pkg/logger"
)

// MaxJSONBody limita o corpo de requisições JSON (lotes grandes de códigos cabem folgados).
const MaxJSONBody = 4 << 20

// Handle processa erros de serviço e envia respostas padronizadas ao cliente.
func Handle(log logger.Logger, w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				log.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		log.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{Code: status, Category: category, Message: message})
}

// DecodeJSON lê o corpo JSON em dst. Campos desconhecidos são rejeitados.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return apperror.NewValidationError("Corpo da requisição vazio.")
		}
		return apperror.NewValidationError("Payload inválido. Verifique o formato JSON.")
	}
	return nil
}

// Attachment prepara os cabeçalhos de download de arquivo.
func Attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filename+"\"")
}

// Content types das exportações.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)
