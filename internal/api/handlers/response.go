package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/pkg/validation"
)

var (
	// ErrEmptyBody возвращается DecodeJSON, когда тело запроса пустое
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge возвращается DecodeJSON, когда тело больше лимита middleware.BodyLimit
	ErrBodyTooLarge = errors.New("request body too large")
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors,omitempty"`
}

// RespondJSON пишет ответ со статусом code и телом payload в JSON
func RespondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, code int, message string) {
	RespondJSON(w, code, ErrorResponse{Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondInternalError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusInternalServerError, message)
}

func RespondPayloadTooLarge(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusRequestEntityTooLarge, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondValidationError пишет 400 с деталями по полям.
// Если err не содержит *validation.Error, список ошибок не выводится.
func RespondValidationError(w http.ResponseWriter, message string, err error) {
	resp := ErrorResponse{Message: message}

	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Errors = verr.Fields
	}

	RespondJSON(w, http.StatusBadRequest, resp)
}

// RespondDecodeError отвечает на ошибку DecodeJSON: 413 для слишком большого тела, иначе 400 с message
func RespondDecodeError(w http.ResponseWriter, message string, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		RespondPayloadTooLarge(w, "Request body too large")
		return
	}
	RespondBadRequest(w, message)
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля игнорируются.
// Размер тела ограничивает middleware.BodyLimit.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}
