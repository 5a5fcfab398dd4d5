// Package http provides HTTP server and handler implementations.
//
// This file holds the helpers that turn request data into the form inputs
// of the services layer.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cashify/internal/core"
)

// Form field names. They match the JSON keys of the REST API.
const (
	fieldName        = "nombre"
	fieldKind        = "tipoTransaccion"
	fieldCategoryID  = "categoriaId"
	fieldAmount      = "monto"
	fieldDate        = "fecha"
	fieldDescription = "descripcion"
	fieldHandle      = "apodo"
	fieldEmail       = "correo"
	fieldPassword    = "contrasenia"
	fieldStart       = "fechaInicio"
	fieldEnd         = "fechaFin"
	fieldConfirm     = "confirm"
	fieldKindFilter  = "kind"
)

// maxBodyBytes bounds form and JSON bodies.
const maxBodyBytes = 64 << 10

var errInvalidID = errors.New("invalid id")

// RequestBodyParser handles different content types for request body parsing.
// It supports both JSON and form-encoded data, commonly used with HTMX.
type RequestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
	parsed   bool
	err      error
}

// NewRequestBodyParser creates a parser for the given request.
// It reads the body once and stores it for subsequent parsing.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	// Try JSON first if content looks like JSON
	if p.body[0] == '{' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal(p.body, &p.jsonData); err != nil {
			p.err = err
			return err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(p.body))
	return p.err
}

// Get returns a sanitized, trimmed value from the parsed data.
func (p *RequestBodyParser) Get(key string) string {
	return strings.TrimSpace(p.Exact(key))
}

// Exact returns a value without trimming. Passwords go through here.
func (p *RequestBodyParser) Exact(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts a decoded JSON value to string.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseBody reads the request body or answers 400.
func parseBody(w http.ResponseWriter, r *http.Request) (*RequestBodyParser, bool) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		badRequest("Formato de solicitud inválido").Write(w)
		return nil, false
	}
	return p, true
}

// sanitizeInput removes control characters except tab, newline and carriage return.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
}

// pathID reads an opaque resource id from the path. The server decides the
// id format, so only blank values are refused.
func pathID(r *http.Request, name string) (string, error) {
	id := strings.TrimSpace(r.PathValue(name))
	if id == "" {
		return "", errInvalidID
	}
	return id, nil
}

func isConfirmed(p *RequestBodyParser) bool {
	v, _ := strconv.ParseBool(p.Get(fieldConfirm))
	return v
}

func categoryInput(p *RequestBodyParser) core.CategoryInput {
	return core.CategoryInput{Name: p.Exact(fieldName)}
}

func transactionInput(p *RequestBodyParser) core.TransactionInput {
	return core.TransactionInput{
		Kind:        p.Get(fieldKind),
		CategoryID:  p.Get(fieldCategoryID),
		Amount:      p.Get(fieldAmount),
		Date:        p.Get(fieldDate),
		Description: p.Exact(fieldDescription),
	}
}

func accountInput(p *RequestBodyParser) core.AccountInput {
	return core.AccountInput{
		Handle:   p.Get(fieldHandle),
		Email:    p.Get(fieldEmail),
		Password: p.Exact(fieldPassword),
	}
}

func loginInput(p *RequestBodyParser) core.LoginInput {
	return core.LoginInput{
		Email:    p.Get(fieldEmail),
		Password: p.Exact(fieldPassword),
	}
}

func periodInput(p *RequestBodyParser) core.PeriodInput {
	return core.PeriodInput{Start: p.Get(fieldStart), End: p.Get(fieldEnd)}
}
