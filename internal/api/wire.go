package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"cashify/internal/core"
)

// TimestampLayout is how the REST API reads and writes LocalDateTime values.
const TimestampLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006-01-02",
}

// Timestamp is a zone-less wall clock time as the API writes it. Values
// without an offset are decoded as UTC fields and placed in the display
// zone by In.
type Timestamp struct {
	time.Time
	zoned bool
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.Format(TimestampLayout))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = Timestamp{Time: parsed, zoned: layout == time.RFC3339Nano}
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", s)
}

// In returns the instant the timestamp names in loc. A wall clock value
// keeps its fields; a value with an offset is converted.
func (t Timestamp) In(loc *time.Location) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	if t.zoned {
		return t.Time.In(loc)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// wallClock is the Timestamp the API expects for an instant seen in loc.
func wallClock(t time.Time, loc *time.Location) Timestamp {
	return Timestamp{Time: t.In(loc)}
}

// ID is an opaque identifier. The API sends it as a JSON string; numbers
// are accepted too and kept in their decimal form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Amount is a decimal written as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.StringFixed(2)), nil
}

type loginRequest struct {
	Email    string `json:"correo"`
	Password string `json:"contrasenia"`
}

type userRequest struct {
	Handle   string `json:"apodo"`
	Email    string `json:"correo"`
	Password string `json:"contrasenia"`
}

type userResponse struct {
	ID               ID     `json:"id"`
	Handle           string `json:"apodo"`
	Email            string `json:"correo"`
	TransactionCount int    `json:"totalTransacciones"`
	CategoryCount    int    `json:"totalCategorias"`
}

func (u userResponse) toCore() core.User {
	return core.User{
		ID:               string(u.ID),
		Handle:           u.Handle,
		Email:            u.Email,
		TransactionCount: u.TransactionCount,
		CategoryCount:    u.CategoryCount,
	}
}

type categoryRequest struct {
	Name string `json:"nombre"`
}

type categoryResponse struct {
	ID     ID     `json:"id"`
	Name   string `json:"nombre"`
	UserID ID     `json:"userId"`
}

func (c categoryResponse) toCore() core.Category {
	return core.Category{ID: string(c.ID), Name: c.Name, UserID: string(c.UserID)}
}

type transactionRequest struct {
	Kind        core.Kind `json:"tipoTransaccion"`
	CategoryID  string    `json:"categoriaId"`
	Description string    `json:"descripcion"`
	Date        Timestamp `json:"fecha"`
	Amount      Amount    `json:"monto"`
}

func newTransactionRequest(d core.TransactionDraft, loc *time.Location) transactionRequest {
	return transactionRequest{
		Kind:        d.Kind,
		CategoryID:  d.CategoryID,
		Description: d.Description,
		Date:        wallClock(d.Date, loc),
		Amount:      Amount{d.Amount},
	}
}

type transactionResponse struct {
	ID           ID              `json:"id"`
	Kind         core.Kind       `json:"tipoTransaccion"`
	CategoryID   ID              `json:"categoriaId"`
	CategoryName string          `json:"categoriaNombre"`
	Description  string          `json:"descripcion"`
	Date         Timestamp       `json:"fecha"`
	Amount       decimal.Decimal `json:"monto"`
	UserID       ID              `json:"userId"`
}

func (t transactionResponse) toCore(loc *time.Location) core.Transaction {
	return core.Transaction{
		ID:           string(t.ID),
		Kind:         t.Kind,
		CategoryID:   string(t.CategoryID),
		CategoryName: t.CategoryName,
		Description:  t.Description,
		Date:         t.Date.In(loc),
		Amount:       t.Amount,
		UserID:       string(t.UserID),
	}
}

func transactionsIn(out []transactionResponse, loc *time.Location) []core.Transaction {
	return mapSlice(out, func(t transactionResponse) core.Transaction { return t.toCore(loc) })
}

type summaryResponse struct {
	TotalIncome  decimal.Decimal `json:"totalIngresos"`
	TotalExpense decimal.Decimal `json:"totalGastos"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int             `json:"cantidadIngresos"`
	ExpenseCount int             `json:"cantidadGastos"`
	Period       string          `json:"periodo,omitempty"`
}

func (s summaryResponse) toCore() core.Summary {
	return core.Summary{
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Balance:      s.Balance,
		IncomeCount:  s.IncomeCount,
		ExpenseCount: s.ExpenseCount,
		Period:       s.Period,
	}
}

type errorBody struct {
	Message string `json:"message"`
	Mensaje string `json:"mensaje"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Mensaje != "":
		return e.Mensaje
	}
	return e.Error
}

func mapSlice[W any, C any](in []W, conv func(W) C) []C {
	out := make([]C, 0, len(in))
	for _, w := range in {
		out = append(out, conv(w))
	}
	return out
}
