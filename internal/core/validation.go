package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/badoux/checkmail"
	"github.com/shopspring/decimal"
)

// ValidationError is a rule violated by form input. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	CategoryNameMin = 2
	CategoryNameMax = 50
	DescriptionMax  = 200
	HandleMin       = 3
	HandleMax       = 50
	EmailMax        = 50
	RegisterPassMin = 6
	LoginPassMin    = 8
	PasswordMax     = 20
)

func runes(s string) int {
	return utf8.RuneCountInString(s)
}

// CategoryInput is the raw content of the category form.
type CategoryInput struct {
	Name string
}

func (in CategoryInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return invalid("nombre", "El nombre es obligatorio")
	case runes(name) < CategoryNameMin:
		return invalid("nombre", fmt.Sprintf("El nombre debe tener al menos %d caracteres", CategoryNameMin))
	case runes(name) > CategoryNameMax:
		return invalid("nombre", fmt.Sprintf("El nombre no debe superar los %d caracteres", CategoryNameMax))
	}
	return nil
}

// TransactionInput is the raw content of the transaction form.
type TransactionInput struct {
	Kind        string
	CategoryID  string
	Amount      string
	Date        string
	Description string
}

// TransactionDraft is a validated transaction form, ready to be sent.
type TransactionDraft struct {
	Kind        Kind
	CategoryID  string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// Parse validates the form in field order and converts it. The first
// violated rule is returned.
func (in TransactionInput) Parse(loc *time.Location) (TransactionDraft, error) {
	var d TransactionDraft

	kind, err := ParseKind(in.Kind)
	if err != nil {
		return d, invalid("tipoTransaccion", "Seleccione un tipo de transacción válido")
	}
	d.Kind = kind

	d.CategoryID = strings.TrimSpace(in.CategoryID)
	if d.CategoryID == "" {
		return d, invalid("categoriaId", "Seleccione una categoría")
	}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return d, invalid("monto", "El monto debe ser un número mayor o igual a 0.01")
	}
	d.Amount = amount

	if strings.TrimSpace(in.Date) == "" {
		return d, invalid("fecha", "La fecha es obligatoria")
	}
	date, err := ParseDateTimeInput(in.Date, loc)
	if err != nil {
		return d, invalid("fecha", "Fecha inválida")
	}
	d.Date = date

	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return d, invalid("descripcion", "La descripción es obligatoria")
	}
	if runes(desc) > DescriptionMax {
		return d, invalid("descripcion", fmt.Sprintf("La descripción no debe superar los %d caracteres", DescriptionMax))
	}
	d.Description = desc

	return d, nil
}

// AccountInput is the content of the registration and account forms.
type AccountInput struct {
	Handle   string
	Email    string
	Password string
}

func (in AccountInput) Validate() error {
	handle := strings.TrimSpace(in.Handle)
	switch {
	case handle == "":
		return invalid("apodo", "El apodo es obligatorio")
	case runes(handle) < HandleMin:
		return invalid("apodo", fmt.Sprintf("El apodo debe tener al menos %d caracteres", HandleMin))
	case runes(handle) > HandleMax:
		return invalid("apodo", fmt.Sprintf("El apodo no debe superar los %d caracteres", HandleMax))
	}
	if err := validateEmail(in.Email, true); err != nil {
		return err
	}
	return validatePassword(in.Password, RegisterPassMin)
}

// LoginInput is the content of the login form.
type LoginInput struct {
	Email    string
	Password string
}

func (in LoginInput) Validate() error {
	if err := validateEmail(in.Email, false); err != nil {
		return err
	}
	return validatePassword(in.Password, LoginPassMin)
}

// validateEmail applies the permissive shape rule. strict adds the RFC format
// check for new addresses; that check only knows ASCII, so internationalised
// addresses stop at the shape rule.
func validateEmail(raw string, strict bool) error {
	email := strings.TrimSpace(raw)
	switch {
	case email == "":
		return invalid("correo", "El correo electrónico es obligatorio")
	case runes(email) > EmailMax:
		return invalid("correo", fmt.Sprintf("El correo electrónico no debe superar los %d caracteres", EmailMax))
	case !emailShape.MatchString(email):
		return invalid("correo", "Ingrese un correo electrónico válido")
	}
	if !strict || !isASCII(email) {
		return nil
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return invalid("correo", "Ingrese un correo electrónico válido")
	}
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func validatePassword(pw string, min int) error {
	switch {
	case pw == "":
		return invalid("contrasenia", "La contraseña es obligatoria")
	case runes(pw) < min:
		return invalid("contrasenia", fmt.Sprintf("La contraseña debe tener al menos %d caracteres", min))
	case runes(pw) > PasswordMax:
		return invalid("contrasenia", fmt.Sprintf("La contraseña no debe superar los %d caracteres", PasswordMax))
	}
	return nil
}

// PeriodInput holds the raw bounds typed into the period filter.
type PeriodInput struct {
	Start string
	End   string
}

// Resolve checks that both bounds are present and ordered and widens them
// to whole days in loc.
func (in PeriodInput) Resolve(loc *time.Location) (Period, error) {
	if strings.TrimSpace(in.Start) == "" || strings.TrimSpace(in.End) == "" {
		return Period{}, invalid("periodo", "Seleccione ambas fechas")
	}
	start, err := ParseDateInput(in.Start, loc)
	if err != nil {
		return Period{}, invalid("fechaInicio", "Fecha de inicio inválida")
	}
	end, err := ParseDateInput(in.End, loc)
	if err != nil {
		return Period{}, invalid("fechaFin", "Fecha de fin inválida")
	}
	if start.After(end) {
		return Period{}, invalid("periodo", "La fecha de inicio debe ser anterior o igual a la fecha de fin")
	}
	return DayBounds(start, end), nil
}
