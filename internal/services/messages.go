package services

import (
	"errors"

	"cashify/internal/api"
	"cashify/internal/core"
)

// Messages shown when the server gives no usable text.
const (
	MsgUnreachable = "No se pudo conectar con el servidor"

	MsgLoginFailed        = "Error al iniciar sesión. Intente nuevamente"
	MsgBadCredentials     = "Correo electrónico o contraseña incorrectos"
	MsgRegisterFailed     = "Error al crear la cuenta. Intente nuevamente"
	MsgAccountTaken       = "El apodo o correo electrónico ya está registrado"
	MsgAccountSaveFailed  = "Error al actualizar la cuenta"
	MsgAccountDeleteFail  = "Error al eliminar la cuenta"
	MsgCategorySaveFailed = "Error al guardar categoría"
	MsgCategoryDelFailed  = "Error al eliminar categoría"
	MsgTxSaveFailed       = "Error al guardar transacción"
	MsgTxDeleteFailed     = "Error al eliminar transacción"
	MsgFilterFailed       = "Error al filtrar por período"
	MsgLoadFailed         = "Error al cargar datos"

	ConfirmDeleteCategory    = "¿Eliminar esta categoría?"
	ConfirmDeleteTransaction = "¿Eliminar esta transacción?"
	ConfirmDeleteAccount     = "¿Eliminar tu cuenta y todos sus datos?"
)

// ErrConfirmationRequired is returned by deletes that were not confirmed.
// Nothing is sent upstream.
var ErrConfirmationRequired = errors.New("confirmation required")

// FormError carries the text to show next to a form along with the cause.
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string { return e.Message }
func (e *FormError) Unwrap() error { return e.Err }

// UserMessage picks the text to show for err: the violated rule for
// validation errors, the server message verbatim when there is one, a
// connection message when the server was not reached, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var fe *FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, api.ErrUnreachable) {
		return MsgUnreachable
	}
	if msg := api.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}

func formError(err error, fallback string) *FormError {
	return &FormError{Message: UserMessage(err, fallback), Err: err}
}
