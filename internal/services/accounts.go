package services

import (
	"context"
	"net/http"
	"strings"

	"cashify/internal/api"
	"cashify/internal/core"
	"cashify/internal/log"
)

// Accounts handles login, registration and the user's own account.
type Accounts struct {
	gw     UserGateway
	logger *log.Logger
}

func NewAccounts(gw UserGateway, logger *log.Logger) *Accounts {
	return &Accounts{gw: gw, logger: logger.WithComponent(log.ComponentForms)}
}

// Login validates the form and checks the credentials upstream.
func (a *Accounts) Login(ctx context.Context, in core.LoginInput) (core.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return core.User{}, formError(err, MsgLoginFailed)
	}
	u, err := a.gw.Login(ctx, in)
	if err != nil {
		a.logger.WarnContext(ctx, "Login failed", log.NewFields().WithOperation(log.OpLogin).WithError(err).ToSlice()...)
		if api.StatusOf(err) == http.StatusUnauthorized {
			return core.User{}, &FormError{Message: MsgBadCredentials, Err: err}
		}
		return core.User{}, formError(err, MsgLoginFailed)
	}
	a.logger.InfoContext(ctx, "User logged in", log.NewFields().WithUser(u.ID).ToSlice()...)
	return u, nil
}

// Register creates an account and returns it, ready to be selected.
func (a *Accounts) Register(ctx context.Context, in core.AccountInput) (core.User, error) {
	in = trimAccount(in)
	if err := in.Validate(); err != nil {
		return core.User{}, formError(err, MsgRegisterFailed)
	}
	u, err := a.gw.CreateUser(ctx, in)
	if err != nil {
		a.logger.WarnContext(ctx, "Registration failed", log.NewFields().WithOperation(log.OpCreate).WithError(err).ToSlice()...)
		return core.User{}, accountError(err, MsgRegisterFailed)
	}
	a.logger.InfoContext(ctx, "User registered", log.FieldUserID, u.ID)
	return u, nil
}

// Update changes handle, email and password of an account.
func (a *Accounts) Update(ctx context.Context, id string, in core.AccountInput) (core.User, error) {
	in = trimAccount(in)
	if err := in.Validate(); err != nil {
		return core.User{}, formError(err, MsgAccountSaveFailed)
	}
	u, err := a.gw.UpdateUser(ctx, id, in)
	if err != nil {
		a.logger.WarnContext(ctx, "Account update failed", failure(log.OpUpdate, id, err)...)
		return core.User{}, accountError(err, MsgAccountSaveFailed)
	}
	a.logger.InfoContext(ctx, "Account updated", log.FieldUserID, id)
	return u, nil
}

// Delete removes an account once the user confirmed it.
func (a *Accounts) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := a.gw.DeleteUser(ctx, id); err != nil {
		a.logger.WarnContext(ctx, "Account delete failed", failure(log.OpDelete, id, err)...)
		return formError(err, MsgAccountDeleteFail)
	}
	a.logger.InfoContext(ctx, "Account deleted", log.FieldUserID, id)
	return nil
}

// Refresh re-reads the user record, picking up new counters.
func (a *Accounts) Refresh(ctx context.Context, id string) (core.User, error) {
	return a.gw.GetUser(ctx, id)
}

// Ping checks that the API answers at all.
func (a *Accounts) Ping(ctx context.Context) error {
	_, err := a.gw.ListUsers(ctx)
	return err
}

func accountError(err error, fallback string) *FormError {
	if api.StatusOf(err) == http.StatusConflict {
		return &FormError{Message: MsgAccountTaken, Err: err}
	}
	return formError(err, fallback)
}

func trimAccount(in core.AccountInput) core.AccountInput {
	in.Handle = strings.TrimSpace(in.Handle)
	in.Email = strings.TrimSpace(in.Email)
	return in
}

// failure is the common attribute set for a rejected upstream call.
func failure(op, userID string, err error) []any {
	return log.NewFields().WithOperation(op).WithUser(userID).WithError(err).ToSlice()
}
