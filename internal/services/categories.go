package services

import (
	"context"
	"strings"
	"sync"

	"cashify/internal/core"
	"cashify/internal/log"
)

// CategoryForm is the state of the category form.
type CategoryForm struct {
	EditingID string
	Name      string
	Error     string
}

// Editing reports whether the form updates an existing category.
func (f CategoryForm) Editing() bool { return f.EditingID != "" }

// CategoryManager owns the category form of one user.
type CategoryManager struct {
	gw     CategoryGateway
	userID string
	logger *log.Logger

	mu   sync.Mutex
	form CategoryForm
}

func NewCategoryManager(gw CategoryGateway, userID string, logger *log.Logger) *CategoryManager {
	return &CategoryManager{
		gw:     gw,
		userID: userID,
		logger: logger.WithComponent(log.ComponentForms).With(log.FieldUserID, userID),
	}
}

// Form returns the current form state.
func (m *CategoryManager) Form() CategoryForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// Edit loads an existing category into the form.
func (m *CategoryManager) Edit(c core.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = CategoryForm{EditingID: c.ID, Name: c.Name}
}

// Cancel resets the form.
func (m *CategoryManager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = CategoryForm{}
}

// Submit creates a category, or updates the one being edited. The form is
// reset on success; on failure it keeps the typed name and an error.
func (m *CategoryManager) Submit(ctx context.Context, in core.CategoryInput) error {
	m.mu.Lock()
	m.form.Name = in.Name
	m.form.Error = ""
	editing := m.form.EditingID
	m.mu.Unlock()

	if err := in.Validate(); err != nil {
		return m.fail(err, MsgCategorySaveFailed)
	}

	name := strings.TrimSpace(in.Name)
	var err error
	op := log.OpCreate
	if editing != "" {
		op = log.OpUpdate
		_, err = m.gw.UpdateCategory(ctx, editing, name)
	} else {
		_, err = m.gw.CreateCategory(ctx, m.userID, name)
	}
	if err != nil {
		m.logger.WarnContext(ctx, "Category save failed", append(failure(op, m.userID, err), log.FieldCategoryID, editing)...)
		return m.fail(err, MsgCategorySaveFailed)
	}

	m.logger.InfoContext(ctx, "Category saved", log.FieldOperation, op, log.FieldCategoryID, editing)
	m.Cancel()
	return nil
}

// Delete removes a category once the user confirmed it.
func (m *CategoryManager) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := m.gw.DeleteCategory(ctx, id); err != nil {
		m.logger.WarnContext(ctx, "Category delete failed", append(failure(log.OpDelete, m.userID, err), log.FieldCategoryID, id)...)
		return m.fail(err, MsgCategoryDelFailed)
	}
	m.logger.InfoContext(ctx, "Category deleted", log.FieldCategoryID, id)
	m.mu.Lock()
	if m.form.EditingID == id {
		m.form = CategoryForm{}
	}
	m.form.Error = ""
	m.mu.Unlock()
	return nil
}

func (m *CategoryManager) fail(err error, fallback string) error {
	fe := formError(err, fallback)
	m.mu.Lock()
	m.form.Error = fe.Message
	m.mu.Unlock()
	return fe
}
