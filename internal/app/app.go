// File: internal/app/app.go
package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"student_directory/internal/common"
	"student_directory/internal/config"
	"student_directory/internal/form"
	"student_directory/internal/identity"
	"student_directory/internal/profile"
	"student_directory/internal/session"
	"student_directory/internal/validate"
)

// Flow names the top-level navigation flows the session gate selects between.
type Flow string

const (
	// FlowLoading is shown while the gate is still StateUnknown.
	FlowLoading Flow = "loading"
	// FlowAuth hosts the login and registration screens.
	FlowAuth Flow = "auth"
	// FlowMain hosts the authenticated screens.
	FlowMain Flow = "main"
)

// App is the composition root for the user flows: it owns the session gate,
// the sign-in client and the profile sync gateway, and exposes one method per
// screen-level action. There is no re-entrancy guard here — two overlapping
// submits both go through, as they did in the client this replaces.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	gate     *session.Gate
	auth     *identity.RESTAuth
	profiles *profile.Service

	mu      sync.Mutex
	current *identity.Session
}

// New assembles the application.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	gate *session.Gate,
	auth *identity.RESTAuth,
	profiles *profile.Service,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger.Named("app"),
		gate:     gate,
		auth:     auth,
		profiles: profiles,
	}
}

// Start arms the session gate and reports the initial session state. The CLI
// holds no persisted session, so startup always reports unauthenticated —
// the provider-callback equivalent of a cold launch.
func (a *App) Start() {
	a.gate.Start()
	a.gate.ReportSession(a.Session() != nil)
}

// WaitReady blocks until the session gate resolves.
func (a *App) WaitReady(ctx context.Context) (session.State, error) {
	return a.gate.Wait(ctx)
}

// ActiveFlow maps the gate state onto a navigation flow.
func (a *App) ActiveFlow() Flow {
	switch a.gate.Current() {
	case session.StateAuthenticated:
		return FlowMain
	case session.StateUnauthenticated:
		return FlowAuth
	default:
		return FlowLoading
	}
}

// Session returns the current session, if any.
func (a *App) Session() *identity.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// SignIn runs the login flow. The login screen only requires both fields to
// be present; shape and strength checks belong to the provider here.
func (a *App) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := validate.Required("email", email); err != nil {
		return nil, common.ErrValidation.WithDetails(err.Error())
	}
	if err := validate.Required("password", password); err != nil {
		return nil, common.ErrValidation.WithDetails(err.Error())
	}

	sess, err := a.auth.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.current = sess
	a.mu.Unlock()
	a.gate.ReportSession(true)
	return sess, nil
}

// SignOut drops the session. The provider session is client-held; dropping it
// and reporting the transition is all sign-out amounts to.
func (a *App) SignOut() {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()
	a.gate.ReportSession(false)
	a.logger.Info("user signed out")
}

// Register runs the self-registration flow and signs the new user in, the
// way the registration screen left the user authenticated.
func (a *App) Register(ctx context.Context, in profile.RegisterInput) (*profile.UserProfile, error) {
	p, err := a.profiles.Register(ctx, in)
	if err != nil {
		return nil, err
	}
	if _, err := a.SignIn(ctx, in.Email, in.Password); err != nil {
		// The account exists; a failed follow-up sign-in leaves the user on
		// the login screen rather than failing the registration.
		a.logger.Warn("post-registration sign-in failed", zap.String("uid", p.ID), zap.Error(err))
	}
	return p, nil
}

// Dashboard runs the home screen load for the signed-in user.
func (a *App) Dashboard(ctx context.Context) (*profile.Dashboard, error) {
	sess := a.Session()
	if sess == nil {
		return nil, common.ErrUnauthenticated
	}
	return a.profiles.LoadDashboard(ctx, sess.UID)
}

// ProfileForm loads the signed-in user's editable fields into an ordered form
// state, the way the edit screen mounts. An absent record mounts an empty
// form; any other load failure is surfaced to the caller rather than letting
// an edit proceed against a blank baseline.
func (a *App) ProfileForm(ctx context.Context) (*form.State, error) {
	sess := a.Session()
	if sess == nil {
		return nil, common.ErrUnauthenticated
	}

	p, err := a.profiles.Get(ctx, sess.UID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return (&profile.UserProfile{}).Form(), nil
		}
		return nil, err
	}
	return p.Form(), nil
}

// UserForm loads an arbitrary record's editable fields for the administrator
// edit flow. Unlike ProfileForm, an absent record is an error here: there is
// nothing to edit.
func (a *App) UserForm(ctx context.Context, id string) (*form.State, error) {
	p, err := a.profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Form(), nil
}

// EditProfile submits the self-edit form. prev is the snapshot taken when the
// form mounted; the dirty gate downstream compares the form against it.
func (a *App) EditProfile(ctx context.Context, prev map[string]string, st *form.State) error {
	sess := a.Session()
	if sess == nil {
		return common.ErrUnauthenticated
	}

	in := profile.SelfUpdateInput{
		Name:             st.Value(form.FieldName),
		UniversityDegree: st.Value(form.FieldUniversityDegree),
		GraduationYear:   st.Value(form.FieldGraduationYear),
	}
	return a.profiles.UpdateSelf(ctx, sess.UID, prev, in)
}

// AddUser runs the administrator add-user flow.
func (a *App) AddUser(ctx context.Context, in profile.AdminCreateInput) (*profile.AdminCreateResult, error) {
	createdBy := ""
	if sess := a.Session(); sess != nil {
		createdBy = sess.UID
	}
	return a.profiles.AdminCreate(ctx, in, createdBy)
}

// EditUser submits the administrator edit-user form for an arbitrary record.
func (a *App) EditUser(ctx context.Context, id string, prev map[string]string, st *form.State) error {
	in := profile.AdminUpdateInput{
		Name:             st.Value(form.FieldName),
		UniversityDegree: st.Value(form.FieldUniversityDegree),
		GraduationYear:   st.Value(form.FieldGraduationYear),
	}
	return a.profiles.UpdateByAdmin(ctx, id, prev, in)
}

// Users runs the user-list screen load.
func (a *App) Users(ctx context.Context) (*profile.Directory, error) {
	return a.profiles.ListDirectory(ctx)
}

// DeleteUser runs the user-card delete action.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	return a.profiles.Delete(ctx, id)
}
