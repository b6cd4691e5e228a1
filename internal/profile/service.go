// File: internal/profile/service.go
package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"student_directory/internal/common"
	"student_directory/internal/form"
	"student_directory/internal/validate"
)

// Service is the profile sync gateway: it validates flow inputs, gates edits
// on the dirty-tracking reconciler, and performs the remote reads and writes
// against the identity provider and the document store. Every write touches
// exactly one document; there is no optimistic concurrency check, so
// overlapping edits from two sessions are last-writer-wins. Callers are also
// not guarded against overlapping submits of the same form — a deliberate
// carry-over from the client this replaces.
type Service struct {
	identity  Identity
	store     Store
	validator *validator.Validate
	passwords *PasswordGenerator
	logger    *zap.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewService creates the sync gateway.
func NewService(identity Identity, store Store, logger *zap.Logger) *Service {
	return &Service{
		identity:  identity,
		store:     store,
		validator: validate.New(),
		passwords: NewPasswordGenerator(),
		logger:    logger.Named("profile"),
		now:       time.Now,
	}
}

// Register creates an account and its user document from the self-service
// registration form. Validation failures stop the flow before any remote
// call is made.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*UserProfile, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, validate.Describe(err)
	}

	email := strings.TrimSpace(in.Email)
	uid, err := s.identity.CreateAccount(ctx, email, in.Password)
	if err != nil {
		s.logger.Warn("account creation failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	p := &UserProfile{
		ID:               uid,
		Name:             strings.TrimSpace(in.Name),
		Email:            email,
		UniversityDegree: strings.TrimSpace(in.UniversityDegree),
		GraduationYear:   parseYear(in.GraduationYear),
		CreatedAt:        timestamp(s.now()),
		IsActive:         true,
	}
	if err := s.store.Set(ctx, uid, p); err != nil {
		// The account exists but its document does not; the dashboard's
		// provider-info fallback keeps the session usable.
		s.logger.Error("profile write failed after account creation", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("uid", uid))
	return p, nil
}

// AdminCreate provisions an account with a generated temporary password and
// writes its user document. createdBy records the acting administrator's uid;
// empty falls back to "system". The password is returned for one-time display
// and is not stored on the record.
func (s *Service) AdminCreate(ctx context.Context, in AdminCreateInput, createdBy string) (*AdminCreateResult, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, validate.Describe(err)
	}
	if createdBy == "" {
		createdBy = "system"
	}

	tempPassword := s.passwords.Generate()
	email := strings.TrimSpace(in.Email)
	uid, err := s.identity.CreateAccount(ctx, email, tempPassword)
	if err != nil {
		s.logger.Warn("admin account creation failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	p := &UserProfile{
		ID:               uid,
		Name:             strings.TrimSpace(in.Name),
		Email:            email,
		UniversityDegree: strings.TrimSpace(in.UniversityDegree),
		GraduationYear:   parseYear(in.GraduationYear),
		CreatedAt:        timestamp(s.now()),
		IsActive:         true,
		CreatedBy:        createdBy,
	}
	if err := s.store.Set(ctx, uid, p); err != nil {
		s.logger.Error("profile write failed after admin account creation", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user created by admin", zap.String("uid", uid), zap.String("created_by", createdBy))
	return &AdminCreateResult{Profile: p, TempPassword: tempPassword}, nil
}

// UpdateSelf saves the edit-own-profile form. prev is the snapshot of
// editable fields loaded when the form mounted; a submission whose tracked
// fields all match the snapshot is rejected with common.ErrNoChanges before
// any write. Blank degree/year are allowed and simply left off the update.
func (s *Service) UpdateSelf(ctx context.Context, uid string, prev map[string]string, in SelfUpdateInput) error {
	if err := s.validator.Struct(in); err != nil {
		return validate.Describe(err)
	}

	current := formValues(in.Name, in.UniversityDegree, in.GraduationYear)
	if !form.NewReconciler(prev).HasChanges(current) {
		return common.ErrNoChanges
	}

	fields := map[string]interface{}{
		"name":      strings.TrimSpace(in.Name),
		"updatedAt": timestamp(s.now()),
	}
	if degree := strings.TrimSpace(in.UniversityDegree); degree != "" {
		fields["universityDegree"] = degree
	}
	if year := strings.TrimSpace(in.GraduationYear); year != "" {
		fields["graduationYear"] = parseYear(year)
	}

	if err := s.store.Update(ctx, uid, fields); err != nil {
		s.logger.Error("self profile update failed", zap.String("uid", uid), zap.Error(err))
		return err
	}
	s.logger.Info("profile updated", zap.String("uid", uid))
	return nil
}

// UpdateByAdmin saves the administrator edit-user form for an arbitrary
// record. Same dirty gate as UpdateSelf; all editable fields are required.
func (s *Service) UpdateByAdmin(ctx context.Context, id string, prev map[string]string, in AdminUpdateInput) error {
	if err := s.validator.Struct(in); err != nil {
		return validate.Describe(err)
	}

	current := formValues(in.Name, in.UniversityDegree, in.GraduationYear)
	if !form.NewReconciler(prev).HasChanges(current) {
		return common.ErrNoChanges
	}

	fields := map[string]interface{}{
		"name":             strings.TrimSpace(in.Name),
		"universityDegree": strings.TrimSpace(in.UniversityDegree),
		"graduationYear":   parseYear(in.GraduationYear),
		"updatedAt":        timestamp(s.now()),
	}

	if err := s.store.Update(ctx, id, fields); err != nil {
		s.logger.Error("admin profile update failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("profile updated by admin", zap.String("id", id))
	return nil
}

// Get fetches one user document. Absence surfaces as common.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*UserProfile, error) {
	return s.store.Get(ctx, id)
}

// LoadDashboard reads the signed-in user's record for the home screen. An
// absent document is a degraded-but-continuable state: the profile falls back
// to the identity provider's display name and email.
func (s *Service) LoadDashboard(ctx context.Context, uid string) (*Dashboard, error) {
	p, err := s.store.Get(ctx, uid)
	if err == nil {
		return &Dashboard{Profile: p}, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		s.logger.Error("dashboard load failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}

	account, err := s.identity.AccountInfo(ctx, uid)
	if err != nil {
		s.logger.Error("dashboard fallback lookup failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	name := account.DisplayName
	if name == "" {
		name = "User"
	}
	s.logger.Warn("no user document, falling back to provider account info", zap.String("uid", uid))
	return &Dashboard{
		Profile:  &UserProfile{ID: uid, Name: name, Email: account.Email},
		Fallback: true,
	}, nil
}

// ListDirectory returns every user document plus the stats-panel counts.
func (s *Service) ListDirectory(ctx context.Context) (*Directory, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("directory list failed", zap.Error(err))
		return nil, err
	}

	stats := DirectoryStats{Total: len(profiles)}
	for _, p := range profiles {
		if p.IsActive {
			stats.Active++
		}
	}
	return &Directory{Profiles: profiles, Stats: stats}, nil
}

// Delete removes an account and its document. The two deletes are not
// transactional: a failure after the account delete leaves an orphaned
// document behind.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.identity.DeleteAccount(ctx, id); err != nil {
		s.logger.Error("account delete failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Error("document delete failed after account delete", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("user deleted", zap.String("id", id))
	return nil
}

// GenerateTemporaryPassword exposes the generator for callers that provision
// credentials outside AdminCreate.
func (s *Service) GenerateTemporaryPassword() string {
	return s.passwords.Generate()
}
