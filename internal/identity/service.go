// File: internal/identity/service.go
package identity

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"student_directory/internal/common"
	"student_directory/internal/config"
	"student_directory/internal/profile"
)

// Service wraps the Firebase Admin SDK for the account-management side of the
// identity provider: creating, deleting and looking up accounts. Password
// sign-in is a client-facing API the Admin SDK does not expose; that lives in
// RESTAuth.
type Service struct {
	authClient *auth.Client
	logger     *zap.Logger
}

var _ profile.Identity = (*Service)(nil)

// NewService initializes the Firebase Admin SDK and creates a new Service.
// Constructed once at process startup and injected; there is no package-level
// client state.
func NewService(cfg *config.Config, logger *zap.Logger) (*Service, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountKeyPath != "" {
		opts = append(opts, option.WithCredentialsFile(filepath.Clean(cfg.FirebaseServiceAccountKeyPath)))
	}

	conf := &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firebase Admin SDK app", zap.Error(err))
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Failed to get Firebase Auth client", zap.Error(err))
		return nil, fmt.Errorf("error getting Firebase Auth client: %w", err)
	}

	logger.Info("Firebase Admin SDK initialized successfully.")
	return &Service{
		authClient: authClient,
		logger:     logger.Named("identity"),
	}, nil
}

// CreateAccount registers email/password credentials and returns the
// provider-assigned uid.
func (s *Service) CreateAccount(ctx context.Context, email, password string) (string, error) {
	params := (&auth.UserToCreate{}).Email(email).Password(password)
	record, err := s.authClient.CreateUser(ctx, params)
	if err != nil {
		s.logger.Warn("CreateUser failed", zap.Error(err))
		return "", mapAccountError(err)
	}
	s.logger.Debug("account created", zap.String("uid", record.UID))
	return record.UID, nil
}

// DeleteAccount removes the provider account for a uid.
func (s *Service) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.authClient.DeleteUser(ctx, uid); err != nil {
		if auth.IsUserNotFound(err) {
			return common.ErrUserNotFound.WithDetails(uid)
		}
		s.logger.Error("DeleteUser failed", zap.String("uid", uid), zap.Error(err))
		return common.Unknownf("identity provider error: %v", err)
	}
	return nil
}

// AccountInfo fetches the provider-level account record.
func (s *Service) AccountInfo(ctx context.Context, uid string) (*profile.Account, error) {
	record, err := s.authClient.GetUser(ctx, uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return nil, common.ErrUserNotFound.WithDetails(uid)
		}
		s.logger.Error("GetUser failed", zap.String("uid", uid), zap.Error(err))
		return nil, common.Unknownf("identity provider error: %v", err)
	}
	return &profile.Account{
		UID:         record.UID,
		Email:       record.Email,
		DisplayName: record.DisplayName,
	}, nil
}

// mapAccountError translates Admin SDK failures onto the closed code set.
// The SDK validates email shape and password strength client-side and returns
// plain errors for those, so the fallback has to match on the message text.
func mapAccountError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return common.ErrEmailInUse
	case strings.Contains(err.Error(), "email"):
		return common.ErrInvalidEmail.WithDetails(err.Error())
	case strings.Contains(err.Error(), "password"):
		return common.ErrWeakPassword.WithDetails(err.Error())
	default:
		return common.Unknownf("identity provider error: %v", err)
	}
}
