// File: internal/store/firestore.go
package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"student_directory/internal/common"
	"student_directory/internal/config"
	"student_directory/internal/profile"
)

// Firestore implements profile.Store against the hosted document service's
// users collection. One document per call, no multi-record transactions, no
// version check: a write succeeds or fails atomically against the single
// document with last-writer-wins semantics.
type Firestore struct {
	client     *firestore.Client
	collection string
	logger     *zap.Logger
}

var _ profile.Store = (*Firestore)(nil)

// NewFirestore connects the Firestore client. Constructed once at startup and
// injected wherever a store is needed.
func NewFirestore(cfg *config.Config, logger *zap.Logger) (*Firestore, error) {
	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.FirebaseServiceAccountKeyPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountKeyPath))
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, opts...)
	if err != nil {
		logger.Error("Failed to initialize Firestore client", zap.Error(err))
		return nil, fmt.Errorf("error initializing Firestore client: %w", err)
	}

	logger.Info("Firestore client initialized successfully.", zap.String("collection", cfg.UsersCollection))
	return &Firestore{
		client:     client,
		collection: cfg.UsersCollection,
		logger:     logger.Named("store"),
	}, nil
}

// Get fetches one user document. Absence maps to common.ErrNotFound, distinct
// from transport failures.
func (s *Firestore) Get(ctx context.Context, id string) (*profile.UserProfile, error) {
	snap, err := s.client.Collection(s.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrNotFound.WithDetails(fmt.Sprintf("no user document for id %s", id))
		}
		s.logger.Error("document get failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	var p profile.UserProfile
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decoding user document %s: %w", id, err)
	}
	p.ID = snap.Ref.ID
	return &p, nil
}

// Set writes a full document — the creation path.
func (s *Firestore) Set(ctx context.Context, id string, p *profile.UserProfile) error {
	opID := uuid.NewString()
	s.logger.Debug("document set", zap.String("id", id), zap.String("op_id", opID))

	if _, err := s.client.Collection(s.collection).Doc(id).Set(ctx, p); err != nil {
		s.logger.Error("document set failed", zap.String("id", id), zap.String("op_id", opID), zap.Error(err))
		return err
	}
	return nil
}

// Update merges fields into an existing document — the edit path. Fails with
// common.ErrNotFound when the document is absent.
func (s *Firestore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	opID := uuid.NewString()
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}

	if _, err := s.client.Collection(s.collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return common.ErrNotFound.WithDetails(fmt.Sprintf("no user document for id %s", id))
		}
		s.logger.Error("document update failed", zap.String("id", id), zap.String("op_id", opID), zap.Error(err))
		return err
	}
	return nil
}

// List returns all user documents ordered by creation time.
func (s *Firestore) List(ctx context.Context) ([]*profile.UserProfile, error) {
	iter := s.client.Collection(s.collection).OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var profiles []*profile.UserProfile
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.logger.Error("document list failed", zap.Error(err))
			return nil, err
		}

		var p profile.UserProfile
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decoding user document %s: %w", snap.Ref.ID, err)
		}
		p.ID = snap.Ref.ID
		profiles = append(profiles, &p)
	}
	return profiles, nil
}

// Delete removes one user document. Deleting an absent document is a no-op,
// per the document service's semantics.
func (s *Firestore) Delete(ctx context.Context, id string) error {
	opID := uuid.NewString()
	if _, err := s.client.Collection(s.collection).Doc(id).Delete(ctx); err != nil {
		s.logger.Error("document delete failed", zap.String("id", id), zap.String("op_id", opID), zap.Error(err))
		return err
	}
	return nil
}

// Close releases the underlying client.
func (s *Firestore) Close() error {
	return s.client.Close()
}
