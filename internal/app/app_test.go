// File: internal/app/app_test.go
package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"student_directory/internal/common"
	"student_directory/internal/config"
	"student_directory/internal/form"
	"student_directory/internal/identity"
	"student_directory/internal/profile"
	"student_directory/internal/session"
)

type stubIdentity struct{}

func (stubIdentity) CreateAccount(ctx context.Context, email, password string) (string, error) {
	return "uid-1", nil
}

func (stubIdentity) DeleteAccount(ctx context.Context, uid string) error { return nil }

func (stubIdentity) AccountInfo(ctx context.Context, uid string) (*profile.Account, error) {
	return nil, common.ErrUserNotFound
}

type memStore struct {
	docs   map[string]*profile.UserProfile
	getErr error
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]*profile.UserProfile)}
}

func (m *memStore) Get(ctx context.Context, id string) (*profile.UserProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	p, ok := m.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *memStore) Set(ctx context.Context, id string, p *profile.UserProfile) error {
	copied := *p
	m.docs[id] = &copied
	return nil
}

func (m *memStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	p, ok := m.docs[id]
	if !ok {
		return common.ErrNotFound
	}
	for path, value := range fields {
		switch path {
		case "name":
			p.Name = value.(string)
		case "universityDegree":
			p.UniversityDegree = value.(string)
		case "graduationYear":
			p.GraduationYear = value.(int64)
		case "updatedAt":
			p.UpdatedAt = value.(string)
		}
	}
	return nil
}

func (m *memStore) List(ctx context.Context) ([]*profile.UserProfile, error) {
	var out []*profile.UserProfile
	for _, p := range m.docs {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

// newTestApp wires an App over in-memory fakes, with password sign-in served
// by a stub identity provider endpoint.
func newTestApp(t *testing.T, store *memStore) *App {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"localId":      "uid-1",
			"email":        "jane@example.com",
			"idToken":      "id-token",
			"refreshToken": "refresh-token",
			"expiresIn":    "3600",
		})
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		FirebaseWebAPIKey:  "test-key",
		IdentityToolkitURL: server.URL,
		SplashMinDuration:  time.Millisecond,
	}
	auth := identity.NewRESTAuth(cfg, zap.NewNop())
	profiles := profile.NewService(stubIdentity{}, store, zap.NewNop())
	gate := session.New(cfg.SplashMinDuration, zap.NewNop())
	return New(cfg, zap.NewNop(), gate, auth, profiles)
}

func signIn(t *testing.T, a *App) {
	t.Helper()
	_, err := a.SignIn(context.Background(), "jane@example.com", "secret1")
	require.NoError(t, err)
}

func seedRecord(store *memStore) {
	store.docs["uid-1"] = &profile.UserProfile{
		ID:               "uid-1",
		Name:             "Jane",
		Email:            "jane@example.com",
		UniversityDegree: "CS",
		GraduationYear:   2021,
		CreatedAt:        "2024-01-01T00:00:00.000Z",
		IsActive:         true,
	}
}

func TestProfileFormRequiresSession(t *testing.T) {
	a := newTestApp(t, newMemStore())
	_, err := a.ProfileForm(context.Background())
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestProfileFormTransportErrorSurfaces(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("transport down")
	a := newTestApp(t, store)
	signIn(t, a)

	_, err := a.ProfileForm(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrNotFound), "a failed load is not the absent-record case")
}

func TestProfileFormAbsentRecordMountsEmptyForm(t *testing.T) {
	a := newTestApp(t, newMemStore())
	signIn(t, a)

	st, err := a.ProfileForm(context.Background())
	require.NoError(t, err)

	fields := st.Fields()
	require.Len(t, fields, len(form.TrackedFields))
	for i, f := range fields {
		assert.Equal(t, form.TrackedFields[i], f.Name)
		assert.Empty(t, f.Value)
	}
}

func TestProfileFormLoadsRecordInTrackedOrder(t *testing.T) {
	store := newMemStore()
	seedRecord(store)
	a := newTestApp(t, store)
	signIn(t, a)

	st, err := a.ProfileForm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jane", st.Value(form.FieldName))
	assert.Equal(t, "CS", st.Value(form.FieldUniversityDegree))
	assert.Equal(t, "2021", st.Value(form.FieldGraduationYear))

	fields := st.Fields()
	require.Len(t, fields, len(form.TrackedFields))
	assert.Equal(t, form.FieldName, fields[0].Name)
}

func TestEditProfileKeepsUntouchedFields(t *testing.T) {
	store := newMemStore()
	seedRecord(store)
	a := newTestApp(t, store)
	signIn(t, a)

	st, err := a.ProfileForm(context.Background())
	require.NoError(t, err)
	prev := st.Snapshot()

	// Only the name is edited; degree and year keep their mounted values.
	st.SetField(form.FieldName, "Janet")
	require.NoError(t, a.EditProfile(context.Background(), prev, st))

	got := store.docs["uid-1"]
	assert.Equal(t, "Janet", got.Name)
	assert.Equal(t, "CS", got.UniversityDegree)
	assert.Equal(t, int64(2021), got.GraduationYear)
	assert.NotEmpty(t, got.UpdatedAt)
}

func TestEditProfileUntouchedFormIsNoChanges(t *testing.T) {
	store := newMemStore()
	seedRecord(store)
	a := newTestApp(t, store)
	signIn(t, a)

	st, err := a.ProfileForm(context.Background())
	require.NoError(t, err)
	prev := st.Snapshot()

	err = a.EditProfile(context.Background(), prev, st)
	assert.True(t, errors.Is(err, common.ErrNoChanges))
	assert.Empty(t, store.docs["uid-1"].UpdatedAt, "a clean form must not write")
}

func TestUserFormAbsentRecordFails(t *testing.T) {
	a := newTestApp(t, newMemStore())
	_, err := a.UserForm(context.Background(), "ghost")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestEditUserThroughForm(t *testing.T) {
	store := newMemStore()
	seedRecord(store)
	a := newTestApp(t, store)

	st, err := a.UserForm(context.Background(), "uid-1")
	require.NoError(t, err)
	prev := st.Snapshot()

	st.SetField(form.FieldGraduationYear, "2022")
	require.NoError(t, a.EditUser(context.Background(), "uid-1", prev, st))

	got := store.docs["uid-1"]
	assert.Equal(t, int64(2022), got.GraduationYear)
	assert.Equal(t, "Jane", got.Name)
}

func TestActiveFlowFollowsGate(t *testing.T) {
	a := newTestApp(t, newMemStore())
	assert.Equal(t, FlowLoading, a.ActiveFlow())

	a.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := a.WaitReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, FlowAuth, a.ActiveFlow())

	signIn(t, a)
	assert.Equal(t, FlowMain, a.ActiveFlow())

	a.SignOut()
	assert.Equal(t, FlowAuth, a.ActiveFlow())
	assert.Nil(t, a.Session())
}
