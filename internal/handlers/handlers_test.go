package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fittrack/apiserver/internal/auth"
	"github.com/fittrack/apiserver/internal/services"
	"github.com/fittrack/apiserver/internal/store"
	"github.com/fittrack/apiserver/types"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// fakeUserRepo is an in-memory stand-in for the Postgres user
// repository. Email and nickname uniqueness are enforced the same way
// the database does: at write time, surfacing store.ErrDuplicate.
type fakeUserRepo struct {
	users  map[int64]types.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]types.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (types.User, error) {
	user, ok := f.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]types.User, error) {
	users := make([]types.User, 0, len(f.users))
	for id := int64(1); id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email || existing.NickName == user.NickName {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.ID = f.nextID
	f.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := f.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	for id, existing := range f.users {
		if id == user.ID {
			continue
		}
		if existing.Email == user.Email || existing.NickName == user.NickName {
			return types.User{}, store.ErrDuplicate
		}
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

type fakeExerciseRepo struct {
	exercises map[int64]types.Exercise
	nextID    int64
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: map[int64]types.Exercise{}, nextID: 1}
}

func (f *fakeExerciseRepo) List(_ context.Context) ([]types.Exercise, error) {
	exercises := make([]types.Exercise, 0, len(f.exercises))
	for id := int64(1); id < f.nextID; id++ {
		if exercise, ok := f.exercises[id]; ok {
			exercises = append(exercises, exercise)
		}
	}
	return exercises, nil
}

func (f *fakeExerciseRepo) Get(_ context.Context, id int64) (types.Exercise, error) {
	exercise, ok := f.exercises[id]
	if !ok {
		return types.Exercise{}, store.ErrNotFound
	}
	return exercise, nil
}

func (f *fakeExerciseRepo) Create(_ context.Context, exercise types.Exercise) (types.Exercise, error) {
	exercise.ID = f.nextID
	f.nextID++
	now := time.Now()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now
	f.exercises[exercise.ID] = exercise
	return exercise, nil
}

func (f *fakeExerciseRepo) Update(_ context.Context, id int64, patch types.ExercisePatch) (int64, error) {
	exercise, ok := f.exercises[id]
	if !ok {
		return 0, nil
	}
	if patch.Name != nil {
		exercise.Name = *patch.Name
	}
	if patch.Difficulty != nil {
		exercise.Difficulty = *patch.Difficulty
	}
	exercise.UpdatedAt = time.Now()
	f.exercises[id] = exercise
	return 1, nil
}

func (f *fakeExerciseRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.exercises[id]; !ok {
		return 0, nil
	}
	delete(f.exercises, id)
	return 1, nil
}

type fakeCompletedRepo struct {
	records map[int64]types.CompletedExercise
	nextID  int64
}

func newFakeCompletedRepo() *fakeCompletedRepo {
	return &fakeCompletedRepo{records: map[int64]types.CompletedExercise{}, nextID: 1}
}

func (f *fakeCompletedRepo) Create(_ context.Context, record types.CompletedExercise) (types.CompletedExercise, error) {
	record.ID = f.nextID
	f.nextID++
	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeCompletedRepo) ListByUser(_ context.Context, userID int64) ([]types.CompletedExercise, error) {
	var records []types.CompletedExercise
	for id := int64(1); id < f.nextID; id++ {
		if record, ok := f.records[id]; ok && record.UserID == userID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (f *fakeCompletedRepo) DeleteOwned(_ context.Context, id, userID int64) (int64, error) {
	record, ok := f.records[id]
	if !ok || record.UserID != userID {
		return 0, nil
	}
	delete(f.records, id)
	return 1, nil
}

// testEnv wires the full router against in-memory repositories,
// mirroring the wiring in internal/server.
type testEnv struct {
	router    *chi.Mux
	issuer    *auth.TokenIssuer
	userRepo  *fakeUserRepo
	exercises *fakeExerciseRepo
	completed *fakeCompletedRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		userRepo:  newFakeUserRepo(),
		exercises: newFakeExerciseRepo(),
		completed: newFakeCompletedRepo(),
	}

	userService := services.NewUserService(env.userRepo)
	exerciseService := services.NewExerciseService(env.exercises)
	completedService := services.NewCompletedExerciseService(env.completed)

	env.issuer = auth.NewTokenIssuer(testSecret)
	authn := NewAuthenticator(env.issuer, userService)

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, env.issuer)
	})
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, authn)
	})
	router.Route("/exercises", func(r chi.Router) {
		ExerciseRouter(r, exerciseService, authn)
	})
	router.Route("/completed-exercises", func(r chi.Router) {
		CompletedExerciseRouter(r, completedService, authn)
	})
	env.router = router
	return env
}

// addUser inserts a user directly into the fake store with a known
// password and returns it.
func (env *testEnv) addUser(t *testing.T, email, nickName, password string, role types.Role) types.User {
	t.Helper()

	hashed := hashPassword(t, password)
	user, err := env.userRepo.Create(context.Background(), types.User{
		Email:        email,
		Name:         "Test",
		Surname:      "User",
		NickName:     nickName,
		Age:          30,
		Role:         role,
		PasswordHash: hashed,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func (env *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()

	token, err := env.issuer.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// doJSON performs a request with an optional bearer token and JSON body
// and returns the recorder.
func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hashed)
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", recorder.Body.String(), err)
	}
	return body
}
