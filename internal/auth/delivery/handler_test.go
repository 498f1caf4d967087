package delivery

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	authdomain "authsvc/internal/auth/domain"
	"authsvc/internal/auth/token"
	"authsvc/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryUserRepo enforces email uniqueness like the store's unique index.
type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*authdomain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*authdomain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *authdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return authdomain.ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*authdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := newMemoryUserRepo()
	codec := token.NewCodec("test-secret", 15*time.Minute, 168*time.Hour)
	uc := usecase.NewAuthUsecase(repo, codec)
	handler := NewAuthHandler(uc)

	r := gin.New()
	r.POST("/register", handler.Register)
	r.POST("/token", handler.Token)
	r.POST("/refresh-token", handler.RefreshToken)
	r.GET("/users/me", AuthMiddleware(uc), handler.Me)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getMe(r *gin.Engine, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegister(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/register", `{"email":"test@example.com","password":"testpassword"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "test@example.com", body["email"])
	assert.NotEmpty(t, body["id"])
	assert.NotContains(t, body, "password_hash")
}

func TestRegister_BadRequests(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"not an email", `{"email":"not-an-email","password":"testpassword"}`},
		{"short password", `{"email":"test@example.com","password":"short"}`},
		{"invalid json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/register", `{"email":"test@example.com","password":"testpassword"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/register", `{"email":"test@example.com","password":"testpassword"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToken_InvalidCredentials(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/register", `{"email":"test@example.com","password":"testpassword"}`)
	require.Equal(t, http.StatusOK, w.Code)

	wrongPass := postForm(r, "/token", url.Values{"username": {"test@example.com"}, "password": {"wrongpassword"}})
	unknown := postForm(r, "/token", url.Values{"username": {"nobody@example.com"}, "password": {"testpassword"}})

	// Same status and same body shape for both failure modes.
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestRefreshToken_Invalid(t *testing.T) {
	r := newTestRouter()

	w := postForm(r, "/refresh-token", url.Values{"refresh_token": {"not-a-token"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postForm(r, "/refresh-token", url.Values{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	r := newTestRouter()

	postJSON(r, "/register", `{"email":"test@example.com","password":"testpassword"}`)
	w := postForm(r, "/token", url.Values{"username": {"test@example.com"}, "password": {"testpassword"}})
	require.Equal(t, http.StatusOK, w.Code)
	accessToken, _ := decode(t, w)["access_token"].(string)

	w = postForm(r, "/refresh-token", url.Values{"refresh_token": {accessToken}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestFullFlow walks the whole credential lifecycle: register, log in, hit the
// protected route, exchange the refresh token, hit the protected route again.
func TestFullFlow(t *testing.T) {
	r := newTestRouter()

	w := postJSON(r, "/register", `{"email":"test@example.com","password":"testpassword"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test@example.com", decode(t, w)["email"])

	w = postForm(r, "/token", url.Values{"username": {"test@example.com"}, "password": {"testpassword"}})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode(t, w)
	accessToken, _ := tokens["access_token"].(string)
	refreshToken, _ := tokens["refresh_token"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	w = getMe(r, accessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test@example.com", decode(t, w)["email"])

	w = getMe(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postForm(r, "/refresh-token", url.Values{"refresh_token": {refreshToken}})
	require.Equal(t, http.StatusOK, w.Code)
	newAccessToken, _ := decode(t, w)["access_token"].(string)
	require.NotEmpty(t, newAccessToken)

	w = getMe(r, newAccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test@example.com", decode(t, w)["email"])
}
