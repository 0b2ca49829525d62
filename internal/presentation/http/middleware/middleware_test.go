package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/mocks"
	"github.com/sangkips/inventra-api/internal/presentation/http/handler"
	"github.com/sangkips/inventra-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// withUser fakes the auth middleware for routes that only need a user in context
func withUser(id uuid.UUID, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(handler.ContextUserID, id)
		c.Set(handler.ContextUsername, "tester")
		c.Set(handler.ContextPermissions, permissions)
		c.Next()
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	router := gin.New()
	router.GET("/me",
		AuthMiddleware(jwtManager),
		RequirePermission(enum.PermissionManageStock),
		func(c *gin.Context) {
			c.String(http.StatusOK, handler.GetUserID(c).String()+" "+handler.GetUserRole(c))
		},
	)

	get := func(authorization string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("").Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get("Basic abc").Code)
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		refresh, err := jwtManager.GenerateRefreshToken(userID)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, get("Bearer "+refresh).Code)
	})

	t.Run("missing permission", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(userID, "cashier", string(enum.UserRoleCashier), enum.UserRoleCashier.Permissions())
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, get("Bearer "+token).Code)
	})

	t.Run("granted", func(t *testing.T) {
		token, err := jwtManager.GenerateAccessToken(userID, "admin", string(enum.UserRoleAdmin), enum.UserRoleAdmin.Permissions())
		require.NoError(t, err)
		w := get("Bearer " + token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, userID.String()+" Admin", w.Body.String())
	})
}

func TestRequirePermissionWithoutAuth(t *testing.T) {
	router := gin.New()
	router.GET("/x", RequirePermission(enum.PermissionManageUsers), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIdempotencyStoresSuccessfulResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIdempotencyRepository(ctrl)
	userID := uuid.New()

	repo.EXPECT().GetByKey(gomock.Any(), "key-1", userID).Return(nil, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, ikey *entity.IdempotencyKey) error {
			assert.Equal(t, "POST /sales", ikey.Endpoint)
			assert.Equal(t, http.StatusCreated, ikey.ResponseCode)
			assert.JSONEq(t, `{"number":"SAL-2026-001"}`, ikey.ResponseBody)
			assert.Len(t, ikey.RequestHash, 64)
			assert.True(t, ikey.ExpiresAt.After(time.Now()))
			return nil
		})

	calls := 0
	router := gin.New()
	router.POST("/sales", withUser(userID), Idempotency(IdempotencyConfig{Repo: repo, Logger: quietLogger()}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"number": "SAL-2026-001"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{"items":[]}`))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyRejectsReusedKeyWithDifferentBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIdempotencyRepository(ctrl)
	userID := uuid.New()

	body := `{"amount":"10"}`
	hash := strings.Repeat("0", 64)
	stored := &entity.IdempotencyKey{
		Key:          "key-2",
		UserID:       userID,
		Endpoint:     "POST /payments",
		RequestHash:  hash,
		ResponseCode: http.StatusCreated,
		ResponseBody: `{"id":"stored"}`,
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	repo.EXPECT().GetByKey(gomock.Any(), "key-2", userID).Return(stored, nil).AnyTimes()

	router := gin.New()
	router.POST("/payments", withUser(userID), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		t.Fatal("handler must not run")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	router.ServeHTTP(w, req)

	// The stored hash belongs to a different body
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestIdempotencyReplay(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIdempotencyRepository(ctrl)
	userID := uuid.New()

	var captured *entity.IdempotencyKey
	repo.EXPECT().GetByKey(gomock.Any(), "key-3", userID).DoAndReturn(
		func(_ any, _ string, _ uuid.UUID) (*entity.IdempotencyKey, error) {
			return captured, nil
		}).Times(2)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, ikey *entity.IdempotencyKey) error {
			captured = ikey
			return nil
		}).Times(1)

	calls := 0
	router := gin.New()
	router.POST("/transfers", withUser(userID), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"call": calls})
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/transfers", strings.NewReader(`{"quantity":3}`))
		req.Header.Set(IdempotencyKeyHeader, "key-3")
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	second := send()

	assert.Equal(t, 1, calls)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestIdempotencySkipsFailedResponses(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIdempotencyRepository(ctrl)
	userID := uuid.New()

	repo.EXPECT().GetByKey(gomock.Any(), "key-4", userID).Return(nil, nil)
	// Create must not be called for a 409

	router := gin.New()
	router.POST("/adjust", withUser(userID), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"message": "insufficient stock"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/adjust", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-4")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIdempotencyIgnoresRequestsWithoutKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockIdempotencyRepository(ctrl)

	router := gin.New()
	router.POST("/sales", withUser(uuid.New()), Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	alice := uuid.New()
	router := gin.New()
	router.GET("/alice", withUser(alice), rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/anon", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/alice").Code)
	assert.Equal(t, http.StatusOK, get("/alice").Code)

	limited := get("/alice")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "0", limited.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1", limited.Header().Get("Retry-After"))
	assert.Equal(t, "2", limited.Header().Get("X-RateLimit-Limit"))

	// Anonymous callers are bucketed by IP, separately from alice
	assert.Equal(t, http.StatusOK, get("/anon").Code)
}

func TestLoggerMiddlewareSetsRequestID(t *testing.T) {
	router := gin.New()
	router.Use(LoggerMiddleware(quietLogger()))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
}
