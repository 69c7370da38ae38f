package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func registerBody(overrides map[string]any) map[string]any {
	body := map[string]any{
		"national_id": "30123456",
		"first_name":  "Diego",
		"last_name":   "Paz",
		"email":       "diego@example.com",
		"password":    "secret123",
	}
	for k, v := range overrides {
		body[k] = v
	}
	return body
}

func TestRegister(t *testing.T) {
	t.Run("creates a user", func(t *testing.T) {
		db := newTestDB(t)
		r := newTestRouter(db)
		r.POST("/v1/register", Register)

		w := doJSON(t, r, http.MethodPost, "/v1/register", registerBody(nil))
		require.Equal(t, http.StatusCreated, w.Code)

		body := decodeBody(t, w)
		user := body["user"].(map[string]any)
		assert.Equal(t, "diego@example.com", user["email"])
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		db := newTestDB(t)
		r := newTestRouter(db)
		r.POST("/v1/register", Register)

		w := doJSON(t, r, http.MethodPost, "/v1/register", registerBody(nil))
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPost, "/v1/register", registerBody(map[string]any{
			"national_id": "30999999",
		}))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects duplicate national id", func(t *testing.T) {
		db := newTestDB(t)
		r := newTestRouter(db)
		r.POST("/v1/register", Register)

		w := doJSON(t, r, http.MethodPost, "/v1/register", registerBody(nil))
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, r, http.MethodPost, "/v1/register", registerBody(map[string]any{
			"email": "other@example.com",
		}))
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		db := newTestDB(t)
		r := newTestRouter(db)
		r.POST("/v1/register", Register)

		w := doJSON(t, r, http.MethodPost, "/v1/register", registerBody(map[string]any{
			"email": "not-an-email",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(t, r, http.MethodPost, "/v1/register", registerBody(map[string]any{
			"password": "short",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects bad birth date format", func(t *testing.T) {
		db := newTestDB(t)
		r := newTestRouter(db)
		r.POST("/v1/register", Register)

		w := doJSON(t, r, http.MethodPost, "/v1/register", registerBody(map[string]any{
			"birth_date": "15/03/1990",
		}))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	setup := func(t *testing.T) (*gorm.DB, *gin.Engine) {
		t.Helper()
		db := newTestDB(t)
		r := newTestRouter(db)
		r.POST("/v1/register", Register)
		r.POST("/v1/login", Login)

		w := doJSON(t, r, http.MethodPost, "/v1/register", registerBody(nil))
		require.Equal(t, http.StatusCreated, w.Code)
		return db, r
	}

	t.Run("returns a token for valid credentials", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		_, r := setup(t)

		w := doJSON(t, r, http.MethodPost, "/v1/login", map[string]any{
			"email":    "diego@example.com",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "test-secret")
		_, r := setup(t)

		wrongPassword := doJSON(t, r, http.MethodPost, "/v1/login", map[string]any{
			"email":    "diego@example.com",
			"password": "wrong-password",
		})
		unknownEmail := doJSON(t, r, http.MethodPost, "/v1/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
		assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
		assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	})
}
