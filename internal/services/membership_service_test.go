package services

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/internal/helpers"
	"github.com/matchdaylabs/tribuna/internal/models"
)

var nationalIDSeq uint32

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		NationalID: fmt.Sprintf("%08d", 30000000+atomic.AddUint32(&nationalIDSeq, 1)),
		FirstName:  "Ana",
		LastName:   "Suarez",
		Email:      email,
		Password:   "hashed",
		Role:       models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateMembership(t *testing.T) {
	t.Run("assigns sequential club-scoped numbers", func(t *testing.T) {
		db := setupTestDB(t)
		club := models.Club{Name: "River Plate", Prefix: "RIV"}
		require.NoError(t, db.Create(&club).Error)

		first := seedUser(t, db, "first@example.com")
		second := seedUser(t, db, "second@example.com")

		m1, err := CreateMembership(db, first.ID, club.ID)
		require.NoError(t, err)
		assert.Equal(t, "RIV-1", m1.Number)

		m2, err := CreateMembership(db, second.ID, club.ID)
		require.NoError(t, err)
		assert.Equal(t, "RIV-2", m2.Number)
	})

	t.Run("numbering is independent per club", func(t *testing.T) {
		db := setupTestDB(t)
		river := models.Club{Name: "River Plate", Prefix: "RIV"}
		boca := models.Club{Name: "Boca Juniors", Prefix: "BOC"}
		require.NoError(t, db.Create(&river).Error)
		require.NoError(t, db.Create(&boca).Error)

		user := seedUser(t, db, "fan@example.com")

		m1, err := CreateMembership(db, user.ID, river.ID)
		require.NoError(t, err)
		assert.Equal(t, "RIV-1", m1.Number)

		m2, err := CreateMembership(db, user.ID, boca.ID)
		require.NoError(t, err)
		assert.Equal(t, "BOC-1", m2.Number)
	})

	t.Run("rejects a second membership in the same club", func(t *testing.T) {
		db := setupTestDB(t)
		club := models.Club{Name: "River Plate", Prefix: "RIV"}
		require.NoError(t, db.Create(&club).Error)
		user := seedUser(t, db, "fan@example.com")

		_, err := CreateMembership(db, user.ID, club.ID)
		require.NoError(t, err)

		_, err = CreateMembership(db, user.ID, club.ID)
		var apiErr *helpers.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.Code)
	})

	t.Run("unknown user or club returns 404", func(t *testing.T) {
		db := setupTestDB(t)
		club := models.Club{Name: "River Plate", Prefix: "RIV"}
		require.NoError(t, db.Create(&club).Error)
		user := seedUser(t, db, "fan@example.com")

		var apiErr *helpers.APIError

		_, err := CreateMembership(db, 999, club.ID)
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)

		_, err = CreateMembership(db, user.ID, 999)
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Code)
	})
}
