package database

import (
	"testing"

	"facturation-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTakeLatestReturnsNewestAndDeletesIt(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, Secrets.Put("seller_20260830", "older"))
	require.NoError(t, Secrets.Put("seller_20260831", "newer"))

	cred, err := Secrets.TakeLatest()
	require.NoError(t, err)
	assert.Equal(t, "seller_20260831", cred.Username)
	assert.Equal(t, "newer", cred.Password)

	var remaining int64
	require.NoError(t, DB.Model(&models.PendingCredential{}).Count(&remaining).Error)
	assert.EqualValues(t, 1, remaining)
}

func TestTakeLatestTwiceDrainsTheStore(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, Secrets.Put("seller_20260831", "pw"))

	_, err := Secrets.TakeLatest()
	require.NoError(t, err)

	_, err = Secrets.TakeLatest()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTakeLatestOnEmptyStore(t *testing.T) {
	setupTestDB(t)

	_, err := Secrets.TakeLatest()
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPutOverwritesPendingPasswordForUsername(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, Secrets.Put("seller_20260831", "first"))
	require.NoError(t, Secrets.Put("seller_20260831", "second"))

	var count int64
	require.NoError(t, DB.Model(&models.PendingCredential{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	cred, err := Secrets.TakeLatest()
	require.NoError(t, err)
	assert.Equal(t, "second", cred.Password)
}
