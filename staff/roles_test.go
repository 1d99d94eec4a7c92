package staff

import (
	"testing"

	"restaurant-management-api/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Restaurant{}, &models.StaffRole{}))
	return db
}

func TestSeedDefaultRoles(t *testing.T) {
	db := testDB(t)

	require.NoError(t, SeedDefaultRoles(db, 1))

	var roles []models.StaffRole
	require.NoError(t, db.Where("restaurant_id = ?", 1).Find(&roles).Error)
	require.Len(t, roles, 4)

	names := map[string]bool{}
	for _, r := range roles {
		names[r.Name] = true
		require.NotEmpty(t, r.Permissions)
		require.Greater(t, r.HourlyRate, 0.0)
	}
	require.Equal(t, map[string]bool{
		"Manager": true, "Waiter": true, "Chef": true, "Cashier": true,
	}, names)
}

func TestSeedDefaultRoles_ReinvocationDoesNotDuplicate(t *testing.T) {
	db := testDB(t)

	require.NoError(t, SeedDefaultRoles(db, 1))
	require.NoError(t, SeedDefaultRoles(db, 1))

	var count int64
	require.NoError(t, db.Model(&models.StaffRole{}).Where("restaurant_id = ?", 1).Count(&count).Error)
	require.EqualValues(t, 4, count)
}

func TestSeedDefaultRoles_PerRestaurant(t *testing.T) {
	db := testDB(t)

	require.NoError(t, SeedDefaultRoles(db, 1))
	require.NoError(t, SeedDefaultRoles(db, 2))

	var count int64
	require.NoError(t, db.Model(&models.StaffRole{}).Count(&count).Error)
	require.EqualValues(t, 8, count)
}
