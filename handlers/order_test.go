package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"restaurant-management-api/config"
	"restaurant-management-api/loyalty"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type orderFixture struct {
	router     *gin.Engine
	owner      models.User
	restaurant models.Restaurant
	menuItem   models.MenuItem
	profile    models.CustomerProfile
}

func setupOrderTest(t *testing.T) *orderFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.Restaurant{},
		&models.StaffRole{},
		&models.StaffMember{},
		&models.LoyaltyProgram{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.PointEvent{},
	))
	config.DB = db
	Loyalty = loyalty.NewService(db, zap.NewNop())

	f := &orderFixture{
		owner: models.User{Name: "Owner", Email: "owner@example.com", Username: "owner", PasswordHash: "x", Role: models.RoleOwner},
	}
	require.NoError(t, db.Create(&f.owner).Error)

	f.restaurant = models.Restaurant{OwnerID: f.owner.ID, Name: "Bistro", IsOpen: true, TableCount: 12}
	require.NoError(t, db.Create(&f.restaurant).Error)

	f.menuItem = models.MenuItem{RestaurantID: f.restaurant.ID, Name: "Pasta", Price: 20, IsAvailable: true}
	require.NoError(t, db.Create(&f.menuItem).Error)

	f.profile = models.CustomerProfile{Name: "Dana", Phone: strPtr("555-0101"), Email: "dana@example.com", LoyaltyPoints: 0}
	require.NoError(t, db.Create(&f.profile).Error)

	r := gin.New()
	asOwner := func(c *gin.Context) { c.Set("userID", f.owner.ID) }
	r.POST("/orders", asOwner, CreateOrder)
	r.PUT("/orders/:id/status", asOwner, UpdateOrderStatus)
	f.router = r
	return f
}

func (f *orderFixture) do(t *testing.T, method, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestOrderLifecycle_ServeAppliesLoyaltyOnce(t *testing.T) {
	f := setupOrderTest(t)

	// Open an order for a known customer
	w := f.do(t, http.MethodPost, "/orders", gin.H{
		"table_number":   4,
		"customer_phone": "555-0101",
		"items":          []gin.H{{"menu_item_id": f.menuItem.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	orderID := created.Order.ID
	assert.InDelta(t, 40.0, created.Order.TotalPrice, 1e-9)
	assert.Equal(t, 40, created.Order.LoyaltyPointsEarned) // default 1 pt/$
	require.NotNil(t, created.Order.ProfileID)

	// Walk the lifecycle
	statusURL := "/orders/" + itoa(orderID) + "/status"
	for _, next := range []models.OrderStatus{
		models.StatusConfirmed, models.StatusPreparing, models.StatusReady, models.StatusServed,
	} {
		w = f.do(t, http.MethodPut, statusURL, gin.H{"status": next})
		require.Equal(t, http.StatusOK, w.Code, "transition to %s: %s", next, w.Body.String())
	}

	var profile models.CustomerProfile
	require.NoError(t, config.DB.First(&profile, f.profile.ID).Error)
	assert.Equal(t, 1, profile.TotalVisits)
	assert.InDelta(t, 40.0, profile.TotalSpent, 1e-9)
	assert.Equal(t, 40, profile.LoyaltyPoints)

	// A repeated save at SERVED is rejected by the state machine and must
	// not double-apply
	w = f.do(t, http.MethodPut, statusURL, gin.H{"status": models.StatusServed})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	require.NoError(t, config.DB.First(&profile, f.profile.ID).Error)
	assert.Equal(t, 40, profile.LoyaltyPoints)
	assert.Equal(t, 1, profile.TotalVisits)
}

func TestOrderLifecycle_SkippingStatesRejected(t *testing.T) {
	f := setupOrderTest(t)

	w := f.do(t, http.MethodPost, "/orders", gin.H{
		"table_number": 2,
		"items":        []gin.H{{"menu_item_id": f.menuItem.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// PENDING → SERVED skips the kitchen entirely
	w = f.do(t, http.MethodPut, "/orders/"+itoa(created.Order.ID)+"/status", gin.H{"status": models.StatusServed})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateOrder_RedemptionCappedByBalance(t *testing.T) {
	f := setupOrderTest(t)
	require.NoError(t, config.DB.Model(&models.CustomerProfile{}).
		Where("id = ?", f.profile.ID).
		Update("loyalty_points", 100).Error)
	require.NoError(t, config.DB.Create(&models.LoyaltyProgram{
		RestaurantID:    f.restaurant.ID,
		PointsPerDollar: 1,
		RedemptionRate:  0.10, // 10 cents per point
		IsActive:        true,
	}).Error)

	w := f.do(t, http.MethodPost, "/orders", gin.H{
		"table_number":  1,
		"profile_id":    f.profile.ID,
		"redeem_points": 500, // more than the balance of 100
		"items":         []gin.H{{"menu_item_id": f.menuItem.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 100, created.Order.LoyaltyPointsUsed)
	// $40 bill − 100 points × $0.10 = $30
	assert.InDelta(t, 30.0, created.Order.TotalPrice, 1e-9)
	assert.Equal(t, 30, created.Order.LoyaltyPointsEarned)
}

func TestCreateOrder_UnknownPhoneLeavesOrderUnlinked(t *testing.T) {
	f := setupOrderTest(t)

	w := f.do(t, http.MethodPost, "/orders", gin.H{
		"table_number":   3,
		"customer_phone": "555-9999",
		"items":          []gin.H{{"menu_item_id": f.menuItem.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Nil(t, created.Order.ProfileID)
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}

func strPtr(s string) *string { return &s }
