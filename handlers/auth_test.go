package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-management-api/config"
	"restaurant-management-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.CustomerProfile{}))
	config.DB = db

	r := gin.New()
	r.POST("/auth/register", Register)
	r.POST("/auth/login", Login)
	return r
}

func createUser(t *testing.T, email, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Name:         "Test User",
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	require.NoError(t, config.DB.Create(&user).Error)
	return &user
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_ByEmailAndByUsername(t *testing.T) {
	r := setupAuthTest(t)
	createUser(t, "sam@example.com", "sam", "hunter22")

	for _, identifier := range []string{"sam@example.com", "sam"} {
		w := postJSON(t, r, "/auth/login", gin.H{"identifier": identifier, "password": "hunter22"})
		require.Equal(t, http.StatusOK, w.Code, "login with %q", identifier)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
	}
}

func TestLogin_NoEnumerationLeak(t *testing.T) {
	r := setupAuthTest(t)
	createUser(t, "sam@example.com", "sam", "hunter22")

	// Unknown username and wrong password must be indistinguishable
	unknown := postJSON(t, r, "/auth/login", gin.H{"identifier": "ghost", "password": "hunter22"})
	wrongPw := postJSON(t, r, "/auth/login", gin.H{"identifier": "sam", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())
}

func TestRegister_DuplicateEmailMapped(t *testing.T) {
	r := setupAuthTest(t)
	createUser(t, "sam@example.com", "sam", "hunter22")

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Other Sam",
		"email":    "sam@example.com",
		"username": "othersam",
		"password": "hunter22",
		"role":     "customer",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email already registered", resp["error"])
}

func TestRegister_InvalidRoleRejected(t *testing.T) {
	r := setupAuthTest(t)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Eve",
		"email":    "eve@example.com",
		"username": "eve",
		"password": "hunter22",
		"role":     "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProfile_TwoCustomersWithoutPhone(t *testing.T) {
	setupAuthTest(t)
	first := createUser(t, "ana@example.com", "ana", "hunter22")
	second := createUser(t, "ben@example.com", "ben", "hunter22")

	for _, user := range []*models.User{first, second} {
		id := user.ID
		r := gin.New()
		r.GET("/profile", func(c *gin.Context) {
			c.Set("userID", id)
		}, GetProfile)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
		require.Equal(t, http.StatusOK, w.Code, "provisioning for %s: %s", user.Username, w.Body.String())
	}

	// Both rows exist; neither phone collides because absent phones are NULL
	var count int64
	require.NoError(t, config.DB.Model(&models.CustomerProfile{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	var profile models.CustomerProfile
	require.NoError(t, config.DB.Where("user_id = ?", first.ID).First(&profile).Error)
	assert.Nil(t, profile.Phone)
}

func TestGetProfile_AutoProvisionsCustomerProfile(t *testing.T) {
	setupAuthTest(t)
	user := createUser(t, "dana@example.com", "dana", "hunter22")

	r := gin.New()
	r.GET("/profile", func(c *gin.Context) {
		c.Set("userID", user.ID)
	}, GetProfile)

	// First fetch creates the profile row
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var profile models.CustomerProfile
	require.NoError(t, config.DB.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "dana@example.com", profile.Email)

	// Second fetch reuses it
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, config.DB.Model(&models.CustomerProfile{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
