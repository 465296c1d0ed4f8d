package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/Saimongu007/Breez/internal/api/v1/admin/user"
	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/models"
	"github.com/Saimongu007/Breez/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB() {
	// Use in-memory SQLite for testing
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic("failed to connect database")
	}

	// Drop tables if exist to ensure clean state and schema update
	db.Migrator().DropTable(&models.User{}, &models.CoinTransaction{}, &models.Achievement{}, &models.UserAchievement{})

	err = db.AutoMigrate(&models.User{}, &models.CoinTransaction{}, &models.Achievement{}, &models.UserAchievement{})
	if err != nil {
		panic("failed to migrate database")
	}

	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM coin_transactions")

	// Assign to global DB
	database.DB = db
}

func TestListUsers(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	database.DB.Create(&models.User{
		Email:     "admin@test.local",
		Username:  "admin",
		Role:      "admin",
		Password:  "hashedpassword",
		IsActive:  true,
		Version:   1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
	database.DB.Create(&models.User{
		Email:       "user1@test.local",
		Username:    "user1",
		Role:        "user",
		Password:    "hashedpassword",
		TotalCoins:  30,
		CoinsEarned: 30,
		IsActive:    true,
		Version:     1,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	})

	tests := []struct {
		name           string
		page           string
		limit          string
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:           "Valid Pagination",
			page:           "1",
			limit:          "10",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var resp struct {
					Code    int                   `json:"status"`
					Message string                `json:"message"`
					Data    user.UserListResponse `json:"data"`
				}
				err := json.Unmarshal(body, &resp)
				assert.NoError(t, err)
				assert.Equal(t, 200, resp.Code)
				assert.Equal(t, int64(2), resp.Data.Total)
				assert.Len(t, resp.Data.Users, 2)
				assert.Equal(t, int64(30), resp.Data.Users[1].TotalCoins)
				assert.Equal(t, int64(30), resp.Data.Users[1].CoinsEarned)
			},
		},
		{
			name:           "Invalid Page",
			page:           "0",
			limit:          "10",
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "Invalid page number")
			},
		},
		{
			name:           "Invalid Limit",
			page:           "1",
			limit:          "-1",
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "Invalid limit number")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/admin/users", user.ListUsers)

			req, _ := http.NewRequest(http.MethodGet, "/admin/users?page="+tt.page+"&limit="+tt.limit, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, w.Body.Bytes())
		})
	}
}

func TestAdjustCoins(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte, userID uint)
	}{
		{
			name:           "Grant Bonus",
			body:           `{"amount": 50, "reason": "contest prize"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte, userID uint) {
				var resp struct {
					Code int                        `json:"status"`
					Data services.AdjustmentReceipt `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, int64(150), resp.Data.NewBalance) // 100 + 50

				var u models.User
				database.DB.First(&u, userID)
				assert.Equal(t, int64(150), u.TotalCoins)
				assert.Equal(t, int64(150), u.CoinsEarned)

				var trans models.CoinTransaction
				database.DB.Last(&trans)
				assert.Equal(t, int64(50), trans.Amount)
				assert.Equal(t, int64(100), trans.BalanceBefore)
				assert.Equal(t, int64(150), trans.BalanceAfter)
				assert.Equal(t, models.CoinKindBonus, trans.Kind)
				assert.NotEmpty(t, trans.Hash)
			},
		},
		{
			name:           "Apply Penalty",
			body:           `{"amount": -40, "reason": "duplicate upload"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte, userID uint) {
				var resp struct {
					Code int                        `json:"status"`
					Data services.AdjustmentReceipt `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, int64(60), resp.Data.NewBalance) // 100 - 40

				var u models.User
				database.DB.First(&u, userID)
				assert.Equal(t, int64(60), u.TotalCoins)
				assert.Equal(t, int64(40), u.CoinsSpent)

				var trans models.CoinTransaction
				database.DB.Last(&trans)
				assert.Equal(t, int64(-40), trans.Amount)
				assert.Equal(t, models.CoinKindPenalty, trans.Kind)
			},
		},
		{
			name:           "Penalty Exceeding Balance",
			body:           `{"amount": -150, "reason": "abuse"}`,
			expectedStatus: http.StatusPaymentRequired,
			checkResponse: func(t *testing.T, body []byte, userID uint) {
				assert.Contains(t, string(body), "insufficient coins")

				// Nothing moved, nothing logged
				var u models.User
				database.DB.First(&u, userID)
				assert.Equal(t, int64(100), u.TotalCoins)

				var count int64
				database.DB.Model(&models.CoinTransaction{}).Count(&count)
				assert.Equal(t, int64(0), count)
			},
		},
		{
			name:           "Missing Reason",
			body:           `{"amount": 10}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse:  func(t *testing.T, body []byte, userID uint) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset state for each case
			database.DB.Exec("DELETE FROM users")
			database.DB.Exec("DELETE FROM coin_transactions")
			database.DB.Exec("DELETE FROM user_achievements")

			seed := models.User{
				Email:       "coins@test.local",
				Username:    "coins_user",
				Role:        "user",
				Password:    "password",
				TotalCoins:  100,
				CoinsEarned: 100,
				IsActive:    true,
				Version:     1,
			}
			database.DB.Create(&seed)

			r := gin.New()
			r.Use(func(c *gin.Context) {
				c.Set("user", models.User{Username: "admin_tester", Role: "admin"})
				c.Next()
			})
			r.POST("/admin/users/:id/coins", user.AdjustCoins)

			targetID := strconv.Itoa(int(seed.ID))
			req, _ := http.NewRequest(http.MethodPost, "/admin/users/"+targetID+"/coins", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Logf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes(), seed.ID)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		userID         string
		body           string
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte, userID uint)
	}{
		{
			name:           "Deactivate User",
			body:           `{"is_active": false}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte, userID uint) {
				var resp struct {
					Code int               `json:"status"`
					Data user.UserListItem `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.False(t, resp.Data.IsActive)

				var u models.User
				database.DB.First(&u, userID)
				assert.False(t, u.IsActive)
			},
		},
		{
			name:           "Promote To Admin",
			body:           `{"role": "admin"}`,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte, userID uint) {
				var resp struct {
					Code int               `json:"status"`
					Data user.UserListItem `json:"data"`
				}
				json.Unmarshal(body, &resp)
				assert.Equal(t, "admin", resp.Data.Role)

				var u models.User
				database.DB.First(&u, userID)
				assert.Equal(t, "admin", u.Role)
				assert.Equal(t, 2, u.Version)
			},
		},
		{
			name:           "User Not Found",
			userID:         "999",
			body:           `{"username": "ghost"}`,
			expectedStatus: http.StatusNotFound,
			checkResponse:  nil,
		},
		{
			name:           "Invalid Body",
			body:           `{invalid json}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database.DB.Exec("DELETE FROM users")

			seed := models.User{
				Email:    "target@test.local",
				Username: "target_user",
				Role:     "user",
				Password: "oldpassword",
				IsActive: true,
				Version:  1,
			}
			database.DB.Create(&seed)

			targetID := tt.userID
			if targetID == "" {
				targetID = strconv.Itoa(int(seed.ID))
			}

			r := gin.New()
			r.Use(func(c *gin.Context) {
				c.Set("user", models.User{Username: "admin_tester"})
				c.Next()
			})
			r.PATCH("/admin/users/:id", user.UpdateUser)

			req, _ := http.NewRequest(http.MethodPatch, "/admin/users/"+targetID, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Logf("Expected status %d, got %d. Body: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes(), seed.ID)
			}
		})
	}
}
