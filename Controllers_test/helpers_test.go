package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"helpdesk/models"
	"helpdesk/utils"
)

// setupTestDB opens a named in-memory SQLite database. Each test passes
// its own name so fixtures do not leak between tests.
func setupTestDB(name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.Notification{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	return gin.New()
}

// seedUser inserts a user with a real password hash for "password123".
func seedUser(db *gorm.DB, firstName, lastName, email, role string) models.User {
	hashed, err := utils.HashPassword("password123")
	if err != nil {
		panic(err)
	}
	user := models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  hashed,
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}
	return user
}

func authHeader(user models.User) string {
	token, err := utils.GenerateToken(user.ID, user.Role, user.FullName(), user.Email)
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}

func doJSON(router *gin.Engine, method, path string, body interface{}, auth string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func doForm(router *gin.Engine, method, path string, form url.Values, auth string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		panic(err)
	}
	return resp
}
