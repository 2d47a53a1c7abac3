package helpers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/csrf"
	"github.com/sinashm/go-shop/app/models"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
	ContextKeyUser   contextKey = "userObject"
	CartCountKey     contextKey = "cart_count"
)

func GetUserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(ContextKeyUserID).(string); ok {
		return userID
	}
	return ""
}

func GetUserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(ContextKeyUser).(*models.User); ok {
		return user
	}
	return nil
}

// RedirectWithMessage sends the user to target carrying a flash message in
// the query string, the way every handler reports outcomes.
func RedirectWithMessage(w http.ResponseWriter, r *http.Request, target, status, message string) {
	http.Redirect(w, r, fmt.Sprintf("%s?status=%s&message=%s", target, status, url.QueryEscape(message)), http.StatusSeeOther)
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// GetBaseData assembles the template data every page shares.
func GetBaseData(r *http.Request, pageSpecificData map[string]interface{}) map[string]interface{} {
	if pageSpecificData == nil {
		pageSpecificData = make(map[string]interface{})
	}

	if _, exists := pageSpecificData["Title"]; !exists {
		pageSpecificData["Title"] = "فروشگاه"
	}
	if _, exists := pageSpecificData["CartCount"]; !exists {
		pageSpecificData["CartCount"] = 0
	}
	if _, exists := pageSpecificData["IsLoggedIn"]; !exists {
		pageSpecificData["IsLoggedIn"] = false
	}

	if _, exists := pageSpecificData["MessageStatus"]; !exists {
		pageSpecificData["MessageStatus"] = r.URL.Query().Get("status")
	}
	if _, exists := pageSpecificData["Message"]; !exists {
		pageSpecificData["Message"] = r.URL.Query().Get("message")
	}

	if cartCountVal := r.Context().Value(CartCountKey); cartCountVal != nil {
		if count, ok := cartCountVal.(int); ok {
			pageSpecificData["CartCount"] = count
		}
	}

	pageSpecificData["csrfField"] = csrf.TemplateField(r)

	if user := GetUserFromContext(r.Context()); user != nil {
		pageSpecificData["User"] = user
		pageSpecificData["IsLoggedIn"] = true
		pageSpecificData["UserID"] = user.ID
	}

	return pageSpecificData
}
