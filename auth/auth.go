package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"onedoc/db"
	"onedoc/globals"
	"onedoc/middleware"
	"onedoc/models"
	"onedoc/rdx"
	"onedoc/utils"
)

const tokenTTL = time.Hour

func sessionKey(userID string) string {
	return "session:" + userID
}

// Login handles POST /api/auth/login
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	tokenString, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxSet(sessionKey(user.ID.Hex()), tokenString, tokenTTL); err != nil {
		log.Printf("Redis session storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   tokenString,
		"user":    user,
	})
}

// Logout handles POST /api/auth/logout
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := rdx.RdxDel(sessionKey(userID)); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to invalidate session")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out successfully"})
}

// VerifyToken handles GET /api/auth/verify. A token must both carry a
// valid signature and match the active Redis session, so logout
// invalidates it before its expiry.
func VerifyToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	header := r.Header.Get("Authorization")
	claims, err := middleware.ValidateJWT(header)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
			"valid":   false,
			"message": "Unauthorized, Invalid Token",
		})
		return
	}

	if !sessionActive(claims.UserID, strings.TrimPrefix(header, "Bearer ")) {
		utils.RespondWithJSON(w, http.StatusUnauthorized, utils.M{
			"valid":   false,
			"message": "Unauthorized, Session Expired",
		})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"valid":   true,
		"message": "success verify",
		"userId":  claims.UserID,
	})
}

// sessionActive checks the presented token against the stored session.
// An unreachable Redis degrades to signature-only validation, matching
// the non-fatal session write on login.
func sessionActive(userID, token string) bool {
	stored, err := rdx.RdxGet(sessionKey(userID))
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("Redis session lookup failed: %v", err)
		return true
	}
	return stored == token
}

func generateToken(user models.User) (string, error) {
	claims := middleware.Claims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
