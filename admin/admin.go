package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"onedoc/db"
	"onedoc/models"
	"onedoc/policy"
	"onedoc/utils"
)

const bcryptCost = 10

var errUnknownRole = errors.New("unknown role")

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     policy.Role `json:"role"`
}

type updateRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     policy.Role `json:"role"`
}

// RegisterAdmin creates an admin account. Routed behind the superadmin gate.
func RegisterAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if req.Role == "" {
		req.Role = policy.RoleAdmin
	}
	if !req.Role.Valid() {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	err := db.UserCollection.FindOne(r.Context(), bson.M{"email": req.Email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "An account with this email already exists")
		return
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check existing accounts")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if _, err := db.UserCollection.InsertOne(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register admin")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Admin registered"})
}

// GetAllAdmins lists accounts with the admin role. Superadmin accounts are
// not included.
func GetAllAdmins(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.UserCollection.Find(r.Context(), bson.M{"role": policy.RoleAdmin})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch admins")
		return
	}
	defer cursor.Close(r.Context())

	var admins []models.User
	if err := cursor.All(r.Context(), &admins); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode admins")
		return
	}
	if admins == nil {
		admins = []models.User{}
	}

	utils.RespondWithJSON(w, http.StatusOK, admins)
}

// UpdateAdmin overwrites the provided fields on an account. A new password
// is re-hashed before storage.
func UpdateAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid admin id")
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Admin not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch admin")
		return
	}

	update, err := adminUpdateDoc(&user, req)
	if err != nil {
		if errors.Is(err, errUnknownRole) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if len(update) > 0 {
		if _, err := db.UserCollection.UpdateByID(r.Context(), oid, bson.M{"$set": update}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update admin")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Admin updated", "user": user})
}

// adminUpdateDoc applies the provided fields to user and builds the
// matching $set document. Only explicitly provided fields are written;
// _id is never part of the update.
func adminUpdateDoc(user *models.User, req updateRequest) (bson.M, error) {
	update := bson.M{}
	if req.Name != "" {
		user.Name = req.Name
		update["name"] = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
		update["email"] = req.Email
	}
	if req.Role != "" {
		if !req.Role.Valid() {
			return nil, errUnknownRole
		}
		user.Role = req.Role
		update["role"] = req.Role
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
		update["password"] = user.Password
	}
	return update, nil
}

// DeleteAdmin removes an account.
func DeleteAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	oid, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid admin id")
		return
	}

	if err := db.UserCollection.FindOne(r.Context(), bson.M{"_id": oid}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusNotFound, "Admin not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch admin")
		return
	}

	if _, err := db.UserCollection.DeleteOne(r.Context(), bson.M{"_id": oid}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete admin")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Admin deleted"})
}
