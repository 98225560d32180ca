package admin

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"onedoc/models"
	"onedoc/policy"
)

func storedAdmin() models.User {
	return models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Aziza",
		Email:    "aziza@example.com",
		Password: "old-hash",
		Role:     policy.RoleAdmin,
	}
}

func TestAdminUpdateDocPartial(t *testing.T) {
	user := storedAdmin()

	update, err := adminUpdateDoc(&user, updateRequest{Name: "Malika"})
	if err != nil {
		t.Fatalf("adminUpdateDoc: %v", err)
	}
	if len(update) != 1 || update["name"] != "Malika" {
		t.Errorf("update = %v, want only name", update)
	}
	if _, ok := update["_id"]; ok {
		t.Error("update must never carry _id")
	}
	if user.Name != "Malika" || user.Email != "aziza@example.com" {
		t.Errorf("user after update = %+v", user)
	}
	if user.Password != "old-hash" {
		t.Error("password changed without being provided")
	}
}

func TestAdminUpdateDocEmpty(t *testing.T) {
	user := storedAdmin()
	update, err := adminUpdateDoc(&user, updateRequest{})
	if err != nil {
		t.Fatalf("adminUpdateDoc: %v", err)
	}
	if len(update) != 0 {
		t.Errorf("empty request produced update %v", update)
	}
}

func TestAdminUpdateDocRehashesPassword(t *testing.T) {
	user := storedAdmin()
	update, err := adminUpdateDoc(&user, updateRequest{Password: "s3cret"})
	if err != nil {
		t.Fatalf("adminUpdateDoc: %v", err)
	}
	hashed, ok := update["password"].(string)
	if !ok || hashed == "s3cret" {
		t.Fatalf("password not hashed: %v", update["password"])
	}
	if bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")) != nil {
		t.Error("stored hash does not match the new password")
	}
}

func TestAdminUpdateDocUnknownRole(t *testing.T) {
	user := storedAdmin()
	if _, err := adminUpdateDoc(&user, updateRequest{Role: "root"}); !errors.Is(err, errUnknownRole) {
		t.Errorf("err = %v, want errUnknownRole", err)
	}
}
