package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/policy"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Role     policy.Role        `bson:"role" json:"role"`
}
