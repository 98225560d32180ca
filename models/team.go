package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/i18n"
)

// TeamMember is immutable once created; there is no edit or delete surface.
type TeamMember struct {
	ID            primitive.ObjectID           `bson:"_id,omitempty" json:"id"`
	Name          string                       `bson:"name" json:"name"`
	Image         string                       `bson:"image" json:"image"`
	ImagePublicID string                       `bson:"imagePublicId,omitempty" json:"imagePublicId,omitempty"`
	Instagram     string                       `bson:"instagram" json:"instagram"`
	LinkedIn      string                       `bson:"linkedin" json:"linkedin"`
	GitHub        string                       `bson:"github" json:"github"`
	Telegram      string                       `bson:"telegram,omitempty" json:"telegram,omitempty"`
	Translations  i18n.Bundle[i18n.TeamFields] `bson:"translations" json:"translations"`
}
