package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/i18n"
)

// Comment is embedded in its owning BlogPost, in arrival order.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    string             `bson:"user" json:"user"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type BlogPost struct {
	ID            primitive.ObjectID           `bson:"_id,omitempty" json:"id"`
	Translations  i18n.Bundle[i18n.BlogFields] `bson:"translations" json:"translations"`
	Image         string                       `bson:"image" json:"image"`
	ImagePublicID string                       `bson:"imagePublicId,omitempty" json:"imagePublicId,omitempty"`
	ReadTime      int                          `bson:"readTime" json:"readTime"`
	Views         int                          `bson:"views" json:"views"`
	AuthorID      string                       `bson:"author" json:"author"`
	Categories    []string                     `bson:"categories" json:"categories"`
	Comments      []Comment                    `bson:"comments" json:"comments"`
	PublishedAt   time.Time                    `bson:"publishedAt" json:"publishedAt"`
}
