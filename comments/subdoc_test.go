package comments

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/models"
)

func makeComments(n int) []models.Comment {
	out := make([]models.Comment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Comment{
			ID:        primitive.NewObjectID(),
			UserID:    "user",
			Text:      "comment",
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		})
	}
	return out
}

func TestFindCommentIndex(t *testing.T) {
	comments := makeComments(3)

	for i, c := range comments {
		if got := findCommentIndex(comments, c.ID); got != i {
			t.Errorf("findCommentIndex(%s) = %d, want %d", c.ID.Hex(), got, i)
		}
	}

	if got := findCommentIndex(comments, primitive.NewObjectID()); got != -1 {
		t.Errorf("unknown id found at %d", got)
	}
	if got := findCommentIndex(nil, primitive.NewObjectID()); got != -1 {
		t.Errorf("empty list found at %d", got)
	}
}

func TestRemoveComment(t *testing.T) {
	comments := makeComments(4)
	target := comments[1]

	rest, ok := removeComment(comments, target.ID)
	if !ok {
		t.Fatal("removeComment failed for existing id")
	}
	if len(rest) != 3 {
		t.Fatalf("length = %d, want 3", len(rest))
	}
	// the rest keep their relative order
	if rest[0].ID != comments[0].ID || rest[1].ID != comments[2].ID || rest[2].ID != comments[3].ID {
		t.Error("relative order not preserved after delete")
	}

	// deleting the same id again reports absence; length shrinks exactly once
	again, ok := removeComment(rest, target.ID)
	if ok {
		t.Error("second delete of the same id must fail")
	}
	if len(again) != 3 {
		t.Errorf("second delete changed length to %d", len(again))
	}
}
