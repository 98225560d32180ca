package comments

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/models"
)

// findCommentIndex locates a comment by identity. Returns -1 when the id
// matches nothing; callers report that as not found, including when two
// deletes target the same comment.
func findCommentIndex(comments []models.Comment, id primitive.ObjectID) int {
	for i, c := range comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// removeComment filters out the comment with the given id. The remaining
// comments keep their relative order.
func removeComment(comments []models.Comment, id primitive.ObjectID) ([]models.Comment, bool) {
	idx := findCommentIndex(comments, id)
	if idx < 0 {
		return comments, false
	}
	out := make([]models.Comment, 0, len(comments)-1)
	out = append(out, comments[:idx]...)
	out = append(out, comments[idx+1:]...)
	return out, true
}
