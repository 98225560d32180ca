// Package comments manages the ordered comment list embedded in each
// blog post. Comments are append-only: edits mutate text in place and
// deletes filter by identity, preserving the order of the rest.
package comments

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/blogs"
	"onedoc/db"
	"onedoc/middleware"
	"onedoc/models"
	"onedoc/policy"
	"onedoc/utils"
)

func fetchBlog(ctx context.Context, blogID string) (*models.BlogPost, int, string) {
	objID, err := primitive.ObjectIDFromHex(blogID)
	if err != nil {
		return nil, http.StatusBadRequest, "Invalid blog ID"
	}
	var post models.BlogPost
	if err := db.BlogsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		return nil, http.StatusNotFound, "Blog not found"
	}
	return &post, 0, ""
}

// CreateComment handles POST /api/blogs/:id/comments
func CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	actor := middleware.ActorFromContext(r.Context())
	if actor.ID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	post, status, msg := fetchBlog(ctx, ps.ByName("id"))
	if post == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    actor.ID,
		Text:      body.Text,
		CreatedAt: time.Now().UTC(),
	}

	// Appended in arrival order; the list is never reordered.
	_, err := db.BlogsCollection.UpdateByID(ctx, post.ID, bson.M{
		"$push": bson.M{"comments": comment},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add comment")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Comment added", "comment": comment})
}

// GetComments handles GET /api/blogs/:id/comments
func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	post, status, msg := fetchBlog(ctx, ps.ByName("id"))
	if post == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	page := utils.ParsePagination(r)
	window := utils.PageSlice(post.Comments, page)

	ids := make([]string, 0, len(window))
	for _, c := range window {
		ids = append(ids, c.UserID)
	}
	users, err := blogs.LookupUsers(ctx, ids)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch comment users")
		return
	}

	views := make([]utils.M, 0, len(window))
	for _, c := range window {
		views = append(views, utils.M{
			"id":        c.ID.Hex(),
			"user":      utils.M{"_id": c.UserID, "name": users[c.UserID].Name},
			"text":      c.Text,
			"createdAt": c.CreatedAt,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"comments":   views,
		"total":      len(post.Comments),
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": utils.TotalPages(int64(len(post.Comments)), page.Limit),
	})
}

// UpdateComment handles PUT /api/blogs/:id/comments/:commentId
func UpdateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	post, status, msg := fetchBlog(ctx, ps.ByName("id"))
	if post == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	commentID, err := primitive.ObjectIDFromHex(ps.ByName("commentId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	idx := findCommentIndex(post.Comments, commentID)
	if idx < 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if !policy.CanEditComment(actor, post.Comments[idx].UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to edit this comment")
		return
	}

	// In-place text edit; position and createdAt are preserved.
	res, err := db.BlogsCollection.UpdateOne(ctx,
		bson.M{"_id": post.ID, "comments._id": commentID},
		bson.M{"$set": bson.M{"comments.$.text": body.Text}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	comment := post.Comments[idx]
	comment.Text = body.Text
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Comment updated", "comment": comment})
}

// DeleteComment handles DELETE /api/blogs/:id/comments/:commentId
func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	post, status, msg := fetchBlog(ctx, ps.ByName("id"))
	if post == nil {
		utils.RespondWithError(w, status, msg)
		return
	}

	commentID, err := primitive.ObjectIDFromHex(ps.ByName("commentId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	idx := findCommentIndex(post.Comments, commentID)
	if idx < 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	if !policy.CanDeleteComment(actor, post.Comments[idx].UserID) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this comment")
		return
	}

	res, err := db.BlogsCollection.UpdateByID(ctx, post.ID, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	if res.ModifiedCount == 0 {
		// lost the race with another delete
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}

	remaining, _ := removeComment(post.Comments, commentID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Comment deleted", "comments": remaining})
}
