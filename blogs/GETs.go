package blogs

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"onedoc/db"
	"onedoc/i18n"
	"onedoc/models"
	"onedoc/utils"
)

// requestedLocale normalizes the ?locale= query value. An unknown code
// behaves like a translation miss: resolution degrades to the fallback.
func requestedLocale(r *http.Request) (i18n.Locale, bool) {
	raw := r.URL.Query().Get("locale")
	if raw == "" {
		return "", false
	}
	return i18n.Canonical(raw), true
}

// GetBlogs handles GET /api/blogs with pagination and locale projection.
func GetBlogs(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	locale, localized := requestedLocale(r)
	page := utils.ParsePagination(r)

	total, err := db.BlogsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count blogs")
		return
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	cursor, err := db.BlogsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch blogs")
		return
	}
	defer cursor.Close(ctx)

	var posts []models.BlogPost
	if err := cursor.All(ctx, &posts); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode blogs")
		return
	}

	users, err := LookupUsers(ctx, referencedUserIDs(posts))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch authors")
		return
	}

	views := make([]BlogView, 0, len(posts))
	for _, post := range posts {
		loc := i18n.Locale("")
		if localized {
			loc = locale
		}
		views = append(views, ProjectBlog(post, loc, users))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"blogs":      views,
		"total":      total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": utils.TotalPages(total, page.Limit),
	})
}

// GetBlogByID handles GET /api/blogs/:id, incrementing the view counter
// atomically before projecting.
func GetBlogByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid blog ID")
		return
	}

	var post models.BlogPost
	err = db.BlogsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Blog not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch blog")
		return
	}

	users, err := LookupUsers(ctx, referencedUserIDs([]models.BlogPost{post}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch author")
		return
	}

	locale, localized := requestedLocale(r)
	loc := i18n.Locale("")
	if localized {
		loc = locale
	}
	utils.RespondWithJSON(w, http.StatusOK, ProjectBlog(post, loc, users))
}

// GetBlogViews handles GET /api/blogs/:id/views.
func GetBlogViews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid blog ID")
		return
	}

	var post models.BlogPost
	if err := db.BlogsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Blog not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"views": post.Views})
}

// LookupUsers resolves user ids to records for reference population.
// Unknown or malformed ids are simply absent from the result.
func LookupUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			objIDs = append(objIDs, objID)
		}
	}

	cursor, err := db.UserCollection.Find(ctx, bson.M{"_id": bson.M{"$in": objIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.User
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	for _, u := range records {
		users[u.ID.Hex()] = u
	}
	return users, nil
}

func referencedUserIDs(posts []models.BlogPost) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, post := range posts {
		if !seen[post.AuthorID] {
			seen[post.AuthorID] = true
			ids = append(ids, post.AuthorID)
		}
		for _, c := range post.Comments {
			if !seen[c.UserID] {
				seen[c.UserID] = true
				ids = append(ids, c.UserID)
			}
		}
	}
	return ids
}
