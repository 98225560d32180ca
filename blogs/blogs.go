package blogs

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/db"
	"onedoc/filemgr"
	"onedoc/globals"
	"onedoc/i18n"
	"onedoc/middleware"
	"onedoc/models"
	"onedoc/policy"
	"onedoc/utils"
)

const imageFolder = "blogs"

// blogInput is the write payload, accepted as multipart form fields or a
// JSON body. Translations always arrive as serialized text and are parsed
// before validation.
type blogInput struct {
	translations []byte
	categories   string
	imageURL     string
	file         multipart.File
	header       *multipart.FileHeader
}

func parseBlogInput(r *http.Request) (*blogInput, error) {
	in := &blogInput{}

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Translations json.RawMessage `json:"translations"`
			Categories   string          `json:"categories"`
			Image        string          `json:"image"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, i18n.ErrMalformed
		}
		in.translations = body.Translations
		in.categories = body.Categories
		in.imageURL = body.Image
		return in, nil
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, errors.New("invalid form data")
	}
	if v := r.FormValue("translations"); v != "" {
		in.translations = []byte(v)
	}
	in.categories = r.FormValue("categories")
	in.imageURL = r.FormValue("image")

	file, header, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		return nil, errors.New("error retrieving image file")
	}
	in.file = file
	in.header = header
	return in, nil
}

// AddBlog handles POST /api/blogs.
func AddBlog(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	authorID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || authorID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	in, err := parseBlogInput(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.file != nil {
		defer in.file.Close()
	}

	if len(in.translations) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Translations object is required")
		return
	}
	bundle, err := i18n.ParseBundle[i18n.BlogFields](in.translations)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := i18n.ValidateComplete(bundle); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	imageURL, imagePublicID := "", ""
	if in.file != nil {
		imageURL, imagePublicID, err = filemgr.UploadMultipart(in.file, in.header, imageFolder)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, filemgr.ErrInvalidType) {
				status = http.StatusBadRequest
			}
			utils.RespondWithError(w, status, err.Error())
			return
		}
	}

	post := models.BlogPost{
		ID:            primitive.NewObjectID(),
		Translations:  bundle,
		Image:         imageURL,
		ImagePublicID: imagePublicID,
		ReadTime:      i18n.BlogReadTime(bundle),
		Views:         0,
		AuthorID:      authorID,
		Categories:    utils.SplitCategories(in.categories),
		Comments:      []models.Comment{},
		PublishedAt:   time.Now().UTC(),
	}

	if _, err := db.BlogsCollection.InsertOne(ctx, post); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create blog")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, post)
}

// EditBlog handles PUT /api/blogs/:id. Only the author may edit; partial
// translation updates merge into the stored bundle and read time is
// recomputed whenever translations change.
func EditBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	actor := middleware.ActorFromContext(r.Context())
	if !policy.CanEditBlog(actor, post.AuthorID) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to edit this post")
		return
	}

	in, err := parseBlogInput(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.file != nil {
		defer in.file.Close()
	}

	update := bson.M{}

	if len(in.translations) > 0 {
		partial, err := i18n.ParseBundle[i18n.BlogFields](in.translations)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		post.Translations = i18n.MergeBundle(post.Translations, partial)
		post.ReadTime = i18n.BlogReadTime(post.Translations)
		update["translations"] = post.Translations
		update["readTime"] = post.ReadTime
	}

	if in.categories != "" {
		post.Categories = utils.SplitCategories(in.categories)
		update["categories"] = post.Categories
	}

	if in.file != nil {
		imageURL, imagePublicID, err := filemgr.UploadMultipart(in.file, in.header, imageFolder)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, filemgr.ErrInvalidType) {
				status = http.StatusBadRequest
			}
			utils.RespondWithError(w, status, err.Error())
			return
		}
		if post.ImagePublicID != "" {
			if err := filemgr.Delete(post.ImagePublicID); err != nil {
				log.Printf("failed to release replaced image %s: %v", post.ImagePublicID, err)
			}
		}
		post.Image = imageURL
		post.ImagePublicID = imagePublicID
		update["image"] = imageURL
		update["imagePublicId"] = imagePublicID
	} else if in.imageURL != "" {
		post.Image = in.imageURL
		update["image"] = in.imageURL
	}

	if len(update) > 0 {
		if _, err := db.BlogsCollection.UpdateByID(ctx, objID, bson.M{"$set": update}); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update blog")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Blog updated", "blog": post})
}

// DeleteBlog handles DELETE /api/blogs/:id. The author or a superadmin
// may delete; the hosted image is released along with the document.
func DeleteBlog(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	actor := middleware.ActorFromContext(r.Context())
	if !policy.CanDeleteBlog(actor, post.AuthorID) {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to delete this post")
		return
	}

	if post.ImagePublicID != "" {
		if err := filemgr.Delete(post.ImagePublicID); err != nil {
			log.Printf("failed to release image %s: %v", post.ImagePublicID, err)
		}
	}

	if _, err := db.BlogsCollection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete blog")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Blog deleted"})
}
