package teams

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"onedoc/db"
	"onedoc/filemgr"
	"onedoc/i18n"
	"onedoc/models"
	"onedoc/utils"
)

// TeamMemberView is a team member with its translations flattened into a
// single locale, or carrying the full bundle when no locale is requested.
type TeamMemberView struct {
	ID           string                       `json:"id"`
	Name         string                       `json:"name"`
	Image        string                       `json:"image"`
	Instagram    string                       `json:"instagram"`
	LinkedIn     string                       `json:"linkedin"`
	GitHub       string                       `json:"github"`
	Telegram     string                       `json:"telegram,omitempty"`
	Position     string                       `json:"position,omitempty"`
	Description  string                       `json:"description,omitempty"`
	Translations i18n.Bundle[i18n.TeamFields] `json:"translations,omitempty"`
}

// ProjectTeamMember shapes a member for the requested locale. An empty
// locale keeps the full translations bundle.
func ProjectTeamMember(member models.TeamMember, locale i18n.Locale) TeamMemberView {
	view := TeamMemberView{
		ID:        member.ID.Hex(),
		Name:      member.Name,
		Image:     member.Image,
		Instagram: member.Instagram,
		LinkedIn:  member.LinkedIn,
		GitHub:    member.GitHub,
		Telegram:  member.Telegram,
	}
	if locale == "" {
		view.Translations = member.Translations
		return view
	}
	fields := i18n.Resolve(member.Translations, locale)
	view.Position = fields.Position
	view.Description = fields.Description
	return view
}

func GetTeams(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	locale := i18n.Canonical(r.URL.Query().Get("locale"))

	cursor, err := db.TeamsCollection.Find(r.Context(), bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch team members")
		return
	}
	defer cursor.Close(r.Context())

	var members []models.TeamMember
	if err := cursor.All(r.Context(), &members); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode team members")
		return
	}

	views := make([]TeamMemberView, 0, len(members))
	for _, member := range members {
		views = append(views, ProjectTeamMember(member, locale))
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"teams": views,
		"count": len(views),
	})
}

// parseTeamTranslations accepts either a translations form value holding a
// JSON object, or per-locale bracketed fields like
// translations[ru][position].
func parseTeamTranslations(r *http.Request) (i18n.Bundle[i18n.TeamFields], error) {
	if raw := r.FormValue("translations"); raw != "" {
		return i18n.ParseBundle[i18n.TeamFields]([]byte(raw))
	}
	bundle := make(i18n.Bundle[i18n.TeamFields], len(i18n.Supported))
	for _, loc := range i18n.Supported {
		bundle[loc] = i18n.TeamFields{
			Position:    r.FormValue(fmt.Sprintf("translations[%s][position]", loc)),
			Description: r.FormValue(fmt.Sprintf("translations[%s][description]", loc)),
		}
	}
	return bundle, nil
}

func AddTeamMember(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	name := r.FormValue("name")
	instagram := r.FormValue("instagram")
	linkedin := r.FormValue("linkedin")
	github := r.FormValue("github")
	telegram := r.FormValue("telegram")

	if name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if instagram == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Instagram URL is required")
		return
	}
	if linkedin == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "LinkedIn URL is required")
		return
	}
	if github == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "GitHub URL is required")
		return
	}

	translations, err := parseTeamTranslations(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid translations format. Must be valid JSON.")
		return
	}
	if err := i18n.ValidateComplete(translations); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return
	}

	imageURL, publicID, err := filemgr.UploadMultipart(file, header, "teams")
	if err != nil {
		if errors.Is(err, filemgr.ErrInvalidType) {
			utils.RespondWithError(w, http.StatusBadRequest, "Unsupported image type")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	member := models.TeamMember{
		Name:          name,
		Image:         imageURL,
		ImagePublicID: publicID,
		Instagram:     instagram,
		LinkedIn:      linkedin,
		GitHub:        github,
		Telegram:      telegram,
		Translations:  translations,
	}

	result, err := db.TeamsCollection.InsertOne(r.Context(), member)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create team member")
		return
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		member.ID = oid
	}

	utils.RespondWithJSON(w, http.StatusCreated, member)
}
