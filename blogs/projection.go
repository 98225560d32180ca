package blogs

import (
	"time"

	"onedoc/i18n"
	"onedoc/models"
)

// AuthorView is the populated author reference returned with a blog.
type AuthorView struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CommentView carries a comment with its user reference populated.
type CommentView struct {
	ID        string     `json:"id"`
	User      AuthorView `json:"user"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"createdAt"`
}

// BlogView is the client-facing shape of a blog post. With a requested
// locale the title/content pair is resolved through the fallback chain;
// without one the full translations mapping is returned intact.
type BlogView struct {
	ID           string                       `json:"id"`
	Title        string                       `json:"title,omitempty"`
	Content      string                       `json:"content,omitempty"`
	Translations i18n.Bundle[i18n.BlogFields] `json:"translations,omitempty"`
	Image        string                       `json:"image"`
	ReadTime     int                          `json:"readTime"`
	Views        int                          `json:"views"`
	Author       AuthorView                   `json:"author"`
	Categories   []string                     `json:"categories"`
	Comments     []CommentView                `json:"comments"`
	PublishedAt  time.Time                    `json:"publishedAt"`
}

// ProjectBlog shapes a stored blog for a client. users maps user ids to
// their records for author and comment-user population; unknown ids
// degrade to bare references. Locale resolution never fails: a missing
// translation falls back to the fallback locale, then to empty strings.
func ProjectBlog(blog models.BlogPost, locale i18n.Locale, users map[string]models.User) BlogView {
	view := BlogView{
		ID:          blog.ID.Hex(),
		Image:       blog.Image,
		ReadTime:    blog.ReadTime,
		Views:       blog.Views,
		Author:      authorView(blog.AuthorID, users, true),
		Categories:  blog.Categories,
		Comments:    commentViews(blog.Comments, users),
		PublishedAt: blog.PublishedAt,
	}

	if locale == "" {
		view.Translations = blog.Translations
		return view
	}

	fields := i18n.Resolve(blog.Translations, locale)
	view.Title = fields.Title
	view.Content = fields.Content
	return view
}

func authorView(userID string, users map[string]models.User, withEmail bool) AuthorView {
	v := AuthorView{ID: userID}
	if user, ok := users[userID]; ok {
		v.Name = user.Name
		if withEmail {
			v.Email = user.Email
		}
	}
	return v
}

func commentViews(comments []models.Comment, users map[string]models.User) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView{
			ID:        c.ID.Hex(),
			User:      authorView(c.UserID, users, false),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return views
}
