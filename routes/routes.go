package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"onedoc/admin"
	"onedoc/auth"
	"onedoc/blogs"
	"onedoc/comments"
	"onedoc/middleware"
	"onedoc/ratelim"
	"onedoc/teams"
	"onedoc/utils"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.GET("/api/auth/verify", auth.VerifyToken)
}

func AddBlogRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/blogs", blogs.GetBlogs)
	router.GET("/api/blogs/:id", blogs.GetBlogByID)
	router.GET("/api/blogs/:id/views", blogs.GetBlogViews)
	router.POST("/api/blogs", rl.Limit(middleware.Authenticate(blogs.AddBlog)))
	router.PUT("/api/blogs/:id", rl.Limit(middleware.Authenticate(blogs.EditBlog)))
	router.DELETE("/api/blogs/:id", rl.Limit(middleware.Authenticate(blogs.DeleteBlog)))
}

func AddCommentRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/blogs/:id/comments", comments.GetComments)
	router.POST("/api/blogs/:id/comments", rl.Limit(middleware.Authenticate(comments.CreateComment)))
	router.PUT("/api/blogs/:id/comments/:commentId", rl.Limit(middleware.Authenticate(comments.UpdateComment)))
	router.DELETE("/api/blogs/:id/comments/:commentId", rl.Limit(middleware.Authenticate(comments.DeleteComment)))
}

func AddTeamRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/teams", teams.GetTeams)
	router.POST("/api/teams", rl.Limit(middleware.Authenticate(teams.AddTeamMember)))
}

func AddAdminRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/admin/register", rl.Limit(middleware.RequireSuperAdmin(admin.RegisterAdmin)))
	router.GET("/api/admin", middleware.RequireSuperAdmin(admin.GetAllAdmins))
	router.PUT("/api/admin/:id", rl.Limit(middleware.RequireSuperAdmin(admin.UpdateAdmin)))
	router.DELETE("/api/admin/:id", rl.Limit(middleware.RequireSuperAdmin(admin.DeleteAdmin)))
}

func AddHealthRoutes(router *httprouter.Router) {
	router.GET("/health", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	})
}
