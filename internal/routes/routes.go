package routes

import (
	"net/http"

	"miniblog/internal/handlers"
	"miniblog/internal/middleware"
	"miniblog/internal/session"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	sessions *session.Manager,
	authHandler *handlers.AuthHandler,
	blogHandler *handlers.BlogHandler,
	captchaHandler *handlers.CaptchaHandler,
) {
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logging)

	// --- Публичные маршруты ---
	router.HandleFunc("/", authHandler.Index).Methods("GET")
	router.HandleFunc("/login/", authHandler.LoginPage).Methods("GET")
	router.HandleFunc("/login/", authHandler.Login).Methods("POST")
	router.HandleFunc("/register/", authHandler.RegisterPage).Methods("GET")
	router.HandleFunc("/register/", authHandler.Register).Methods("POST")
	router.HandleFunc("/captcha/", captchaHandler.Image).Methods("GET")

	// --- За гейтом сессии ---
	protected := router.PathPrefix("").Subrouter()
	protected.Use(func(next http.Handler) http.Handler {
		return middleware.SessionGate(sessions, next)
	})

	protected.HandleFunc("/logout/", authHandler.Logout).Methods("GET")
	protected.HandleFunc("/blog/add/", blogHandler.AddPage).Methods("GET")
	protected.HandleFunc("/blog/add/", blogHandler.Add).Methods("POST")
	protected.HandleFunc("/blog/edit/{id:[0-9]+}/", blogHandler.EditPage).Methods("GET")
	protected.HandleFunc("/blog/edit/{id:[0-9]+}/", blogHandler.Edit).Methods("POST")
	protected.HandleFunc("/blog/list/{page:[0-9]+}/", blogHandler.List).Methods("GET")
	protected.HandleFunc("/blog/del/{id:[0-9]+}/", blogHandler.Delete).Methods("GET")
}
