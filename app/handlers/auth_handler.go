package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sinashm/go-shop/app/helpers"
	"github.com/sinashm/go-shop/app/models"
	"github.com/sinashm/go-shop/app/repositories"
	"github.com/sinashm/go-shop/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	validator    *validator.Validate
	userRepo     repositories.UserRepository
	sessionStore sessions.SessionStore
}

func NewAuthHandler(r *render.Render, validator *validator.Validate, userRepo repositories.UserRepository, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{
		render:       r,
		validator:    validator,
		userRepo:     userRepo,
		sessionStore: sessionStore,
	}
}

type RegisterForm struct {
	FirstName string `form:"first_name" validate:"required,min=2,max=100"`
	LastName  string `form:"last_name" validate:"required,min=2,max=100"`
	Email     string `form:"email" validate:"required,email"`
	Phone     string `form:"phone" validate:"omitempty,min=10,max=20"`
	Password  string `form:"password" validate:"required,min=6"`
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	if helpers.GetUserIDFromContext(r.Context()) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "ثبت نام"})
	_ = h.render.HTML(w, http.StatusOK, "auth/register", data)
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, "/register", "error", "خطا در پردازش فرم.")
		return
	}

	form := RegisterForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Phone:     r.PostFormValue("phone"),
		Password:  r.PostFormValue("password"),
	}
	if err := h.validator.Struct(form); err != nil {
		helpers.RedirectWithMessage(w, r, "/register", "error", "اطلاعات وارد شده معتبر نیست.")
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), form.Email)
	if err != nil {
		log.Printf("RegisterPost: failed to look up email %s: %v", form.Email, err)
		helpers.RedirectWithMessage(w, r, "/register", "error", "خطای سرور.")
		return
	}
	if existing != nil {
		helpers.RedirectWithMessage(w, r, "/register", "error", "این ایمیل قبلا ثبت شده است.")
		return
	}

	hashed, err := helpers.HashPassword(form.Password)
	if err != nil {
		log.Printf("RegisterPost: failed to hash password: %v", err)
		helpers.RedirectWithMessage(w, r, "/register", "error", "خطای سرور.")
		return
	}

	user := &models.User{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Phone:     form.Phone,
		Password:  hashed,
		Role:      models.RoleCustomer,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		log.Printf("RegisterPost: failed to create user: %v", err)
		helpers.RedirectWithMessage(w, r, "/register", "error", "خطا در ثبت نام.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("RegisterPost: failed to set session: %v", err)
	}
	helpers.RedirectWithMessage(w, r, "/", "success", "ثبت نام با موفقیت انجام شد.")
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if helpers.GetUserIDFromContext(r.Context()) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "ورود"})
	_ = h.render.HTML(w, http.StatusOK, "auth/login", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		helpers.RedirectWithMessage(w, r, "/login", "error", "خطا در پردازش فرم.")
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("LoginPost: failed to look up email %s: %v", email, err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "خطای سرور.")
		return
	}
	if user == nil || !helpers.CheckPassword(user.Password, password) {
		helpers.RedirectWithMessage(w, r, "/login", "error", "ایمیل یا رمز عبور اشتباه است.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: failed to set session: %v", err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "خطا در ایجاد نشست.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) LogoutPost(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("LogoutPost: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
