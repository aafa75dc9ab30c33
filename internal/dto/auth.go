package dto

// SignupRequest is the local signup form. It binds from form posts and JSON bodies.
type SignupRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=50"`
	Email    string `form:"email" json:"email" validate:"required,max=254,email"`
	Password string `form:"password" json:"password" validate:"required,min=6,max=72"`
	Captcha  string `form:"g-recaptcha-response" json:"captcha"`
}

// SigninRequest is the local signin form.
type SigninRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Captcha  string `form:"g-recaptcha-response" json:"captcha"`
}

// AuthErrorResponse carries the user-facing messages of a rejected authentication.
type AuthErrorResponse struct {
	Errors []string `json:"errors"`
}

// AuthSuccessResponse is returned to JSON clients after signin or signup.
type AuthSuccessResponse struct {
	User     UserResponse `json:"user"`
	Messages []string     `json:"messages,omitempty"`
}
