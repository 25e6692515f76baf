package dto

// SignupForm is the urlencoded body for POST /submitUser.
type SignupForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginForm is the urlencoded body for POST /loggingin.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
