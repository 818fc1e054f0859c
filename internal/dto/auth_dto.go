package dto

// Requests bind from classic form posts as well as JSON bodies — the page
// layer in front submits forms, tooling and tests speak JSON.

type SignupRequest struct {
	EmployeeCode    string `form:"employee_id" json:"employee_id"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
	Role            string `form:"role" json:"role"`
}

type LoginRequest struct {
	// Login accepts the employee code or the email address.
	Login    string `form:"login" json:"login" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type UserResponse struct {
	ID            string `json:"id"`
	EmployeeCode  string `json:"employee_id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
	EmailVerified bool   `json:"email_verified"`
}
