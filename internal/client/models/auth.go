package models

// Profile is the signed-in user as returned by the API and cached locally.
type Profile struct {
	ID     ID     `json:"id"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// SendOTPRequest asks the API to deliver a code to a mobile number.
type SendOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,phone"`
}

// VerifyOTPRequest submits the code typed by the user.
type VerifyOTPRequest struct {
	Mobile string `json:"mobile" validate:"required,phone"`
	OTP    string `json:"otp" validate:"required,len=4,numeric"`
}

// AuthResult is returned after a successful verification.
type AuthResult struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}
