package authapi

// User is the backend's user snapshot. It is immutable client-side and
// replaced wholesale on each successful auth operation.
type User struct {
	ID                       string `json:"id"`
	Email                    string `json:"email"`
	Name                     string `json:"name"`
	EmailVerified            bool   `json:"emailVerified"`
	Role                     string `json:"role"`
	PromptEnhancementEnabled bool   `json:"promptEnhancementEnabled"`
}

// Session carries the opaque session token minted by the backend.
type Session struct {
	Token string `json:"token"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendOTPRequest struct {
	Email string `json:"email"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

type federatedSignInRequest struct {
	Provider      string `json:"provider"`
	IdentityToken string `json:"identityToken"`
	AccessToken   string `json:"accessToken,omitempty"`
	HashedNonce   string `json:"hashedNonce,omitempty"`
	GivenName     string `json:"givenName,omitempty"`
	FamilyName    string `json:"familyName,omitempty"`
	Email         string `json:"email,omitempty"`
	RequestSignUp bool   `json:"requestSignUp"`
}

// SignInResult is the response shape shared by password and federated sign-in.
type SignInResult struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}

// SignUpResult acknowledges a sign-up request; no session is issued until
// the emailed OTP is verified.
type SignUpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyOTPResult reports an OTP verification. User and Session are present
// only when Success is true and the backend established a session.
type VerifyOTPResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    *User    `json:"user,omitempty"`
	Session *Session `json:"session,omitempty"`
}

// ResendOTPResult acknowledges an OTP resend.
type ResendOTPResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type profileResponse struct {
	User User `json:"user"`
}
