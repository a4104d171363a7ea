package auth

import "fmt"

const (
	MsgVerified        = "Email verified successfully! You can now login."
	MsgCodeResent      = "New verification code sent to your email"
	MsgLoginOK         = "Login successful"
	MsgForgotPassword  = "If an account with this email exists, you will receive a password reset code."
	MsgPasswordReset   = "Password reset successful. You can now login with your new password."
	MsgPasswordChanged = "Password changed successfully"
)

func signupMessage(email string) string {
	return fmt.Sprintf("Registration successful! Please check your email at %s for verification code.", email)
}

func logoutMessage(role string) string {
	return fmt.Sprintf("%s successfully logged out", role)
}
