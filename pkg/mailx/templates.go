package mailx

import "fmt"

// Email copy for the two account flows. Kept as plain format strings; the
// bodies are small enough that html/template would be ceremony.

const otpSubject = "Verify your Parley account"

// OTPEmail renders the verification-code email.
func OTPEmail(fullName, otp string, validMinutes int) (subject, html, text string) {
	if fullName == "" {
		fullName = "there"
	}

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #ddd; border-radius: 10px; overflow: hidden;">
  <div style="background-color: #4C6FAF; padding: 20px; text-align: center; color: #fff;">
    <h1 style="margin: 0;">Parley</h1>
  </div>
  <div style="padding: 20px;">
    <h2 style="color: #333;">Email verification</h2>
    <p>Hi <strong>%s</strong>,</p>
    <p>Thanks for signing up. Use the code below to verify your account:</p>
    <div style="text-align: center; margin: 30px 0;">
      <span style="display: inline-block; background-color: #4C6FAF; color: white; font-size: 24px; letter-spacing: 4px; padding: 12px 24px; border-radius: 8px; font-weight: bold;">%s</span>
      <p style="margin-top: 10px; color: #777;">This code is valid for <strong>%d minutes</strong>.</p>
    </div>
    <p>Never share this code with anyone. Our team will never ask for it.</p>
    <p>If you didn't request this, you can safely ignore this email.</p>
  </div>
  <div style="background-color: #f5f5f5; padding: 15px; text-align: center; font-size: 12px; color: #777;">
    This is an automated message, please do not reply.
  </div>
</div>`, fullName, otp, validMinutes)

	text = fmt.Sprintf(
		"Hi %s,\n\nUse this code to verify your Parley account: %s\nIt is valid for %d minutes.\n\nIf you didn't request this, ignore this email.\n",
		fullName, otp, validMinutes,
	)

	return otpSubject, html, text
}

const resetSubject = "Reset your Parley password"

// ResetEmail renders the password-reset-link email.
func ResetEmail(fullName, resetLink string) (subject, html, text string) {
	if fullName == "" {
		fullName = "there"
	}

	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; background-color: #f8f9fa; padding: 30px;">
  <div style="max-width: 600px; margin: auto; background: #ffffff; padding: 25px; border-radius: 12px;">
    <h1 style="text-align: center; color: #4C6FAF; margin: 0;">Parley</h1>
    <h2 style="text-align: center; color: #333; margin-top: 10px;">Reset your password</h2>
    <p style="font-size: 16px; color: #444;">Hello <strong>%s</strong>,</p>
    <p style="font-size: 16px; color: #444;">We received a request to reset your password. Click the button below to set a new one:</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="%s" target="_blank" style="display: inline-block; padding: 14px 28px; background: #28a745; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: bold; border-radius: 6px;">Reset password</a>
    </div>
    <p style="font-size: 14px; color: #777;">The link expires in 1 hour. If you didn't ask to reset your password, ignore this email and your password stays unchanged.</p>
  </div>
</div>`, fullName, resetLink)

	text = fmt.Sprintf(
		"Hello %s,\n\nUse this link to reset your Parley password (valid for 1 hour):\n%s\n\nIf you didn't ask for this, ignore this email.\n",
		fullName, resetLink,
	)

	return resetSubject, html, text
}
