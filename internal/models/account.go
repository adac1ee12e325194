package models

// Account is the single practitioner login. PasswordChanged stays false
// while the factory default credential is in place; the onboarding check
// reads it together with ProfileImageKey.
type Account struct {
	Name            string `json:"name"`
	PasswordHash    string `json:"password_hash"`
	PasswordChanged bool   `json:"password_changed"`

	ProfileImageKey   string `json:"profile_image_key"`
	SignatureImageKey string `json:"signature_image_key"`
}
