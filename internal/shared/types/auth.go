package types

// User is the account returned by the auth operations
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}

// AuthPayload is the success payload of login, register and refreshToken
type AuthPayload struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}
