package models

// User identifies the signed-in user. JSON tags match the original
// crm_user_data record.
type User struct {
	ID    int    `json:"Id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Session is the durable session marker: an opaque token plus the user's
// display fields. Presence of both gates access to the board.
type Session struct {
	Token string
	User  User
}
