package event

const UserRegisteredDestination string = "auth.user.registered"

type UserRegisteredMessage struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
