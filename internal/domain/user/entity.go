package user

// User represents a user entity in the system.
type User struct {
	ID    *int32 `json:"id"`    // ID is assigned by the store; nil until persisted
	Name  string `json:"name"`  // Name is the full name of the user
	Email string `json:"email"` // Email is the email address of the user, not unique
}

// IDValue returns the identifier or zero when it has not been assigned.
func (u User) IDValue() int32 {
	if u.ID == nil {
		return 0
	}
	return *u.ID
}

// NewID returns a pointer suitable for User.ID.
func NewID(id int32) *int32 {
	return &id
}
