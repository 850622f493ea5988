package domain

// Role is carried in the bearer token next to the user id.
type Role string

const (
	RoleAdmin Role = "admin" // May curate the global catalog
	RoleUser  Role = "user"
)
