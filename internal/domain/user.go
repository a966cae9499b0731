package domain

// User roles
const (
	RoleMember = "member" // Default role for registered users
	RoleAdmin  = "admin"  // Grants access to the admin endpoints
)

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`      // Primary key
	Name     string `gorm:"not null"`        // Display name
	Email    string `gorm:"unique;not null"` // Unique email, natural key for login/delete
	Password string `gorm:"not null"`        // Stored and compared verbatim
	Role     string `gorm:"default:member"`  // Role: member or admin
}
