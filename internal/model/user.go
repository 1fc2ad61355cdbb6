package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// Caller 当前请求的调用者，由 JWT 声明构造
type Caller struct {
	UserID uint
	Role   UserRole
}

func (c Caller) IsAdmin() bool {
	return c.Role == Admin
}
