package domain

// Built-in role names.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type Role struct {
	RoleID      string `json:"id" dynamodbav:"role_id"`
	Name        string `json:"name" dynamodbav:"name"`
	NameLower   string `json:"-" dynamodbav:"name_lc"` // lowercased lookup key
	Description string `json:"description" dynamodbav:"description"`
	Enable      bool   `json:"enable" dynamodbav:"enable"`
}

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=250"`
}
