package dto

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,max=150"`
	RoleID   *int   `json:"role_id" validate:"omitempty,gt=0"`
	BranchID string `json:"branch_id" validate:"omitempty,uuid"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,max=150"`
	RoleID   *int    `json:"role_id" validate:"omitempty,gt=0"`
	BranchID *string `json:"branch_id" validate:"omitempty,uuid"`
}
