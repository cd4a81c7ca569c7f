package models

type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleID    int64  `json:"roleId"`
	RoleName  string `json:"roleName"`
	PartnerID *int64 `json:"partnerId,omitempty"`
	CreatedAt Time   `json:"created_At"`
}

type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type UserInput struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty"`
	RoleID   int64  `json:"roleId" validate:"required"`
	EventID  *int64 `json:"eventId,omitempty"`
}

type UserParameters struct {
	EventID     *int64 `url:"eventId,omitempty"`
	SearchQuery string `url:"searchQuery"`
	StartDate   string `url:"startDate"`
	EndDate     string `url:"endDate"`
	PageNumber  int    `url:"pageNumber"`
	PageSize    int    `url:"pageSize"`
}

type PasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type ProfileInput struct {
	Name string `json:"name" validate:"notblank"`
}
