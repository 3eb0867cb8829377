package students

type CreateStudentRequest struct {
	FullName string `json:"full_name" validate:"required,max=200"`
	Grade    int    `json:"grade" validate:"gte=0,lte=20"`
}

type UpdateStudentRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=200"`
	Grade    *int    `json:"grade,omitempty" validate:"omitempty,gte=0,lte=20"`
}
