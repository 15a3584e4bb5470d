package employee

import (
	"io"
	"time"
)

// ImageUpload carries a photo from the multipart form into the service.
// The bytes go to object storage; only the returned URL is persisted.
type ImageUpload struct {
	Filename string
	MIME     string
	Reader   io.Reader
}

type CreateEmployeeRequest struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Courses     []string
	Image       *ImageUpload
}

type UpdateEmployeeRequest struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Courses     []string
	Image       *ImageUpload
}

type EmployeeResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	Designation string    `json:"designation"`
	Gender      string    `json:"gender"`
	Course      string    `json:"course"`
	Image       string    `json:"image,omitempty"`
	CreateDate  time.Time `json:"createdate"`
}
