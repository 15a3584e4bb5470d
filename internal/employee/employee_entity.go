package employee

import "time"

// Employee is a directory record. ID comes from the shared sequence
// counter, is unique and strictly increasing, and is never reused after
// a delete. Course is persisted as a comma-joined string.
type Employee struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"type:varchar(255);not null"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Mobile      string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employee_mobile"`
	Designation string `gorm:"type:varchar(50)"`
	Gender      string `gorm:"type:varchar(20)"`
	Course      string `gorm:"type:varchar(255)"`
	ImageURL    string `gorm:"type:varchar(512)"`
	CreatedAt   time.Time
}
