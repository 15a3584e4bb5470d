package auth

// Credential is a login record. Rows are provisioned out-of-band by the
// seed command and never mutated by the API. The password is stored and
// compared verbatim; hashing is a known gap, kept for parity with the
// system this replaces.
type Credential struct {
	SequenceID int64  `gorm:"primaryKey;autoIncrement:false;column:sequence_id"`
	Username   string `gorm:"type:varchar(255);not null"`
	Password   string `gorm:"type:varchar(255);not null"`
	FullName   string `gorm:"type:varchar(255)"`
}

func (Credential) TableName() string {
	return "credentials"
}
