package entity

// Comment is immutable once posted; there is no edit operation.
type Comment struct {
	Base

	SubmissionID string     `gorm:"index"`
	Submission   Submission `gorm:"foreignKey:SubmissionID"`

	AuthorID string
	Author   User `gorm:"foreignKey:AuthorID"`

	Body string `gorm:"type:text"`
}
