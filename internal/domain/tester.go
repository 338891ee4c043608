package domain

// Tester is a person who can be assigned to projects and recorded as
// having produced a test result. Email is optional but unique when set.
type Tester struct {
	BaseModel
	Name  string  `gorm:"type:varchar(255);not null" json:"name"`
	Email *string `gorm:"type:varchar(255);uniqueIndex:uq_testers_email" json:"email,omitempty"`
	Color *string `gorm:"type:varchar(20)" json:"color,omitempty"`
}

// TableName specifies the table name for Tester
func (Tester) TableName() string {
	return "testers"
}
