package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmploymentType values used by the HR workflows. Storage keeps free text.
const (
	EmploymentFullTime  = "full-time"
	EmploymentPartTime  = "part-time"
	EmploymentAssociate = "associate"
)

// Employee holds the HR profile of a user. There is at most one per user and it
// is removed together with its user.
type Employee struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"column:user_id;uniqueIndex;size:191;not null" json:"userId"`
	User   *User  `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	FullNameKanji    *string    `gorm:"size:255" json:"fullNameKanji"`
	FullNameKatakana *string    `gorm:"size:255" json:"fullNameKatakana"`
	PreferredName    *string    `gorm:"size:255" json:"preferredName"`
	BirthDate        *time.Time `json:"birthDate"`
	Nationality      *string    `gorm:"size:100" json:"nationality"`
	Phone            *string    `gorm:"size:50" json:"phone"`
	EmergencyContact *string    `gorm:"size:255" json:"emergencyContact"`
	EmergencyPhone   *string    `gorm:"size:50" json:"emergencyPhone"`
	JoinDate         *time.Time `json:"joinDate"`
	Position         *string    `gorm:"size:120" json:"position"`
	Department       *string    `gorm:"size:120" json:"department"`
	// ManagerID points at the user this employee reports to. It is not a foreign
	// key; keeping it in sync is up to the HR workflows.
	ManagerID      *string `gorm:"column:manager_id;size:191;index" json:"managerId"`
	EmploymentType *string `gorm:"size:32" json:"employmentType"`
	WorkLocation   *string `gorm:"size:255" json:"workLocation"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the Employee model.
func (Employee) TableName() string {
	return "employees"
}

// BeforeCreate assigns a random id to new rows.
func (e *Employee) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	return nil
}
