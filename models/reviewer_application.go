package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// StringList persists a set of strings as a comma-delimited text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, ","), nil
}

func (l *StringList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if strings.TrimSpace(raw) == "" {
		*l = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*l = out
	return nil
}

func (StringList) GormDataType() string {
	return "text"
}

// ReviewerApplication represents the reviewer_applications table
type ReviewerApplication struct {
	ID                        int        `gorm:"primaryKey;column:id" json:"id"`
	Salutation                string     `gorm:"column:salutation" json:"salutation"`
	FullName                  string     `gorm:"column:fullName" json:"fullName"`
	Gender                    string     `gorm:"column:gender" json:"gender"`
	CurrentEmployment         string     `gorm:"column:currentEmployment" json:"currentEmployment"`
	TotalExperience           int        `gorm:"column:totalExperience" json:"totalExperience"`
	EducationalQualifications string     `gorm:"column:educationalQualifications;type:text" json:"educationalQualifications"`
	ResearchAreas             StringList `gorm:"column:researchAreas" json:"researchAreas"`
	InstitutionalEmail        string     `gorm:"column:institutionalEmail" json:"institutionalEmail"`
	PersonalEmail             string     `gorm:"column:personalEmail" json:"personalEmail"`
	MobileNo                  string     `gorm:"column:mobileNo" json:"mobileNo"`
	WhatsappNo                string     `gorm:"column:whatsappNo" json:"whatsappNo"`
	City                      string     `gorm:"column:city" json:"city"`
	Country                   string     `gorm:"column:country" json:"country"`
	InternationalPublications int        `gorm:"column:internationalPublications" json:"internationalPublications"`
	HowFoundUs                string     `gorm:"column:howFoundUs" json:"howFoundUs"`
	CVPath                    string     `gorm:"column:cvPath" json:"cvPath"`
	FirstReferenceName        string     `gorm:"column:firstReferenceName" json:"firstReferenceName"`
	FirstReferenceEmail       string     `gorm:"column:firstReferenceEmail" json:"firstReferenceEmail"`
	FirstReferenceOrg         string     `gorm:"column:firstReferenceOrg" json:"firstReferenceOrg"`
	FirstReferenceMobile      string     `gorm:"column:firstReferenceMobile" json:"firstReferenceMobile"`
	SecondReferenceName       string     `gorm:"column:secondReferenceName" json:"secondReferenceName"`
	SecondReferenceEmail      string     `gorm:"column:secondReferenceEmail" json:"secondReferenceEmail"`
	SecondReferenceOrg        string     `gorm:"column:secondReferenceOrg" json:"secondReferenceOrg"`
	SecondReferenceMobile     string     `gorm:"column:secondReferenceMobile" json:"secondReferenceMobile"`
	AgreeToTerms              bool       `gorm:"column:agreeToTerms;default:false" json:"agreeToTerms"`
	CreatedAt                 time.Time  `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt                 time.Time  `gorm:"column:updatedAt" json:"updatedAt"`
}

// TableName overrides
func (ReviewerApplication) TableName() string {
	return "reviewer_applications"
}
