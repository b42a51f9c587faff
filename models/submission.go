package models

import "time"

// SubmissionStatus is the review lifecycle state of a manuscript.
type SubmissionStatus string

const (
	StatusSubmitted        SubmissionStatus = "submitted"
	StatusUnderReview      SubmissionStatus = "under_review"
	StatusRevisionRequired SubmissionStatus = "revision_required"
	StatusAccepted         SubmissionStatus = "accepted"
	StatusRejected         SubmissionStatus = "rejected"
)

// Valid reports whether s is a member of the status enum.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusUnderReview, StatusRevisionRequired, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Label returns the human-readable form used in emails and the frontend.
func (s SubmissionStatus) Label() string {
	switch s {
	case StatusSubmitted:
		return "Submitted"
	case StatusUnderReview:
		return "Under Review"
	case StatusRevisionRequired:
		return "Revision Required"
	case StatusAccepted:
		return "Accepted"
	case StatusRejected:
		return "Rejected"
	}
	return string(s)
}

// Submission represents the submission table
type Submission struct {
	ID                              int              `gorm:"primaryKey;column:id" json:"id"`
	DesiredIssue                    string           `gorm:"column:desiredIssue" json:"desiredIssue"`
	ManuscriptTitle                 string           `gorm:"column:manuscriptTitle" json:"manuscriptTitle"`
	Abstract                        string           `gorm:"column:abstract;type:text" json:"abstract"`
	SubjectArea                     string           `gorm:"column:subjectArea" json:"subjectArea"`
	TotalAuthors                    int              `gorm:"column:totalAuthors" json:"totalAuthors"`
	CorrespondingAuthorName         string           `gorm:"column:correspondingAuthorName" json:"correspondingAuthorName"`
	CorrespondingAuthorMobile       string           `gorm:"column:correspondingAuthorMobile" json:"correspondingAuthorMobile"`
	CorrespondingAuthorEmail        string           `gorm:"column:correspondingAuthorEmail;index" json:"correspondingAuthorEmail"`
	CorrespondingAuthorDepartment   string           `gorm:"column:correspondingAuthorDepartment" json:"correspondingAuthorDepartment"`
	CorrespondingAuthorOrganization string           `gorm:"column:correspondingAuthorOrganization" json:"correspondingAuthorOrganization"`
	WhatsappNumber                  string           `gorm:"column:whatsappNumber" json:"whatsappNumber"`
	City                            string           `gorm:"column:city" json:"city"`
	State                           string           `gorm:"column:state" json:"state"`
	Country                         string           `gorm:"column:country" json:"country"`
	AuthorType                      string           `gorm:"column:authorType" json:"authorType"`
	AuthorCategory                  string           `gorm:"column:authorCategory" json:"authorCategory"`
	NumberOfPages                   int              `gorm:"column:numberOfPages" json:"numberOfPages"`
	ManuscriptFilePath              string           `gorm:"column:manuscriptFilePath" json:"manuscriptFilePath"`
	OriginalFileName                string           `gorm:"column:originalFileName" json:"originalFileName"`
	AgreeToTerms                    bool             `gorm:"column:agreeToTerms;default:false" json:"agreeToTerms"`
	Status                          SubmissionStatus `gorm:"column:status;type:varchar(32);default:submitted" json:"status"`
	AdminRemarks                    *string          `gorm:"column:adminRemarks;type:text" json:"adminRemarks,omitempty"`
	TrackingID                      string           `gorm:"column:trackingId;uniqueIndex" json:"trackingId"`
	Version                         int              `gorm:"column:version;default:1" json:"version"`
	PreviousVersionID               *int             `gorm:"column:previousVersionId" json:"previousVersionId,omitempty"`
	CreatedAt                       time.Time        `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt                       time.Time        `gorm:"column:updatedAt" json:"updatedAt"`
}

// TableName overrides
func (Submission) TableName() string {
	return "submission"
}
