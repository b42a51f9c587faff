package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/RohitAgrawal7/Journal-Backend/models"
	"github.com/RohitAgrawal7/Journal-Backend/utils"
	"gorm.io/gorm"
)

// ReviewerService handles reviewer applications. Same upload-then-persist
// protocol as submissions, without a status machine and without emails.
type ReviewerService struct {
	db    *gorm.DB
	store FileStore
	cvBkt string
}

func NewReviewerService(db *gorm.DB, store FileStore, cvBucket string) *ReviewerService {
	return &ReviewerService{db: db, store: store, cvBkt: cvBucket}
}

// CreateReviewerApplicationInput carries the raw reviewer form fields.
type CreateReviewerApplicationInput struct {
	Salutation                string
	FullName                  string
	Gender                    string
	CurrentEmployment         string
	TotalExperience           string
	EducationalQualifications string
	ResearchAreas             []string
	InstitutionalEmail        string
	PersonalEmail             string
	MobileNo                  string
	WhatsappNo                string
	City                      string
	Country                   string
	InternationalPublications string
	HowFoundUs                string
	FirstReferenceName        string
	FirstReferenceEmail       string
	FirstReferenceOrg         string
	FirstReferenceMobile      string
	SecondReferenceName       string
	SecondReferenceEmail      string
	SecondReferenceOrg        string
	SecondReferenceMobile     string
	AgreeToTerms              string
}

// sanitizeReviewerInput trims and strips null bytes from every free-text
// field before anything is stored.
func sanitizeReviewerInput(in *CreateReviewerApplicationInput) {
	for _, f := range []*string{
		&in.Salutation, &in.FullName, &in.Gender, &in.CurrentEmployment,
		&in.EducationalQualifications, &in.InstitutionalEmail, &in.PersonalEmail,
		&in.MobileNo, &in.WhatsappNo, &in.City, &in.Country, &in.HowFoundUs,
		&in.FirstReferenceName, &in.FirstReferenceEmail, &in.FirstReferenceOrg,
		&in.FirstReferenceMobile, &in.SecondReferenceName, &in.SecondReferenceEmail,
		&in.SecondReferenceOrg, &in.SecondReferenceMobile,
	} {
		*f = utils.SanitizeInput(*f)
	}
}

// Create uploads the CV and persists the application. A persistence or parse
// failure after the upload deletes the stored CV before surfacing.
func (s *ReviewerService) Create(ctx context.Context, input CreateReviewerApplicationInput, cv *FileUpload) (*models.ReviewerApplication, error) {
	if cv == nil || cv.Content == nil {
		return nil, validationErrorf("CV file is required")
	}

	sanitizeReviewerInput(&input)
	if !utils.ValidateEmail(input.InstitutionalEmail) {
		return nil, validationErrorf("institutionalEmail is not a valid email address")
	}
	if !utils.ValidateEmail(input.PersonalEmail) {
		return nil, validationErrorf("personalEmail is not a valid email address")
	}

	key := utils.StorageKey(cv.Filename)
	if err := s.store.Upload(ctx, s.cvBkt, key, cv.Content, cv.Size, cv.ContentType); err != nil {
		return nil, &StorageError{Op: "upload", Err: err}
	}

	cvURL, err := s.store.PublicURL(s.cvBkt, key)
	if err != nil {
		s.rollbackUpload(ctx, key)
		return nil, &StorageError{Op: "upload", Err: err}
	}

	totalExperience, err := strconv.Atoi(input.TotalExperience)
	if err != nil || totalExperience < 0 {
		s.rollbackUpload(ctx, key)
		return nil, validationErrorf("totalExperience must be a non-negative numeric string")
	}

	internationalPublications, err := strconv.Atoi(input.InternationalPublications)
	if err != nil || internationalPublications < 0 {
		s.rollbackUpload(ctx, key)
		return nil, validationErrorf("internationalPublications must be a non-negative numeric string")
	}

	areas := make(models.StringList, 0, len(input.ResearchAreas))
	for _, area := range input.ResearchAreas {
		if trimmed := strings.TrimSpace(area); trimmed != "" {
			areas = append(areas, trimmed)
		}
	}
	if len(areas) == 0 {
		s.rollbackUpload(ctx, key)
		return nil, validationErrorf("at least one research area is required")
	}

	application := models.ReviewerApplication{
		Salutation:                input.Salutation,
		FullName:                  input.FullName,
		Gender:                    input.Gender,
		CurrentEmployment:         input.CurrentEmployment,
		TotalExperience:           totalExperience,
		EducationalQualifications: input.EducationalQualifications,
		ResearchAreas:             areas,
		InstitutionalEmail:        input.InstitutionalEmail,
		PersonalEmail:             input.PersonalEmail,
		MobileNo:                  input.MobileNo,
		WhatsappNo:                input.WhatsappNo,
		City:                      input.City,
		Country:                   input.Country,
		InternationalPublications: internationalPublications,
		HowFoundUs:                input.HowFoundUs,
		CVPath:                    cvURL,
		FirstReferenceName:        input.FirstReferenceName,
		FirstReferenceEmail:       input.FirstReferenceEmail,
		FirstReferenceOrg:         input.FirstReferenceOrg,
		FirstReferenceMobile:      input.FirstReferenceMobile,
		SecondReferenceName:       input.SecondReferenceName,
		SecondReferenceEmail:      input.SecondReferenceEmail,
		SecondReferenceOrg:        input.SecondReferenceOrg,
		SecondReferenceMobile:     input.SecondReferenceMobile,
		AgreeToTerms:              input.AgreeToTerms == "true",
	}

	if err := s.db.WithContext(ctx).Create(&application).Error; err != nil {
		s.rollbackUpload(ctx, key)
		return nil, &PersistenceError{Err: err}
	}

	log.Printf("Reviewer application %d created for %s", application.ID, application.FullName)
	return &application, nil
}

func (s *ReviewerService) rollbackUpload(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, s.cvBkt, key); err != nil {
		log.Printf("Failed to delete CV %s/%s during rollback, object may be orphaned: %v", s.cvBkt, key, err)
	}
}

func (s *ReviewerService) FindAll(ctx context.Context) ([]models.ReviewerApplication, error) {
	var applications []models.ReviewerApplication
	if err := s.db.WithContext(ctx).Order("createdAt DESC").Find(&applications).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return applications, nil
}

func (s *ReviewerService) FindOne(ctx context.Context, id int) (*models.ReviewerApplication, error) {
	var application models.ReviewerApplication
	if err := s.db.WithContext(ctx).First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reviewer application %d: %w", id, ErrNotFound)
		}
		return nil, &PersistenceError{Err: err}
	}
	return &application, nil
}
