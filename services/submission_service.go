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

// SubmissionService orchestrates the manuscript lifecycle: object storage,
// the submission table and the notifier. The create flow is the only
// multi-step write; if the database insert fails after the file has landed
// in storage, the uploaded object is deleted before the error surfaces.
type SubmissionService struct {
	db             *gorm.DB
	store          FileStore
	notifier       Notifier
	manuscriptsBkt string
}

func NewSubmissionService(db *gorm.DB, store FileStore, notifier Notifier, manuscriptsBucket string) *SubmissionService {
	return &SubmissionService{
		db:             db,
		store:          store,
		notifier:       notifier,
		manuscriptsBkt: manuscriptsBucket,
	}
}

// CreateSubmissionInput carries the raw form fields. Numeric and boolean
// fields arrive as strings from the multipart form and are parsed here.
type CreateSubmissionInput struct {
	DesiredIssue                    string
	ManuscriptTitle                 string
	Abstract                        string
	SubjectArea                     string
	TotalAuthors                    string
	CorrespondingAuthorName         string
	CorrespondingAuthorMobile       string
	CorrespondingAuthorEmail        string
	CorrespondingAuthorDepartment   string
	CorrespondingAuthorOrganization string
	WhatsappNumber                  string
	City                            string
	State                           string
	Country                         string
	AuthorType                      string
	AuthorCategory                  string
	NumberOfPages                   string
	AgreeToTerms                    string
}

// sanitizeSubmissionInput trims and strips null bytes from every free-text
// field before anything is stored or mailed.
func sanitizeSubmissionInput(in *CreateSubmissionInput) {
	for _, f := range []*string{
		&in.DesiredIssue, &in.ManuscriptTitle, &in.Abstract, &in.SubjectArea,
		&in.CorrespondingAuthorName, &in.CorrespondingAuthorMobile,
		&in.CorrespondingAuthorEmail, &in.CorrespondingAuthorDepartment,
		&in.CorrespondingAuthorOrganization, &in.WhatsappNumber,
		&in.City, &in.State, &in.Country, &in.AuthorType, &in.AuthorCategory,
	} {
		*f = utils.SanitizeInput(*f)
	}
}

// Create uploads the manuscript, persists the submission row and sends the
// confirmation email. Field parsing happens after the upload, so a parse
// failure triggers the same compensating delete as a persistence failure.
func (s *SubmissionService) Create(ctx context.Context, input CreateSubmissionInput, file *FileUpload) (*models.Submission, error) {
	if file == nil || file.Content == nil {
		return nil, validationErrorf("manuscript file is required")
	}

	sanitizeSubmissionInput(&input)
	if !utils.ValidateEmail(input.CorrespondingAuthorEmail) {
		return nil, validationErrorf("correspondingAuthorEmail is not a valid email address")
	}

	trackingID := utils.GenerateTrackingID()
	key := utils.StorageKey(file.Filename)

	if err := s.store.Upload(ctx, s.manuscriptsBkt, key, file.Content, file.Size, file.ContentType); err != nil {
		return nil, &StorageError{Op: "upload", Err: err}
	}

	fileURL, err := s.store.PublicURL(s.manuscriptsBkt, key)
	if err != nil {
		s.rollbackUpload(ctx, key)
		return nil, &StorageError{Op: "upload", Err: err}
	}

	totalAuthors, err := strconv.Atoi(input.TotalAuthors)
	if err != nil || totalAuthors <= 0 {
		s.rollbackUpload(ctx, key)
		return nil, validationErrorf("totalAuthors must be a positive numeric string")
	}

	numberOfPages, err := strconv.Atoi(input.NumberOfPages)
	if err != nil || numberOfPages <= 0 {
		s.rollbackUpload(ctx, key)
		return nil, validationErrorf("numberOfPages must be a positive numeric string")
	}

	if input.AgreeToTerms != "true" && input.AgreeToTerms != "false" {
		s.rollbackUpload(ctx, key)
		return nil, validationErrorf(`agreeToTerms must be "true" or "false"`)
	}

	submission := models.Submission{
		DesiredIssue:                    input.DesiredIssue,
		ManuscriptTitle:                 input.ManuscriptTitle,
		Abstract:                        input.Abstract,
		SubjectArea:                     input.SubjectArea,
		TotalAuthors:                    totalAuthors,
		CorrespondingAuthorName:         input.CorrespondingAuthorName,
		CorrespondingAuthorMobile:       input.CorrespondingAuthorMobile,
		CorrespondingAuthorEmail:        input.CorrespondingAuthorEmail,
		CorrespondingAuthorDepartment:   input.CorrespondingAuthorDepartment,
		CorrespondingAuthorOrganization: input.CorrespondingAuthorOrganization,
		WhatsappNumber:                  input.WhatsappNumber,
		City:                            input.City,
		State:                           input.State,
		Country:                         input.Country,
		AuthorType:                      input.AuthorType,
		AuthorCategory:                  input.AuthorCategory,
		NumberOfPages:                   numberOfPages,
		ManuscriptFilePath:              fileURL,
		OriginalFileName:                file.Filename,
		AgreeToTerms:                    input.AgreeToTerms == "true",
		Status:                          models.StatusSubmitted,
		TrackingID:                      trackingID,
		Version:                         1,
	}

	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		s.rollbackUpload(ctx, key)
		return nil, &PersistenceError{Err: err}
	}

	notifySafe("submission confirmation", func() error {
		return s.notifier.SendSubmissionConfirmation(
			submission.CorrespondingAuthorEmail,
			submission.CorrespondingAuthorName,
			submission.TrackingID,
			submission.ManuscriptTitle,
		)
	})

	log.Printf("Submission %d created with tracking ID %s", submission.ID, submission.TrackingID)
	return &submission, nil
}

// rollbackUpload compensates a partially-completed create. A failure of the
// compensating delete is logged; the original error is what the caller sees.
func (s *SubmissionService) rollbackUpload(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, s.manuscriptsBkt, key); err != nil {
		log.Printf("Failed to delete file %s/%s during rollback, object may be orphaned: %v", s.manuscriptsBkt, key, err)
	}
}

// UpdateStatus applies a status change and optional admin remarks, persists
// them, then notifies the corresponding author. The notification reflects the
// committed row and its failure never fails the update.
//
// Any enum status may replace any other: editors need to be able to correct
// a misclassified manuscript, so transition order is not enforced.
func (s *SubmissionService) UpdateStatus(ctx context.Context, id int, status string, adminRemarks *string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", id, ErrNotFound)
		}
		return nil, &PersistenceError{Err: err}
	}

	next := models.SubmissionStatus(status)
	if !next.Valid() {
		return nil, validationErrorf("invalid status %q", status)
	}
	submission.Status = next
	if adminRemarks != nil {
		trimmed := strings.TrimSpace(*adminRemarks)
		submission.AdminRemarks = &trimmed
	}

	if err := s.db.WithContext(ctx).Save(&submission).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	remarks := ""
	if submission.AdminRemarks != nil {
		remarks = *submission.AdminRemarks
	}
	notifySafe("status update", func() error {
		return s.notifier.SendStatusUpdate(
			submission.CorrespondingAuthorEmail,
			submission.CorrespondingAuthorName,
			submission.TrackingID,
			submission.ManuscriptTitle,
			submission.Status.Label(),
			remarks,
		)
	})

	log.Printf("Submission %d status updated to %s", id, submission.Status)
	return &submission, nil
}

// Delete removes the manuscript object and then the row. A storage failure
// is logged and the row delete proceeds: a logged orphan blob beats a row
// that can never be deleted.
func (s *SubmissionService) Delete(ctx context.Context, id int) error {
	var submission models.Submission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("submission %d: %w", id, ErrNotFound)
		}
		return &PersistenceError{Err: err}
	}

	if key := utils.KeyFromURL(submission.ManuscriptFilePath); key != "" {
		if err := s.store.Delete(ctx, s.manuscriptsBkt, key); err != nil {
			log.Printf("Failed to delete manuscript %s/%s for submission %d, object may be orphaned: %v",
				s.manuscriptsBkt, key, id, err)
		}
	}

	if err := s.db.WithContext(ctx).Delete(&models.Submission{}, id).Error; err != nil {
		return &PersistenceError{Err: err}
	}

	log.Printf("Submission %d deleted", id)
	return nil
}

func (s *SubmissionService) FindOne(ctx context.Context, id int) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d: %w", id, ErrNotFound)
		}
		return nil, &PersistenceError{Err: err}
	}
	return &submission, nil
}

func (s *SubmissionService) FindByTrackingID(ctx context.Context, trackingID string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.WithContext(ctx).Where("trackingId = ?", trackingID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %s: %w", trackingID, ErrNotFound)
		}
		return nil, &PersistenceError{Err: err}
	}
	return &submission, nil
}

// FindByIDAndEmail returns the row only when the corresponding author email
// matches, which is the ownership check the author-scoped endpoint relies on.
func (s *SubmissionService) FindByIDAndEmail(ctx context.Context, id int, email string) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.WithContext(ctx).
		Where("id = ? AND correspondingAuthorEmail = ?", id, email).
		First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("submission %d for %s: %w", id, email, ErrNotFound)
		}
		return nil, &PersistenceError{Err: err}
	}
	return &submission, nil
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListSubmissionsOptions filters the paginated listing: optional status
// equality and optional title substring match, combined conjunctively.
type ListSubmissionsOptions struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// SubmissionPage is one page of the newest-first listing.
type SubmissionPage struct {
	Data       []models.Submission `json:"data"`
	Count      int64               `json:"count"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"totalPages"`
}

func (s *SubmissionService) FindAll(ctx context.Context, opts ListSubmissionsOptions) (*SubmissionPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	limit := opts.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filtered := func() *gorm.DB {
		query := s.db.WithContext(ctx).Model(&models.Submission{})
		if opts.Status != "" {
			query = query.Where("status = ?", opts.Status)
		}
		if opts.Search != "" {
			query = query.Where("manuscriptTitle LIKE ?", "%"+opts.Search+"%")
		}
		return query
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	var data []models.Submission
	err := filtered().
		Order("createdAt DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&data).Error
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	totalPages := int((count + int64(limit) - 1) / int64(limit))

	return &SubmissionPage{
		Data:       data,
		Count:      count,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}
