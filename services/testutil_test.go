package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/RohitAgrawal7/Journal-Backend/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Submission{}, &models.ReviewerApplication{}); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	return db
}

// fakeStore is an in-memory FileStore with scriptable failures.
type fakeStore struct {
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	deletes   []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Upload(_ context.Context, bucket, key string, content io.Reader, _ int64, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	full := bucket + "/" + key
	if _, exists := f.objects[full]; exists {
		return fmt.Errorf("object %s already exists", full)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(content); err != nil {
		return err
	}
	f.objects[full] = buf.Bytes()
	return nil
}

func (f *fakeStore) PublicURL(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket or key is missing")
	}
	return fmt.Sprintf("https://storage.test/%s/%s", bucket, key), nil
}

func (f *fakeStore) Delete(_ context.Context, bucket, key string) error {
	f.deletes = append(f.deletes, bucket+"/"+key)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeStore) Exists(_ context.Context, bucket, key string) bool {
	_, ok := f.objects[bucket+"/"+key]
	return ok
}

// fakeNotifier records sends and can be forced to fail every call.
type fakeNotifier struct {
	confirmations []string
	statusUpdates []string
	err           error
}

func (f *fakeNotifier) SendSubmissionConfirmation(to, _, trackingID, _ string) error {
	f.confirmations = append(f.confirmations, to+"|"+trackingID)
	return f.err
}

func (f *fakeNotifier) SendStatusUpdate(to, _, _, _, statusLabel, _ string) error {
	f.statusUpdates = append(f.statusUpdates, to+"|"+statusLabel)
	return f.err
}

func testFile(name, content string) *FileUpload {
	return &FileUpload{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     bytes.NewReader([]byte(content)),
	}
}

func validSubmissionInput() CreateSubmissionInput {
	return CreateSubmissionInput{
		DesiredIssue:                    "Vol 4 Issue 2",
		ManuscriptTitle:                 "Outcomes of Laparoscopic Surgery",
		Abstract:                        "A retrospective cohort study.",
		SubjectArea:                     "Surgery",
		TotalAuthors:                    "2",
		CorrespondingAuthorName:         "Dr. A. Sharma",
		CorrespondingAuthorMobile:       "+91 9876543210",
		CorrespondingAuthorEmail:        "a.sharma@example.org",
		CorrespondingAuthorDepartment:   "General Surgery",
		CorrespondingAuthorOrganization: "City Medical College",
		WhatsappNumber:                  "+91 9876543210",
		City:                            "Pune",
		State:                           "Maharashtra",
		Country:                         "India",
		AuthorType:                      "Academic",
		AuthorCategory:                  "National",
		NumberOfPages:                   "10",
		AgreeToTerms:                    "true",
	}
}

func validReviewerInput() CreateReviewerApplicationInput {
	return CreateReviewerApplicationInput{
		Salutation:                "Dr.",
		FullName:                  "B. Verma",
		Gender:                    "Female",
		CurrentEmployment:         "Associate Professor",
		TotalExperience:           "12",
		EducationalQualifications: "MD, PhD",
		ResearchAreas:             []string{"Gynaecology", " Oncology ", ""},
		InstitutionalEmail:        "b.verma@college.edu",
		PersonalEmail:             "b.verma@example.com",
		MobileNo:                  "+91 9812345678",
		WhatsappNo:                "+91 9812345678",
		City:                      "Delhi",
		Country:                   "India",
		InternationalPublications: "8",
		HowFoundUs:                "Colleague",
		FirstReferenceName:        "Dr. C. Rao",
		FirstReferenceEmail:       "c.rao@college.edu",
		FirstReferenceOrg:         "City Medical College",
		FirstReferenceMobile:      "+91 9800000001",
		SecondReferenceName:       "Dr. D. Iyer",
		SecondReferenceEmail:      "d.iyer@college.edu",
		SecondReferenceOrg:        "State University",
		SecondReferenceMobile:     "+91 9800000002",
		AgreeToTerms:              "true",
	}
}
