package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/RohitAgrawal7/Journal-Backend/models"
	"github.com/RohitAgrawal7/Journal-Backend/utils"
	"gorm.io/gorm"
)

const manuscriptsBucket = "manuscripts"

var trackingIDPattern = regexp.MustCompile(`^UJGSM-[A-Z0-9]{8}$`)

func newSubmissionFixture(t *testing.T) (*SubmissionService, *gorm.DB, *fakeStore, *fakeNotifier) {
	t.Helper()
	db := newTestDB(t)
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := NewSubmissionService(db, store, notifier, manuscriptsBucket)
	return svc, db, store, notifier
}

func TestCreateSubmissionStoresFileAndRow(t *testing.T) {
	svc, db, store, notifier := newSubmissionFixture(t)

	submission, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if submission.ID == 0 {
		t.Fatal("expected a database-assigned id")
	}
	if submission.Status != models.StatusSubmitted {
		t.Fatalf("expected status %q, got %q", models.StatusSubmitted, submission.Status)
	}
	if !trackingIDPattern.MatchString(submission.TrackingID) {
		t.Fatalf("tracking ID %q does not match expected format", submission.TrackingID)
	}
	if submission.TotalAuthors != 2 || submission.NumberOfPages != 10 {
		t.Fatalf("numeric fields parsed wrong: %d authors, %d pages", submission.TotalAuthors, submission.NumberOfPages)
	}
	if !submission.AgreeToTerms {
		t.Fatal("expected agreeToTerms to be true")
	}
	if submission.Version != 1 {
		t.Fatalf("expected version 1, got %d", submission.Version)
	}
	if submission.OriginalFileName != "paper.pdf" {
		t.Fatalf("unexpected original file name %q", submission.OriginalFileName)
	}

	// The persisted file reference must resolve to a stored object.
	key := utils.KeyFromURL(submission.ManuscriptFilePath)
	if !store.Exists(context.Background(), manuscriptsBucket, key) {
		t.Fatalf("manuscript object %s missing from storage", key)
	}
	if !strings.HasSuffix(key, "_paper.pdf") {
		t.Fatalf("storage key %q missing timestamp prefix or sanitized name", key)
	}

	if len(notifier.confirmations) != 1 {
		t.Fatalf("expected 1 confirmation email, got %d", len(notifier.confirmations))
	}

	// The row must be retrievable by its tracking ID and be identical.
	tracked, err := svc.FindByTrackingID(context.Background(), submission.TrackingID)
	if err != nil {
		t.Fatalf("FindByTrackingID returned error: %v", err)
	}
	if tracked.ID != submission.ID || tracked.ManuscriptFilePath != submission.ManuscriptFilePath {
		t.Fatalf("tracked row differs from created row: %+v vs %+v", tracked, submission)
	}

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 row, got %d", count)
	}
}

func TestCreateSubmissionInvalidAuthorCountRollsBackUpload(t *testing.T) {
	svc, db, store, notifier := newSubmissionFixture(t)

	input := validSubmissionInput()
	input.TotalAuthors = "abc"

	_, err := svc.Create(context.Background(), input, testFile("paper.pdf", "pdf bytes"))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows after failed create, got %d", count)
	}
	if len(store.objects) != 0 {
		t.Fatalf("expected compensation to delete the upload, %d objects remain", len(store.objects))
	}
	if len(notifier.confirmations) != 0 {
		t.Fatal("no email must be sent for a failed create")
	}
}

func TestCreateSubmissionPersistenceFailureDeletesUpload(t *testing.T) {
	svc, db, store, _ := newSubmissionFixture(t)

	// Drop the table so the insert fails after the upload has committed.
	if err := db.Migrator().DropTable(&models.Submission{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	_, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected persistence error, got %v", err)
	}

	if len(store.objects) != 0 {
		t.Fatalf("expected compensation to delete the upload, %d objects remain", len(store.objects))
	}
	if len(store.deletes) != 1 {
		t.Fatalf("expected exactly one compensating delete, got %d", len(store.deletes))
	}
}

func TestCreateSubmissionUploadFailureLeavesNothing(t *testing.T) {
	svc, db, store, notifier := newSubmissionFixture(t)
	store.uploadErr = fmt.Errorf("backend unavailable")

	_, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected storage error, got %v", err)
	}

	var count int64
	db.Model(&models.Submission{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
	if len(store.deletes) != 0 {
		t.Fatal("nothing was written, so nothing should be compensated")
	}
	if len(notifier.confirmations) != 0 {
		t.Fatal("no email must be sent for a failed create")
	}
}

func TestCreateSubmissionRejectsInvalidEmail(t *testing.T) {
	svc, db, store, notifier := newSubmissionFixture(t)

	input := validSubmissionInput()
	input.CorrespondingAuthorEmail = "not-an-email"

	_, err := svc.Create(context.Background(), input, testFile("paper.pdf", "pdf bytes"))
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The email check runs before the upload, so nothing needs compensating.
	if len(store.objects) != 0 || len(store.deletes) != 0 {
		t.Fatalf("no object must be written or deleted, got %d objects and %d deletes",
			len(store.objects), len(store.deletes))
	}
	var count int64
	db.Model(&models.Submission{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
	if len(notifier.confirmations) != 0 {
		t.Fatal("no email must be sent for a failed create")
	}
}

func TestCreateSubmissionSanitizesFreeText(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	input := validSubmissionInput()
	input.ManuscriptTitle = "  Outcomes\x00 of Surgery  "
	input.CorrespondingAuthorName = " Dr. A. Sharma "
	input.CorrespondingAuthorEmail = " a.sharma@example.org "

	created, err := svc.Create(context.Background(), input, testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.ManuscriptTitle != "Outcomes of Surgery" {
		t.Fatalf("title not sanitized: %q", created.ManuscriptTitle)
	}
	if created.CorrespondingAuthorName != "Dr. A. Sharma" {
		t.Fatalf("author name not sanitized: %q", created.CorrespondingAuthorName)
	}
	if created.CorrespondingAuthorEmail != "a.sharma@example.org" {
		t.Fatalf("email not sanitized: %q", created.CorrespondingAuthorEmail)
	}
}

func TestCreateSubmissionTrackingIDsAreUnique(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		submission, err := svc.Create(context.Background(), validSubmissionInput(),
			testFile(fmt.Sprintf("paper-%d.pdf", i), "pdf bytes"))
		if err != nil {
			t.Fatalf("Create %d returned error: %v", i, err)
		}
		if seen[submission.TrackingID] {
			t.Fatalf("duplicate tracking ID %s", submission.TrackingID)
		}
		seen[submission.TrackingID] = true
	}
}

func TestUpdateStatusSurvivesNotifierFailure(t *testing.T) {
	svc, _, _, notifier := newSubmissionFixture(t)

	created, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	notifier.err = fmt.Errorf("smtp connection refused")

	remarks := "  Great work  "
	updated, err := svc.UpdateStatus(context.Background(), created.ID, "accepted", &remarks)
	if err != nil {
		t.Fatalf("UpdateStatus must succeed despite notifier failure, got %v", err)
	}

	if updated.Status != models.StatusAccepted {
		t.Fatalf("expected status accepted, got %q", updated.Status)
	}
	if updated.AdminRemarks == nil || *updated.AdminRemarks != "Great work" {
		t.Fatalf("expected trimmed remarks, got %v", updated.AdminRemarks)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Fatalf("updatedAt moved backwards: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}

	// The new status must be durably visible.
	reread, err := svc.FindOne(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindOne returned error: %v", err)
	}
	if reread.Status != models.StatusAccepted {
		t.Fatalf("status not persisted, got %q", reread.Status)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, notifier := newSubmissionFixture(t)

	created, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	sentBefore := len(notifier.statusUpdates)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "archived", nil)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if len(notifier.statusUpdates) != sentBefore {
		t.Fatal("no status email must be sent for a rejected update")
	}
}

func TestUpdateStatusRequiresStatus(t *testing.T) {
	svc, _, _, notifier := newSubmissionFixture(t)

	created, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	sentBefore := len(notifier.statusUpdates)

	remarks := "remarks without a status"
	_, err = svc.UpdateStatus(context.Background(), created.ID, "", &remarks)
	if !IsValidation(err) {
		t.Fatalf("expected validation error for empty status, got %v", err)
	}
	if len(notifier.statusUpdates) != sentBefore {
		t.Fatal("no status email must be sent for a rejected update")
	}

	// The row must be untouched.
	reread, err := svc.FindOne(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("FindOne returned error: %v", err)
	}
	if reread.Status != models.StatusSubmitted {
		t.Fatalf("status must not change, got %q", reread.Status)
	}
	if reread.AdminRemarks != nil {
		t.Fatalf("remarks must not be stored, got %q", *reread.AdminRemarks)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	_, err := svc.UpdateStatus(context.Background(), 9999, "accepted", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesRowAndObject(t *testing.T) {
	svc, _, store, _ := newSubmissionFixture(t)

	created, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	key := utils.KeyFromURL(created.ManuscriptFilePath)

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := svc.FindOne(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if store.Exists(context.Background(), manuscriptsBucket, key) {
		t.Fatal("manuscript object must be gone after delete")
	}
}

func TestDeleteProceedsWhenStorageDeleteFails(t *testing.T) {
	svc, _, store, _ := newSubmissionFixture(t)

	created, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	store.deleteErr = fmt.Errorf("backend unavailable")
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("row delete must proceed past a storage failure, got %v", err)
	}

	if _, err := svc.FindOne(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	if err := svc.Delete(context.Background(), 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindByIDAndEmailEnforcesOwnership(t *testing.T) {
	svc, _, _, _ := newSubmissionFixture(t)

	created, err := svc.Create(context.Background(), validSubmissionInput(), testFile("paper.pdf", "pdf bytes"))
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	owned, err := svc.FindByIDAndEmail(context.Background(), created.ID, created.CorrespondingAuthorEmail)
	if err != nil {
		t.Fatalf("expected lookup with matching email to succeed, got %v", err)
	}
	if owned.ID != created.ID {
		t.Fatalf("unexpected row %d", owned.ID)
	}

	_, err = svc.FindByIDAndEmail(context.Background(), created.ID, "someone-else@example.org")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("email mismatch must read as not found, got %v", err)
	}
}

func seedSubmissions(t *testing.T, db *gorm.DB, n int, status models.SubmissionStatus, titlePrefix string) {
	t.Helper()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		row := models.Submission{
			DesiredIssue:             "Vol 1",
			ManuscriptTitle:          fmt.Sprintf("%s %d", titlePrefix, i),
			Abstract:                 "abstract",
			SubjectArea:              "Medicine",
			TotalAuthors:             1,
			CorrespondingAuthorName:  "Author",
			CorrespondingAuthorEmail: "author@example.org",
			AuthorType:               "Academic",
			AuthorCategory:           "National",
			NumberOfPages:            5,
			ManuscriptFilePath:       fmt.Sprintf("https://storage.test/manuscripts/%d_%s.pdf", i, titlePrefix),
			OriginalFileName:         "paper.pdf",
			AgreeToTerms:             true,
			Status:                   status,
			TrackingID:               fmt.Sprintf("UJGSM-%s%07d", titlePrefix[:1], i),
			Version:                  1,
			CreatedAt:                base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:                base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("failed to seed row %d: %v", i, err)
		}
	}
}

func TestFindAllPaginatesNewestFirst(t *testing.T) {
	svc, db, _, _ := newSubmissionFixture(t)
	seedSubmissions(t, db, 7, models.StatusSubmitted, "Alpha")

	var seen []int
	for page := 1; page <= 3; page++ {
		result, err := svc.FindAll(context.Background(), ListSubmissionsOptions{Page: page, Limit: 3})
		if err != nil {
			t.Fatalf("FindAll page %d returned error: %v", page, err)
		}
		if result.Count != 7 {
			t.Fatalf("expected count 7, got %d", result.Count)
		}
		if result.TotalPages != 3 {
			t.Fatalf("expected 3 total pages for 7/3, got %d", result.TotalPages)
		}
		for _, row := range result.Data {
			seen = append(seen, row.ID)
		}
	}

	if len(seen) != 7 {
		t.Fatalf("pages must reproduce the full result set, got %d rows", len(seen))
	}
	unique := make(map[int]bool)
	for i, id := range seen {
		if unique[id] {
			t.Fatalf("row %d appears on more than one page", id)
		}
		unique[id] = true
		// Seeded newest-last, so the listing must walk ids downward.
		if i > 0 && seen[i] >= seen[i-1] {
			t.Fatalf("listing not newest-first: %v", seen)
		}
	}
}

func TestFindAllFiltersStatusAndTitle(t *testing.T) {
	svc, db, _, _ := newSubmissionFixture(t)
	seedSubmissions(t, db, 3, models.StatusSubmitted, "Alpha")
	seedSubmissions(t, db, 2, models.StatusAccepted, "Beta")

	byStatus, err := svc.FindAll(context.Background(), ListSubmissionsOptions{Status: "accepted"})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if byStatus.Count != 2 {
		t.Fatalf("expected 2 accepted rows, got %d", byStatus.Count)
	}

	bySearch, err := svc.FindAll(context.Background(), ListSubmissionsOptions{Search: "Alpha"})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if bySearch.Count != 3 {
		t.Fatalf("expected 3 Alpha rows, got %d", bySearch.Count)
	}

	both, err := svc.FindAll(context.Background(), ListSubmissionsOptions{Status: "accepted", Search: "Alpha"})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if both.Count != 0 {
		t.Fatalf("conjunctive filter must match nothing, got %d", both.Count)
	}
}

func TestFindAllCapsPageSize(t *testing.T) {
	svc, db, _, _ := newSubmissionFixture(t)
	seedSubmissions(t, db, 5, models.StatusSubmitted, "Alpha")

	result, err := svc.FindAll(context.Background(), ListSubmissionsOptions{Limit: 100000})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	// 5 rows fit one page either way; the cap shows in the page math.
	if result.TotalPages != 1 {
		t.Fatalf("expected 1 page, got %d", result.TotalPages)
	}

	empty, err := svc.FindAll(context.Background(), ListSubmissionsOptions{Page: 2, Limit: 100000})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(empty.Data) != 0 {
		t.Fatalf("page past the end must be empty, got %d rows", len(empty.Data))
	}
}
