package controllers

import (
	"net/http"
	"strconv"

	"github.com/RohitAgrawal7/Journal-Backend/services"
	"github.com/gin-gonic/gin"
)

var allowedManuscriptExts = map[string]bool{
	".doc":  true,
	".docx": true,
	".pdf":  true,
}

type SubmissionController struct {
	svc *services.SubmissionService
}

func NewSubmissionController(svc *services.SubmissionService) *SubmissionController {
	return &SubmissionController{svc: svc}
}

type createSubmissionForm struct {
	DesiredIssue                    string `form:"desiredIssue" binding:"required"`
	ManuscriptTitle                 string `form:"manuscriptTitle" binding:"required"`
	Abstract                        string `form:"abstract" binding:"required"`
	SubjectArea                     string `form:"subjectArea" binding:"required"`
	TotalAuthors                    string `form:"totalAuthors" binding:"required"`
	CorrespondingAuthorName         string `form:"correspondingAuthorName" binding:"required"`
	CorrespondingAuthorMobile       string `form:"correspondingAuthorMobile" binding:"required,max=15"`
	CorrespondingAuthorEmail        string `form:"correspondingAuthorEmail" binding:"required,email"`
	CorrespondingAuthorDepartment   string `form:"correspondingAuthorDepartment" binding:"required"`
	CorrespondingAuthorOrganization string `form:"correspondingAuthorOrganization" binding:"required"`
	WhatsappNumber                  string `form:"whatsappNumber" binding:"required,max=15"`
	City                            string `form:"city" binding:"required"`
	State                           string `form:"state"`
	Country                         string `form:"country" binding:"required"`
	AuthorType                      string `form:"authorType" binding:"required"`
	AuthorCategory                  string `form:"authorCategory" binding:"required"`
	NumberOfPages                   string `form:"numberOfPages" binding:"required"`
	AgreeToTerms                    string `form:"agreeToTerms" binding:"required,oneof=true false"`
}

// Create handles POST /submission (multipart form, file field "manuscript").
func (ctl *SubmissionController) Create(c *gin.Context) {
	file, err := c.FormFile("manuscript")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manuscript file is required"})
		return
	}
	if msg := checkUpload(file, allowedManuscriptExts); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var form createSubmissionForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data: " + err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file"})
		return
	}
	defer src.Close()

	submission, err := ctl.svc.Create(c.Request.Context(), services.CreateSubmissionInput{
		DesiredIssue:                    form.DesiredIssue,
		ManuscriptTitle:                 form.ManuscriptTitle,
		Abstract:                        form.Abstract,
		SubjectArea:                     form.SubjectArea,
		TotalAuthors:                    form.TotalAuthors,
		CorrespondingAuthorName:         form.CorrespondingAuthorName,
		CorrespondingAuthorMobile:       form.CorrespondingAuthorMobile,
		CorrespondingAuthorEmail:        form.CorrespondingAuthorEmail,
		CorrespondingAuthorDepartment:   form.CorrespondingAuthorDepartment,
		CorrespondingAuthorOrganization: form.CorrespondingAuthorOrganization,
		WhatsappNumber:                  form.WhatsappNumber,
		City:                            form.City,
		State:                           form.State,
		Country:                         form.Country,
		AuthorType:                      form.AuthorType,
		AuthorCategory:                  form.AuthorCategory,
		NumberOfPages:                   form.NumberOfPages,
		AgreeToTerms:                    form.AgreeToTerms,
	}, &services.FileUpload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Content:     src,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Submission successful!",
		"submission": submission,
		"trackingId": submission.TrackingID,
	})
}

// List handles GET /submission?page&limit&status&search.
func (ctl *SubmissionController) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := ctl.svc.FindAll(c.Request.Context(), services.ListSubmissionsOptions{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
		Search: c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get handles GET /submission/:id.
func (ctl *SubmissionController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	submission, err := ctl.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// Track handles GET /submission/track/:trackingId.
func (ctl *SubmissionController) Track(c *gin.Context) {
	submission, err := ctl.svc.FindByTrackingID(c.Request.Context(), c.Param("trackingId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

// GetForAuthor handles GET /submission/author/:id/:email. The email match is
// the ownership check; a mismatch reads the same as a missing row.
func (ctl *SubmissionController) GetForAuthor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	submission, err := ctl.svc.FindByIDAndEmail(c.Request.Context(), id, c.Param("email"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

type updateStatusRequest struct {
	Status       string  `json:"status" binding:"required"`
	AdminRemarks *string `json:"adminRemarks"`
}

// UpdateStatus handles PATCH /submission/:id/status.
func (ctl *SubmissionController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	submission, err := ctl.svc.UpdateStatus(c.Request.Context(), id, req.Status, req.AdminRemarks)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Submission status updated",
		"submission": submission,
	})
}

// Delete handles DELETE /submission/:id.
func (ctl *SubmissionController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	if err := ctl.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Submission deleted successfully"})
}
