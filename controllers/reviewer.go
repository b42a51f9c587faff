package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/RohitAgrawal7/Journal-Backend/services"
	"github.com/gin-gonic/gin"
)

var allowedCVExts = map[string]bool{
	".doc":  true,
	".docx": true,
	".pdf":  true,
	".rtf":  true,
}

type ReviewerController struct {
	svc *services.ReviewerService
}

func NewReviewerController(svc *services.ReviewerService) *ReviewerController {
	return &ReviewerController{svc: svc}
}

type createReviewerForm struct {
	Salutation                string `form:"salutation" binding:"required"`
	FullName                  string `form:"fullName" binding:"required"`
	Gender                    string `form:"gender" binding:"required"`
	CurrentEmployment         string `form:"currentEmployment" binding:"required"`
	TotalExperience           string `form:"totalExperience" binding:"required"`
	EducationalQualifications string `form:"educationalQualifications" binding:"required"`
	InstitutionalEmail        string `form:"institutionalEmail" binding:"required,email"`
	PersonalEmail             string `form:"personalEmail" binding:"required,email"`
	MobileNo                  string `form:"mobileNo" binding:"required,max=15"`
	WhatsappNo                string `form:"whatsappNo" binding:"required,max=15"`
	City                      string `form:"city" binding:"required"`
	Country                   string `form:"country" binding:"required"`
	InternationalPublications string `form:"internationalPublications" binding:"required"`
	HowFoundUs                string `form:"howFoundUs" binding:"required"`
	FirstReferenceName        string `form:"firstReferenceName" binding:"required"`
	FirstReferenceEmail       string `form:"firstReferenceEmail" binding:"required,email"`
	FirstReferenceOrg         string `form:"firstReferenceOrg" binding:"required"`
	FirstReferenceMobile      string `form:"firstReferenceMobile" binding:"required,max=15"`
	SecondReferenceName       string `form:"secondReferenceName" binding:"required"`
	SecondReferenceEmail      string `form:"secondReferenceEmail" binding:"required,email"`
	SecondReferenceOrg        string `form:"secondReferenceOrg" binding:"required"`
	SecondReferenceMobile     string `form:"secondReferenceMobile" binding:"required,max=15"`
	AgreeToTerms              string `form:"agreeToTerms" binding:"required,oneof=true false"`
}

// parseResearchAreas accepts either repeated researchAreas form values or a
// single JSON-encoded array, which is how the frontend serializes the field.
func parseResearchAreas(c *gin.Context) []string {
	values := c.PostFormArray("researchAreas")
	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			return decoded
		}
	}
	return values
}

// Create handles POST /reviewer (multipart form, file field "cv").
func (ctl *ReviewerController) Create(c *gin.Context) {
	cv, err := c.FormFile("cv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CV is required"})
		return
	}
	if msg := checkUpload(cv, allowedCVExts); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var form createReviewerForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data: " + err.Error()})
		return
	}

	src, err := cv.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file"})
		return
	}
	defer src.Close()

	application, err := ctl.svc.Create(c.Request.Context(), services.CreateReviewerApplicationInput{
		Salutation:                form.Salutation,
		FullName:                  form.FullName,
		Gender:                    form.Gender,
		CurrentEmployment:         form.CurrentEmployment,
		TotalExperience:           form.TotalExperience,
		EducationalQualifications: form.EducationalQualifications,
		ResearchAreas:             parseResearchAreas(c),
		InstitutionalEmail:        form.InstitutionalEmail,
		PersonalEmail:             form.PersonalEmail,
		MobileNo:                  form.MobileNo,
		WhatsappNo:                form.WhatsappNo,
		City:                      form.City,
		Country:                   form.Country,
		InternationalPublications: form.InternationalPublications,
		HowFoundUs:                form.HowFoundUs,
		FirstReferenceName:        form.FirstReferenceName,
		FirstReferenceEmail:       form.FirstReferenceEmail,
		FirstReferenceOrg:         form.FirstReferenceOrg,
		FirstReferenceMobile:      form.FirstReferenceMobile,
		SecondReferenceName:       form.SecondReferenceName,
		SecondReferenceEmail:      form.SecondReferenceEmail,
		SecondReferenceOrg:        form.SecondReferenceOrg,
		SecondReferenceMobile:     form.SecondReferenceMobile,
		AgreeToTerms:              form.AgreeToTerms,
	}, &services.FileUpload{
		Filename:    cv.Filename,
		ContentType: cv.Header.Get("Content-Type"),
		Size:        cv.Size,
		Content:     src,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application successful!",
		"application": application,
	})
}

// List handles GET /reviewer.
func (ctl *ReviewerController) List(c *gin.Context) {
	applications, err := ctl.svc.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}

// Get handles GET /reviewer/:id.
func (ctl *ReviewerController) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application id"})
		return
	}

	application, err := ctl.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}
