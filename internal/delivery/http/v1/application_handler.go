package v1

import (
	"mime"
	"net/http"
	"strconv"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"
	"jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes. Resume download and
// view are mounted on public; the rest need an authenticated caller.
// applyLimiter may be nil.
func NewApplicationHandler(public, protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase, applyLimiter gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/applications")
	{
		apply := []gin.HandlerFunc{handler.ApplyToJob}
		if applyLimiter != nil {
			apply = append([]gin.HandlerFunc{applyLimiter}, apply...)
		}
		applications.POST("/apply", apply...)
		applications.GET("/my-applications", handler.GetMyApplications)
		applications.GET("/check/:job_id", handler.CheckApplicationStatus)
	}

	resumes := public.Group("/applications")
	{
		resumes.GET("/download-resume/:resume_id", handler.DownloadResume)
		resumes.GET("/view-resume/:resume_id", handler.ViewResumeDetails)
	}
}

// ApplyRequest is the request payload for applying to a job
type ApplyRequest struct {
	JobID       int64   `json:"job_id" binding:"required,gt=0"`
	ResumeID    int64   `json:"resume_id" binding:"required,gt=0"`
	CoverLetter *string `json:"cover_letter" binding:"omitempty,max=10000,no_null_bytes"`
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Submit an application for a job with one of the caller's resumes
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Application data"
// @Success      200   {object}  response.Response{data=domain.ApplicationSummary}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      429   {object}  response.Response
// @Router       /applications/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	summary, err := h.applicationUC.ApplyToJob(c.Request.Context(), domain.ApplyInput{
		UserID:      userID,
		JobID:       req.JobID,
		ResumeID:    req.ResumeID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application submitted successfully", summary)
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Description  List the caller's applications, newest first
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ApplicationSummary}
// @Failure      401  {object}  response.Response
// @Router       /applications/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	applications, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// CheckApplicationStatus godoc
// @Summary      Check application status
// @Description  Report whether the caller already applied to a job
// @Tags         applications
// @Produce      json
// @Param        job_id  path      int  true  "Job ID"
// @Success      200     {object}  response.Response{data=domain.ApplicationStatus}
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Router       /applications/check/{job_id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) CheckApplicationStatus(c *gin.Context) {
	userID := c.GetInt64(string(domain.KeyUserID))

	jobID, err := strconv.ParseInt(c.Param("job_id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	status, err := h.applicationUC.CheckApplicationStatus(c.Request.Context(), userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status retrieved", status)
}

// DownloadResume godoc
// @Summary      Download a resume
// @Description  Stream the stored resume file as an attachment
// @Tags         applications
// @Produce      octet-stream
// @Param        resume_id  path      int  true  "Resume ID"
// @Success      200        {file}    binary
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /applications/download-resume/{resume_id} [get]
func (h *ApplicationHandler) DownloadResume(c *gin.Context) {
	resumeID, err := strconv.ParseInt(c.Param("resume_id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid resume ID"))
		return
	}

	file, err := h.applicationUC.DownloadResume(c.Request.Context(), resumeID)
	if err != nil {
		c.Error(err)
		return
	}
	defer func() {
		if cerr := file.Content.Close(); cerr != nil {
			logger.Log.Warnw("Failed to close resume file", "resume_id", resumeID, "error", cerr)
		}
	}()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename})
	if disposition == "" {
		disposition = "attachment"
	}

	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, file.Content, map[string]string{
		"Content-Disposition": disposition,
	})
}

// ViewResumeDetails godoc
// @Summary      View resume details
// @Description  Resume metadata, owner, extracted skills and keywords and a raw text preview
// @Tags         applications
// @Produce      json
// @Param        resume_id  path      int  true  "Resume ID"
// @Success      200        {object}  response.Response{data=domain.ResumeDetail}
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /applications/view-resume/{resume_id} [get]
func (h *ApplicationHandler) ViewResumeDetails(c *gin.Context) {
	resumeID, err := strconv.ParseInt(c.Param("resume_id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid resume ID"))
		return
	}

	detail, err := h.applicationUC.ViewResumeDetails(c.Request.Context(), resumeID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume details retrieved", detail)
}
