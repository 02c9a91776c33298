package service

import (
	"bytes"
	"io"
	"net/http"

	"dcim/bulk"
	"dcim/dao/model"
	"dcim/response"
	"dcim/tabular"

	"github.com/gin-gonic/gin"
)

// UploadReq is the multipart form accompanying the uploaded file.
type UploadReq struct {
	EntityType string `form:"entity_type" binding:"required"`
	SkipErrors bool   `form:"skip_errors"`
}

func RegisterUpload(g *gin.RouterGroup) {
	g.POST("/bulk-upload", BulkUpload)
}

func validUploadMode(mode string) bool {
	if mode == model.UploadModeWFD {
		return true
	}
	for _, kind := range model.AllEntityTypes {
		if mode == string(kind) {
			return true
		}
	}
	return false
}

// BulkUpload accepts a CSV or XLSX file and queues it for background
// processing. The response carries the job id; the outcome arrives by
// email.
func BulkUpload(c *gin.Context) {
	var req UploadReq
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequestError(c, err.Error())
		return
	}
	if !validUploadMode(req.EntityType) {
		response.HTTPError(c, http.StatusBadRequest,
			"unknown entity type '"+req.EntityType+"'", response.InvalidRequest)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequestError(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, err.Error(), response.NotSpecified)
		return
	}
	// Reject obviously empty uploads synchronously so the client gets an
	// immediate error instead of an email.
	if len(bytes.TrimSpace(data)) == 0 {
		response.BadRequestError(c, tabular.ErrEmptyInput.Error())
		return
	}

	user := currentUser(c)
	job := bulk.NewJob(req.EntityType, req.SkipErrors, data, user.Username, user.Email)
	go pipeline.Run(job)

	response.Accepted(c, gin.H{
		"job_id": job.ID.String(),
		"entity": req.EntityType,
	})
}
