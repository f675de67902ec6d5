package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"datachat/internal/app"
	"datachat/internal/transport/http/response"
)

type DatasetHandler struct {
	datasetService *app.DatasetService
	maxUploadBytes int64
}

func NewDatasetHandler(datasetService *app.DatasetService, maxUploadMB int) *DatasetHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 20
	}
	return &DatasetHandler{
		datasetService: datasetService,
		maxUploadBytes: int64(maxUploadMB) << 20,
	}
}

// Upload accepts a multipart form with "file" (xlsx/xls/csv).
func (h *DatasetHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file upload")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "open uploaded file failed")
		return
	}
	defer src.Close()

	result, err := h.datasetService.Upload(c.Request.Context(), app.UploadInput{
		FileName: fileHeader.Filename,
		Reader:   src,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUnsupportedFile):
			response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFile, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "process uploaded file failed")
		}
		return
	}

	response.OK(c, result)
}

func (h *DatasetHandler) List(c *gin.Context) {
	datasets, err := h.datasetService.List()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list datasets failed")
		return
	}
	response.OK(c, datasets)
}
