package v1

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskflow/internal/services"
)

const defaultContentType = "application/octet-stream"

func (h *handlerImpl) HandleUploadAttachment(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to read multipart file")
		abort(c, newBadRequestError(errFileRequired.Error()))
		return
	}
	if header.Size > h.maxUploadSize {
		abort(c, newAPIError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds %d bytes", h.maxUploadSize)))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to open multipart file")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	defer file.Close()

	attachment, err := h.attachments.Upload(c, callerFrom(c), services.UploadParams{
		TaskID:      c.Param("taskId"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		h.fail(c, err, "failed to upload attachment")
		return
	}
	c.JSON(http.StatusCreated, newAttachmentView(attachment))
}

func (h *handlerImpl) HandleGetTaskAttachments(c *gin.Context) {
	attachments, err := h.attachments.ListAttachments(c, callerFrom(c), c.Param("taskId"))
	if err != nil {
		h.fail(c, err, "failed to list attachments")
		return
	}

	views := make([]attachmentView, len(attachments))
	for i := range attachments {
		views[i] = newAttachmentView(&attachments[i])
	}
	c.JSON(http.StatusOK, views)
}

// HandleDownloadAttachment streams the stored file. Any authenticated
// caller may download an attachment by id.
func (h *handlerImpl) HandleDownloadAttachment(c *gin.Context) {
	attachment, content, err := h.attachments.Open(c, c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to open attachment")
		return
	}
	defer content.Close()

	contentType := defaultContentType
	if attachment.ContentType != nil && *attachment.ContentType != "" {
		contentType = *attachment.ContentType
	}

	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(attachment.FileName))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, content); err != nil {
		h.logger.Error().
			Err(err).
			Str("attachment_id", attachment.ID).
			Msg("failed to stream attachment")
	}
}

func (h *handlerImpl) HandleDeleteAttachment(c *gin.Context) {
	err := h.attachments.DeleteAttachment(c, callerFrom(c), c.Param("id"))
	if err != nil {
		h.fail(c, err, "failed to delete attachment")
		return
	}
	c.Status(http.StatusNoContent)
}
