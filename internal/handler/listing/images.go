package listing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carmarket/internal/pkg/apperr"
	httputil "carmarket/internal/pkg/http"
	"carmarket/internal/service"
)

// MaxImageSize 单张图片上限
const MaxImageSize = 10 << 20

// AddImage 上传车源图片
// @Summary      上传车源图片
// @Description  通过 multipart/form-data 上传，只有车源归属人可以上传
// @Tags         车源
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "车源ID"
// @Param        file  formData  file    true  "图片文件"
// @Success      201   {object}  httputil.SuccessResponse{data=ImageInfo}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/v1/listings/{id}/images [post]
func (h *Handler) AddImage(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httputil.WriteError(c, apperr.BadRequest("image file is required"))
		return
	}
	if file.Size > MaxImageSize {
		httputil.WriteError(c, apperr.BadRequest("image exceeds %d bytes", MaxImageSize))
		return
	}

	reader, err := file.Open()
	if err != nil {
		httputil.WriteError(c, apperr.BadRequest("failed to open file"))
		return
	}
	defer reader.Close()

	contentType := file.Header.Get("Content-Type")
	img, err := h.listingService.AddImage(c.Request.Context(), c.Param("id"), ident.UserID, &service.ImageUpload{
		Filename:    file.Filename,
		ContentType: contentType,
		Size:        file.Size,
		Reader:      reader,
	})
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	httputil.WriteOK(c, http.StatusCreated, "Image uploaded successfully", toImageInfo(*img))
}

// RemoveImage 删除车源图片
// @Summary      删除车源图片
// @Tags         车源
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "车源ID"
// @Param        image_id  path      string  true  "图片ID"
// @Success      200       {object}  httputil.SuccessResponse
// @Failure      403       {object}  ErrorResponse
// @Failure      404       {object}  ErrorResponse
// @Router       /api/v1/listings/{id}/images/{image_id} [delete]
func (h *Handler) RemoveImage(c *gin.Context) {
	ident, err := httputil.CurrentIdentity(c)
	if err != nil {
		httputil.WriteError(c, err)
		return
	}

	if err := h.listingService.RemoveImage(c.Request.Context(), c.Param("id"), ident.UserID, c.Param("image_id")); err != nil {
		httputil.WriteError(c, err)
		return
	}
	httputil.WriteOK(c, http.StatusOK, "Image removed successfully", nil)
}
