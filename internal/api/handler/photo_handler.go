package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

// uploadFieldName is the multipart form field carrying the image, kept for
// compatibility with existing front-end clients.
const uploadFieldName = "uploadedphoto"

// PhotoHandler exposes photo upload, browsing, comment and like endpoints.
type PhotoHandler struct {
	service ports.PhotoService
}

func NewPhotoHandler(service ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{service: service}
}

type commentRequest struct {
	Comment string `json:"comment" validate:"required"`
}

// Upload handles POST /photos/new (multipart form).
//
// @Summary      Upload a new photo
// @Tags         photos
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        uploadedphoto  formData  file  true  "Image file"
// @Success      201  {object}  domain.Photo
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /photos/new [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile(uploadFieldName)
	if err != nil {
		return domain.ErrNoFile
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	photo, err := h.service.Upload(c.Request().Context(), ports.UploadInput{
		OwnerID:      actor.ID,
		OriginalName: fileHeader.Filename,
		ContentType:  fileHeader.Header.Get("Content-Type"),
		Content:      file,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, photo)
}

// OfUser handles GET /photos/user/:id — the user's photos, newest first.
//
// @Summary      Photos of a user
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {array}   ports.PhotoView
// @Failure      404  {object}  map[string]string
// @Router       /photos/user/{id} [get]
func (h *PhotoHandler) OfUser(c echo.Context) error {
	photos, err := h.service.PhotosOfUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, photos)
}

// AddComment handles POST /photos/:photo_id/comments.
//
// @Summary      Comment on a photo
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        photo_id  path      string          true  "Photo ID"
// @Param        body      body      commentRequest  true  "Comment text"
// @Success      200  {object}  ports.PhotoView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /photos/{photo_id}/comments [post]
func (h *PhotoHandler) AddComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	view, err := h.service.AddComment(c.Request().Context(), c.Param("photo_id"), actor.ID, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// UpdateComment handles PUT /photos/:photo_id/comments/:comment_id.
//
// @Summary      Edit a comment
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        photo_id    path      string          true  "Photo ID"
// @Param        comment_id  path      string          true  "Comment ID"
// @Param        body        body      commentRequest  true  "New comment text"
// @Success      200  {object}  ports.PhotoView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /photos/{photo_id}/comments/{comment_id} [put]
func (h *PhotoHandler) UpdateComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	view, err := h.service.UpdateComment(c.Request().Context(), c.Param("photo_id"), c.Param("comment_id"), req.Comment, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// DeleteComment handles DELETE /photos/:photo_id/comments/:comment_id.
//
// @Summary      Delete a comment
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        photo_id    path      string  true  "Photo ID"
// @Param        comment_id  path      string  true  "Comment ID"
// @Success      200  {object}  ports.PhotoView
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /photos/{photo_id}/comments/{comment_id} [delete]
func (h *PhotoHandler) DeleteComment(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.DeleteComment(c.Request().Context(), c.Param("photo_id"), c.Param("comment_id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Like handles POST /photos/:id/like.
//
// @Summary      Like a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Photo ID"
// @Success      200  {object}  ports.PhotoView
// @Failure      404  {object}  map[string]string
// @Router       /photos/{id}/like [post]
func (h *PhotoHandler) Like(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.Like(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Unlike handles DELETE /photos/:id/like.
//
// @Summary      Remove a like from a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Photo ID"
// @Success      200  {object}  ports.PhotoView
// @Failure      404  {object}  map[string]string
// @Router       /photos/{id}/like [delete]
func (h *PhotoHandler) Unlike(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	view, err := h.service.Unlike(c.Request().Context(), c.Param("id"), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Delete handles DELETE /photos/:id.
//
// @Summary      Delete a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Photo ID"
// @Success      200  {object}  map[string]bool
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /photos/{id} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
