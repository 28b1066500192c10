package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fileshare-io/fileshare-api/http/controller/dto"
	"github.com/fileshare-io/fileshare-api/service"
	"github.com/fileshare-io/fileshare-api/utils"
)

func (ctrl *Controller) UploadFile(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized. Please sign in.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] No file in form data: %v", err)
		utils.JSON400(c, "No file provided")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to open uploaded file")
		utils.JSON500(c, "Failed to read file")
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Uploading '%s' (%s, %s) for user %s",
		fileHeader.Filename, contentType, utils.FormatBytes(fileHeader.Size), userID)

	result, err := ctrl.Files.Upload(ctx, userID, fileHeader.Filename, fileHeader.Size, contentType, src)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid upload from user %s: %v", userID, err)
			utils.JSON400Details(c, "Invalid file data", vErr.Details)
		case errors.Is(err, service.ErrUnsupportedType):
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Disallowed type '%s' from user %s", contentType, userID)
			utils.JSON400(c, "File type not allowed. Allowed: PDF, DOCX, images, audio, video, ZIP")
		case errors.Is(err, service.ErrQuotaExceeded):
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Quota exceeded for user %s", userID)
			utils.JSON400(c, "Storage limit exceeded. Maximum 3GB per user.")
		default:
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Upload failed for user %s", userID)
			utils.JSON500(c, "Failed to upload file")
		}
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] Uploaded '%s' as %s for user %s", result.FileName, result.ID, userID)
	utils.JSON201(c, dto.UploadResponseDTO{
		ID:       result.ID,
		ShareURL: result.ShareURL,
		FileName: result.FileName,
		Message:  "File uploaded successfully",
	})
}

// GetFile is public: link-based access, no ownership check.
func (ctrl *Controller) GetFile(c *gin.Context) {
	ctx := c.Request.Context()

	fileIDStr := c.Query("id")
	if fileIDStr == "" {
		utils.JSON400(c, "File ID is required")
		return
	}

	fileID, err := uuid.Parse(fileIDStr)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file id '%s'", fileIDStr)
		utils.JSON400(c, "Invalid file ID format")
		return
	}

	info, err := ctrl.Files.Get(ctx, fileID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			utils.JSON404(c, "File not found")
			return
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to get file %s", fileID)
		utils.JSON500(c, "Failed to get file")
		return
	}

	utils.JSON200(c, dto.FileResponseDTO{
		ID:           info.File.ID,
		FileName:     info.File.FileName,
		FileSize:     info.File.FileSize,
		MimeType:     info.File.MimeType,
		StorageURL:   info.File.StorageURL,
		ResourceKind: info.File.ResourceKind,
		CreatedAt:    info.File.CreatedAt,
		DownloadURL:  info.DownloadURL,
	})
}

func (ctrl *Controller) ListFiles(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized. Please sign in.")
		return
	}

	typeFilter := c.DefaultQuery("type", "all")

	files, err := ctrl.Files.List(ctx, userID, typeFilter)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to list files for user %s", userID)
		utils.JSON500(c, "Failed to get files")
		return
	}

	utils.JSON200(c, dto.ListFilesResponseDTO{
		Files: files,
		Count: len(files),
	})
}

func (ctrl *Controller) DeleteFile(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] user_id not found in context")
		utils.JSON401(c, "Unauthorized. Please sign in.")
		return
	}

	fileIDStr := c.Query("id")
	if fileIDStr == "" {
		utils.JSON400(c, "File ID is required")
		return
	}

	fileID, err := uuid.Parse(fileIDStr)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] Invalid file id '%s'", fileIDStr)
		utils.JSON400(c, "Invalid file ID format")
		return
	}

	fileName, err := ctrl.Files.Delete(ctx, userID, fileID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			utils.JSON404(c, "File not found")
		case errors.Is(err, service.ErrForbidden):
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[File] User %s attempted to delete file %s they don't own", userID, fileID)
			utils.JSON403(c, "Forbidden. You can only delete your own files.")
		default:
			ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[File] Failed to delete file %s", fileID)
			utils.JSON500(c, "Failed to delete file")
		}
		return
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[File] User %s deleted file %s ('%s')", userID, fileID, fileName)
	utils.JSON200(c, dto.DeleteResponseDTO{
		Message:  "File deleted successfully",
		FileName: fileName,
	})
}
