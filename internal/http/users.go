package http

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"leaar-backend/internal/service"
	"leaar-backend/internal/storage"
)

// avatarURLTTL bounds presigned avatar read links.
const avatarURLTTL = 15 * time.Minute

func (h *Handler) currentUser(c *gin.Context) {
	user := currentUserFrom(c)
	respondOK(c, http.StatusOK, gin.H{"user": userToResponse(user)})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.serviceError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(&users[i])
	}
	respondOK(c, http.StatusOK, gin.H{"users": resp})
}

// updateProfileRequest uses pointers so "field absent" and "field present
// with a zero value" stay distinguishable.
type updateProfileRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Age    *int    `json:"age"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := currentUserFrom(c)
	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, service.ProfilePatch{
		Name:   req.Name,
		Phone:  req.Phone,
		Age:    req.Age,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "profile updated successfully",
		"user":    userToResponse(updated),
	})
}

type changePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "old password and new password are required")
		return
	}
	if req.ConfirmPassword != "" && req.NewPassword != req.ConfirmPassword {
		respondError(c, http.StatusBadRequest, "new passwords do not match")
		return
	}

	user := currentUserFrom(c)
	if err := h.users.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword); err != nil {
		h.serviceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "password changed successfully"})
}

type deleteAccountRequest struct {
	Password string `json:"password" binding:"required"`
}

func (h *Handler) deleteAccount(c *gin.Context) {
	var req deleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "password is required")
		return
	}

	user := currentUserFrom(c)
	if err := h.users.DeleteAccount(c.Request.Context(), user.ID, req.Password); err != nil {
		h.serviceError(c, err)
		return
	}

	// the account is gone; its avatar object must not linger in the bucket
	h.removeAvatarObject(c, user.Avatar)

	respondOK(c, http.StatusOK, gin.H{"message": "account deleted successfully"})
}

// removeAvatarObject deletes a stored avatar object when the location points
// into our bucket. Best effort: a failed cleanup is logged, never surfaced.
func (h *Handler) removeAvatarObject(c *gin.Context, location string) {
	if h.storage == nil || location == "" {
		return
	}
	bucket, key, ok := storage.ParseLocation(location)
	if !ok || bucket != h.bucket {
		return
	}
	if err := h.storage.DeleteObject(c.Request.Context(), bucket, key); err != nil {
		h.logger.Warnf("remove avatar object %s: %v", key, err)
	}
}

func (h *Handler) uploadAvatar(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		respondError(c, http.StatusInternalServerError, "storage service not configured")
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, http.StatusBadRequest, "avatar file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "avatar file is unreadable")
		return
	}
	defer file.Close()

	user := currentUserFrom(c)
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("%s/avatars/%s%s", strings.Trim(h.prefix, "/"), user.ID, ext)

	location, err := h.storage.UploadObject(
		c.Request.Context(),
		h.bucket,
		key,
		file,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		h.logger.Errorf("upload avatar: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to store avatar")
		return
	}

	updated, err := h.users.SetAvatar(c.Request.Context(), user.ID, location)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	// a re-upload with a different extension leaves the old object behind
	if user.Avatar != "" && user.Avatar != location {
		h.removeAvatarObject(c, user.Avatar)
	}

	respondOK(c, http.StatusOK, gin.H{
		"message": "avatar updated",
		"avatar":  location,
		"user":    userToResponse(updated),
	})
}

// avatarURL exchanges the caller's stored avatar location for a readable URL.
// Objects in our bucket are private, so reads go through a time-limited
// presigned link; anything else (an external URL set via update-profile) is
// returned as stored.
func (h *Handler) avatarURL(c *gin.Context) {
	user := currentUserFrom(c)
	if user.Avatar == "" {
		respondError(c, http.StatusNotFound, "no avatar set")
		return
	}

	bucket, key, ok := storage.ParseLocation(user.Avatar)
	if !ok {
		respondOK(c, http.StatusOK, gin.H{"url": user.Avatar})
		return
	}
	if h.storage == nil {
		respondError(c, http.StatusInternalServerError, "storage service not configured")
		return
	}

	url, err := h.storage.PresignGet(c.Request.Context(), bucket, key, avatarURLTTL)
	if err != nil {
		h.logger.Errorf("presign avatar: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to sign avatar url")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"url":       url,
		"expiresIn": int64(avatarURLTTL.Seconds()),
	})
}

type mediaObjectResponse struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"lastModified,omitempty"`
}

// listMedia is the admin inventory of stored media objects.
func (h *Handler) listMedia(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		respondError(c, http.StatusInternalServerError, "storage service not configured")
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.prefix)
	if err != nil {
		h.logger.Errorf("list media: %v", err)
		respondError(c, http.StatusInternalServerError, "failed to list media")
		return
	}

	resp := make([]mediaObjectResponse, len(objects))
	for i, obj := range objects {
		resp[i] = mediaObjectResponse{Key: obj.Key, Size: obj.Size}
		if obj.LastModified != nil {
			v := obj.LastModified.Format(time.RFC3339)
			resp[i].LastModified = &v
		}
	}
	respondOK(c, http.StatusOK, gin.H{"objects": resp})
}
