package handler

import (
	"net/http"

	"dayflow/internal/apierror"
	"dayflow/internal/dto"
	"dayflow/internal/middleware"
	"dayflow/internal/model"
	"dayflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct{ svc service.ProfileService }

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	user, profile, err := h.svc.Get(c.Request.Context(), ident.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"csrf_token": middleware.CSRFToken(c),
		"profile":    profileToDTO(user, profile),
	})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if _, err := h.svc.Update(c.Request.Context(), ident.UserID, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!"})
}

// UploadPicture accepts a multipart profile picture.
func (h *ProfileHandler) UploadPicture(c *gin.Context) {
	ident := middleware.GetIdentity(c)
	file, err := c.FormFile("profile_picture")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Profile picture file is required."))
		return
	}
	name, err := h.svc.SavePicture(c.Request.Context(), c, ident.UserID, file)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile picture updated successfully!",
		"picture": name,
	})
}

func profileToDTO(user *model.User, p *model.EmployeeProfile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		EmployeeCode: user.EmployeeCode,
		Email:        user.Email,
	}
	if p == nil {
		return resp
	}
	resp.FirstName = p.FirstName
	resp.LastName = p.LastName
	resp.Phone = p.Phone
	resp.Address = p.Address
	resp.City = p.City
	resp.State = p.State
	resp.Department = p.Department
	resp.Designation = p.Designation
	resp.PicturePath = p.PicturePath
	if p.JoinDate != nil {
		resp.JoinDate = p.JoinDate.Format("2006-01-02")
	}
	return resp
}
