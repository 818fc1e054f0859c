package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"dayflow/internal/config"
	"dayflow/internal/dto"
	"dayflow/internal/model"
	"dayflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Accepted profile picture extensions.
var allowedPictureExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
}

type ProfileService interface {
	// Get returns the user and their profile; the profile is nil until the
	// first edit.
	Get(ctx context.Context, userID uuid.UUID) (*model.User, *model.EmployeeProfile, error)
	// Update creates the profile lazily on first edit.
	Update(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.EmployeeProfile, error)
	// SavePicture validates and stores an uploaded profile picture, then
	// records its path on the profile.
	SavePicture(ctx context.Context, c *gin.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	cfg      *config.Config
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, cfg *config.Config) ProfileService {
	return &profileService{profiles: profiles, users: users, cfg: cfg}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.User, *model.EmployeeProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, ErrNotFound
	}
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, profile, nil
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*model.EmployeeProfile, error) {
	var joinDate *time.Time
	if req.JoinDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.JoinDate, time.UTC)
		if err != nil {
			return nil, &ValidationError{Violations: []string{"Join date must be a valid date."}}
		}
		joinDate = &d
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// First edit creates the profile row.
		profile = &model.EmployeeProfile{UserID: userID}
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Phone = req.Phone
	profile.Address = req.Address
	profile.City = req.City
	profile.State = req.State
	profile.Department = req.Department
	profile.Designation = req.Designation
	if joinDate != nil {
		profile.JoinDate = joinDate
	}

	if profile.ID == uuid.Nil {
		err = s.profiles.Create(ctx, profile)
	} else {
		err = s.profiles.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) SavePicture(ctx context.Context, c *gin.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedPictureExts[ext] {
		return "", &ValidationError{Violations: []string{"Profile picture must be a jpg, jpeg, png or gif file."}}
	}
	if file.Size > s.cfg.MaxUploadBytes {
		return "", &ValidationError{Violations: []string{"Profile picture must be 5 MB or smaller."}}
	}

	name := fmt.Sprintf("profile_%s_%d%s", userID, time.Now().Unix(), ext)
	dest := filepath.Join(s.cfg.UploadDir, name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", err
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		profile = &model.EmployeeProfile{UserID: userID, PicturePath: name}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return "", err
		}
		return name, nil
	}

	profile.PicturePath = name
	if err := s.profiles.Update(ctx, profile); err != nil {
		return "", err
	}
	return name, nil
}
