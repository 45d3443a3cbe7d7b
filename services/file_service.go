package services

import (
	"context"
	"path"
	"strings"

	"ccaportal/configs/configslog"
	"ccaportal/models"
	"ccaportal/pkg/apperrors"
	"ccaportal/pkg/tokens"
	"ccaportal/repositories"

	"github.com/google/uuid"
)

// RegisteredUpload is handed back to the uploader: the opaque token goes
// into the file item's answer on submit.
type RegisteredUpload struct {
	Token string `json:"token"`
	Name  string `json:"name"`
}

// IFileService registers uploaded-file metadata and issues upload tokens.
// Byte transfer and storage of the content itself live outside this
// service.
type IFileService interface {
	RegisterUpload(ctx context.Context, uploaderID uint, originalName string) (*RegisteredUpload, error)
	FetchFile(ctx context.Context, fileID uint) (*models.File, error)
}

// FileService implements IFileService.
type FileService struct {
	repo   repositories.IFileRepository
	signer *tokens.Signer
}

func NewFileService(signer *tokens.Signer) IFileService {
	return &FileService{repo: repositories.NewFileRepository(), signer: signer}
}

// RegisterUpload stores the record under a collision-free canonical name
// that preserves the original extension, then signs a token referencing it.
func (s *FileService) RegisterUpload(ctx context.Context, uploaderID uint, originalName string) (*RegisteredUpload, error) {
	ext := strings.ToLower(path.Ext(originalName))
	if ext == "" {
		return nil, apperrors.NewValidation("uploaded file has no extension")
	}

	file := &models.File{
		Name:         uuid.NewString() + ext,
		OriginalName: originalName,
		UploaderID:   uploaderID,
	}
	if err := s.repo.Create(ctx, file); err != nil {
		configslog.SLog.Errorf("file registration failed: %v", err)
		return nil, err
	}

	token, err := s.signer.SignUpload(file.ID)
	if err != nil {
		configslog.SLog.Errorf("upload token signing failed for file %d: %v", file.ID, err)
		return nil, err
	}
	return &RegisteredUpload{Token: token, Name: file.Name}, nil
}

func (s *FileService) FetchFile(ctx context.Context, fileID uint) (*models.File, error) {
	file, err := s.repo.FindByID(ctx, fileID)
	if err != nil {
		return nil, apperrors.NewValidation("file has not been uploaded")
	}
	return file, nil
}

var _ IFileService = (*FileService)(nil)
