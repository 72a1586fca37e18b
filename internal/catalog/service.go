package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/party-booking-backend/internal/pkg/storage"
)

const (
	thumbnailMaxWidth  = 400
	thumbnailMaxHeight = 400
)

type Service interface {
	GetActivePackage(ctx context.Context, id string) (*Package, error)
	ListPackages(ctx context.Context, filter Filter) ([]*Package, error)
	ListAddons(ctx context.Context, filter Filter) ([]*Addon, error)

	// ResolveAddons returns the active add-ons for ids in request order.
	// Unknown or inactive ids are reported together in the error details.
	ResolveAddons(ctx context.Context, ids []string) ([]Addon, error)

	UploadPackageImage(ctx context.Context, packageID string, content io.Reader) (*Package, error)
	OpenPackageImage(ctx context.Context, packageID string, thumbnail bool) (io.ReadCloser, string, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) GetActivePackage(ctx context.Context, id string) (*Package, error) {
	if !isUUID(id) {
		return nil, ErrPackageNotFound
	}
	p, err := s.repo.GetPackageByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, ErrPackageNotFound
	}
	return p, nil
}

func (s *service) ListPackages(ctx context.Context, filter Filter) ([]*Package, error) {
	return s.repo.ListPackages(ctx, filter)
}

func (s *service) ListAddons(ctx context.Context, filter Filter) ([]*Addon, error) {
	return s.repo.ListAddons(ctx, filter)
}

func (s *service) ResolveAddons(ctx context.Context, ids []string) ([]Addon, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return []Addon{}, nil
	}

	// Ids that cannot be UUIDs are missing by definition and never reach the query.
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}

	var found []*Addon
	if len(valid) > 0 {
		var err error
		if found, err = s.repo.GetAddonsByIDs(ctx, valid); err != nil {
			return nil, err
		}
	}

	byID := make(map[string]*Addon, len(found))
	for _, a := range found {
		if a.IsActive {
			byID[a.ID] = a
		}
	}

	addons := make([]Addon, 0, len(ids))
	var missing []string
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		addons = append(addons, *a)
	}

	if len(missing) > 0 {
		return nil, apperror.WithDetails(ErrAddonNotFound, "", map[string]any{"missing_ids": missing})
	}
	return addons, nil
}

func (s *service) UploadPackageImage(ctx context.Context, packageID string, content io.Reader) (*Package, error) {
	if !isUUID(packageID) {
		return nil, ErrPackageNotFound
	}
	p, err := s.repo.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("failed to read image content: %w", err)
	}

	format, ok := storage.DetectImageFormat(raw)
	if !ok {
		return nil, ErrInvalidImage
	}

	thumb, err := s.imgProc.GenerateThumbnail(bytes.NewReader(raw), thumbnailMaxWidth, thumbnailMaxHeight)
	if err != nil {
		return nil, apperror.Wrap(err, ErrInvalidImage.Code, ErrInvalidImage.Message)
	}

	// Sharding path: packages/ab/UUID.ext
	fileID := uuid.New().String()
	imagePath := fmt.Sprintf("packages/%s/%s%s", fileID[:2], fileID, format.Extension)
	thumbPath := fmt.Sprintf("packages/%s/%s_thumb.jpg", fileID[:2], fileID)

	if err := s.storage.Save(ctx, imagePath, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to save package image: %w", err)
	}
	if err := s.storage.Save(ctx, thumbPath, thumb); err != nil {
		_ = s.storage.Delete(ctx, imagePath)
		return nil, fmt.Errorf("failed to save package thumbnail: %w", err)
	}

	if err := s.repo.UpdatePackageImage(ctx, p.ID, imagePath, thumbPath); err != nil {
		// Cleanup storage if db fails
		_ = s.storage.Delete(ctx, imagePath)
		_ = s.storage.Delete(ctx, thumbPath)
		return nil, err
	}

	if p.ImagePath != nil {
		if err := s.storage.Delete(ctx, *p.ImagePath); err != nil {
			slog.WarnContext(ctx, "failed to remove previous package image",
				slog.String("package_id", p.ID), slog.String("error", err.Error()))
		}
	}
	if p.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *p.ThumbnailPath)
	}

	p.ImagePath = &imagePath
	p.ThumbnailPath = &thumbPath
	return p, nil
}

// OpenPackageImage streams the stored image (or its thumbnail) for an active package.
func (s *service) OpenPackageImage(ctx context.Context, packageID string, thumbnail bool) (io.ReadCloser, string, error) {
	p, err := s.GetActivePackage(ctx, packageID)
	if err != nil {
		return nil, "", err
	}

	path := p.ImagePath
	if thumbnail {
		path = p.ThumbnailPath
	}
	if path == nil {
		return nil, "", ErrImageNotFound
	}

	rc, err := s.storage.Get(ctx, *path)
	if err != nil {
		return nil, "", apperror.Wrap(err, ErrImageNotFound.Code, ErrImageNotFound.Message)
	}
	return rc, storage.ContentTypeForPath(*path), nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
