package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"news-portal-backend/internal/domains/ad/model"
	"news-portal-backend/internal/domains/ad/repository"
	"news-portal-backend/internal/infrastructure/storage"
)

type ServiceInterface interface {
	// ListBySlots returns the creatives for the requested slots; an
	// empty request means both known slots.
	ListBySlots(ctx context.Context, slots []string) ([]model.Ad, error)

	Update(ctx context.Context, slot string, req model.UpdateAdRequest) (*model.Ad, error)
	UploadCreative(ctx context.Context, slot, filename string, data []byte, contentType string) (string, error)
}

type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type adService struct {
	repo    repository.AdRepository
	storage Uploader
}

func NewAdService(repo repository.AdRepository, storage Uploader) ServiceInterface {
	return &adService{repo: repo, storage: storage}
}

func (s *adService) ListBySlots(ctx context.Context, slots []string) ([]model.Ad, error) {
	if len(slots) == 0 {
		slots = []string{model.SlotHomeBanner, model.SlotNewsSidebar}
	}
	for _, slot := range slots {
		if !model.ValidSlot(slot) {
			return nil, model.ErrUnknownSlot
		}
	}

	return s.repo.ListBySlots(ctx, slots)
}

func (s *adService) Update(ctx context.Context, slot string, req model.UpdateAdRequest) (*model.Ad, error) {
	if !model.ValidSlot(slot) {
		return nil, model.ErrUnknownSlot
	}

	ad := &model.Ad{
		SlotName:  slot,
		UpdatedAt: time.Now(),
	}
	if req.ImageURL != "" {
		imageURL := req.ImageURL
		ad.ImageURL = &imageURL
	}
	if req.RedirectURL != "" {
		redirectURL := req.RedirectURL
		ad.RedirectURL = &redirectURL
	}

	if err := s.repo.Upsert(ctx, ad); err != nil {
		return nil, err
	}

	return ad, nil
}

// UploadCreative stores the slot image under a timestamped key and
// returns its public URL. Old creatives stay in the bucket.
func (s *adService) UploadCreative(ctx context.Context, slot, filename string, data []byte, contentType string) (string, error) {
	if !model.ValidSlot(slot) {
		return "", model.ErrUnknownSlot
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}

	key := fmt.Sprintf("%s/%s_%d%s", storage.PrefixAds, slot, time.Now().Unix(), ext)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("upload ad creative: %w", err)
	}

	return url, nil
}
