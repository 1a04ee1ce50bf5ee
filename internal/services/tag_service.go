package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/nonetrello/nonetrello-api/internal/constants"
	"github.com/nonetrello/nonetrello-api/internal/models"
	"github.com/nonetrello/nonetrello-api/internal/repository"
)

var (
	ErrInvalidTag  = errors.New("tag must be between 1 and 64 characters")
	ErrTagNotFound = errors.New("tag not found")
)

// TagService provides business logic for project and card tags. It has no
// authorization rules of its own; everything is delegated to the Authority.
type TagService struct {
	tagRepo   repository.TagRepository
	authority *Authority
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo repository.TagRepository, authority *Authority) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		authority: authority,
	}
}

func normalizeTag(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" || len(tag) > constants.MaxTagLength {
		return "", ErrInvalidTag
	}
	return tag, nil
}

// AddProjectTag attaches a tag to a project; re-adding is a no-op.
func (s *TagService) AddProjectTag(actorID, projectID uint64, tag string) error {
	tag, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditProject(actorID, projectID); err != nil {
		return err
	}
	if err := s.tagRepo.AddProjectTag(projectID, tag); err != nil {
		return fmt.Errorf("failed to add project tag: %w", err)
	}
	return nil
}

// ListProjectTags lists a project's tags for a member.
func (s *TagService) ListProjectTags(actorID, projectID uint64) ([]models.ProjectTag, error) {
	if err := s.authority.RequireMember(projectID, actorID); err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.ListProjectTags(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tags: %w", err)
	}
	return tags, nil
}

// RenameProjectTag replaces a tag's text, gated on Admin.
func (s *TagService) RenameProjectTag(actorID, projectID uint64, oldTag, newTag string) error {
	newTag, err := normalizeTag(newTag)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditProject(actorID, projectID); err != nil {
		return err
	}
	if err := s.tagRepo.RenameProjectTag(projectID, oldTag, newTag); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to rename project tag: %w", err)
	}
	return nil
}

// DeleteProjectTag detaches a tag from a project, gated on Admin.
func (s *TagService) DeleteProjectTag(actorID, projectID uint64, tag string) error {
	if err := s.authority.CanEditProject(actorID, projectID); err != nil {
		return err
	}
	if err := s.tagRepo.DeleteProjectTag(projectID, tag); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to delete project tag: %w", err)
	}
	return nil
}

// AddCardTag attaches a tag to a card; re-adding is a no-op.
func (s *TagService) AddCardTag(actorID, cardID uint64, tag string) error {
	tag, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditCard(actorID, cardID); err != nil {
		return err
	}
	if err := s.tagRepo.AddCardTag(cardID, tag); err != nil {
		return fmt.Errorf("failed to add card tag: %w", err)
	}
	return nil
}

// ListCardTags lists a card's tags for a member of the owning project.
func (s *TagService) ListCardTags(actorID, cardID uint64) ([]models.CardTag, error) {
	projectID, err := s.authority.ProjectOfCard(cardID)
	if err != nil {
		return nil, err
	}
	if err := s.authority.RequireMember(projectID, actorID); err != nil {
		return nil, err
	}
	tags, err := s.tagRepo.ListCardTags(cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card tags: %w", err)
	}
	return tags, nil
}

// RenameCardTag replaces a tag's text, gated on Admin.
func (s *TagService) RenameCardTag(actorID, cardID uint64, oldTag, newTag string) error {
	newTag, err := normalizeTag(newTag)
	if err != nil {
		return err
	}
	if err := s.authority.CanEditCard(actorID, cardID); err != nil {
		return err
	}
	if err := s.tagRepo.RenameCardTag(cardID, oldTag, newTag); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to rename card tag: %w", err)
	}
	return nil
}

// DeleteCardTag detaches a tag from a card, gated on Admin.
func (s *TagService) DeleteCardTag(actorID, cardID uint64, tag string) error {
	if err := s.authority.CanEditCard(actorID, cardID); err != nil {
		return err
	}
	if err := s.tagRepo.DeleteCardTag(cardID, tag); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return fmt.Errorf("failed to delete card tag: %w", err)
	}
	return nil
}
