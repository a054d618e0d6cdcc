package service

import (
	"context"
	"encoding/json"
	"fmt"

	"studybridge/internal/config"
	"studybridge/internal/domain"
	"studybridge/internal/dto"
	"studybridge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PassageCachePrefix namespaces cached global passages in redis.
const PassageCachePrefix = "studybridge:passage:"

// ContentService resolves learning content for a topic, generating it through
// the text backend when no usable passage exists.
type ContentService interface {
	GetOrCreateContent(ctx context.Context, topic, userID string) (*dto.ContentResponse, error)
	ListTopics(ctx context.Context) ([]dto.TopicResponse, error)
}

// contentService implements ContentService
type contentService struct {
	contentRepo domain.ContentRepository
	userRepo    domain.UserRepository
	topicRepo   domain.TopicRepository
	generator   domain.TextGenerator
	cache       domain.Cache
	cfg         *config.Config
	sfGroup     singleflight.Group
}

// NewContentService creates a new instance of contentService
func NewContentService(
	contentRepo domain.ContentRepository,
	userRepo domain.UserRepository,
	topicRepo domain.TopicRepository,
	generator domain.TextGenerator,
	cache domain.Cache,
	cfg *config.Config,
) ContentService {
	return &contentService{
		contentRepo: contentRepo,
		userRepo:    userRepo,
		topicRepo:   topicRepo,
		generator:   generator,
		cache:       cache,
		cfg:         cfg,
	}
}

// GetOrCreateContent implements ContentService.
//
// Global topics resolve to the shared latest passage, read through the cache.
// Personalized topics resolve to the caller's own passage; once the caller
// has an institution on their profile, every request regenerates the passage
// against that institution. In all cases the caller's access record is
// upserted to point at the returned passage.
func (s *contentService) GetOrCreateContent(ctx context.Context, topic, userID string) (*dto.ContentResponse, error) {
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	if userID == "" {
		return nil, domain.NewInvalidInputError("user ID is required")
	}

	personalized := domain.IsPersonalizedTopic(topic)
	institution := ""
	ownerID := ""
	if personalized {
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return nil, domain.NewInternalError("Failed to load user profile", err)
		}
		if user == nil {
			return nil, domain.NewNotFoundError(fmt.Sprintf("User not found: %s", userID))
		}
		institution = user.Institution
		ownerID = userID
	}

	if !personalized {
		if cached := s.getCachedPassage(ctx, topic); cached != nil {
			if err := s.contentRepo.UpsertAccess(ctx, userID, topic, cached.ID); err != nil {
				return nil, domain.NewInternalError("Failed to record content access", err)
			}
			return cached, nil
		}
	}

	existing, err := s.contentRepo.GetLatestPassage(ctx, topic, ownerID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up passage", err)
	}

	// An existing passage is reused unless the topic is personalized and the
	// caller now has an institution, in which case it is regenerated against
	// that institution and superseded.
	if existing != nil && (!personalized || institution == "") {
		if err := s.contentRepo.UpsertAccess(ctx, userID, topic, existing.ID); err != nil {
			return nil, domain.NewInternalError("Failed to record content access", err)
		}
		resp := toContentResponse(existing, personalized)
		if !personalized {
			s.putCachedPassage(ctx, topic, resp)
		}
		return resp, nil
	}

	passage, err := s.generatePassage(ctx, topic, ownerID, institution)
	if err != nil {
		return nil, err
	}

	if err := s.contentRepo.UpsertAccess(ctx, userID, topic, passage.ID); err != nil {
		return nil, domain.NewInternalError("Failed to record content access", err)
	}

	resp := toContentResponse(passage, personalized)
	if !personalized {
		s.putCachedPassage(ctx, topic, resp)
	}
	return resp, nil
}

// generatePassage calls the backend and persists the result. Concurrent
// requests for the same (topic, owner) collapse onto one backend call.
func (s *contentService) generatePassage(ctx context.Context, topic, ownerID, institution string) (*domain.ContentPassage, error) {
	sfKey := topic + "|" + ownerID
	res, err, _ := s.sfGroup.Do(sfKey, func() (interface{}, error) {
		raw, genErr := s.generator.GenerateText(ctx, buildContentPrompt(topic, institution))
		if genErr != nil {
			if domain.IsQuotaSignal(genErr) {
				return nil, domain.NewQuotaExceededError(genErr)
			}
			return nil, domain.NewLLMServiceError(genErr)
		}

		parsed := parsePassageResponse(raw)
		if parsed.Title == "" {
			parsed.Title = fmt.Sprintf("Learning Guide: %s", topic)
		}

		passage := domain.NewContentPassage(topic, ownerID, parsed.Title, parsed.Content, parsed.Difficulty)
		if validateErr := passage.Validate(); validateErr != nil {
			return nil, validateErr
		}
		if saveErr := s.contentRepo.SavePassage(ctx, passage); saveErr != nil {
			return nil, domain.NewInternalError("Failed to save passage", saveErr)
		}

		logger.Get().Info("Generated new content passage",
			zap.String("topic", topic),
			zap.String("passage_id", passage.ID),
			zap.Bool("personalized", ownerID != ""),
		)
		return passage, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.ContentPassage), nil
}

func (s *contentService) getCachedPassage(ctx context.Context, topic string) *dto.ContentResponse {
	if s.cache == nil {
		return nil
	}
	val, err := s.cache.Get(ctx, PassageCachePrefix+topic)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Passage cache read failed", zap.String("topic", topic), zap.Error(err))
		}
		return nil
	}
	var resp dto.ContentResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		logger.Get().Warn("Failed to decode cached passage", zap.String("topic", topic), zap.Error(err))
		return nil
	}
	return &resp
}

func (s *contentService) putCachedPassage(ctx context.Context, topic string, resp *dto.ContentResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, PassageCachePrefix+topic, string(data), s.cfg.Cache.PassageTTL); err != nil {
		logger.Get().Warn("Passage cache write failed", zap.String("topic", topic), zap.Error(err))
	}
}

// ListTopics implements ContentService
func (s *contentService) ListTopics(ctx context.Context) ([]dto.TopicResponse, error) {
	topics, err := s.topicRepo.GetAllTopics(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list topics", err)
	}

	responses := make([]dto.TopicResponse, 0, len(topics))
	for _, t := range topics {
		responses = append(responses, dto.TopicResponse{
			ID:           t.ID,
			Name:         t.Name,
			Description:  t.Description,
			Personalized: domain.IsPersonalizedTopic(t.Name),
		})
	}
	return responses, nil
}

func toContentResponse(p *domain.ContentPassage, personalized bool) *dto.ContentResponse {
	return &dto.ContentResponse{
		ID:           p.ID,
		Topic:        p.Topic,
		Title:        p.Title,
		Content:      p.Body,
		Difficulty:   p.Difficulty,
		Personalized: personalized,
		CreatedAt:    p.CreatedAt,
	}
}
