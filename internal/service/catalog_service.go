package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AlzProject/backend/internal/config"
	"github.com/AlzProject/backend/internal/model"
	"github.com/AlzProject/backend/internal/repository"
)

// CatalogService manages the test/section/question/option catalog the
// grading engine reads from. Test policies are cached in Redis with a
// database fallback, so the hot grading path rarely touches the tests
// table.
type CatalogService struct {
	testRepo     *repository.TestRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	testRepo *repository.TestRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "catalog_service").Logger(),
	}
}

// TestPolicy resolves a test's grading policy, preferring the Redis
// cache and self-healing it on a miss.
func (s *CatalogService) TestPolicy(ctx context.Context, testID uuid.UUID) (model.TestPolicy, error) {
	key := config.CacheKey.TestPolicyKey(testID.String())

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var policy model.TestPolicy
		if jsonErr := json.Unmarshal([]byte(raw), &policy); jsonErr == nil {
			return policy, nil
		}
		// Corrupted entry: fall through to the database and rewrite it.
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Policy cache read failed, falling back to database")
	}

	test, err := s.testRepo.GetByID(ctx, testID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.TestPolicy{}, ErrTestNotFound
		}
		return model.TestPolicy{}, fmt.Errorf("get test: %w", err)
	}

	policy := test.Policy()
	if raw, err := json.Marshal(policy); err == nil {
		if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Policy cache write failed")
		}
	}
	return policy, nil
}

// TestPaper assembles the participant-facing view of a test (answer
// keys stripped), preferring the Redis cache and self-healing it on a
// miss. Catalog writes invalidate the entry.
func (s *CatalogService) TestPaper(ctx context.Context, testID uuid.UUID) (*model.TestPaper, error) {
	key := config.CacheKey.TestPaperKey(testID.String())

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var paper model.TestPaper
		if jsonErr := json.Unmarshal([]byte(raw), &paper); jsonErr == nil {
			return &paper, nil
		}
		// Corrupted entry: fall through to the database and rewrite it.
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Paper cache read failed, falling back to database")
	}

	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	sections, err := s.testRepo.ListSectionsByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}

	questions := make(map[uuid.UUID][]model.Question, len(sections))
	options := make(map[uuid.UUID][]model.Option)
	for _, section := range sections {
		qs, err := s.questionRepo.ListBySection(ctx, section.ID)
		if err != nil {
			return nil, fmt.Errorf("list questions: %w", err)
		}
		questions[section.ID] = qs
		for _, q := range qs {
			opts, err := s.questionRepo.ListOptionsByQuestion(ctx, q.ID)
			if err != nil {
				return nil, fmt.Errorf("list options: %w", err)
			}
			options[q.ID] = opts
		}
	}

	paper := model.NewTestPaper(test, sections, questions, options)
	if raw, err := json.Marshal(paper); err == nil {
		if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Paper cache write failed")
		}
	}
	return paper, nil
}

// CreateTest inserts a new test.
func (s *CatalogService) CreateTest(ctx context.Context, test *model.Test) error {
	return s.testRepo.Create(ctx, test)
}

// GetTest retrieves a test by id.
func (s *CatalogService) GetTest(ctx context.Context, id uuid.UUID) (*model.Test, error) {
	test, err := s.testRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("get test: %w", err)
	}
	return test, nil
}

// ListTests retrieves tests with pagination.
func (s *CatalogService) ListTests(ctx context.Context, limit, offset int) ([]model.Test, int64, error) {
	return s.testRepo.List(ctx, limit, offset)
}

// UpdateTest overwrites a test and invalidates its cached policy.
func (s *CatalogService) UpdateTest(ctx context.Context, test *model.Test) error {
	if err := s.testRepo.Update(ctx, test); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTestNotFound
		}
		return fmt.Errorf("update test: %w", err)
	}
	s.invalidateTest(ctx, test.ID)
	return nil
}

// DeleteTest removes a test and invalidates its cached policy.
func (s *CatalogService) DeleteTest(ctx context.Context, id uuid.UUID) error {
	if err := s.testRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTestNotFound
		}
		return fmt.Errorf("delete test: %w", err)
	}
	s.invalidateTest(ctx, id)
	return nil
}

func (s *CatalogService) invalidateTest(ctx context.Context, id uuid.UUID) {
	keys := []string{
		config.CacheKey.TestPolicyKey(id.String()),
		config.CacheKey.TestPaperKey(id.String()),
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn().Err(err).Str("test_id", id.String()).Msg("Cache invalidation failed")
	}
}

// CreateSection adds a section to an existing test.
func (s *CatalogService) CreateSection(ctx context.Context, section *model.Section) error {
	if _, err := s.GetTest(ctx, section.TestID); err != nil {
		return err
	}
	if err := s.testRepo.CreateSection(ctx, section); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	s.invalidateTest(ctx, section.TestID)
	return nil
}

// ListSections retrieves a test's sections.
func (s *CatalogService) ListSections(ctx context.Context, testID uuid.UUID) ([]model.Section, error) {
	if _, err := s.GetTest(ctx, testID); err != nil {
		return nil, err
	}
	return s.testRepo.ListSectionsByTest(ctx, testID)
}

// DeleteSection removes a section and, via cascade, its questions.
func (s *CatalogService) DeleteSection(ctx context.Context, id uuid.UUID) error {
	section, err := s.testRepo.GetSectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("get section: %w", err)
	}
	if err := s.testRepo.DeleteSection(ctx, id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	s.invalidateTest(ctx, section.TestID)
	return nil
}

// CreateQuestion adds a question to an existing section.
func (s *CatalogService) CreateQuestion(ctx context.Context, q *model.Question) error {
	section, err := s.testRepo.GetSectionByID(ctx, q.SectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("get section: %w", err)
	}
	if err := s.questionRepo.Create(ctx, q); err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	s.invalidateTest(ctx, section.TestID)
	return nil
}

// GetQuestion retrieves a question by id.
func (s *CatalogService) GetQuestion(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}
	return q, nil
}

// ListQuestions retrieves a section's questions.
func (s *CatalogService) ListQuestions(ctx context.Context, sectionID uuid.UUID) ([]model.Question, error) {
	if _, err := s.testRepo.GetSectionByID(ctx, sectionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return s.questionRepo.ListBySection(ctx, sectionID)
}

// DeleteQuestion removes a question and, via cascade, its options.
func (s *CatalogService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	q, err := s.GetQuestion(ctx, id)
	if err != nil {
		return err
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if section, err := s.testRepo.GetSectionByID(ctx, q.SectionID); err == nil {
		s.invalidateTest(ctx, section.TestID)
	}
	return nil
}

// CreateOption adds an option to an existing question.
func (s *CatalogService) CreateOption(ctx context.Context, o *model.Option) error {
	q, err := s.GetQuestion(ctx, o.QuestionID)
	if err != nil {
		return err
	}
	if err := s.questionRepo.CreateOption(ctx, o); err != nil {
		return fmt.Errorf("create option: %w", err)
	}
	if section, err := s.testRepo.GetSectionByID(ctx, q.SectionID); err == nil {
		s.invalidateTest(ctx, section.TestID)
	}
	return nil
}

// DeleteOption removes a single option from a question.
func (s *CatalogService) DeleteOption(ctx context.Context, questionID, optionID uuid.UUID) error {
	q, err := s.GetQuestion(ctx, questionID)
	if err != nil {
		return err
	}
	if err := s.questionRepo.DeleteOption(ctx, optionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrOptionNotFound
		}
		return fmt.Errorf("delete option: %w", err)
	}
	if section, err := s.testRepo.GetSectionByID(ctx, q.SectionID); err == nil {
		s.invalidateTest(ctx, section.TestID)
	}
	return nil
}

// ListOptions retrieves a question's options.
func (s *CatalogService) ListOptions(ctx context.Context, questionID uuid.UUID) ([]model.Option, error) {
	if _, err := s.GetQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListOptionsByQuestion(ctx, questionID)
}
