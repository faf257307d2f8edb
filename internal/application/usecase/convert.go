package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"learnfromvideo/internal/domain"
	"learnfromvideo/internal/infrastructure/ai"
	"learnfromvideo/internal/infrastructure/youtube"
)

const maxCourseList = 20

type CourseStore interface {
	GetByVideoID(ctx context.Context, videoID string) (*domain.Course, error)
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	List(ctx context.Context, limit int) ([]domain.Course, error)
}

type MetadataFetcher interface {
	Fetch(ctx context.Context, videoID string) domain.VideoMetadata
}

type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) string
}

type Synthesizer interface {
	Synthesize(ctx context.Context, meta domain.VideoMetadata, transcript string) ai.Content
}

type Locker interface {
	Acquire(ctx context.Context, videoID string) func()
}

type ConvertUseCase struct {
	courses     CourseStore
	metadata    MetadataFetcher
	transcripts TranscriptFetcher
	synthesizer Synthesizer
	locks       Locker
}

func NewConvertUseCase(
	cs CourseStore,
	mf MetadataFetcher,
	tf TranscriptFetcher,
	s Synthesizer,
	l Locker,
) *ConvertUseCase {
	return &ConvertUseCase{
		courses:     cs,
		metadata:    mf,
		transcripts: tf,
		synthesizer: s,
		locks:       l,
	}
}

// Convert превращает ссылку на видео в курс. Операция идемпотентна:
// повторная отправка той же ссылки возвращает уже существующий курс как есть,
// без обновления метаданных или транскрипта.
func (uc *ConvertUseCase) Convert(ctx context.Context, videoURL string) (*domain.Course, error) {
	videoID := youtube.ExtractVideoID(videoURL)
	if videoID == "" {
		return nil, domain.ErrInvalidURL
	}

	// Сериализуем конкурентные конвертации одного видео
	release := uc.locks.Acquire(ctx, videoID)
	defer release()

	existing, err := uc.courses.GetByVideoID(ctx, videoID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrCourseNotFound) {
		return nil, err
	}

	meta := uc.metadata.Fetch(ctx, videoID)
	transcript := uc.transcripts.Fetch(ctx, videoID)
	content := uc.synthesizer.Synthesize(ctx, meta, transcript)

	course := buildCourse(videoID, meta, content)

	if err := uc.courses.Create(ctx, course); err != nil {
		if errors.Is(err, domain.ErrCourseExists) {
			// Проиграли гонку — отдаем курс победителя
			log.Printf("Course for video %s was created concurrently, returning existing one", videoID)
			return uc.courses.GetByVideoID(ctx, videoID)
		}
		return nil, err
	}

	return course, nil
}

func (uc *ConvertUseCase) GetCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	id, err := uuid.Parse(courseID)
	if err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return uc.courses.GetByID(ctx, id)
}

func (uc *ConvertUseCase) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return uc.courses.List(ctx, maxCourseList)
}

// buildCourse собирает полный документ курса: свежие ID для всего,
// секции и визуализации вставляются атомарно вместе с курсом
func buildCourse(videoID string, meta domain.VideoMetadata, content ai.Content) *domain.Course {
	courseID := uuid.New()

	sections := make([]domain.CourseSection, 0, len(content.Sections))
	for _, s := range content.Sections {
		sections = append(sections, domain.CourseSection{
			ID:        uuid.New(),
			CourseID:  courseID,
			Title:     s.Title,
			Content:   s.Content,
			Timestamp: s.Timestamp,
			Order:     s.Order,
		})
	}

	visualizations := make([]domain.CourseVisualization, 0, len(content.Visualizations))
	for _, v := range content.Visualizations {
		visualizations = append(visualizations, domain.CourseVisualization{
			ID:               uuid.New(),
			CourseID:         courseID,
			Title:            v.Title,
			ImageURL:         v.ImageURL,
			Description:      v.Description,
			RelatedSectionID: v.RelatedSectionID,
		})
	}

	return &domain.Course{
		ID:             courseID,
		VideoID:        videoID,
		Title:          meta.Title,
		Description:    meta.Description,
		ThumbnailURL:   meta.ThumbnailURL,
		Sections:       sections,
		Visualizations: visualizations,
		CreatedAt:      time.Now().UTC(),
	}
}
