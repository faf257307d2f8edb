package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"learnfromvideo/internal/domain"
	"learnfromvideo/internal/infrastructure/ai"
)

type fakeStore struct {
	byVideoID   map[string]*domain.Course
	createErr   error
	createCalls int
	// missFirstLookup имитирует гонку: первый GetByVideoID не видит
	// запись, которую конкурент уже вставил
	missFirstLookup bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{byVideoID: make(map[string]*domain.Course)}
}

func (f *fakeStore) GetByVideoID(_ context.Context, videoID string) (*domain.Course, error) {
	if f.missFirstLookup {
		f.missFirstLookup = false
		return nil, domain.ErrCourseNotFound
	}
	if c, ok := f.byVideoID[videoID]; ok {
		return c, nil
	}
	return nil, domain.ErrCourseNotFound
}

func (f *fakeStore) Create(_ context.Context, c *domain.Course) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.byVideoID[c.VideoID] = c
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	for _, c := range f.byVideoID {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (f *fakeStore) List(_ context.Context, limit int) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(f.byVideoID))
	for _, c := range f.byVideoID {
		if len(out) == limit {
			break
		}
		out = append(out, *c)
	}
	return out, nil
}

type fakeMetadata struct{}

func (fakeMetadata) Fetch(_ context.Context, videoID string) domain.VideoMetadata {
	return domain.VideoMetadata{
		Title:        "Example Video " + videoID,
		Description:  "desc",
		ThumbnailURL: "thumb",
	}
}

type fakeTranscript struct{}

func (fakeTranscript) Fetch(_ context.Context, _ string) string { return "" }

type fakeSynth struct{}

func (fakeSynth) Synthesize(_ context.Context, _ domain.VideoMetadata, _ string) ai.Content {
	ts := "00:00"
	return ai.Content{
		Sections: []ai.Section{
			{Title: "Introduction", Content: "c1", Timestamp: &ts, Order: 1},
			{Title: "Main Concepts", Content: "c2", Order: 2},
			{Title: "Practical Examples", Content: "c3", Order: 3},
			{Title: "Summary and Conclusion", Content: "c4", Order: 4},
		},
		Visualizations: []ai.Visualization{
			{Title: "Concept Map", Description: "d", RelatedSectionID: "2"},
		},
	}
}

type fakeLock struct{ acquired int }

func (f *fakeLock) Acquire(_ context.Context, _ string) func() {
	f.acquired++
	return func() {}
}

func newTestUseCase(store *fakeStore) *ConvertUseCase {
	return NewConvertUseCase(store, fakeMetadata{}, fakeTranscript{}, fakeSynth{}, &fakeLock{})
}

func TestConvertRejectsInvalidURL(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.Convert(context.Background(), "https://example.com/not-a-youtube-url")
	if err != domain.ErrInvalidURL {
		t.Fatalf("err = %v, want ErrInvalidURL", err)
	}
	if store.createCalls != 0 {
		t.Errorf("createCalls = %d, want 0 (nothing stored for invalid input)", store.createCalls)
	}
}

func TestConvertCreatesCourse(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	course, err := uc.Convert(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if course.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("VideoID = %q, want dQw4w9WgXcQ", course.VideoID)
	}
	if course.ID == uuid.Nil {
		t.Error("course ID was not assigned")
	}
	if len(course.Sections) == 0 {
		t.Fatal("sections are empty")
	}
	for i, sec := range course.Sections {
		if sec.Order != i+1 {
			t.Errorf("section %d order = %d, want %d", i, sec.Order, i+1)
		}
		if sec.ID == uuid.Nil {
			t.Errorf("section %d ID was not assigned", i)
		}
		if sec.CourseID != course.ID {
			t.Errorf("section %d CourseID = %v, want %v", i, sec.CourseID, course.ID)
		}
	}
	if len(course.Visualizations) != 1 {
		t.Errorf("got %d visualizations, want 1", len(course.Visualizations))
	}
	if course.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestConvertIsIdempotent(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	first, err := uc.Convert(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("first Convert failed: %v", err)
	}

	// Другая форма ссылки на то же видео
	second, err := uc.Convert(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("second Convert failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("second conversion returned different course: %v vs %v", first.ID, second.ID)
	}
	if store.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", store.createCalls)
	}
}

func TestConvertReturnsWinnerOnInsertRace(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	// Победитель гонки уже вставил курс, но наш lookup его не увидел:
	// Create вернет конфликт, мы должны перечитать и отдать чужую запись
	winner := &domain.Course{ID: uuid.New(), VideoID: "dQw4w9WgXcQ"}
	store.byVideoID[winner.VideoID] = winner
	store.missFirstLookup = true
	store.createErr = domain.ErrCourseExists

	course, err := uc.Convert(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if course.ID != winner.ID {
		t.Errorf("course ID = %v, want winner %v", course.ID, winner.ID)
	}
	if store.createCalls != 1 {
		t.Errorf("createCalls = %d, want 1", store.createCalls)
	}
}

func TestGetCourseUnknownID(t *testing.T) {
	uc := newTestUseCase(newFakeStore())

	if _, err := uc.GetCourse(context.Background(), uuid.NewString()); err != domain.ErrCourseNotFound {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
	// Невалидный UUID — тоже просто "не найдено", а не 500
	if _, err := uc.GetCourse(context.Background(), "not-a-uuid"); err != domain.ErrCourseNotFound {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}
