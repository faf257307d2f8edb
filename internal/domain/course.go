package domain

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	VideoID      string    `gorm:"uniqueIndex" json:"video_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`

	// Связи один-ко-многим: курс создается сразу целиком, вместе с секциями
	Sections       []CourseSection       `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"sections"`
	Visualizations []CourseVisualization `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;" json:"visualizations"`

	CreatedAt time.Time `json:"created_at"`
}

type CourseSection struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	// Позиция в исходном видео ("MM:SS"), null если неизвестна
	Timestamp *string `json:"timestamp"`
	Order     int     `json:"order"` // Для сортировки (1, 2, 3...)
}

type CourseVisualization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Title       string    `json:"title"`
	ImageURL    *string   `json:"image_url"`
	Description string    `json:"description"`
	// Слабая ссылка на секцию по её order (строкой), не валидируется
	RelatedSectionID string `json:"related_section_id"`
}

// VideoMetadata — то, что мы знаем о видео до синтеза курса
type VideoMetadata struct {
	Title        string
	Description  string
	ThumbnailURL string
}
