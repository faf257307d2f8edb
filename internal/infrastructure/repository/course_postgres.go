package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"learnfromvideo/internal/domain"
)

type CourseRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewCourseRepository(db *gorm.DB, rdb *redis.Client) *CourseRepository {
	return &CourseRepository{db: db, rdb: rdb}
}

// GetByVideoID — проверка "не конвертировали ли мы это видео раньше".
// Не кешируем: это один индексированный запрос на редкую операцию записи.
func (r *CourseRepository) GetByVideoID(ctx context.Context, videoID string) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		Preload("Visualizations").
		First(&course, "video_id = ?", videoID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

// Create вставляет курс сразу вместе с секциями и визуализациями.
// Конфликт по уникальному индексу video_id — это сигнал идемпотентности,
// наружу отдаем ErrCourseExists, вызывающий перечитает победителя.
func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCourseExists
		}
		return err
	}
	// Сбрасываем кеш списка, чтобы новый курс появился сразу
	r.rdb.Del(ctx, "courses:list")
	return nil
}

// === КЕШИРУЕМ ОДИН КУРС (курсы неизменяемые, инвалидация не нужна) ===
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	key := "course:detail:" + id.String()

	// 1. Кеш
	val, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var c domain.Course
		if json.Unmarshal([]byte(val), &c) == nil {
			return &c, nil
		}
	}

	// 2. БД
	var course domain.Course
	err = r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		Preload("Visualizations").
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	// 3. Сохраняем в кеш на 1 час
	if data, err := json.Marshal(course); err == nil {
		r.rdb.Set(ctx, key, data, 1*time.Hour)
	}

	return &course, nil
}

// === КЕШИРУЕМ СПИСОК КУРСОВ ===
func (r *CourseRepository) List(ctx context.Context, limit int) ([]domain.Course, error) {
	key := "courses:list"

	// 1. Читаем из кеша
	val, err := r.rdb.Get(ctx, key).Result()
	if err == nil {
		var courses []domain.Course
		if json.Unmarshal([]byte(val), &courses) == nil {
			return courses, nil
		}
	}

	// 2. Читаем из БД (если нет в кеше)
	var courses []domain.Course
	err = r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" asc")
		}).
		Preload("Visualizations").
		Order("created_at desc").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}

	// 3. Пишем в кеш ненадолго: новые курсы должны появляться в списке быстро
	if data, err := json.Marshal(courses); err == nil {
		r.rdb.Set(ctx, key, data, 1*time.Minute)
	}

	return courses, nil
}
