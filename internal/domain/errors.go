package domain

import "errors"

var (
	// ErrInvalidURL — из присланной строки не удалось достать ID видео
	ErrInvalidURL = errors.New("invalid YouTube URL")

	// ErrCourseNotFound — курса с таким ID нет в базе
	ErrCourseNotFound = errors.New("course not found")

	// ErrCourseExists — курс для этого video_id уже вставлен (уникальный индекс)
	ErrCourseExists = errors.New("course already exists for video")
)
