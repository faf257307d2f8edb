package youtube

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"learnfromvideo/internal/domain"
)

type MetadataClient struct {
	service *youtube.Service
}

// NewMetadataClient создает клиент YouTube Data API.
// Без ключа работаем в режиме заглушки — это не ошибка.
func NewMetadataClient(ctx context.Context, apiKey string) (*MetadataClient, error) {
	if apiKey == "" {
		return &MetadataClient{}, nil
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &MetadataClient{service: service}, nil
}

// Fetch возвращает метаданные видео. Одна попытка, без ретраев:
// любая проблема с API — отдаем детерминированную заглушку, конвертация не падает.
func (c *MetadataClient) Fetch(ctx context.Context, videoID string) domain.VideoMetadata {
	if c.service == nil {
		return placeholderMetadata(videoID)
	}

	resp, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		log.Printf("YouTube API error for video %s: %v, using placeholder metadata", videoID, err)
		return placeholderMetadata(videoID)
	}
	if len(resp.Items) == 0 {
		log.Printf("YouTube API returned no items for video %s, using placeholder metadata", videoID)
		return placeholderMetadata(videoID)
	}

	snippet := resp.Items[0].Snippet
	return domain.VideoMetadata{
		Title:        snippet.Title,
		Description:  snippet.Description,
		ThumbnailURL: bestThumbnail(snippet.Thumbnails, videoID),
	}
}

func bestThumbnail(t *youtube.ThumbnailDetails, videoID string) string {
	if t != nil {
		switch {
		case t.Maxres != nil:
			return t.Maxres.Url
		case t.High != nil:
			return t.High.Url
		case t.Default != nil:
			return t.Default.Url
		}
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}

func placeholderMetadata(videoID string) domain.VideoMetadata {
	return domain.VideoMetadata{
		Title:        fmt.Sprintf("Example Video %s", videoID),
		Description:  "This is a placeholder description for the video.",
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID),
	}
}
