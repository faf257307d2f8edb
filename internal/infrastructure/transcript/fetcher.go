package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://www.youtube.com/api/timedtext"

type Fetcher struct {
	client  *http.Client
	baseURL string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
	}
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// Fetch возвращает текст субтитров видео одной строкой.
// Отсутствие субтитров — штатная ситуация: отдаем пустую строку,
// конвертация продолжится на одних метаданных.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) string {
	url := fmt.Sprintf("%s?lang=en&v=%s", f.baseURL, videoID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Printf("Error building transcript request for video %s: %v", videoID, err)
		return ""
	}

	resp, err := f.client.Do(req)
	if err != nil {
		log.Printf("Error fetching transcript for video %s: %v", videoID, err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Warning: transcript not available for video %s (status %d)", videoID, resp.StatusCode)
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading transcript for video %s: %v", videoID, err)
		return ""
	}
	if len(body) == 0 {
		// Пустой ответ = субтитры выключены автором
		log.Printf("Warning: empty transcript for video %s", videoID)
		return ""
	}

	var parsed timedText
	if err := xml.Unmarshal(body, &parsed); err != nil {
		log.Printf("Error parsing transcript for video %s: %v", videoID, err)
		return ""
	}

	parts := make([]string, 0, len(parsed.Texts))
	for _, t := range parsed.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Value))
		if line != "" {
			parts = append(parts, line)
		}
	}

	return strings.Join(parts, " ")
}
