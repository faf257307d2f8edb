package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"

	"learnfromvideo/internal/domain"
)

// Транскрипты бывают на часы текста, режем до разумного размера промпта
const maxTranscriptChars = 10000

const generateTimeout = 60 * time.Second

type Section struct {
	Title     string
	Content   string
	Timestamp *string
	Order     int
}

type Visualization struct {
	Title            string
	ImageURL         *string
	Description      string
	RelatedSectionID string
}

// Content — результат синтеза: упорядоченные секции плюс заготовки визуализаций
type Content struct {
	Sections       []Section
	Visualizations []Visualization
}

type Synthesizer struct {
	client *genai.Client
	model  string
}

// NewSynthesizer создает клиент Gemini. Без ключа синтезатор
// работает только в режиме фиксированной структуры — это не ошибка.
func NewSynthesizer(ctx context.Context, apiKey, model string) (*Synthesizer, error) {
	s := &Synthesizer{model: model}
	if apiKey == "" {
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.client = client
	return s, nil
}

// Synthesize строит структуру курса из транскрипта и метаданных.
// Любая проблема с генерацией (нет ключа, нет транскрипта, ошибка вызова,
// кривой JSON) — молча подставляем запасную структуру. Конвертация в целом
// из-за синтеза не падает никогда.
func (s *Synthesizer) Synthesize(ctx context.Context, meta domain.VideoMetadata, transcript string) Content {
	if s.client == nil || transcript == "" {
		return fallbackContent()
	}

	content, err := s.generate(ctx, meta, transcript)
	if err != nil {
		log.Printf("Course synthesis failed (%v), using fallback structure", err)
		return fallbackContent()
	}
	return content
}

func (s *Synthesizer) generate(ctx context.Context, meta domain.VideoMetadata, transcript string) (Content, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := buildPrompt(meta, transcript)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return Content{}, fmt.Errorf("generate content: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return Content{}, fmt.Errorf("empty response from model")
	}

	return parseResponse(responseText)
}

func buildPrompt(meta domain.VideoMetadata, transcript string) string {
	if len(transcript) > maxTranscriptChars {
		// Не режем посреди многобайтовой руны, откатываемся к её началу
		cut := maxTranscriptChars
		for cut > 0 && !utf8.RuneStart(transcript[cut]) {
			cut--
		}
		transcript = transcript[:cut]
	}

	return fmt.Sprintf(`You are an AI assistant that turns a video transcript into a structured mini-course.

VIDEO METADATA:
Title: %s
Description: %s

TRANSCRIPT:
%s

INSTRUCTIONS:
1. Break the material into 4-8 logical sections following the flow of the transcript
2. Each section gets a short title and 2-4 sentences of content in your own words
3. Where the transcript makes the position in the video clear, add a "MM:SS" timestamp; otherwise omit it
4. Suggest visualizations (diagrams, concept maps) that would help a learner, each tied to one section

Please provide your answer in the following JSON format:
{
  "sections": [
    {"title": "...", "content": "...", "timestamp": "MM:SS", "order": 1}
  ],
  "visualizations": [
    {"title": "...", "image_url": null, "description": "...", "related_section_id": "1"}
  ]
}

The "order" field starts at 1 and increases by one per section. "related_section_id" is the order number of the related section, as a string.`,
		meta.Title,
		meta.Description,
		transcript,
	)
}

// parseResponse ищет JSON-объект внутри сырого ответа модели
// (модели любят оборачивать его в текст и ```-блоки)
func parseResponse(response string) (Content, error) {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return Content{}, fmt.Errorf("no JSON found in response")
	}

	var result struct {
		Sections []struct {
			Title     string `json:"title"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
			Order     int    `json:"order"`
		} `json:"sections"`
		Visualizations []struct {
			Title            string `json:"title"`
			ImageURL         string `json:"image_url"`
			Description      string `json:"description"`
			RelatedSectionID string `json:"related_section_id"`
		} `json:"visualizations"`
	}

	if err := json.Unmarshal([]byte(response[startIdx:endIdx+1]), &result); err != nil {
		return Content{}, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	if len(result.Sections) == 0 {
		return Content{}, fmt.Errorf("response contains no sections")
	}

	content := Content{
		Sections:       make([]Section, 0, len(result.Sections)),
		Visualizations: make([]Visualization, 0, len(result.Visualizations)),
	}

	for _, s := range result.Sections {
		sec := Section{
			Title:   s.Title,
			Content: s.Content,
			Order:   s.Order,
		}
		if s.Timestamp != "" {
			ts := s.Timestamp
			sec.Timestamp = &ts
		}
		content.Sections = append(content.Sections, sec)
	}

	for _, v := range result.Visualizations {
		viz := Visualization{
			Title:            v.Title,
			Description:      v.Description,
			RelatedSectionID: v.RelatedSectionID,
		}
		if v.ImageURL != "" {
			u := v.ImageURL
			viz.ImageURL = &u
		}
		content.Visualizations = append(content.Visualizations, viz)
	}

	normalizeOrders(content.Sections)

	return content, nil
}

// normalizeOrders приводит порядок секций к строгому 1..N:
// модели иногда отдают дыры или дубли в order
func normalizeOrders(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
	for i := range sections {
		sections[i].Order = i + 1
	}
}

func strptr(s string) *string { return &s }

// fallbackContent — фиксированная структура курса на случай,
// когда генерация недоступна или сломалась
func fallbackContent() Content {
	return Content{
		Sections: []Section{
			{
				Title:     "Introduction",
				Content:   "Welcome to this course! This section introduces the main concepts.",
				Timestamp: strptr("00:00"),
				Order:     1,
			},
			{
				Title:     "Main Concepts",
				Content:   "The core ideas of this topic are explained here in detail.",
				Timestamp: strptr("03:45"),
				Order:     2,
			},
			{
				Title:     "Practical Examples",
				Content:   "Here are some examples to help illustrate the concepts.",
				Timestamp: strptr("08:30"),
				Order:     3,
			},
			{
				Title:     "Summary and Conclusion",
				Content:   "Let's review what we've learned and discuss next steps.",
				Timestamp: strptr("12:15"),
				Order:     4,
			},
		},
		Visualizations: []Visualization{
			{
				Title:            "Concept Map",
				Description:      "A visual representation of the main concepts covered in this video.",
				RelatedSectionID: "2",
			},
		},
	}
}
