package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tadreeb/models"
)

// Client fetches the course catalog, private lessons, lesson options and
// consultation types from the catalog collaborator.
type Client interface {
	FetchCourses(ctx context.Context, lang string, page, pageSize int) (models.CatalogPage, error)
	FetchLessons(ctx context.Context, lang string, page, pageSize int) (models.CatalogPage, error)
	FetchLessonOptions(ctx context.Context, lessonID string) ([]models.BookableItem, error)
	FetchConsultationTypes(ctx context.Context, lang string) ([]models.BookableItem, error)
}

// HTTPClient is the JSON-over-HTTP implementation of Client.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// pageEnvelope mirrors the collaborator's paginated list response.
type pageEnvelope struct {
	Data       []itemDTO         `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

type itemDTO struct {
	ID              json.Number `json:"id"`
	Title           string      `json:"title"`
	TitleAr         string      `json:"title_ar"`
	Description     string      `json:"description"`
	Place           string      `json:"place"`
	DurationMinutes int         `json:"duration_minutes"`
	PriceAED        any         `json:"price_aed"`
	PriceUSD        any         `json:"price_usd"`
}

func (d itemDTO) toModel(kind models.ItemKind) models.BookableItem {
	return models.BookableItem{
		ID:              d.ID.String(),
		Kind:            kind,
		Title:           d.Title,
		TitleAr:         d.TitleAr,
		Description:     d.Description,
		Place:           d.Place,
		DurationMinutes: d.DurationMinutes,
		PriceAED:        d.PriceAED,
		PriceUSD:        d.PriceUSD,
	}
}

func (c *HTTPClient) fetchPage(ctx context.Context, path, lang string, page, pageSize int, kind models.ItemKind) (models.CatalogPage, error) {
	u := fmt.Sprintf("%s%s?lang=%s&page=%d&per_page=%d", c.BaseURL, path, url.QueryEscape(lang), page, pageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return models.CatalogPage{}, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.CatalogPage{}, fmt.Errorf("catalog fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.CatalogPage{}, fmt.Errorf("catalog fetch returned status %d", resp.StatusCode)
	}

	var env pageEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return models.CatalogPage{}, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	items := make([]models.BookableItem, 0, len(env.Data))
	for _, d := range env.Data {
		items = append(items, d.toModel(kind))
	}
	return models.CatalogPage{Items: items, Pagination: env.Pagination}, nil
}

func (c *HTTPClient) FetchCourses(ctx context.Context, lang string, page, pageSize int) (models.CatalogPage, error) {
	return c.fetchPage(ctx, "/courses", lang, page, pageSize, models.ItemCourse)
}

func (c *HTTPClient) FetchLessons(ctx context.Context, lang string, page, pageSize int) (models.CatalogPage, error) {
	return c.fetchPage(ctx, "/private-lessons", lang, page, pageSize, models.ItemLessonOption)
}

func (c *HTTPClient) FetchLessonOptions(ctx context.Context, lessonID string) ([]models.BookableItem, error) {
	u := fmt.Sprintf("%s/private-lessons/%s/options", c.BaseURL, url.PathEscape(lessonID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lesson options request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lesson options fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lesson options fetch returned status %d", resp.StatusCode)
	}

	var dtos []itemDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("failed to decode lesson options response: %w", err)
	}

	options := make([]models.BookableItem, 0, len(dtos))
	for _, d := range dtos {
		options = append(options, d.toModel(models.ItemLessonOption))
	}
	return options, nil
}

func (c *HTTPClient) FetchConsultationTypes(ctx context.Context, lang string) ([]models.BookableItem, error) {
	u := fmt.Sprintf("%s/consultations?lang=%s", c.BaseURL, url.QueryEscape(lang))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build consultations request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultations fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("consultations fetch returned status %d", resp.StatusCode)
	}

	var dtos []itemDTO
	if err := json.NewDecoder(resp.Body).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("failed to decode consultations response: %w", err)
	}

	types := make([]models.BookableItem, 0, len(dtos))
	for _, d := range dtos {
		types = append(types, d.toModel(models.ItemConsultation))
	}
	return types, nil
}
