package catalog

import (
	"context"
	"fmt"

	catalogClient "tadreeb/clients/catalog"
	"tadreeb/models"
)

// Service serves the course and private-lesson catalog through the list
// cache, and lesson options / consultation types directly.
type Service struct {
	Client catalogClient.Client
	Cache  *ListCache
}

func NewService(client catalogClient.Client, cache *ListCache) *Service {
	return &Service{Client: client, Cache: cache}
}

func (s *Service) Courses(ctx context.Context, lang string, page, pageSize int) (models.CatalogPage, error) {
	key := CacheKey{List: "courses", Lang: lang, Page: page, PageSize: pageSize}
	return s.Cache.GetOrFetch(ctx, key, func(ctx context.Context) (models.CatalogPage, error) {
		return s.Client.FetchCourses(ctx, lang, page, pageSize)
	})
}

func (s *Service) Lessons(ctx context.Context, lang string, page, pageSize int) (models.CatalogPage, error) {
	key := CacheKey{List: "lessons", Lang: lang, Page: page, PageSize: pageSize}
	return s.Cache.GetOrFetch(ctx, key, func(ctx context.Context) (models.CatalogPage, error) {
		return s.Client.FetchLessons(ctx, lang, page, pageSize)
	})
}

// LessonOptions is uncached: options carry the bookable prices and are
// fetched per lesson when the wizard's option step opens.
func (s *Service) LessonOptions(ctx context.Context, lessonID string) ([]models.BookableItem, error) {
	if lessonID == "" {
		return nil, fmt.Errorf("lesson id is required")
	}
	return s.Client.FetchLessonOptions(ctx, lessonID)
}

func (s *Service) ConsultationTypes(ctx context.Context, lang string) ([]models.BookableItem, error) {
	return s.Client.FetchConsultationTypes(ctx, lang)
}
