package services

import (
	"errors"
	"strconv"
	"strings"

	"vocab-review-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// WordService manages the vocabulary catalogue. Handlers are Fiber methods
// registered directly by the route setup.
type WordService struct {
	DB *gorm.DB
}

func NewWordService(db *gorm.DB) *WordService {
	return &WordService{DB: db}
}

// CreateWord adds a catalogue entry. The language must be a valid BCP-47
// tag; the slug is derived from the term and must be unique.
func (s *WordService) CreateWord(c *fiber.Ctx) error {
	type Req struct {
		Term       string `json:"term"`
		Definition string `json:"definition"`
		Example    string `json:"example"`
		Language   string `json:"language"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON",
			"cause": err.Error(),
		})
	}

	term := strings.TrimSpace(req.Term)
	if term == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "term is required"})
	}

	lang := "en"
	if req.Language != "" {
		tag, err := language.Parse(req.Language)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid language tag",
				"cause": err.Error(),
			})
		}
		lang = tag.String()
	}

	word := models.Word{
		ID:         uuid.NewString(),
		Term:       term,
		Definition: strings.TrimSpace(req.Definition),
		Example:    strings.TrimSpace(req.Example),
		Slug:       slug.MakeLang(term, lang),
		Language:   lang,
	}
	if err := s.DB.Create(&word).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "a word with this slug already exists",
				"slug":  word.Slug,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to create word",
			"cause": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(word)
}

// GetWord fetches one catalogue entry by id or slug.
func (s *WordService) GetWord(c *fiber.Ctx) error {
	id := c.Params("id")

	// Path segment is either the row uuid or the slug.
	query := s.DB.Where("slug = ?", id)
	if _, err := uuid.Parse(id); err == nil {
		query = s.DB.Where("id = ?", id)
	}

	var word models.Word
	err := query.First(&word).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "word not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch word",
			"cause": err.Error(),
		})
	}
	return c.JSON(word)
}

// SearchWords lists catalogue entries, optionally filtered by a term query.
func (s *WordService) SearchWords(c *fiber.Ctx) error {
	query := c.Query("q", "")
	limit, err := strconv.Atoi(c.Query("limit", "50"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 50
	}

	db := s.DB.Model(&models.Word{}).Order("term ASC").Limit(limit)
	if query != "" {
		searchTerm := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
		db = db.Where("LOWER(term) LIKE ? OR LOWER(definition) LIKE ?", searchTerm, searchTerm)
	}

	var words []models.Word
	if err := db.Find(&words).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "search failed",
			"cause": err.Error(),
		})
	}
	return c.JSON(words)
}
