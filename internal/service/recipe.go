package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AmirKakon/recipe-rack/internal/model"
)

// ErrRecipeNotFound is returned by Get when no document exists at the id.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeService handles CRUD over the recipe collection. It performs no
// content validation; callers are responsible for rejecting malformed
// payloads before they reach here.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe writes a new recipe document. A caller-supplied id is honored
// with upsert semantics; otherwise a fresh unique id is allocated. Returns
// the id the document was written at.
func (s *RecipeService) CreateRecipe(ctx context.Context, doc model.Document) (string, error) {
	id := suppliedID(doc)

	record := model.RecipeRecord{Data: doc}
	if id != "" {
		record.ID = id
		err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&record).Error
		if err != nil {
			return "", fmt.Errorf("failed to create recipe %s: %w", id, err)
		}
		return id, nil
	}

	record.ID = uuid.NewString()
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to create recipe: %w", err)
	}
	return record.ID, nil
}

// GetRecipe retrieves the document at id, annotated with its id.
func (s *RecipeService) GetRecipe(ctx context.Context, id string) (model.Document, error) {
	var record model.RecipeRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no recipe found with id %s: %w", id, ErrRecipeNotFound)
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return annotate(record), nil
}

// GetAllRecipes returns every document in the collection, each annotated with
// its id, sorted ascending by title using locale-aware comparison. An empty
// collection yields an empty slice, not an error.
func (s *RecipeService) GetAllRecipes(ctx context.Context) ([]model.Document, error) {
	var records []model.RecipeRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	if len(records) == 0 {
		log.Printf("Get all recipes | No recipes found")
		return []model.Document{}, nil
	}

	docs := make([]model.Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, annotate(record))
	}
	// Collators carry mutable iterator state and are not safe for
	// concurrent use, so each call sorts with its own.
	collator := collate.New(language.English)
	sort.SliceStable(docs, func(i, j int) bool {
		return collator.CompareString(title(docs[i]), title(docs[j])) < 0
	})
	return docs, nil
}

// UpdateRecipe merges the given fields into the existing document at id.
// Fields absent from the patch are left untouched. Any failure, including a
// missing id, is logged and reported as false; no detail is surfaced.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, patch model.Document) bool {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.RecipeRecord
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			return err
		}
		if record.Data == nil {
			record.Data = model.Document{}
		}
		for k, v := range patch {
			record.Data[k] = v
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		log.Printf("Failed to update recipe %s: %v", id, err)
		return false
	}
	return true
}

// DeleteRecipe verifies the document exists, then removes it as a single
// unit of work. A missing id or any storage failure is logged and reported
// as false.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id string) bool {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.RecipeRecord
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("recipe %s: %w", id, ErrRecipeNotFound)
			}
			return err
		}
		return tx.Delete(&model.RecipeRecord{}, "id = ?", id).Error
	})
	if err != nil {
		log.Printf("Failed to delete recipe %s: %v", id, err)
		return false
	}
	return true
}

// suppliedID extracts a truthy caller-supplied id from the payload, coerced
// to a string the way the storage layer would coerce it.
func suppliedID(doc model.Document) string {
	switch v := doc["id"].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

func annotate(record model.RecipeRecord) model.Document {
	doc := record.Data.Clone()
	doc["id"] = record.ID
	return doc
}

func title(doc model.Document) string {
	s, _ := doc["title"].(string)
	return s
}
