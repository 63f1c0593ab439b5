package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/ports"
)

// RecipeRepository implements ports.RecipeRepository. Every read and write
// is filtered by the owning user.
type RecipeRepository struct {
	col *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{col: db.Collection(collectionRecipes)}
}

type recipeDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Ingredients  []string           `bson:"ingredients"`
	Instructions string             `bson:"instructions"`
	CuisineType  string             `bson:"cuisineType"`
	CookingTime  int                `bson:"cookingTime"`
	Author       primitive.ObjectID `bson:"author"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d recipeDocument) toDomain() *domain.Recipe {
	ingredients := d.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return &domain.Recipe{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Ingredients:  ingredients,
		Instructions: d.Instructions,
		CuisineType:  d.CuisineType,
		CookingTime:  d.CookingTime,
		OwnerID:      d.Author.Hex(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

var errMalformedID = errors.New("malformed object id")

// ownedBy builds the {_id, author} predicate shared by every single-recipe
// query. A malformed id on either side cannot match any document.
func ownedBy(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errMalformedID
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, errMalformedID
	}
	return bson.M{"_id": oid, "author": owner}, nil
}

// listFilter scopes a listing to the owner and optionally to a
// case-insensitive substring of title or cuisine type.
func listFilter(f ports.RecipeFilter) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(f.OwnerID)
	if err != nil {
		return nil, errMalformedID
	}
	filter := bson.M{"author": owner}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"cuisineType": pattern},
		}
	}
	return filter, nil
}

// List returns the owner's recipes, newest first. The result is never nil.
func (r *RecipeRepository) List(ctx context.Context, f ports.RecipeFilter) ([]*domain.Recipe, error) {
	filter, err := listFilter(f)
	if err != nil {
		return []*domain.Recipe{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find recipes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []recipeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}

	recipes := make([]*domain.Recipe, 0, len(docs))
	for _, d := range docs {
		recipes = append(recipes, d.toDomain())
	}
	return recipes, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id, ownerID string) (*domain.Recipe, error) {
	filter, err := ownedBy(id, ownerID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc recipeDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	owner, err := primitive.ObjectIDFromHex(recipe.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("recipe owner: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := recipeDocument{
		ID:           primitive.NewObjectID(),
		Title:        recipe.Title,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		CuisineType:  recipe.CuisineType,
		CookingTime:  recipe.CookingTime,
		Author:       owner,
		CreatedAt:    recipe.CreatedAt.UTC(),
		UpdatedAt:    recipe.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return doc.toDomain(), nil
}

// Update overwrites the mutable fields in place and returns the stored document.
func (r *RecipeRepository) Update(ctx context.Context, id, ownerID string, f ports.RecipeFields) (*domain.Recipe, error) {
	filter, err := ownedBy(id, ownerID)
	if err != nil {
		return nil, domain.ErrRecipeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":        f.Title,
		"ingredients":  f.Ingredients,
		"instructions": f.Instructions,
		"cuisineType":  f.CuisineType,
		"cookingTime":  f.CookingTime,
		"updatedAt":    time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc recipeDocument
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id, ownerID string) error {
	filter, err := ownedBy(id, ownerID)
	if err != nil {
		return domain.ErrRecipeNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// EnsureIndexes creates the owner listing index.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
