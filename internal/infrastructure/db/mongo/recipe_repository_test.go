package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/recipebox/recipe-api/internal/core/ports"
)

func TestOwnedBy_BuildsIDAndAuthorPredicate(t *testing.T) {
	id := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	filter, err := ownedBy(id.Hex(), owner.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filter) != 2 {
		t.Fatalf("expected exactly two keys, got %v", filter)
	}
	if filter["_id"] != id {
		t.Errorf("expected _id %v, got %v", id, filter["_id"])
	}
	if filter["author"] != owner {
		t.Errorf("expected author %v, got %v", owner, filter["author"])
	}
}

func TestOwnedBy_MalformedIDs(t *testing.T) {
	valid := primitive.NewObjectID().Hex()

	cases := map[string][2]string{
		"bad recipe id": {"not-an-id", valid},
		"bad owner id":  {valid, "nope"},
		"empty owner":   {valid, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ownedBy(tc[0], tc[1]); err == nil {
				t.Fatal("expected error for malformed id")
			}
		})
	}
}

func TestListFilter_OwnerOnly(t *testing.T) {
	owner := primitive.NewObjectID()

	filter, err := listFilter(ports.RecipeFilter{OwnerID: owner.Hex()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["author"] != owner {
		t.Errorf("expected author filter, got %v", filter)
	}
	if _, ok := filter["$or"]; ok {
		t.Error("no search clause expected without a search term")
	}
}

func TestListFilter_SearchIsEscapedAndScoped(t *testing.T) {
	owner := primitive.NewObjectID()

	filter, err := listFilter(ports.RecipeFilter{OwnerID: owner.Hex(), Search: "mac.n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["author"] != owner {
		t.Fatal("search must stay owner scoped")
	}

	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected two-branch $or, got %v", filter["$or"])
	}
	title := or[0].(bson.M)["title"].(primitive.Regex)
	if title.Pattern != `mac\.n` || title.Options != "i" {
		t.Errorf("unexpected regex %+v", title)
	}
}

func TestRecipeDocument_ToDomain(t *testing.T) {
	owner := primitive.NewObjectID()
	doc := recipeDocument{ID: primitive.NewObjectID(), Title: "Soup", Author: owner}

	r := doc.toDomain()
	if r.OwnerID != owner.Hex() {
		t.Errorf("expected owner %s, got %s", owner.Hex(), r.OwnerID)
	}
	if r.Ingredients == nil {
		t.Error("ingredients must never be nil")
	}
}
