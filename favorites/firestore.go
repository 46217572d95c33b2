package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mykitchen_backend/models"
)

// favoriteDoc is the stored form. Meal keeps the posted JSON as text so the
// object round-trips unchanged.
type favoriteDoc struct {
	ID      string    `firestore:"id"`
	Meal    string    `firestore:"meal"`
	AddedAt time.Time `firestore:"addedAt"`
}

// Firestore keeps favorites in a Firestore collection, one document per meal.
type Firestore struct {
	client     *firestore.Client
	collection string
	now        func() time.Time
}

// NewFirestore connects to projectID using application default credentials.
func NewFirestore(ctx context.Context, projectID, collection string) (*Firestore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return NewFirestoreWithClient(client, collection), nil
}

func NewFirestoreWithClient(client *firestore.Client, collection string) *Firestore {
	if collection == "" {
		collection = "favorites"
	}
	return &Firestore{client: client, collection: collection, now: time.Now}
}

func (f *Firestore) List(ctx context.Context) ([]models.Favorite, error) {
	favs := []models.Favorite{}
	iter := f.client.Collection(f.collection).OrderBy("addedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list favorites: %w", err)
		}

		var stored favoriteDoc
		if err := doc.DataTo(&stored); err != nil {
			return nil, fmt.Errorf("decode favorite %s: %w", doc.Ref.ID, err)
		}
		favs = append(favs, models.Favorite{ID: stored.ID, Meal: json.RawMessage(stored.Meal)})
	}

	return favs, nil
}

func (f *Firestore) Add(ctx context.Context, fav models.Favorite) ([]models.Favorite, error) {
	if fav.ID == "" {
		return nil, ErrMissingID
	}

	doc := favoriteDoc{ID: fav.ID, Meal: string(fav.Meal), AddedAt: f.now().UTC()}
	_, err := f.client.Collection(f.collection).Doc(docID(fav.ID)).Create(ctx, doc)
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return nil, fmt.Errorf("add favorite %s: %w", fav.ID, err)
	}

	return f.List(ctx)
}

func (f *Firestore) Remove(ctx context.Context, id string) error {
	if _, err := f.client.Collection(f.collection).Doc(docID(id)).Delete(ctx); err != nil {
		return fmt.Errorf("remove favorite %s: %w", id, err)
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

// docID makes a meal ID safe to use as a document name.
func docID(id string) string {
	return url.PathEscape(id)
}
