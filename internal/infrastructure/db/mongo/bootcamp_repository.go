package mongo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

var bootcampIndexes = []mongo.IndexModel{
	{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
	{Keys: bson.D{{Key: "user", Value: 1}}},
	{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
}

type BootcampRepository struct {
	col     *mongo.Collection
	courses *mongo.Collection
	reviews *mongo.Collection
}

func NewBootcampRepository(db *mongo.Database) *BootcampRepository {
	return &BootcampRepository{
		col:     db.Collection(collectionBootcamps),
		courses: db.Collection(collectionCourses),
		reviews: db.Collection(collectionReviews),
	}
}

type bootcampDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Website       string             `bson:"website,omitempty"`
	Phone         string             `bson:"phone,omitempty"`
	Email         string             `bson:"email,omitempty"`
	Address       string             `bson:"address"`
	Location      *domain.Location   `bson:"location,omitempty"`
	Careers       []string           `bson:"careers"`
	Housing       bool               `bson:"housing"`
	JobAssistance bool               `bson:"job_assistance"`
	JobGuarantee  bool               `bson:"job_guarantee"`
	AcceptGi      bool               `bson:"accept_gi"`
	AverageRating float64            `bson:"average_rating,omitempty"`
	AverageCost   float64            `bson:"average_cost,omitempty"`
	User          primitive.ObjectID `bson:"user"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func newBootcampDoc(b *domain.Bootcamp) bootcampDoc {
	return bootcampDoc{
		Name:          b.Name,
		Description:   b.Description,
		Website:       b.Website,
		Phone:         b.Phone,
		Email:         b.Email,
		Address:       b.Address,
		Location:      b.Location,
		Careers:       b.Careers,
		Housing:       b.Housing,
		JobAssistance: b.JobAssistance,
		JobGuarantee:  b.JobGuarantee,
		AcceptGi:      b.AcceptGi,
		AverageRating: b.AverageRating,
		AverageCost:   b.AverageCost,
		User:          refID(b.UserID),
		CreatedAt:     b.CreatedAt,
	}
}

func (d *bootcampDoc) toDomain() *domain.Bootcamp {
	return &domain.Bootcamp{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Website:       d.Website,
		Phone:         d.Phone,
		Email:         d.Email,
		Address:       d.Address,
		Location:      d.Location,
		Careers:       d.Careers,
		Housing:       d.Housing,
		JobAssistance: d.JobAssistance,
		JobGuarantee:  d.JobGuarantee,
		AcceptGi:      d.AcceptGi,
		AverageRating: d.AverageRating,
		AverageCost:   d.AverageCost,
		UserID:        hexOrEmpty(d.User),
		CreatedAt:     d.CreatedAt,
	}
}

func (r *BootcampRepository) Create(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newBootcampDoc(b)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrBootcampNameTaken
		}
		return nil, fmt.Errorf("insert bootcamp: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BootcampRepository) FindByID(ctx context.Context, id string) (*domain.Bootcamp, error) {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc bootcampDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBootcampNotFound
		}
		return nil, fmt.Errorf("find bootcamp: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BootcampRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user": refID(userID)}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count bootcamps: %w", err)
	}
	return n > 0, nil
}

func (r *BootcampRepository) List(ctx context.Context) ([]*domain.Bootcamp, error) {
	return r.find(ctx, bson.M{})
}

// WithinRadius queries the 2dsphere index with $centerSphere; radius is in
// radians.
func (r *BootcampRepository) WithinRadius(ctx context.Context, lat, lng, radius float64) ([]*domain.Bootcamp, error) {
	return r.find(ctx, bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lng, lat}, radius},
			},
		},
	})
}

func (r *BootcampRepository) find(ctx context.Context, filter bson.M) ([]*domain.Bootcamp, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find bootcamps: %w", err)
	}
	var docs []bootcampDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode bootcamps: %w", err)
	}

	out := make([]*domain.Bootcamp, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// Update replaces the stored document. Averages are owned by RefreshAverages
// and are carried over from the stored copy.
func (r *BootcampRepository) Update(ctx context.Context, b *domain.Bootcamp) (*domain.Bootcamp, error) {
	oid, err := objectID(b.ID, domain.ErrBootcampNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update, err := bootcampUpdate(b)
	if err != nil {
		return nil, err
	}

	var updated bootcampDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, domain.ErrBootcampNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, domain.ErrBootcampNameTaken
	case err != nil:
		return nil, fmt.Errorf("update bootcamp: %w", err)
	}
	return updated.toDomain(), nil
}

// bootcampUpdate builds the update document for b. A nil location unsets the
// stored one, since omitempty keeps it out of $set.
func bootcampUpdate(b *domain.Bootcamp) (bson.M, error) {
	set, err := toSetDoc(newBootcampDoc(b), "_id", "average_rating", "average_cost", "created_at")
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": set}
	if b.Location == nil {
		update["$unset"] = bson.M{"location": ""}
	}
	return update, nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete bootcamp: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBootcampNotFound
	}
	return nil
}

// RefreshAverages aggregates course tuition and review ratings for the
// bootcamp. The cost is rounded up to the next multiple of ten.
func (r *BootcampRepository) RefreshAverages(ctx context.Context, id string) error {
	oid, err := objectID(id, domain.ErrBootcampNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cost, err := average(ctx, r.courses, oid, "$tuition")
	if err != nil {
		return fmt.Errorf("average tuition: %w", err)
	}
	rating, err := average(ctx, r.reviews, oid, "$rating")
	if err != nil {
		return fmt.Errorf("average rating: %w", err)
	}

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"average_cost":   math.Ceil(cost/10) * 10,
		"average_rating": rating,
	}})
	if err != nil {
		return fmt.Errorf("store averages: %w", err)
	}
	return nil
}

func average(ctx context.Context, col *mongo.Collection, bootcamp primitive.ObjectID, field string) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bootcamp": bootcamp}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "avg": bson.M{"$avg": field}}}},
	}
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var rows []struct {
		Avg float64 `bson:"avg"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Avg, nil
}

// toSetDoc marshals v into a $set document without the named keys.
func toSetDoc(v any, omit ...string) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal update: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshal update: %w", err)
	}
	for _, k := range omit {
		delete(m, k)
	}
	return m, nil
}
