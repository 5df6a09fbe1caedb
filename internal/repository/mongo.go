package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores entities as documents keyed by their "id" field.
type MongoRepository[T Entity] struct {
	coll *mongo.Collection
}

func NewMongoRepository[T Entity](db *mongo.Database) *MongoRepository[T] {
	var zero T
	return &MongoRepository[T]{coll: db.Collection(zero.TableName())}
}

func (r *MongoRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	return r.FindOne(ctx, Where(Eq("id", id)))
}

func (r *MongoRepository[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	var out T
	opts := options.FindOne()
	if filter.SortBy != "" {
		opts.SetSort(sortDoc(filter))
	}
	err := r.coll.FindOne(ctx, filterDoc(filter), opts).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("find %s: %w", r.coll.Name(), err)
	}
	return out, nil
}

func (r *MongoRepository[T]) FindMany(ctx context.Context, filter Filter) ([]T, error) {
	opts := options.Find()
	if filter.SortBy != "" {
		opts.SetSort(sortDoc(filter))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, filterDoc(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return out, nil
}

func (r *MongoRepository[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, filterDoc(filter))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

func (r *MongoRepository[T]) Insert(ctx context.Context, entity T) error {
	_, err := r.coll.InsertOne(ctx, entity)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", r.coll.Name(), err)
	}
	return nil
}

func (r *MongoRepository[T]) Update(ctx context.Context, entity T) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": entity.EntityID()}, entity)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T]) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if len(filter.Conditions) == 0 {
		return 0, ErrUnboundedQuery
	}
	res, err := r.coll.DeleteMany(ctx, filterDoc(filter))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", r.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

func filterDoc(filter Filter) bson.M {
	doc := bson.M{}
	for _, c := range filter.Conditions {
		switch c.Op {
		case OpGte:
			doc[c.Field] = bson.M{"$gte": c.Value}
		case OpLt:
			doc[c.Field] = bson.M{"$lt": c.Value}
		default:
			doc[c.Field] = c.Value
		}
	}
	return doc
}

func sortDoc(filter Filter) bson.D {
	dir := 1
	if filter.Desc {
		dir = -1
	}
	return bson.D{{Key: filter.SortBy, Value: dir}}
}
