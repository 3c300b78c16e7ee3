package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/labsuite/user-access-api/internal/core/domain"
)

const rolesCollection = "roles"

// RoleRepository persists the role catalog in MongoDB.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(rolesCollection)}
}

func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storeErr("count roles", err)
	}
	return n, nil
}

func (r *RoleRepository) InsertMany(ctx context.Context, roles []domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(roles))
	for i, role := range roles {
		docs[i] = role
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return storeErr("insert roles", err)
	}
	return nil
}

func (r *RoleRepository) Insert(ctx context.Context, role domain.Role) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, role); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateRole
		}
		return storeErr("insert role", err)
	}
	return nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var role domain.Role
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, storeErr("find role", err)
	}
	return &role, nil
}

func (r *RoleRepository) FindAll(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list roles", err)
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, storeErr("decode roles", err)
	}
	return roles, nil
}

func (r *RoleRepository) UpdatePermissions(ctx context.Context, name string, permissions []string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"permissions": permissions}},
	)
	if err != nil {
		return 0, storeErr("update role permissions", err)
	}
	return res.MatchedCount, nil
}

// EnsureIndexes creates the unique index on role name.
func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetName("role_name_unique").SetUnique(true),
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, idx); err != nil {
		return fmt.Errorf("ensure role indexes: %w", err)
	}
	return nil
}
