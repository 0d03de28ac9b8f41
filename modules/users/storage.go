package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/tourkit/pkg/auth"
)

const usersCollection = "users"

// MongoStorage persists users in a MongoDB collection and implements
// auth.UserStorage. All lookups exclude soft-deleted users.
type MongoStorage struct {
	coll *mongo.Collection
}

// NewMongoStorage creates a storage backed by the "users" collection of db.
func NewMongoStorage(db *mongo.Database) *MongoStorage {
	return &MongoStorage{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}
	return nil
}

// userDoc is the persisted shape. The id is stored as its string form so the
// document survives driver codec changes without a custom uuid registry.
type userDoc struct {
	ID                     string     `bson:"_id"`
	Name                   string     `bson:"name"`
	Email                  string     `bson:"email"`
	Photo                  string     `bson:"photo,omitempty"`
	Role                   string     `bson:"role"`
	PasswordHash           []byte     `bson:"password_hash"`
	PasswordChangedAt      *time.Time `bson:"password_changed_at,omitempty"`
	PasswordResetTokenHash string     `bson:"password_reset_token_hash,omitempty"`
	PasswordResetExpiresAt *time.Time `bson:"password_reset_expires_at,omitempty"`
	Active                 bool       `bson:"active"`
	CreatedAt              time.Time  `bson:"created_at"`
}

func toDoc(u *auth.User) userDoc {
	return userDoc{
		ID:                     u.ID.String(),
		Name:                   u.Name,
		Email:                  u.Email,
		Photo:                  u.Photo,
		Role:                   u.Role,
		PasswordHash:           u.PasswordHash,
		PasswordChangedAt:      u.PasswordChangedAt,
		PasswordResetTokenHash: u.PasswordResetTokenHash,
		PasswordResetExpiresAt: u.PasswordResetExpiresAt,
		Active:                 u.Active,
		CreatedAt:              u.CreatedAt,
	}
}

func (d userDoc) toUser() (*auth.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("corrupt user id %q: %w", d.ID, err)
	}
	return &auth.User{
		ID:                     id,
		Name:                   d.Name,
		Email:                  d.Email,
		Photo:                  d.Photo,
		Role:                   d.Role,
		PasswordHash:           d.PasswordHash,
		PasswordChangedAt:      d.PasswordChangedAt,
		PasswordResetTokenHash: d.PasswordResetTokenHash,
		PasswordResetExpiresAt: d.PasswordResetExpiresAt,
		Active:                 d.Active,
		CreatedAt:              d.CreatedAt,
	}, nil
}

// activeFilter matches documents not soft-deleted. It uses $ne false so
// legacy documents written before the flag existed still match.
func activeFilter(extra bson.M) bson.M {
	filter := bson.M{"active": bson.M{"$ne": false}}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

func (s *MongoStorage) CreateUser(ctx context.Context, user *auth.User) error {
	if _, err := s.coll.InsertOne(ctx, toDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return s.findOne(ctx, activeFilter(bson.M{"_id": id.String()}))
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, activeFilter(bson.M{"email": email}))
}

func (s *MongoStorage) GetUserByResetTokenDigest(ctx context.Context, digest string) (*auth.User, error) {
	return s.findOne(ctx, activeFilter(bson.M{
		"password_reset_token_hash": digest,
		"password_reset_expires_at": bson.M{"$gt": time.Now()},
	}))
}

func (s *MongoStorage) SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error {
	return s.updateOne(ctx, id, bson.M{"$set": bson.M{
		"password_reset_token_hash": digest,
		"password_reset_expires_at": expiresAt,
	}})
}

func (s *MongoStorage) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	return s.updateOne(ctx, id, bson.M{"$unset": bson.M{
		"password_reset_token_hash": "",
		"password_reset_expires_at": "",
	}})
}

func (s *MongoStorage) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte, changedAt time.Time) error {
	return s.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"password_hash":       hash,
			"password_changed_at": changedAt,
		},
		"$unset": bson.M{
			"password_reset_token_hash": "",
			"password_reset_expires_at": "",
		},
	})
}

func (s *MongoStorage) ListUsers(ctx context.Context) ([]*auth.User, error) {
	cursor, err := s.coll.Find(ctx, activeFilter(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx) //nolint:errcheck

	var users []*auth.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		user, err := doc.toUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.M) (*auth.User, error) {
	var doc userDoc
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return doc.toUser()
}

func (s *MongoStorage) updateOne(ctx context.Context, id uuid.UUID, update bson.M) error {
	res, err := s.coll.UpdateOne(ctx, activeFilter(bson.M{"_id": id.String()}), update)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}
