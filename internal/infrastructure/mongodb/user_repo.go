package mongodb

import (
	"context"
	"errors"
	"strings"

	"github.com/ErlanBelekov/account-service/internal/domain"
	"github.com/ErlanBelekov/account-service/internal/password"
	"github.com/ErlanBelekov/account-service/internal/repository"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	collectionName = "users"

	idIndex    = "users_id_unique"
	emailIndex = "users_email_unique"
)

// userDocument is the stored shape. The logical id is a uuid string kept
// apart from the store-assigned _id.
type userDocument struct {
	ID       string `bson:"id"`
	Email    string `bson:"email"`
	Password string `bson:"password"`
	Name     string `bson:"name"`
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{ID: d.ID, Email: d.Email, PasswordHash: d.Password, Name: d.Name}
}

type UserRepository struct {
	users  *mongo.Collection
	hasher password.Hasher
	tokens repository.TokenIssuer
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database, hasher password.Hasher, tokens repository.TokenIssuer) *UserRepository {
	return &UserRepository{
		users:  db.Collection(collectionName),
		hasher: hasher,
		tokens: tokens,
	}
}

// EnsureIndexes creates the unique indexes Create relies on for atomicity.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true).SetName(idIndex)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndex)},
	})
	if err != nil {
		return domain.NewGenericError("create user indexes", err)
	}
	return nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]domain.UserSummary, error) {
	cursor, err := r.users.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, domain.NewGenericError("find users", err)
	}

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewGenericError("decode users", err)
	}

	users := make([]domain.UserSummary, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain().Summary())
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.UserSummary, error) {
	u, err := r.findOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	s := u.Summary()
	return &s, nil
}

func (r *UserRepository) Create(ctx context.Context, user domain.UnsavedUser) (string, error) {
	hash, err := r.hasher.Hash(user.Password)
	if errors.Is(err, domain.ErrPasswordTooLong) {
		return "", err
	}
	if err != nil {
		return "", domain.NewGenericError("hash password", err)
	}

	doc := userDocument{
		ID:       uuid.NewString(),
		Email:    user.Email,
		Password: hash,
		Name:     user.Name,
	}

	existing, err := r.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "id", Value: doc.ID}},
		bson.D{{Key: "email", Value: doc.Email}},
	}}})
	if err != nil {
		return "", err
	}
	if existing != nil {
		if existing.Email == doc.Email {
			return "", domain.ErrEmailAlreadyExists
		}
		return "", domain.ErrUserAlreadyExists
	}

	// A concurrent insert can still win between the check and here; the
	// unique indexes reject the loser.
	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", duplicateKeyError(err)
		}
		return "", domain.NewGenericError("insert user", err)
	}

	return doc.ID, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.users.DeleteOne(ctx, bson.D{{Key: "id", Value: id}})
	if err != nil {
		return domain.NewGenericError("delete user", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Login(ctx context.Context, cred domain.UserCredential) (*domain.UserProfile, error) {
	u, err := r.findOne(ctx, bson.D{{Key: "email", Value: cred.Email}})
	if err != nil {
		return nil, err
	}
	return repository.CompleteLogin(u, cred, r.hasher, r.tokens)
}

// findOne returns nil, nil when nothing matches.
func (r *UserRepository) findOne(ctx context.Context, filter bson.D) (*domain.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, domain.NewGenericError("find user", err)
	}
	return doc.toDomain(), nil
}

// duplicateKeyError tells the two unique indexes apart by name.
func duplicateKeyError(err error) error {
	if strings.Contains(err.Error(), idIndex) {
		return domain.ErrUserAlreadyExists
	}
	return domain.ErrEmailAlreadyExists
}
