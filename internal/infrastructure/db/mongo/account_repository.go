package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

const accountsCollection = "accounts"

type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountsCollection)}
}

type mongoAccount struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	UserID            string             `bson:"user_id"`
	Provider          string             `bson:"provider"`
	ProviderAccountID string             `bson:"provider_account_id"`
	AccessToken       string             `bson:"access_token,omitempty"`
	RefreshToken      string             `bson:"refresh_token,omitempty"`
	IDToken           string             `bson:"id_token,omitempty"`
	ExpiresAt         int64              `bson:"expires_at,omitempty"`
	Scope             string             `bson:"scope,omitempty"`
	CreatedAt         int64              `bson:"created_at"`
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.LinkedAccount) (*domain.LinkedAccount, error) {
	doc := mongoAccount{
		UserID:            account.UserID,
		Provider:          account.Provider,
		ProviderAccountID: account.ProviderAccountID,
		AccessToken:       account.AccessToken,
		RefreshToken:      account.RefreshToken,
		IDToken:           account.IDToken,
		ExpiresAt:         account.ExpiresAt,
		Scope:             account.Scope,
		CreatedAt:         account.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountConflict
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return accountToDomain(doc), nil
}

func (r *MongoAccountRepository) FindByProvider(ctx context.Context, provider, providerAccountID string) (*domain.LinkedAccount, error) {
	var ma mongoAccount
	filter := bson.M{"provider": provider, "provider_account_id": providerAccountID}
	if err := r.coll.FindOne(ctx, filter).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return accountToDomain(ma), nil
}

func accountToDomain(ma mongoAccount) *domain.LinkedAccount {
	return &domain.LinkedAccount{
		ID:                ma.ID.Hex(),
		UserID:            ma.UserID,
		Provider:          ma.Provider,
		ProviderAccountID: ma.ProviderAccountID,
		AccessToken:       ma.AccessToken,
		RefreshToken:      ma.RefreshToken,
		IDToken:           ma.IDToken,
		ExpiresAt:         ma.ExpiresAt,
		Scope:             ma.Scope,
		CreatedAt:         time.Unix(ma.CreatedAt, 0).UTC(),
	}
}
