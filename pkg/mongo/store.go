package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
)

// Collection is the subset of *mongo.Collection used by Store.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...options.Lister[options.FindOneOptions]) *mongo.SingleResult
	CountDocuments(ctx context.Context, filter any, opts ...options.Lister[options.CountOptions]) (int64, error)
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...options.Lister[options.ReplaceOptions]) (*mongo.UpdateResult, error)
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

type document struct {
	ID          string    `bson:"_id"`
	ProviderID  string    `bson:"provider_id"`
	ProviderKey string    `bson:"provider_key"`
	LastUsedAt  time.Time `bson:"last_used_at,omitempty"`
	ExpiresAt   time.Time `bson:"expires_at,omitempty"`
	IdleTimeout int64     `bson:"idle_timeout,omitempty"`
	Fingerprint string    `bson:"fingerprint,omitempty"`
	ClientIP    string    `bson:"client_ip,omitempty"`
	Revoked     bool      `bson:"revoked,omitempty"`
}

func toDocument(a authenticator.Authenticator) document {
	return document{
		ID:          a.ID,
		ProviderID:  a.LoginInfo.ProviderID,
		ProviderKey: a.LoginInfo.ProviderKey,
		LastUsedAt:  a.LastUsedAt,
		ExpiresAt:   a.ExpiresAt,
		IdleTimeout: int64(a.IdleTimeout),
		Fingerprint: a.Fingerprint,
		ClientIP:    a.ClientIP,
	}
}

func (d document) authenticator() authenticator.Authenticator {
	return authenticator.Authenticator{
		ID:          d.ID,
		LoginInfo:   authenticator.LoginInfo{ProviderID: d.ProviderID, ProviderKey: d.ProviderKey},
		LastUsedAt:  d.LastUsedAt,
		ExpiresAt:   d.ExpiresAt,
		IdleTimeout: time.Duration(d.IdleTimeout),
		Fingerprint: d.Fingerprint,
		ClientIP:    d.ClientIP,
	}
}

// activeFilter matches the authenticator with id unless it was revoked.
func activeFilter(id string) bson.M {
	return bson.M{"_id": id, "revoked": bson.M{"$ne": true}}
}

// Store keeps one document per authenticator, keyed by its id.
// Revoked documents are kept with revoked=true.
type Store struct {
	coll Collection
}

func NewStore(coll Collection) *Store {
	return &Store{coll: coll}
}

// Save upserts a, clearing any previous revocation.
func (s *Store) Save(ctx context.Context, a authenticator.Authenticator) error {
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, toDocument(a), options.Replace().SetUpsert(true))
	return err
}

// Find implements authenticator.Repository.
func (s *Store) Find(ctx context.Context, id string) (authenticator.Authenticator, error) {
	var doc document
	err := s.coll.FindOne(ctx, activeFilter(id)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return authenticator.Authenticator{}, authenticator.ErrNotFound
	}
	if err != nil {
		return authenticator.Authenticator{}, err
	}
	return doc.authenticator(), nil
}

func (s *Store) Revoke(ctx context.Context, id string) error {
	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"revoked": true}})
	return err
}

// Exists reports whether a non-revoked document for a exists. It has the
// shape of a backing-store predicate.
func (s *Store) Exists(ctx context.Context, a authenticator.Authenticator) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, activeFilter(a.ID), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
