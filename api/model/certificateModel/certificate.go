package certificatemodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HermawanSutanto/sertifikat-lokal2/type/shared/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionName = "certificates"
	queryTimeout   = 10 * time.Second
)

var ErrInvalidCursor = errors.New("pagination cursor does not reference a certificate of this user")

// CertificateRepository stores certificate records in MongoDB.
type CertificateRepository struct {
	db *mongo.Database
}

// NewCertificateRepository creates a new certificate repository with dependency injection
func NewCertificateRepository(db *mongo.Database) *CertificateRepository {
	return &CertificateRepository{db: db}
}

func (r *CertificateRepository) collection() *mongo.Collection {
	return r.db.Collection(collectionName)
}

// EnsureIndexes creates the index backing per-user listing in newest-first order.
func (r *CertificateRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.collection().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		},
	})
	if err != nil {
		slog.Error("Certificate EnsureIndexes", "error", err)
		return err
	}
	return nil
}

// InsertBatch writes all records in one transaction: either every record is stored or none is.
func (r *CertificateRepository) InsertBatch(ctx context.Context, certs []*model.Certificate) error {
	if len(certs) == 0 {
		return nil
	}

	docs := make([]any, len(certs))
	for i, cert := range certs {
		docs[i] = cert
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		slog.Error("Certificate InsertBatch start session", "error", err)
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return r.collection().InsertMany(sc, docs)
	})
	if err != nil {
		slog.Error("Certificate InsertBatch", "error", err, "count", len(certs))
		return err
	}

	slog.Info("Certificate InsertBatch", "count", len(certs), "batch_id", certs[0].BatchID)
	return nil
}

func (r *CertificateRepository) GetById(ctx context.Context, certId string) (*model.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var cert model.Certificate
	err := r.collection().FindOne(ctx, bson.M{"_id": certId}).Decode(&cert)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		slog.Error("Certificate GetById", "error", err, "id", certId)
		return nil, err
	}

	return &cert, nil
}

// GetPageByUser returns up to limit certificates of the user, newest first, starting after
// the certificate afterId. hasMore reports whether another page exists.
func (r *CertificateRepository) GetPageByUser(ctx context.Context, userId string, afterId string, limit int) ([]*model.Certificate, bool, error) {
	filter := bson.M{"user_id": userId}

	if afterId != "" {
		last, err := r.GetById(ctx, afterId)
		if err != nil {
			return nil, false, err
		}
		if last == nil || last.UserID != userId {
			return nil, false, ErrInvalidCursor
		}
		filter = AfterCursorFilter(userId, last)
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit + 1))

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		slog.Error("Certificate GetPageByUser", "error", err, "user_id", userId)
		return nil, false, err
	}
	defer cursor.Close(ctx)

	var certs []*model.Certificate
	if err := cursor.All(ctx, &certs); err != nil {
		slog.Error("Certificate GetPageByUser decode", "error", err, "user_id", userId)
		return nil, false, err
	}

	page, hasMore := TrimPage(certs, limit)
	return page, hasMore, nil
}

// AfterCursorFilter matches the user's certificates that sort after last in
// (created_at desc, _id desc) order.
func AfterCursorFilter(userId string, last *model.Certificate) bson.M {
	return bson.M{
		"user_id": userId,
		"$or": bson.A{
			bson.M{"created_at": bson.M{"$lt": last.CreatedAt}},
			bson.M{"created_at": last.CreatedAt, "_id": bson.M{"$lt": last.ID}},
		},
	}
}

// TrimPage cuts a limit+1 result down to limit and reports whether it was longer.
func TrimPage(certs []*model.Certificate, limit int) ([]*model.Certificate, bool) {
	if len(certs) > limit {
		return certs[:limit], true
	}
	return certs, false
}

func (r *CertificateRepository) GetAllByUser(ctx context.Context, userId string) ([]*model.Certificate, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection().Find(ctx, bson.M{"user_id": userId}, opts)
	if err != nil {
		slog.Error("Certificate GetAllByUser", "error", err, "user_id", userId)
		return nil, err
	}
	defer cursor.Close(ctx)

	var certs []*model.Certificate
	if err := cursor.All(ctx, &certs); err != nil {
		slog.Error("Certificate GetAllByUser decode", "error", err, "user_id", userId)
		return nil, err
	}

	return certs, nil
}
