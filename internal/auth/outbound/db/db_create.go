package db

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *DB) CreateUser(ctx context.Context, user entity.User) (id string, err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return "", s.mapError(err)
	}

	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", nil
	}

	return oid.Hex(), nil
}
