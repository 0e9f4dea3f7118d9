package db

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func (s *DB) GetUserByEmail(ctx context.Context, email string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var u entity.User
	if err = s.mapError(s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	oid, err := s.objectID(id)
	if err != nil {
		return nil, err
	}

	var u entity.User
	if err = s.mapError(s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)); err != nil {
		return nil, err
	}

	return &u, nil
}
