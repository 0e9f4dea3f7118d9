package db

import (
	"context"

	"github.com/shandysiswandi/gotp/internal/auth/entity"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// findOneAndUpdate applies update to the user with the given hex id and
// returns the document as it is after the update. The single round trip is
// what keeps concurrent OTP state changes last-writer-wins per field.
//
// updated_at is deliberately left out of every update here: OTP state changes
// do not count as profile edits.
func (s *DB) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*entity.User, error) {
	oid, err := s.objectID(id)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u entity.User
	if err := s.mapError(s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&u)); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *DB) SetOTPSecret(ctx context.Context, id, base32, authURL string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "SetOTPSecret")
	defer func() { s.endSpan(span, err) }()

	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"otp_base32": base32, "otp_auth_url": authURL},
	})
}

func (s *DB) EnableOTP(ctx context.Context, id string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "EnableOTP")
	defer func() { s.endSpan(span, err) }()

	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"otp_enabled": true, "otp_verified": true},
	})
}

func (s *DB) DisableOTP(ctx context.Context, id string) (user *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "DisableOTP")
	defer func() { s.endSpan(span, err) }()

	return s.findOneAndUpdate(ctx, id, bson.M{
		"$set": bson.M{"otp_enabled": false},
	})
}
