package mongostore

import (
	"context"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) EnsureProfile(ctx context.Context, userID string) (*models.Profile, error) {
	owner, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	n, err := s.users.CountDocuments(ctx, bson.M{"_id": owner}, options.Count().SetLimit(1))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, store.ErrNotFound
	}

	now := s.now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"user":      owner,
		"bio":       "",
		"company":   "",
		"location":  "",
		"skills":    bson.A{},
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc profileDoc
	err = s.profiles.FindOneAndUpdate(ctx, bson.M{"user": owner}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert won the unique index race; read its document.
		err = s.profiles.FindOne(ctx, bson.M{"user": owner}).Decode(&doc)
	}
	if err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}

func (s *Store) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.Profile, error) {
	owner, err := objectID(userID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": s.now().UTC()}
	if upd.Bio != nil {
		set["bio"] = *upd.Bio
	}
	if upd.Company != nil {
		set["company"] = *upd.Company
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Skills != nil {
		set["skills"] = *upd.Skills
	}
	if upd.TargetRole != nil {
		set["targetRole"] = *upd.TargetRole
	}
	if upd.GraduationYear != nil {
		set["graduationYear"] = *upd.GraduationYear
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc profileDoc
	if err := s.profiles.FindOneAndUpdate(ctx, bson.M{"user": owner}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return doc.model(), nil
}
