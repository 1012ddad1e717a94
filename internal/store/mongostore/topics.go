package mongostore

import (
	"context"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) ListTopics(ctx context.Context, userID string) ([]models.Topic, error) {
	owner, err := objectID(userID)
	if err != nil {
		return []models.Topic{}, nil
	}

	cursor, err := s.topics.Find(ctx, bson.M{"user": owner}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.Topic{}
	for cursor.Next(ctx) {
		var doc topicDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.model())
	}
	return out, cursor.Err()
}

func (s *Store) CreateTopic(ctx context.Context, t *models.Topic) error {
	owner, err := objectID(t.UserID)
	if err != nil {
		return err
	}
	now := s.now().UTC()
	doc := topicDoc{
		ID:             primitive.NewObjectID(),
		User:           owner,
		Name:           t.Name,
		Category:       t.Category,
		TotalHours:     t.TotalHours,
		CompletedHours: t.CompletedHours,
		Status:         t.Status,
		Priority:       t.Priority,
		Notes:          t.Notes,
		Completed:      t.Completed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.topics.InsertOne(ctx, doc); err != nil {
		return err
	}
	t.ID = doc.ID.Hex()
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

func (s *Store) FindTopic(ctx context.Context, userID, id string) (*models.Topic, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}
	var doc topicDoc
	if err := s.topics.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	t := doc.model()
	return &t, nil
}

func (s *Store) FindTopicByName(ctx context.Context, userID, name string) (*models.Topic, error) {
	owner, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	opts := options.FindOne().SetSort(bson.M{"_id": 1})
	var doc topicDoc
	if err := s.topics.FindOne(ctx, bson.M{"user": owner, "name": name}, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	t := doc.model()
	return &t, nil
}

func (s *Store) UpdateTopic(ctx context.Context, userID, id string, upd models.TopicUpdate) (*models.Topic, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": s.now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.TotalHours != nil {
		set["total_hours"] = *upd.TotalHours
	}
	if upd.CompletedHours != nil {
		set["completed_hours"] = *upd.CompletedHours
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.Notes != nil {
		set["notes"] = *upd.Notes
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc topicDoc
	if err := s.topics.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	t := doc.model()
	return &t, nil
}

func (s *Store) DeleteTopic(ctx context.Context, userID, id string) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}
	res, err := s.topics.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	// Problems keep existing but lose their topic reference.
	_, err = s.problems.UpdateMany(ctx,
		bson.M{"user": filter["user"], "topic": filter["_id"]},
		bson.M{"$set": bson.M{"topic": nil}},
	)
	return err
}
