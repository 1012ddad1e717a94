package mongostore

import (
	"context"

	"github.com/AnshRaj112/placement-tracker-backend/internal/models"
	"github.com/AnshRaj112/placement-tracker-backend/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) ListProblems(ctx context.Context, userID string, filter models.ProblemFilter) ([]models.Problem, error) {
	owner, err := objectID(userID)
	if err != nil {
		return []models.Problem{}, nil
	}

	query := bson.M{"user": owner}
	if filter.FavoritesOnly {
		query["isFavorite"] = true
	}

	cursor, err := s.problems.Find(ctx, query, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []models.Problem{}
	for cursor.Next(ctx) {
		var doc problemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.model())
	}
	return out, cursor.Err()
}

func (s *Store) CreateProblem(ctx context.Context, p *models.Problem) error {
	owner, err := objectID(p.UserID)
	if err != nil {
		return err
	}
	topic, err := topicRef(p.TopicID)
	if err != nil {
		return err
	}
	doc := problemDoc{
		ID:         primitive.NewObjectID(),
		User:       owner,
		Title:      p.Title,
		Difficulty: p.Difficulty,
		Topic:      topic,
		Platform:   p.Platform,
		ProblemURL: p.ProblemURL,
		Status:     p.Status,
		Attempts:   p.Attempts,
		Notes:      p.Notes,
		Solved:     p.Solved,
		IsFavorite: p.IsFavorite,
		SolvedAt:   p.SolvedAt,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.problems.InsertOne(ctx, doc); err != nil {
		return err
	}
	p.ID = doc.ID.Hex()
	p.CreatedAt = doc.CreatedAt
	return nil
}

func (s *Store) FindProblem(ctx context.Context, userID, id string) (*models.Problem, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}
	var doc problemDoc
	if err := s.problems.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	p := doc.model()
	return &p, nil
}

func (s *Store) ReplaceProblem(ctx context.Context, p *models.Problem) error {
	filter, err := ownedFilter(p.UserID, p.ID)
	if err != nil {
		return err
	}
	topic, err := topicRef(p.TopicID)
	if err != nil {
		return err
	}
	res, err := s.problems.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":       p.Title,
		"difficulty":  p.Difficulty,
		"topic":       topic,
		"platform":    p.Platform,
		"problem_url": p.ProblemURL,
		"status":      p.Status,
		"attempts":    p.Attempts,
		"notes":       p.Notes,
		"solved":      p.Solved,
		"solved_at":   p.SolvedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ToggleFavorite negates isFavorite server-side in one round trip, so two
// concurrent toggles always cancel out.
func (s *Store) ToggleFavorite(ctx context.Context, userID, id string) (*models.Problem, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isFavorite", Value: bson.D{{Key: "$not", Value: bson.A{"$isFavorite"}}}},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc problemDoc
	if err := s.problems.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	p := doc.model()
	return &p, nil
}

func (s *Store) DeleteProblem(ctx context.Context, userID, id string) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}
	res, err := s.problems.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

type countRow struct {
	Key   string `bson:"_id"`
	Count int    `bson:"count"`
}

type statsResult struct {
	Total        []struct{ N int `bson:"n"` } `bson:"total"`
	ByDifficulty []countRow                  `bson:"byDifficulty"`
	ByTopic      []countRow                  `bson:"byTopic"`
}

func (s *Store) SolvedStats(ctx context.Context, userID string) (*models.Stats, error) {
	stats := models.NewStats()
	owner, err := objectID(userID)
	if err != nil {
		return stats, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user": owner, "solved": true}}},
		{{Key: "$facet", Value: bson.M{
			"total": bson.A{
				bson.M{"$count": "n"},
			},
			"byDifficulty": bson.A{
				bson.M{"$group": bson.M{"_id": "$difficulty", "count": bson.M{"$sum": 1}}},
			},
			"byTopic": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         topicsCollection,
					"localField":   "topic",
					"foreignField": "_id",
					"as":           "topicDoc",
				}},
				bson.M{"$group": bson.M{
					"_id": bson.M{"$ifNull": bson.A{
						bson.M{"$arrayElemAt": bson.A{"$topicDoc.name", 0}},
						store.UncategorizedTopic,
					}},
					"count": bson.M{"$sum": 1},
				}},
			},
		}}},
	}

	cursor, err := s.problems.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []statsResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return stats, nil
	}

	res := results[0]
	if len(res.Total) > 0 {
		stats.TotalSolved = res.Total[0].N
	}
	for _, row := range res.ByDifficulty {
		stats.DifficultyBreakdown[row.Key] = row.Count
	}
	for _, row := range res.ByTopic {
		stats.TopicBreakdown = append(stats.TopicBreakdown, models.TopicCount{Topic: row.Key, Count: row.Count})
	}
	store.SortTopicCounts(stats.TopicBreakdown)
	return stats, nil
}
