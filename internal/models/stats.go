package models

// TopicCount is one row of the per-topic solved breakdown.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// Stats summarises a user's solved problems.
type Stats struct {
	TotalSolved         int            `json:"totalSolved"`
	DifficultyBreakdown map[string]int `json:"difficultyBreakdown"`
	TopicBreakdown      []TopicCount   `json:"topicBreakdown"`
}

// NewStats returns zeroed stats with every difficulty present.
func NewStats() *Stats {
	s := &Stats{
		DifficultyBreakdown: make(map[string]int, len(Difficulties)),
		TopicBreakdown:      []TopicCount{},
	}
	for _, d := range Difficulties {
		s.DifficultyBreakdown[d] = 0
	}
	return s
}
