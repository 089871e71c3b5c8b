package models

// JournalEntry is one dated note within a month's journal. Date carries the
// ordinal day label shown in the UI ("1st", "22nd"); Timestamp is the
// creation time in unix milliseconds and drives chronological ordering.
type JournalEntry struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Date         string `json:"date"`
	Timestamp    int64  `json:"timestamp"`
	AIReflection string `json:"aiReflection,omitempty"`
}

// PlannerEvent lives in the global planner, keyed by its literal date.
type PlannerEvent struct {
	ID    string `json:"id"`
	Date  string `json:"date"` // YYYY-MM-DD
	Title string `json:"title"`
	Time  string `json:"time"`
	Color string `json:"color"`
}

// ToDoItem is one line of the global to-do list, newest first.
type ToDoItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Date      string `json:"date"` // YYYY-MM-DD
}

// WeightPoint is one append-only sample of the weight history series.
type WeightPoint struct {
	Date   string  `json:"date"` // ordinal day label
	Weight float64 `json:"weight"`
}

// ActivityStats holds the daily counters and their goals. Counters only ever
// move up within a month; goals are fixed defaults.
type ActivityStats struct {
	Steps        int `json:"steps"`
	StepsGoal    int `json:"stepsGoal"`
	Calories     int `json:"calories"`
	CaloriesGoal int `json:"caloriesGoal"`
}

type FitnessStats struct {
	Weight        float64       `json:"weight"`
	WeightHistory []WeightPoint `json:"weightHistory"`
	Bench         float64       `json:"bench"`
	Squat         float64       `json:"squat"`
	Deadlift      float64       `json:"deadlift"`
	RunDistance   float64       `json:"runDistance"`
	Activity      ActivityStats `json:"activity"`
}

// CodingProblem is a logged practice problem, newest first.
type CodingProblem struct {
	ID    string `json:"id"`
	Link  string `json:"link"`
	Title string `json:"title"`
	Notes string `json:"notes"`
	Date  string `json:"date"`
}

type CodingStats struct {
	Problems []CodingProblem `json:"problems"`
	Skills   []string        `json:"skills"`
}

// LevelUpData is the full per-month aggregate persisted under one key.
type LevelUpData struct {
	Fitness FitnessStats `json:"fitness"`
	Coding  CodingStats  `json:"coding"`
}

// GalleryItem is the display projection of a stored media record: the blob
// is replaced by a URL that streams it on demand.
type GalleryItem struct {
	ID      int64  `json:"id"`
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Kind    string `json:"type"` // image | video
}
