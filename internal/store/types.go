package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

// ProgressRow is one topic of the catalog joined with a user's submission
// state. completed/marks default to false/0 when no submission exists.
type ProgressRow struct {
	TopicID    int64  `db:"topic_id" json:"topicId"`
	ModuleName string `db:"module_name" json:"module_name"`
	TopicName  string `db:"topic_name" json:"topic_name"`
	Completed  bool   `db:"completed" json:"completed"`
	Marks      int    `db:"marks" json:"marks"`
}
