package models

// Topic is one catalog row. IDs are pre-assigned by the seed list,
// module_name is a grouping label, not a separate entity.
type Topic struct {
	ID         int64  `db:"id" json:"id"`
	ModuleName string `db:"module_name" json:"module_name"`
	TopicName  string `db:"topic_name" json:"topic_name"`
}
