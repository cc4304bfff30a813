package models

type Assignment struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	TopicID   int64  `db:"topic_id" json:"topic_id"`
	FilePath  string `db:"file_path" json:"file_path"`
	Marks     int    `db:"marks" json:"marks"`
	Completed bool   `db:"completed" json:"completed"`
}

// unique_together is handled on DB level:
/*
CREATE TABLE assignments (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    topic_id BIGINT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
    file_path TEXT NOT NULL,
    marks INTEGER NOT NULL DEFAULT 0,
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (user_id, topic_id)
);
*/
