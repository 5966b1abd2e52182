package domain

import "time"

// CREATE TABLE order_reviews (
//     review_id               VARCHAR(32) NOT NULL,
//     order_id                VARCHAR(32) NOT NULL,
//     review_score            SMALLINT NOT NULL,
//     review_comment_title    TEXT,
//     review_comment_message  TEXT,
//     review_creation_date    TIMESTAMP,
//     review_answer_timestamp TIMESTAMP,
//     PRIMARY KEY (review_id, order_id)
// );

// Review ids repeat across orders in the public dataset, so the table key
// is the pair.
type Review struct {
	ReviewID       string     `gorm:"primaryKey;column:review_id;type:varchar(32)" json:"review_id" validate:"required"`
	OrderID        string     `gorm:"primaryKey;column:order_id;type:varchar(32)" json:"order_id" validate:"required"`
	Score          int        `gorm:"column:review_score;type:smallint;not null" json:"score" validate:"gte=1,lte=5"`
	CommentTitle   string     `gorm:"column:review_comment_title;type:text" json:"comment_title"`
	CommentMessage string     `gorm:"column:review_comment_message;type:text" json:"comment_message"`
	CreatedAt      *time.Time `gorm:"column:review_creation_date;autoCreateTime:false" json:"created_at"`
	AnsweredAt     *time.Time `gorm:"column:review_answer_timestamp" json:"answered_at"`
}

func (Review) TableName() string {
	return "order_reviews"
}
