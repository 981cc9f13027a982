// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// SocialReviewTable represents the 'social.review' table
type SocialReviewTable struct {
	Table     string
	ID        string
	UserID    string
	PlayID    string
	Rating    string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// SocialReview is the schema definition for social.review
var SocialReview = SocialReviewTable{
	Table:     "social.review",
	ID:        "id",
	UserID:    "userid",
	PlayID:    "playid",
	Rating:    "rating",
	Content:   "content",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
