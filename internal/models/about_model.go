package models

import "time"

// About is the single-document about page: a banner section and a story
// section with up to a handful of images. There is exactly one About document;
// writes upsert it.
type About struct {
	ID                string    `json:"id" firestore:"-"`
	BannerTitle       string    `json:"bannerTitle" firestore:"bannerTitle"`
	BannerDescription string    `json:"bannerDescription" firestore:"bannerDescription"`
	BannerBg          string    `json:"bannerBg,omitempty" firestore:"bannerBg,omitempty"`
	StoryTitle        string    `json:"storyTitle" firestore:"storyTitle"`
	StoryImages       []string  `json:"storyImages,omitempty" firestore:"storyImages,omitempty"`
	Paragraph1        string    `json:"paragraph1,omitempty" firestore:"paragraph1,omitempty"`
	Paragraph2        string    `json:"paragraph2,omitempty" firestore:"paragraph2,omitempty"`
	Paragraph3        string    `json:"paragraph3,omitempty" firestore:"paragraph3,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt" firestore:"updatedAt"`
}
