package domain

import "time"

// FeedItem is the display-ready projection of a video record. Derived fresh
// on every feed fetch, never persisted.
type FeedItem struct {
	ID                   string    `json:"id"`
	VideoSrc             string    `json:"videoSrc"`
	Caption              string    `json:"caption"`
	UploaderName         string    `json:"uploaderName"`
	UploaderUsername     string    `json:"uploaderUsername"`
	UploaderProfilePic   string    `json:"uploaderProfilePic"`
	UploaderRestaurantID string    `json:"uploaderRestaurantId"`
	TimeUploaded         string    `json:"timeUploaded"`
	Views                int       `json:"views"`
	UploadedAt           time.Time `json:"uploadedAt"`
}
