package domain

// Collection names in the document store.
const (
	CollectionLikes  = "likes"
	CollectionVideos = "videos"
	CollectionUsers  = "users"
)

// Field names used in store queries.
const (
	FieldUserID  = "userId"
	FieldVideoID = "videoId"
	FieldType    = "type"
)

// LikeType is the value of the type field on like documents. The likes
// collection also holds other reaction kinds, so readers must filter.
const LikeType = "like"
