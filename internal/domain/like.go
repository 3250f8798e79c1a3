package domain

import "github.com/reelbites/reelbites/internal/docstore"

// Like records that a user liked a video. Written elsewhere in the system;
// the feed path only reads them.
type Like struct {
	ID      string
	UserID  string
	VideoID string
	Type    string
}

func LikeFromDocument(doc docstore.Document) Like {
	return Like{
		ID:      doc.ID,
		UserID:  stringField(doc.Fields, FieldUserID),
		VideoID: stringField(doc.Fields, FieldVideoID),
		Type:    stringField(doc.Fields, FieldType),
	}
}

// IsLike reports whether the record is an actual like, as opposed to another
// reaction kind stored in the same collection.
func (l Like) IsLike() bool {
	return l.Type == LikeType
}
