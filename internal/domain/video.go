package domain

import (
	"time"

	"github.com/reelbites/reelbites/internal/docstore"
)

// VideoRecord is a stored video document. Immutable from the feed's
// perspective.
type VideoRecord struct {
	ID         string
	UploaderID string
	Caption    string
	MediaRef   string
	UploadedAt time.Time
	Views      int
}

func VideoRecordFromDocument(doc docstore.Document) VideoRecord {
	return VideoRecord{
		ID:         doc.ID,
		UploaderID: stringField(doc.Fields, "uploaderId"),
		Caption:    stringField(doc.Fields, "caption"),
		MediaRef:   stringField(doc.Fields, "mediaRef"),
		UploadedAt: timeField(doc.Fields, "uploadedAt"),
		Views:      intField(doc.Fields, "views"),
	}
}

func VideoRecordsFromDocuments(docs []docstore.Document) []VideoRecord {
	records := make([]VideoRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, VideoRecordFromDocument(doc))
	}
	return records
}
