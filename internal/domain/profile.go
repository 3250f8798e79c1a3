package domain

import "github.com/reelbites/reelbites/internal/docstore"

// Placeholder values substituted when a video's uploader has no profile
// document.
const (
	UnknownDisplayName = "Unknown"
	UnknownUsername    = "@unknown"
)

type UserProfile struct {
	ID           string
	DisplayName  string
	Username     string
	PhotoURL     string
	RestaurantID string
}

func UserProfileFromDocument(doc docstore.Document) UserProfile {
	return UserProfile{
		ID:           doc.ID,
		DisplayName:  stringField(doc.Fields, "displayName"),
		Username:     stringField(doc.Fields, "username"),
		PhotoURL:     stringField(doc.Fields, "photoURL"),
		RestaurantID: stringField(doc.Fields, "restaurantId"),
	}
}

// UnknownProfile is the stand-in for a missing uploader profile.
func UnknownProfile(id string) UserProfile {
	return UserProfile{
		ID:          id,
		DisplayName: UnknownDisplayName,
		Username:    UnknownUsername,
	}
}
