package models

import "time"

// ActionType tags a history record with the category of admin action it
// describes. The set mirrors the admin surface of the site: content, gallery,
// contact, about and settings management plus the auth flows.
type ActionType string

const (
	ActionCreateContent ActionType = "CREATE_CONTENT"
	ActionUpdateContent ActionType = "UPDATE_CONTENT"
	ActionDeleteContent ActionType = "DELETE_CONTENT"
	ActionViewContent   ActionType = "VIEW_CONTENT"

	ActionCreateGallery    ActionType = "CREATE_GALLERY"
	ActionUpdateGallery    ActionType = "UPDATE_GALLERY"
	ActionDeleteGallery    ActionType = "DELETE_GALLERY"
	ActionViewGallery      ActionType = "VIEW_GALLERY"
	ActionViewGalleryAdmin ActionType = "VIEW_GALLERY_ADMIN"

	ActionCreateContact ActionType = "CREATE_CONTACT"
	ActionUpdateContact ActionType = "UPDATE_CONTACT"
	ActionDeleteContact ActionType = "DELETE_CONTACT"
	ActionViewContact   ActionType = "VIEW_CONTACT"

	ActionUpdateAbout ActionType = "UPDATE_ABOUT"

	ActionUpdateAdminSettings ActionType = "UPDATE_ADMIN_SETTINGS"
	ActionViewAdminSettings   ActionType = "VIEW_ADMIN_SETTINGS"

	ActionUserLogin    ActionType = "USER_LOGIN"
	ActionUserLogout   ActionType = "USER_LOGOUT"
	ActionUserRegister ActionType = "USER_REGISTER"
)

// KnownActionTypes is the full set of recognized tags. The write primitive
// itself stays permissive (system callers may log tags outside this set); the
// manual-entry endpoint validates against it.
var KnownActionTypes = map[ActionType]bool{
	ActionCreateContent:       true,
	ActionUpdateContent:       true,
	ActionDeleteContent:       true,
	ActionViewContent:         true,
	ActionCreateGallery:       true,
	ActionUpdateGallery:       true,
	ActionDeleteGallery:       true,
	ActionViewGallery:         true,
	ActionViewGalleryAdmin:    true,
	ActionCreateContact:       true,
	ActionUpdateContact:       true,
	ActionDeleteContact:       true,
	ActionViewContact:         true,
	ActionUpdateAbout:         true,
	ActionUpdateAdminSettings: true,
	ActionViewAdminSettings:   true,
	ActionUserLogin:           true,
	ActionUserLogout:          true,
	ActionUserRegister:        true,
}

// AdminVisibleActionTypes is the allow-list applied by the default admin
// history listing. Read-only VIEW_* actions are noise in the dashboard and are
// filtered out there, but they are still written and still reachable through
// the unfiltered listing. This asymmetry (permissive write path, filtered read
// surface) is deliberate; tightening the write path would break system entries
// logged outside the admin vocabulary.
var AdminVisibleActionTypes = []ActionType{
	ActionCreateContent, ActionUpdateContent, ActionDeleteContent,
	ActionCreateGallery, ActionUpdateGallery, ActionDeleteGallery,
	ActionCreateContact, ActionUpdateContact, ActionDeleteContact,
	ActionUpdateAbout,
	ActionUpdateAdminSettings,
	ActionUserLogin, ActionUserLogout, ActionUserRegister,
}

// HistoryRecord is a single append-only activity record. Records are never
// updated; the only delete path is the administrative retention purge.
// CreatedAt is the sole ordering signal for reads (descending). Records with
// identical timestamps have no defined relative order.
type HistoryRecord struct {
	ID          string                 `json:"id" firestore:"-"`
	ActionType  ActionType             `json:"actionType" firestore:"actionType"`
	Description string                 `json:"description" firestore:"description"`
	UserID      string                 `json:"userId,omitempty" firestore:"userId,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty" firestore:"data,omitempty"`
	IPAddress   string                 `json:"ipAddress,omitempty" firestore:"ipAddress,omitempty"`
	CreatedAt   time.Time              `json:"createdAt" firestore:"createdAt"`
}

// HistoryEntry is a record joined with its resolved actor display name.
// UserID is a weak reference: if the user document is gone the record
// survives and ActorName falls back to "System".
type HistoryEntry struct {
	HistoryRecord
	ActorName string `json:"actorName"`
}

// HistoryFilter narrows a history listing. Zero values mean "no constraint".
// End is inclusive; callers expressing a calendar date should pass the end of
// that day.
type HistoryFilter struct {
	ActionType  ActionType
	ActionTypes []ActionType
	Start       time.Time
	End         time.Time
}

// ActionCount is one row of the per-action breakdown in HistoryStats.
type ActionCount struct {
	ActionType ActionType `json:"actionType"`
	Count      int        `json:"count"`
}

// HistoryStats aggregates the full history collection. Total always equals
// the sum of the per-action counts.
type HistoryStats struct {
	Total    int           `json:"total"`
	ByAction []ActionCount `json:"byAction"`
}
