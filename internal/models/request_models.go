package models

// CreateContentRequest carries the non-file fields of the multipart content
// form. The image arrives as a separate file part.
type CreateContentRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	Category    string `form:"category" binding:"required"`
}

// UpdateContentRequest carries partial content updates.
// Pointers are used to distinguish between empty values and fields not provided.
type UpdateContentRequest struct {
	Title       *string `form:"title"`
	Description *string `form:"description"`
	Category    *string `form:"category"`
	IsActive    *bool   `form:"isActive"`
}

// CreateGalleryRequest carries the non-file fields of the gallery form.
type CreateGalleryRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description"`
	Category    string  `form:"category" binding:"required"`
	Price       float64 `form:"price"`
}

// UpdateGalleryRequest carries partial gallery updates.
// Pointers are used to distinguish between empty values and fields not provided.
type UpdateGalleryRequest struct {
	Title       *string  `form:"title"`
	Description *string  `form:"description"`
	Category    *string  `form:"category"`
	Price       *float64 `form:"price"`
	IsActive    *bool    `form:"isActive"`
}

// CreateContactRequest is the public contact-form payload.
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}

// ReplyContactRequest is the admin reply to a contact message.
type ReplyContactRequest struct {
	Message string `json:"message" binding:"required"`
}

// UpsertAboutRequest carries the non-file fields of the about-page form.
// Banner and story images arrive as file parts.
type UpsertAboutRequest struct {
	BannerTitle       string `form:"bannerTitle" binding:"required"`
	BannerDescription string `form:"bannerDescription" binding:"required"`
	StoryTitle        string `form:"storyTitle" binding:"required"`
	Paragraph1        string `form:"paragraph1"`
	Paragraph2        string `form:"paragraph2"`
	Paragraph3        string `form:"paragraph3"`
}

// UpdateAdminSettingsRequest changes the admin account's Firebase email
// and/or password. At least one of NewEmail/NewPassword must be set; the
// handler enforces that.
type UpdateAdminSettingsRequest struct {
	NewEmail    string `json:"newEmail"`
	NewPassword string `json:"newPassword"`
}

// CreateHistoryRequest is a manually submitted history entry. Unlike the
// internal write primitive, this endpoint validates ActionType against the
// known set.
type CreateHistoryRequest struct {
	ActionType  ActionType `json:"actionType" binding:"required"`
	Description string     `json:"description" binding:"required"`
}
