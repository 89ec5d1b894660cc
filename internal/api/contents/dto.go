package contents

import (
	"time"

	"classroom-app/internal/domain/content"
	"classroom-app/internal/domain/contentform"
)

type FileDTO struct {
	Path     string `json:"path" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

type ContentRequest struct {
	EntityType    string   `json:"entity_type" binding:"required"`
	EntityID      uint     `json:"entity_id" binding:"required"`
	ContentType   string   `json:"content_type" binding:"required,oneof=text file"`
	Title         string   `json:"title"`
	TitleRequired bool     `json:"title_required"`
	Body          string   `json:"body"`
	File          *FileDTO `json:"file"`
	AccessMode    string   `json:"access_mode" binding:"required"`
	Price         float64  `json:"price"`
	AuthorizedIDs []uint   `json:"authorized_user_ids"`
}

// form replays the request through the composition state machine, so the API
// enforces exactly the rules the client-side form does.
func (r ContentRequest) form() (*contentform.Form, error) {
	f := contentform.New(content.ContentType(r.ContentType))
	f.Title = r.Title
	f.TitleRequired = r.TitleRequired
	f.Body = r.Body
	if r.File != nil {
		f.File = &content.FileData{
			Path:     r.File.Path,
			Name:     r.File.Name,
			Size:     r.File.Size,
			MimeType: r.File.MimeType,
		}
	}

	if err := f.SetMode(contentform.AccessMode(r.AccessMode)); err != nil {
		return nil, err
	}
	if f.Mode == contentform.ModePaid {
		if err := f.SetPrice(r.Price); err != nil {
			return nil, err
		}
	}
	if f.Mode == contentform.ModeRestricted {
		if err := f.SetAuthorizedUsers(r.AuthorizedIDs); err != nil {
			return nil, err
		}
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

type ContentDTO struct {
	ID          uint             `json:"id"`
	EntityType  string           `json:"entity_type"`
	EntityID    uint             `json:"entity_id"`
	Title       string           `json:"title"`
	ContentType string           `json:"content_type"`
	IsPublic    bool             `json:"is_public"`
	Price       float64          `json:"price"`
	CreatedAt   time.Time        `json:"created_at"`
	Access      content.Decision `json:"access"`

	// Data is omitted when the caller is not allowed to view the item, so
	// a locked listing still renders its purchase or request affordance.
	Data *content.Data `json:"data,omitempty"`
}

func toContentDTO(item content.Item, decision content.Decision) ContentDTO {
	dto := ContentDTO{
		ID:          item.ID,
		EntityType:  item.EntityType,
		EntityID:    item.EntityID,
		Title:       item.Title,
		ContentType: string(item.ContentType),
		IsPublic:    item.IsPublic,
		Price:       item.Price,
		CreatedAt:   item.CreatedAt,
		Access:      decision,
	}
	if decision.Allowed {
		data := item.Data
		dto.Data = &data
	}
	return dto
}
