package content

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"classroom-app/internal/apperr"
)

type ContentType string

const (
	TypeText ContentType = "text"
	TypeFile ContentType = "file"
)

type TextData struct {
	Body string `json:"body"`
}

// FileData is metadata about an already-stored file; the bytes themselves
// live in the file store.
type FileData struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// Data is the content payload, a union keyed by the item's ContentType.
// Exactly one variant is set.
type Data struct {
	Text *TextData `json:"text,omitempty"`
	File *FileData `json:"file,omitempty"`
}

func (d Data) Value() (driver.Value, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Data) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = Data{}
		return nil
	default:
		return fmt.Errorf("unsupported content data source type %T", src)
	}
}

// CheckVariant verifies the payload matches the declared content type.
func (d Data) CheckVariant(t ContentType) error {
	switch t {
	case TypeText:
		if d.Text == nil || d.File != nil {
			return apperr.Validation("text content requires a text payload")
		}
	case TypeFile:
		if d.File == nil || d.Text != nil {
			return apperr.Validation("file content requires a file payload")
		}
	default:
		return apperr.Validationf("unknown content type %q", t)
	}
	return nil
}

// Item is a unit of content owned by a class, notice, quiz or game.
// Invariant: Price > 0 implies IsPublic = false.
type Item struct {
	ID          uint        `gorm:"primaryKey"`
	EntityType  string      `gorm:"type:varchar(20);not null;index:idx_content_entity"`
	EntityID    uint        `gorm:"not null;index:idx_content_entity"`
	Title       string      `gorm:"not null"`
	ContentType ContentType `gorm:"type:varchar(10);not null"`
	Data        Data        `gorm:"type:jsonb;column:content_data"`
	IsPublic    bool        `gorm:"not null;default:false"`
	Price       float64     `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Item) TableName() string { return "content" }

func (i Item) IsPaid() bool { return i.Price > 0 }

// AccessGrant is an explicit per-user access exception, independent of
// payment. The pair is unique; granting twice is a no-op.
type AccessGrant struct {
	ID        uint `gorm:"primaryKey"`
	ContentID uint `gorm:"not null;uniqueIndex:idx_content_user_perm"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_content_user_perm"`

	CreatedAt time.Time
}

func (AccessGrant) TableName() string { return "content_user_permissions" }
