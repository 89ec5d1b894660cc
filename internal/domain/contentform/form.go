// Package contentform models the content-composition form as an explicit
// state machine. Each editing session owns one Form; the API builds a Form
// from the request and refuses to persist until Validate passes.
package contentform

import (
	"github.com/go-playground/validator/v10"

	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"
)

type AccessMode string

const (
	ModePublic     AccessMode = "public"
	ModePrivate    AccessMode = "private"
	ModePaid       AccessMode = "paid"
	ModeRestricted AccessMode = "restricted"
)

var validate = validator.New()

type Form struct {
	Mode        AccessMode
	ContentType content.ContentType
	Title       string
	Body        string
	File        *content.FileData
	Price       float64
	Authorized  []uint

	// TitleRequired is set by the caller for surfaces where an untitled
	// item would be meaningless (e.g. notices).
	TitleRequired bool
}

// New starts a session in public mode, the form's initial state.
func New(contentType content.ContentType) *Form {
	return &Form{Mode: ModePublic, ContentType: contentType}
}

// SetMode switches the access mode and clears the fields the new mode does
// not use, so stale state from a previous selection never leaks into the
// saved item.
func (f *Form) SetMode(mode AccessMode) error {
	switch mode {
	case ModePublic, ModePrivate:
		f.Price = 0
		f.Authorized = nil
	case ModePaid:
		f.Authorized = nil
	case ModeRestricted:
		f.Price = 0
	default:
		return apperr.Validationf("unknown access mode %q", mode)
	}
	f.Mode = mode
	return nil
}

// SetPrice is only meaningful in paid mode.
func (f *Form) SetPrice(price float64) error {
	if f.Mode != ModePaid {
		return apperr.Validation("price can only be set on paid content")
	}
	if price < 0 {
		return apperr.Validation("price must not be negative")
	}
	f.Price = price
	return nil
}

// SetAuthorizedUsers records the restricted-mode selection. An empty set is
// allowed; it simply means nobody has been picked yet.
func (f *Form) SetAuthorizedUsers(userIDs []uint) error {
	if f.Mode != ModeRestricted {
		return apperr.Validation("authorized users can only be set on restricted content")
	}
	f.Authorized = userIDs
	return nil
}

// payload mirrors the form fields that have declarative rules; the rest is
// checked by hand below.
type payload struct {
	Mode        AccessMode          `validate:"required,oneof=public private paid restricted"`
	ContentType content.ContentType `validate:"required,oneof=text file"`
	Price       float64             `validate:"gte=0"`
}

// Validate runs the pre-submit checks. Nothing may be persisted, and no
// network call made, until this returns nil.
func (f *Form) Validate() error {
	if err := validate.Struct(payload{Mode: f.Mode, ContentType: f.ContentType, Price: f.Price}); err != nil {
		return apperr.Validation("invalid form state: " + err.Error())
	}
	if f.TitleRequired && f.Title == "" {
		return apperr.Validation("title is required")
	}
	if f.ContentType == content.TypeText && f.Body == "" {
		return apperr.Validation("text content requires a non-empty body")
	}
	if f.ContentType == content.TypeFile && f.File == nil {
		return apperr.Validation("file content requires file metadata")
	}
	if f.Mode == ModePaid && f.Price <= 0 {
		return apperr.Validation("paid content requires a price greater than zero")
	}
	return nil
}

// Item materializes the validated form into a content item plus the grant
// set to apply. The price-implies-private invariant holds by construction:
// only public mode produces IsPublic and only paid mode carries a price.
func (f *Form) Item(entityType string, entityID uint) (content.Item, []uint) {
	data := content.Data{}
	switch f.ContentType {
	case content.TypeText:
		data.Text = &content.TextData{Body: f.Body}
	case content.TypeFile:
		data.File = f.File
	}

	item := content.Item{
		EntityType:  entityType,
		EntityID:    entityID,
		Title:       f.Title,
		ContentType: f.ContentType,
		Data:        data,
		IsPublic:    f.Mode == ModePublic,
		Price:       0,
	}
	if f.Mode == ModePaid {
		item.Price = f.Price
	}

	if f.Mode == ModeRestricted {
		return item, f.Authorized
	}
	return item, nil
}
