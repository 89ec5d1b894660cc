package contentform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"
)

func paidForm(t *testing.T, price float64) *Form {
	t.Helper()
	f := New(content.TypeText)
	f.Body = "lesson"
	require.NoError(t, f.SetMode(ModePaid))
	require.NoError(t, f.SetPrice(price))
	return f
}

func TestSetModeResetsIrrelevantFields(t *testing.T) {
	f := paidForm(t, 100)

	require.NoError(t, f.SetMode(ModeRestricted))
	assert.Zero(t, f.Price, "switching away from paid clears the price")

	require.NoError(t, f.SetAuthorizedUsers([]uint{3, 5}))
	require.NoError(t, f.SetMode(ModePublic))
	assert.Nil(t, f.Authorized, "switching to public clears the selection")
	assert.Zero(t, f.Price)
}

func TestFieldSettersAreModeGuarded(t *testing.T) {
	f := New(content.TypeText)

	err := f.SetPrice(100)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = f.SetAuthorizedUsers([]uint{1})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = f.SetMode("secret")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Equal(t, ModePublic, f.Mode, "failed switch leaves the mode unchanged")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		build   func(t *testing.T) *Form
		wantErr bool
	}{
		{
			name: "paid with zero price",
			build: func(t *testing.T) *Form {
				f := New(content.TypeText)
				f.Body = "x"
				require.NoError(t, f.SetMode(ModePaid))
				return f
			},
			wantErr: true,
		},
		{
			name:    "paid with positive price",
			build:   func(t *testing.T) *Form { return paidForm(t, 100) },
			wantErr: false,
		},
		{
			name: "text content with empty body",
			build: func(t *testing.T) *Form {
				return New(content.TypeText)
			},
			wantErr: true,
		},
		{
			name: "required title missing",
			build: func(t *testing.T) *Form {
				f := New(content.TypeText)
				f.Body = "x"
				f.TitleRequired = true
				return f
			},
			wantErr: true,
		},
		{
			name: "file content without metadata",
			build: func(t *testing.T) *Form {
				return New(content.TypeFile)
			},
			wantErr: true,
		},
		{
			name: "restricted with empty selection is valid",
			build: func(t *testing.T) *Form {
				f := New(content.TypeText)
				f.Body = "x"
				require.NoError(t, f.SetMode(ModeRestricted))
				return f
			},
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(t).Validate()
			if tt.wantErr {
				assert.True(t, apperr.IsKind(err, apperr.KindValidation), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestItemHoldsPriceImpliesPrivate(t *testing.T) {
	f := paidForm(t, 100)
	require.NoError(t, f.Validate())

	item, grants := f.Item("quizzes", 2)
	assert.False(t, item.IsPublic)
	assert.Equal(t, 100.0, item.Price)
	assert.Nil(t, grants)

	require.NoError(t, f.SetMode(ModePublic))
	item, _ = f.Item("quizzes", 2)
	assert.True(t, item.IsPublic)
	assert.Zero(t, item.Price, "public items never carry a price")
}

func TestItemCarriesRestrictedSelection(t *testing.T) {
	f := New(content.TypeText)
	f.Body = "notes"
	require.NoError(t, f.SetMode(ModeRestricted))
	require.NoError(t, f.SetAuthorizedUsers([]uint{3, 5}))
	require.NoError(t, f.Validate())

	item, grants := f.Item("classes", 1)
	assert.False(t, item.IsPublic)
	assert.Equal(t, []uint{3, 5}, grants)
	require.NotNil(t, item.Data.Text)
	assert.Equal(t, "notes", item.Data.Text.Body)
}
