package payments

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"classroom-app/internal/apperr"
	"classroom-app/internal/domain/content"
	"classroom-app/internal/domain/users"
	"classroom-app/internal/infra/storage"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&users.User{}, &content.Item{}, &Request{}))
	return db
}

func paidItem(t *testing.T, db *gorm.DB, price float64) content.Item {
	t.Helper()
	item := content.Item{
		EntityType:  "quizzes",
		EntityID:    1,
		Title:       "Final quiz",
		ContentType: content.TypeText,
		Data:        content.Data{Text: &content.TextData{Body: "questions"}},
		Price:       price,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func buyer(t *testing.T, db *gorm.DB) users.User {
	t.Helper()
	u := users.User{Name: "B", Lastname: "Buyer", Email: fmt.Sprintf("%s@test.test", t.Name())}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// pngUpload builds a real multipart file header whose bytes sniff as a PNG.
func pngUpload(t *testing.T) *multipart.FileHeader {
	t.Helper()
	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("screenshot", "proof.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["screenshot"][0]
}

func storedScreenshots(t *testing.T, dir string) int {
	t.Helper()
	files, err := os.ReadDir(filepath.Join(dir, "payments"))
	require.NoError(t, err)
	return len(files)
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	require.NoError(t, storage.Init(dir))
	item := paidItem(t, db, 100)
	u := buyer(t, db)

	req, err := Submit(db, item.ID, u.ID, 100, pngUpload(t))
	require.NoError(t, err)

	assert.Equal(t, StatusPending, req.Status)
	assert.NotZero(t, req.ID)
	assert.NotEmpty(t, req.ScreenshotPath)
	assert.FileExists(t, filepath.Join(dir, req.ScreenshotPath))

	// Pending is not access: the lookup only answers to approved requests.
	assert.False(t, HasApproved(db)(item.ID, u.ID))
}

func TestSubmitRejectsDuplicatePending(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	require.NoError(t, storage.Init(dir))
	item := paidItem(t, db, 100)
	u := buyer(t, db)

	_, err := Submit(db, item.ID, u.ID, 100, pngUpload(t))
	require.NoError(t, err)

	_, err = Submit(db, item.ID, u.ID, 100, pngUpload(t))
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState), "got %v", err)

	var n int64
	require.NoError(t, db.Model(&Request{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// The refused duplicate must not leave its screenshot behind.
	assert.Equal(t, 1, storedScreenshots(t, dir))
}

func TestSubmitAmountMismatchPersistsNothing(t *testing.T) {
	db := testDB(t)
	dir := t.TempDir()
	require.NoError(t, storage.Init(dir))
	item := paidItem(t, db, 100)
	u := buyer(t, db)

	_, err := Submit(db, item.ID, u.ID, 50, pngUpload(t))
	assert.True(t, apperr.IsKind(err, apperr.KindAmountMismatch), "got %v", err)

	var n int64
	require.NoError(t, db.Model(&Request{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, 0, storedScreenshots(t, dir))
}

func TestSubmitUnknownContent(t *testing.T) {
	db := testDB(t)
	require.NoError(t, storage.Init(t.TempDir()))

	_, err := Submit(db, 999, 1, 100, pngUpload(t))
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}

func TestProcessApproveGrantsAccessAndIsTerminal(t *testing.T) {
	db := testDB(t)
	require.NoError(t, storage.Init(t.TempDir()))
	item := paidItem(t, db, 100)

	u := buyer(t, db)

	submitted, err := Submit(db, item.ID, u.ID, 100, pngUpload(t))
	require.NoError(t, err)

	processed, err := Process(db, submitted.ID, ActionApprove, "ok", 1)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, processed.Status)
	assert.Equal(t, u.Email, processed.User.Email)
	require.NotNil(t, processed.AdminNotes)
	assert.Equal(t, "ok", *processed.AdminNotes)

	assert.True(t, HasApproved(db)(item.ID, u.ID))
	assert.False(t, HasApproved(db)(item.ID+1, u.ID), "approval must not leak across content")

	_, err = Process(db, submitted.ID, ActionReject, "late", 2)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState), "got %v", err)

	var stored Request
	require.NoError(t, db.First(&stored, submitted.ID).Error)
	assert.Equal(t, StatusApproved, stored.Status)
	assert.Equal(t, uint(1), *stored.ProcessedBy)
}

func TestProcessRejectLeavesAccessDeniedAndAllowsResubmit(t *testing.T) {
	db := testDB(t)
	require.NoError(t, storage.Init(t.TempDir()))
	item := paidItem(t, db, 100)
	u := buyer(t, db)

	first, err := Submit(db, item.ID, u.ID, 100, pngUpload(t))
	require.NoError(t, err)

	_, err = Process(db, first.ID, ActionReject, "unreadable screenshot", 1)
	require.NoError(t, err)
	assert.False(t, HasApproved(db)(item.ID, u.ID))

	// Rejection is terminal; a retry is a brand-new request.
	second, err := Submit(db, item.ID, u.ID, 100, pngUpload(t))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, StatusPending, second.Status)
}

func TestProcessUnknownID(t *testing.T) {
	db := testDB(t)

	_, err := Process(db, 404, ActionApprove, "", 1)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound), "got %v", err)
}
