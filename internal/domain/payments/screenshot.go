package payments

import (
	"mime/multipart"
	"net/http"
	"strings"

	"classroom-app/internal/apperr"
)

const MaxScreenshotBytes = 5 << 20

// sniffLen matches what http.DetectContentType actually reads.
const sniffLen = 512

// CheckScreenshot validates the uploaded proof of payment before anything is
// written to disk: it must be present, at most 5 MiB, and sniff as an image.
func CheckScreenshot(fh *multipart.FileHeader) error {
	if fh == nil || fh.Size == 0 {
		return apperr.Validation("payment screenshot is required")
	}
	if fh.Size > MaxScreenshotBytes {
		return apperr.Validation("payment screenshot must not exceed 5 MiB")
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.Wrap(err, "open screenshot upload")
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return apperr.Wrap(err, "read screenshot upload")
	}
	return checkScreenshotContent(head[:n])
}

// checkScreenshotContent sniffs the leading bytes. Split out so the MIME rule
// is testable without multipart plumbing.
func checkScreenshotContent(head []byte) error {
	mime := http.DetectContentType(head)
	if !strings.HasPrefix(mime, "image/") {
		return apperr.Validationf("payment screenshot must be an image, got %s", mime)
	}
	return nil
}
