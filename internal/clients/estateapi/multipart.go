package estateapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strconv"
	"strings"

	"listing_editor/internal/domain/models"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// streamSubmission пишет multipart тело в pipe, не держа файлы в памяти.
// Возвращает reader тела и его Content-Type.
func streamSubmission(sub models.Submission) (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	go func() {
		err := writeSubmission(w, sub)
		if err == nil {
			err = w.Close()
		}
		pw.CloseWithError(err)
	}()

	return pr, w.FormDataContentType()
}

func writeSubmission(w *multipart.Writer, sub models.Submission) error {
	fields := []struct {
		name  string
		value string
	}{
		{"description", sub.Description},
		{"roomCount", strconv.Itoa(sub.RoomCount)},
		{"bathroomCount", strconv.Itoa(sub.BathroomCount)},
		{"sizeInSquareMeters", formatNumber(sub.SizeInSquareMeters)},
		{"price", formatNumber(sub.Price)},
		{"propertyTypeId", sub.PropertyTypeID},
		{"saleTypeId", sub.SaleTypeID},
		{"agentId", sub.AgentID},
		{"uniqueCode", sub.UniqueCode},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return err
		}
	}

	for _, id := range sub.Improvements {
		if err := w.WriteField("improvements", strconv.Itoa(id)); err != nil {
			return err
		}
	}

	for _, img := range sub.Images {
		if err := writeImage(w, img); err != nil {
			return err
		}
	}

	if sub.Mode == models.ModeEdit {
		if err := w.WriteField("id", strconv.Itoa(sub.ID)); err != nil {
			return err
		}
	}
	if err := w.WriteField("isAvailable", strconv.FormatBool(sub.IsAvailable)); err != nil {
		return err
	}
	if sub.Mode == models.ModeEdit {
		for _, p := range sub.DeletedImages {
			if err := w.WriteField("deletedImages", p); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeImage(w *multipart.Writer, img models.ImageFile) error {
	f, err := os.Open(img.Path)
	if err != nil {
		return fmt.Errorf("open image %q: %w", img.Name, err)
	}
	defer f.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(img.Name)))
	contentType := img.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copy image %q: %w", img.Name, err)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
