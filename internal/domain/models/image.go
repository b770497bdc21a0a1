package models

// ImageFile новое изображение, ожидающее отправки.
type ImageFile struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	// Path путь к содержимому на диске (staging или локальный файл CLI)
	Path string `json:"-"`
}

// ExistingImage уже сохранённое изображение объявления.
type ExistingImage struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	Name         string `json:"name"`
	OriginalPath string `json:"originalPath"`
}
