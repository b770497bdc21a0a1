package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideBaseDir = errors.New("path escapes storage directory")

// FileStorage хранилище загруженных изображений до отправки объявления
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (filePath string, fileSize int64, err error)
	Delete(ctx context.Context, filePath string) error
	DeleteDir(ctx context.Context, subPath string) error
	GetFullPath(relativePath string) string
	GetBaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
}

func NewLocalFileStorage(baseDir string) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	return &LocalFileStorage{
		baseDir: abs,
	}, nil
}

func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	name := sanitizeName(file.Filename)
	relPath := filepath.Join(subPath, name)
	filePath, err := s.resolve(relPath)
	if err != nil {
		return "", 0, err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directories: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		// дожидаемся копирования, чтобы не удалить файл под пишущей горутиной
		<-done
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return relPath, size, nil
}

// Delete удаляет файл из хранилища
func (s *LocalFileStorage) Delete(ctx context.Context, filePath string) error {
	fullPath, err := s.resolve(filePath)
	if err != nil {
		return err
	}
	return os.Remove(fullPath)
}

// DeleteDir удаляет каталог со всем содержимым. Отсутствующий каталог не ошибка.
func (s *LocalFileStorage) DeleteDir(ctx context.Context, subPath string) error {
	if strings.TrimSpace(subPath) == "" {
		return fmt.Errorf("refusing to remove storage root: %w", ErrOutsideBaseDir)
	}
	fullPath, err := s.resolve(subPath)
	if err != nil {
		return err
	}
	if fullPath == s.baseDir {
		return fmt.Errorf("refusing to remove storage root: %w", ErrOutsideBaseDir)
	}
	return os.RemoveAll(fullPath)
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

func (s *LocalFileStorage) resolve(relativePath string) (string, error) {
	full := filepath.Join(s.baseDir, relativePath)
	if full != s.baseDir && !strings.HasPrefix(full, s.baseDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", relativePath, ErrOutsideBaseDir)
	}
	return full, nil
}

func sanitizeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "upload"
	}
	return name
}
