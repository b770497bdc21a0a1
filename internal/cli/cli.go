// Package cli implements listingctl, a terminal client for the listing editor workflow.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/lib/mimesniff"
	"listing_editor/internal/services/editor"
	"listing_editor/internal/services/validation"
	"listing_editor/internal/transport/http/dto"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type options struct {
	draftPath    string
	images       []string
	maxImages    int
	maxImageSize int64
	verbose      bool
}

// NewRootCmd собирает дерево команд listingctl.
func NewRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "listingctl",
		Short:         "Validate and submit property listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&opts.draftPath, "draft", "", "path to the draft JSON file")
	root.PersistentFlags().StringArrayVar(&opts.images, "image", nil, "image file to attach (repeatable)")
	root.PersistentFlags().IntVar(&opts.maxImages, "max-images", validation.DefaultMaxImages, "maximum number of images per listing")
	root.PersistentFlags().Int64Var(&opts.maxImageSize, "max-image-size", validation.DefaultMaxImageSize, "maximum image size in bytes")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		validateCmd(opts),
		submitCmd(opts),
		catalogsCmd(opts),
	)

	return root
}

func (o *options) validator() *validation.Validator {
	return validation.New(
		validation.WithMaxImages(o.maxImages),
		validation.WithMaxImageSize(o.maxImageSize),
	)
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadDraft читает черновик в том же формате, что и PATCH /draft.
func loadDraft(path string) (editor.DraftPatch, error) {
	if path == "" {
		return editor.DraftPatch{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return editor.DraftPatch{}, fmt.Errorf("read draft: %w", err)
	}

	var req dto.DraftPatchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return editor.DraftPatch{}, fmt.Errorf("parse draft %s: %w", path, err)
	}

	return req.ToPatch(), nil
}

func loadImages(paths []string) ([]models.ImageFile, error) {
	files := make([]models.ImageFile, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("image %s is a directory", p)
		}

		contentType, err := mimesniff.Resolve(mime.TypeByExtension(filepath.Ext(abs)), func() (io.ReadCloser, error) {
			return os.Open(abs)
		})
		if err != nil {
			return nil, fmt.Errorf("image %s: %w", p, err)
		}

		files = append(files, models.ImageFile{
			Name:        filepath.Base(abs),
			ContentType: contentType,
			Size:        info.Size(),
			Path:        abs,
		})
	}
	return files, nil
}

// prepare заполняет сессию черновиком и изображениями с диска.
func (o *options) prepare(session *editor.Session, deleted []string) error {
	patch, err := loadDraft(o.draftPath)
	if err != nil {
		return err
	}
	if err := session.ApplyPatch(patch); err != nil {
		return err
	}

	files, err := loadImages(o.images)
	if err != nil {
		return err
	}
	if _, err := session.ReplaceImages(files, ""); err != nil {
		return err
	}

	for _, id := range deleted {
		if err := session.DeleteImage(id); err != nil {
			return fmt.Errorf("delete image %s: %w", id, err)
		}
	}
	return nil
}

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
	fieldColor = color.New(color.FgYellow)
	dimColor   = color.New(color.Faint)
)

func printValidation(out io.Writer, res models.ValidationResult) {
	if res.Valid {
		okColor.Fprintln(out, "✓ draft is valid")
		return
	}

	errColor.Fprintf(out, "✗ %d field(s) need attention\n", len(res.Errors))
	for _, field := range validation.Fields {
		msg, ok := res.Field(field)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "  %s %s\n", fieldColor.Sprintf("%-20s", field), msg)
	}
}

func printExisting(out io.Writer, images []models.ExistingImage) {
	if len(images) == 0 {
		return
	}
	dimColor.Fprintln(out, "existing images:")
	for _, img := range images {
		dimColor.Fprintf(out, "  [%s] %s\n", img.ID, img.URL)
	}
}

func timeoutFlag(cmd *cobra.Command, d *time.Duration) {
	cmd.Flags().DurationVar(d, "timeout", 60*time.Second, "request timeout")
}
