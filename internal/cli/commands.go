package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"listing_editor/internal/clients/estateapi"
	"listing_editor/internal/domain/models"
	"listing_editor/internal/lib/assets"
	"listing_editor/internal/services/editor"

	"github.com/spf13/cobra"
)

// ErrInvalidDraft возвращается, когда черновик не прошёл проверку.
var ErrInvalidDraft = errors.New("draft is invalid")

func validateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a new listing draft offline",
		Long:  "Runs the form rules against a draft file and local images without calling the property API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := editor.NewSession("", nil, assets.NewResolver(""))
			if err := opts.prepare(session, nil); err != nil {
				return err
			}

			res, err := session.Validate(opts.validator())
			if err != nil {
				return err
			}

			printValidation(cmd.OutOrStdout(), res)
			if !res.Valid {
				return ErrInvalidDraft
			}
			return nil
		},
	}
}

type remoteOptions struct {
	apiURL    string
	token     string
	assetsURL string
	timeout   time.Duration
}

func (r *remoteOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.apiURL, "api", os.Getenv("ESTATE_API_URL"), "estate API base URL")
	cmd.Flags().StringVar(&r.token, "token", os.Getenv("ESTATE_API_TOKEN"), "agent bearer token")
	cmd.Flags().StringVar(&r.assetsURL, "assets", os.Getenv("ASSETS_BASE_URL"), "base URL of stored images")
	timeoutFlag(cmd, &r.timeout)
}

func (r *remoteOptions) client(opts *options) (*estateapi.Client, error) {
	if r.apiURL == "" {
		return nil, errors.New("--api or ESTATE_API_URL is required")
	}
	return estateapi.New(opts.logger(), r.apiURL, r.timeout), nil
}

func submitCmd(opts *options) *cobra.Command {
	var (
		remote     remoteOptions
		propertyID int
		deleted    []string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Create a listing, or update one with --property-id",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			client, err := remote.client(opts)
			if err != nil {
				return err
			}
			if remote.token == "" {
				return errors.New("--token or ESTATE_API_TOKEN is required")
			}

			ctx := estateapi.WithToken(cmd.Context(), remote.token)

			agent, err := client.CurrentUser(ctx, remote.token)
			if err != nil {
				return fmt.Errorf("resolve agent: %w", err)
			}
			if !agent.HasRole(models.RoleAgent) {
				return editor.ErrNotAgent
			}

			var property *models.Property
			if propertyID > 0 {
				property, err = client.GetProperty(ctx, propertyID)
				if err != nil {
					return fmt.Errorf("load property %d: %w", propertyID, err)
				}
			}

			session := editor.NewSession(agent.ID, property, assets.NewResolver(remote.assetsURL))
			if err := opts.prepare(session, deleted); err != nil {
				return err
			}
			printExisting(out, session.View().Existing)

			coordinator := editor.NewCoordinator(opts.logger(), opts.validator(), client, nil, remote.timeout)
			outcome, err := coordinator.Submit(ctx, session)
			if err != nil {
				var verr *editor.ValidationError
				if errors.As(err, &verr) {
					printValidation(out, verr.Result)
					return ErrInvalidDraft
				}
				return err
			}

			okColor.Fprintf(out, "✓ listing %d saved (%s)\n", outcome.Property.ID, outcome.Mode)
			return nil
		},
	}

	remote.bind(cmd)
	cmd.Flags().IntVar(&propertyID, "property-id", 0, "existing property to edit")
	cmd.Flags().StringArrayVar(&deleted, "delete", nil, "existing image id to remove (repeatable, edit only)")

	return cmd
}

func catalogsCmd(opts *options) *cobra.Command {
	var remote remoteOptions

	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Print property types, sale types and improvements",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := remote.client(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(estateapi.WithToken(cmd.Context(), remote.token), remote.timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			sections := []struct {
				title string
				fetch func(context.Context) ([]models.CatalogItem, error)
			}{
				{"property types", client.PropertyTypes},
				{"sale types", client.SaleTypes},
				{"improvements", client.Improvements},
			}
			for _, s := range sections {
				items, err := s.fetch(ctx)
				if err != nil {
					return fmt.Errorf("%s: %w", s.title, err)
				}
				fieldColor.Fprintln(out, s.title)
				for _, item := range items {
					fmt.Fprintf(out, "  %-4s %s\n", strconv.Itoa(item.ID), item.Name)
				}
			}
			return nil
		},
	}

	remote.bind(cmd)
	return cmd
}
