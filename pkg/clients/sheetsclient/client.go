package sheetsclient

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mbergmann/wachplan/internal/config"
	"github.com/mbergmann/wachplan/pkg/utils"
)

// Client wraps the Google Sheets API client used to publish roster
// exports to a shared spreadsheet.
type Client struct {
	service *sheets.Service
	ctx     context.Context
}

// NewClient creates a new Sheets client using OAuth credentials,
// performing the authorization flow if no valid token is persisted for
// the given environment.
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, env string) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	token, err := utils.GetToken(ctx, oauthConfig, env)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		ctx:     ctx,
	}, nil
}

// ClearTab removes all values from a sheet tab, leaving it empty for a
// fresh publish.
func (c *Client) ClearTab(spreadsheetID, tab string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, tab, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab %s: %w", tab, err)
	}
	return nil
}

// AppendRows appends rows to the end of a sheet tab
func (c *Client) AppendRows(spreadsheetID, tab string, values [][]interface{}) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, tab, valueRange).
		ValueInputOption("RAW").
		Do()
	if err != nil {
		return fmt.Errorf("failed to append rows: %w", err)
	}

	return nil
}
