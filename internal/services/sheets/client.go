package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the Apps Script gateway fronting the workbook. The
// gateway is a single webhook: reads are GET with a sheet query param,
// writes are form-encoded POSTs dispatched on an action field.
type Client struct {
	BaseURL    string
	FolderID   string
	HTTPClient *http.Client
}

// NewClient creates a gateway client. The script cold-starts on idle
// deployments, so the timeout is generous.
func NewClient(baseURL, folderID string) *Client {
	return &Client{
		BaseURL:  baseURL,
		FolderID: folderID,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchError carries the gateway-reported failure for one sheet.
type FetchError struct {
	Sheet   string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("sheet %q: gateway error: %s", e.Sheet, e.Message)
}

type gatewayResponse struct {
	Success  bool            `json:"success"`
	Data     [][]interface{} `json:"data"`
	Error    string          `json:"error"`
	FileURL  string          `json:"fileUrl"`
	RowIndex int             `json:"rowIndex"`
}

// FetchRows retrieves every row of a sheet. Cells come back as mixed
// JSON types and are normalized to strings here so the codec never
// sees the transport.
func (c *Client) FetchRows(ctx context.Context, sheet string) ([][]string, error) {
	u := fmt.Sprintf("%s?sheet=%s", c.BaseURL, url.QueryEscape(sheet))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req, sheet)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(resp.Data))
	for i, raw := range resp.Data {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = stringify(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

// InsertRow appends a row to a sheet and returns the 1-based index the
// gateway placed it at (0 when the script does not report one).
func (c *Client) InsertRow(ctx context.Context, sheet string, row []string) (int, error) {
	payload, err := json.Marshal(row)
	if err != nil {
		return 0, err
	}
	form := url.Values{
		"action":    {"insert"},
		"sheetName": {sheet},
		"rowData":   {string(payload)},
	}
	resp, err := c.post(ctx, sheet, form)
	if err != nil {
		return 0, err
	}
	return resp.RowIndex, nil
}

// UpdateCell writes a single cell. rowIndex and colIndex are 1-based,
// matching how the script addresses ranges.
func (c *Client) UpdateCell(ctx context.Context, sheet string, rowIndex, colIndex int, value string) error {
	form := url.Values{
		"action":      {"updateCell"},
		"sheetName":   {sheet},
		"rowIndex":    {strconv.Itoa(rowIndex)},
		"columnIndex": {strconv.Itoa(colIndex)},
		"value":       {value},
	}
	_, err := c.post(ctx, sheet, form)
	return err
}

// UploadFile pushes a base64-encoded file into the configured Drive
// folder and returns the public URL the gateway hands back.
func (c *Client) UploadFile(ctx context.Context, fileName, mimeType, base64Data string) (string, error) {
	form := url.Values{
		"action":     {"uploadFile"},
		"fileName":   {fileName},
		"mimeType":   {mimeType},
		"base64Data": {base64Data},
		"folderId":   {c.FolderID},
	}
	resp, err := c.post(ctx, "uploads", form)
	if err != nil {
		return "", err
	}
	if resp.FileURL == "" {
		return "", &FetchError{Sheet: "uploads", Message: "gateway returned no file URL"}
	}
	return resp.FileURL, nil
}

func (c *Client) post(ctx context.Context, sheet string, form url.Values) (*gatewayResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, sheet)
}

func (c *Client) do(req *http.Request, sheet string) (*gatewayResponse, error) {
	httpResp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: reading response: %w", sheet, err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &FetchError{Sheet: sheet, Message: fmt.Sprintf("HTTP %d", httpResp.StatusCode)}
	}

	var resp gatewayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("sheet %q: decoding response: %w", sheet, err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "unspecified failure"
		}
		return nil, &FetchError{Sheet: sheet, Message: msg}
	}
	return &resp, nil
}

func stringify(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprintf("%v", v)
	}
}
