package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/card-statement-parser/internal/extractor"
	"github.com/insightdelivered/card-statement-parser/internal/parser"
)

func setupTestApp(pages ...string) *fiber.App {
	logger, _ := logtest.NewNullLogger()
	p := parser.New(parser.WithOpener(func(string) (extractor.Document, error) {
		return &extractor.StaticDocument{Pages: pages}, nil
	}))
	return NewApp(NewHandler(p, logger), 4)
}

func newMultipart(t *testing.T, fields map[string]string, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func decode(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result), string(body))
	return result
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	result := decode(t, resp.Body)
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, "fiber", result["engine"])
	assert.Equal(t, []interface{}{"HDFC", "Chase", "SBI", "Amex", "Citi"}, result["supported"])
}

func TestParseEndpointRequiresFile(t *testing.T) {
	app := setupTestApp()

	body, contentType := newMultipart(t, nil, "", nil)
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode(t, resp.Body)["error"], "No file uploaded")
}

func TestParseEndpointRejectsNonPDF(t *testing.T) {
	app := setupTestApp()

	body, contentType := newMultipart(t, nil, "statement.txt", []byte("HDFC"))
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestParseEndpointUpload(t *testing.T) {
	app := setupTestApp("JPMORGAN\nOpening/Closing Date 01/01/22 - 01/31/22\nNew Balance $500.00")

	body, contentType := newMultipart(t, nil, "Chase.PDF", []byte("%PDF-1.4 fake"))
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	result := decode(t, resp.Body)
	assert.Len(t, result, 7)
	assert.Equal(t, "Chase Bank", result["bank_name"])
	assert.Equal(t, "500.00", result["total_balance"])
	assert.Equal(t, "01/01/22 - 01/31/22", result["billing_cycle"])
	assert.Nil(t, result["card_last_4"])
}

func TestParseEndpointText(t *testing.T) {
	app := setupTestApp()

	body, contentType := newMultipart(t, map[string]string{
		"text": "HDFC\nMillennia\nPayment Due Date: 20/05/2024",
	}, "", nil)
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	result := decode(t, resp.Body)
	assert.Equal(t, "HDFC Millennia", result["card_variant"])
	assert.Equal(t, "20/05/2024", result["payment_due_date"])
}

func TestParseEndpointUnknownBank(t *testing.T) {
	app := setupTestApp("Friendly Credit Union")

	body, contentType := newMultipart(t, nil, "statement.pdf", []byte("%PDF"))
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	result := decode(t, resp.Body)
	assert.Equal(t, map[string]interface{}{
		"error": "Bank not detected. Supported: HDFC, Chase, SBI, Amex, Citi",
	}, result)
}

func TestParseEndpointUnreadablePDF(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	app := NewApp(NewHandler(parser.New(), logger), 4)

	body, contentType := newMultipart(t, nil, "broken.pdf", []byte("not a pdf"))
	req := httptest.NewRequest("POST", "/api/parse", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	msg, _ := decode(t, resp.Body)["error"].(string)
	assert.True(t, strings.HasPrefix(msg, "Error reading PDF: "), msg)
}
