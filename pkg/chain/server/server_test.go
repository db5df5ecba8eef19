package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"chainfmt/pkg/chain"
	"chainfmt/pkg/chain/models"
)

func newTestServer() *Server {
	return New(zerolog.Nop(), chain.Options{}, chain.DefaultRenderOptions())
}

// fixtureUpload builds a multipart body holding a small but complete export.
func fixtureUpload(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Exported data"},
		{"Time", "OI Chg", "OI", "VWAP", "Strike Price", "VWAP", "OI", "OI Chg"},
		{"09:15", "2,000,000", "3,000,000", "5.4", "100", "7.6", "4,000,000", "-500,000"},
		{"09:20", "1000000", "2000000", "4.0", "101", "6.0", "3000000", "250000"},
		{"09:25", "750000", "1500000", "3.0", "102", "5.0", "2500000", "100000"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	wb, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = io.Copy(part, wb)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIndex(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Option Chain Formatter")
}

func TestConvert(t *testing.T) {
	body, contentType := fixtureUpload(t, "nifty.xlsx")
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "nifty_processed.xlsx")

	// The response is a valid workbook with the canonical layout.
	out, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer out.Close()

	rows, err := out.GetRows("OptionChain")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, models.ColumnNames[:], rows[0][:models.ColumnCount])
}

func TestConvertRejectsGarbage(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "bad.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("this is not a workbook"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.NotEmpty(t, resp.ConversionID)
}

func TestConvertMissingFileField(t *testing.T) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewHTML(t *testing.T) {
	body, contentType := fixtureUpload(t, "nifty.xlsx")
	req := httptest.NewRequest(http.MethodPost, "/preview?rows=2", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "<table")
	assert.Contains(t, out, "CE MONEY")
	assert.Contains(t, out, "1 more rows not shown")
}

func TestPreviewJSON(t *testing.T) {
	body, contentType := fixtureUpload(t, "nifty.xlsx")
	req := httptest.NewRequest(http.MethodPost, "/api/preview", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp previewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.ColumnNames[:], resp.Columns)
	assert.Equal(t, 3, resp.TotalRows)
	require.Len(t, resp.Rows, 3)
	require.Len(t, resp.Rows[0].Cells, models.ColumnCount)

	// The negative OI-change cell carries the warning font colour.
	last := resp.Rows[0].Cells[models.ColPEOIChange]
	assert.Equal(t, "-500,000", last.Text)
	assert.Equal(t, "FF0000", last.Font)

	// Scaled columns carry a fill.
	assert.NotEmpty(t, resp.Rows[0].Cells[models.ColCEOI].Fill)
}

func TestPreviewMissingColumn(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Exported data"},
		{"Time", "OI Chg", "OI", "VWAP", "Strike Price"},
		{"09:15", "1", "2", "3", "100"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	wb, err := f.WriteToBuffer()
	require.NoError(t, err)

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "oneside.xlsx")
	require.NoError(t, err)
	_, err = io.Copy(part, wb)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/preview", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	newTestServer().Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VWAP")
}
