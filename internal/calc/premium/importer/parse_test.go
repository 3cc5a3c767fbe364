package importer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Girder/internal/calc/loads"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const table = `Distance (m),SF (kN),BM (kN-m)
0,25,0
0.5,25,12.5
n/a,25,20
1,25,25
1.5,,30
2,25,50
`

func TestParseCSVWithAliases(t *testing.T) {
	p, rep, err := Parse(strings.NewReader(table), "beam.csv")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, 2, rep.Dropped)
	assert.Equal(t, [3]string{"Distance (m)", "SF (kN)", "BM (kN-m)"}, rep.Columns)
	assert.Equal(t, loads.Sample{PositionM: 2, ShearKN: 25, MomentKNM: 50}, p.Samples[3])
}

func TestHeaderMatching(t *testing.T) {
	for header, want := range map[string]field{
		"x":              position,
		"Position [m]":   position,
		"Beam length":    position,
		"Shear Force":    shear,
		"sf":             shear,
		"Bending Moment": moment,
		"BM":             moment,
	} {
		got, ok := match(header)
		require.True(t, ok, header)
		assert.Equal(t, want, got, header)
	}
	_, ok := match("max")
	assert.False(t, ok)
}

func TestParseErrors(t *testing.T) {
	_, _, err := Parse(strings.NewReader("a,b,c\n1,2,3\n"), "beam.csv")
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, _, err = Parse(strings.NewReader(table), "beam.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, _, err = Parse(strings.NewReader("x,shear,moment\n1,2,3\n0,2,3\n"), "beam.csv")
	assert.ErrorIs(t, err, loads.ErrInvalidLoadProfile)
}

func xlsxTable(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Position", "Shear", "Moment"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{0, 10, 0}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{1.5, 10, 15}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{3, 10, 30}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseXLSX(t *testing.T) {
	p, rep, err := Parse(bytes.NewReader(xlsxTable(t)), "loads.XLSX")
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Rows)
	assert.Equal(t, 3.0, p.Span())
	assert.Equal(t, 15.0, p.Samples[1].MomentKNM)
}

func TestProfileHandler(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "loads.xlsx")
	require.NoError(t, err)
	_, err = fw.Write(xlsxTable(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/tools/loads/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	(&Handler{}).Profile(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out ProfileImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 3, out.Profile.Len())

	w = httptest.NewRecorder()
	(&Handler{}).Profile(w, httptest.NewRequest(http.MethodPost, "/tools/loads/import", strings.NewReader("")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
