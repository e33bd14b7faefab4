package vehicles

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSVSkipsIncompleteRows(t *testing.T) {
	data := strings.Join([]string{
		"name,year,make,model,vin,license_plate,license_plate_state",
		",2022,Ford,Transit,1FTBR1CM5NKA99999,XYZ-1111,CA",
		"Van 2,2021,,Express,1GCVKREC1MZ999999,XYZ-2222,TX",
		"",
		"Van 3,2023,Ram,ProMaster,3C6TRVAG3NE999999,,",
	}, "\n")

	result, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "XYZ-1111", result.Rows[0].Name, "name defaults to license plate")
	assert.Equal(t, "CA", result.Rows[0].LicensePlateState)
	assert.Equal(t, "Van 3", result.Rows[1].Name)
	assert.Empty(t, result.Rows[1].LicensePlate)

	assert.Equal(t, []string{"Row 3: Missing required fields (year, make, model, or vin)"}, result.Errors)
}

func TestParseCSVCamelCaseHeaders(t *testing.T) {
	data := "year,make,model,vin,licensePlate,licensePlateState\n2020,Ford,F-150,1FTFW1ET5LFC99999,JKL-0000,NY\n"

	result, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, Input{
		Name:              "JKL-0000",
		Year:              "2020",
		Make:              "Ford",
		Model:             "F-150",
		VIN:               "1FTFW1ET5LFC99999",
		LicensePlate:      "JKL-0000",
		LicensePlateState: "NY",
	}, result.Rows[0])
}

func TestParseCSVTrimsAndHandlesBOM(t *testing.T) {
	data := "\ufeffYear , Make,Model,VIN\n  2022 , Toyota , Sienna , 5TDKZ3DC1NS999999 \n"

	result, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2022", result.Rows[0].Year)
	assert.Equal(t, "5TDKZ3DC1NS999999", result.Rows[0].VIN)
	assert.Empty(t, result.Errors)
}

func TestParseCSVMalformed(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("year,make\n\"2022,Ford\n"))
	require.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"name", "year", "make", "model", "vin", "license_plate", "license_plate_state"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Box Truck", "2019", "Isuzu", "NPR", "JALC4W164K7000001", "BOX-0001", "OR"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Broken", "2019", "Isuzu", "", "", "BOX-0002", "OR"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := ParseFile("roster.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "Box Truck", result.Rows[0].Name)
	assert.Equal(t, "JALC4W164K7000001", result.Rows[0].VIN)
	assert.Equal(t, []string{"Row 3: Missing required fields (year, make, model, or vin)"}, result.Errors)
}

func TestParseFileUnsupported(t *testing.T) {
	_, err := ParseFile("roster.pdf", strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestParseEmptyFile(t *testing.T) {
	result, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
	assert.Empty(t, result.Errors)
}
