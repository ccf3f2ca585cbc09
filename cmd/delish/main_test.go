package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gabrielpastega/delish-express-data-visualization/internal/core"
)

// writeDataset writes a small raw dataset and isolates the test from any
// database configured in the environment.
func writeDataset(t *testing.T) string {
	t.Helper()
	t.Setenv("DATASET_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	header := make([]string, len(core.Schema))
	for i, spec := range core.Schema {
		header[i] = spec.Name
	}
	row := func(id, date, traffic, city, minutes string) string {
		return strings.Join([]string{
			id, "INDORES13DEL02 ", "37", "4.9", "22.745049", "75.892471", "22.765049", "75.912471",
			date, "11:30:00", "11:45:00", "conditions Sunny", traffic, "2", "Snack ",
			"motorcycle ", "0", "No ", city, "(min) " + minutes,
		}, ",")
	}

	lines := []string{
		strings.Join(header, ","),
		row("0x4607 ", "19-03-2022", "High ", "Urban ", "24"),
		row("0xb379 ", "25-03-2022", "Jam ", "NaN ", "33"),
		row("0x5d6d ", "06-04-2022", "Low ", "Metropolitian ", "26"),
	}
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTablesCommand(t *testing.T) {
	out, err := run(t, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "GROUP")
	assert.Contains(t, out, "orders-per-day")
	assert.Contains(t, out, "delivery-time-by-city-order-type")
}

func TestCleanCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "clean", "--data", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "header plus two surviving records")
	assert.True(t, strings.HasPrefix(lines[0], "ID,Delivery_person_ID"))
	assert.True(t, strings.HasPrefix(lines[1], "0x4607,INDORES13DEL02,37,4.9,"))
	assert.Contains(t, lines[1], ",2022-03-19,")
	assert.True(t, strings.HasSuffix(lines[2], ",Metropolitian,26,6,14"))
}

func TestReportCommand(t *testing.T) {
	path := writeDataset(t)

	out, err := run(t, "report", "orders", "--data", path, "--cutoff", "2022-04-06")
	require.NoError(t, err)

	var view core.OrdersView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 1, view.Records)

	out, err = run(t, "report", "orders", "--data", path, "--cutoff", "")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2, view.Records)

	_, err = run(t, "report", "weather", "--data", path)
	assert.Error(t, err)

	_, err = run(t, "report", "orders", "--data", path, "--traffic", "Gridlock")
	require.Error(t, err)
	assert.Equal(t, "VAL005", core.MapError(err).Code)

	_, err = run(t, "report", "restaurants", "--data", path, "--traffic", "Medium")
	require.Error(t, err)
	assert.Equal(t, "DATA001", core.MapError(err).Code)
}

func TestExportCommand(t *testing.T) {
	path := writeDataset(t)
	output := filepath.Join(t.TempDir(), "times.xlsx")

	_, err := run(t, "export", "delivery-time-by-city", "--data", path, "--cutoff", "", "--format", "xlsx", "-o", output)
	require.NoError(t, err)

	f, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("delivery-time-by-city")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.ElementsMatch(t, []string{"Metropolitian", "Urban"}, []string{rows[1][0], rows[2][0]})

	out, err := run(t, "export", "orders-per-day", "--data", path, "--cutoff", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "day,orders"), out)

	_, err = run(t, "export", "orders-per-day", "--data", path, "--format", "pdf")
	assert.Equal(t, "TBL003", core.MapError(err).Code)

	_, err = run(t, "export", "nope", "--data", path)
	assert.Equal(t, "TBL001", core.MapError(err).Code)
}

func TestMissingDataset(t *testing.T) {
	writeDataset(t)
	_, err := run(t, "report", "orders", "--data", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Equal(t, "FILE001", core.MapError(err).Code)
}
