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

	"deal-analyzer/domain"
)

const dealDoc = `{
	"property": {"purchase_price": 200000, "repair_cost": 50000, "arv": 350000},
	"rental_assumptions": {"monthly_rent": 2500}
}`

func runAnalyze(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := analyzeCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCmd_ReportFromStdin(t *testing.T) {
	out, err := runAnalyze(t, dealDoc, "-")
	require.NoError(t, err)

	assert.Contains(t, out, "$62,000")
	assert.Contains(t, out, "$195,000")
	assert.Contains(t, out, "6.38%")
}

func TestAnalyzeCmd_JSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deal.json")
	require.NoError(t, os.WriteFile(path, []byte(dealDoc), 0o600))

	out, err := runAnalyze(t, "", path, "--json")
	require.NoError(t, err)

	var got domain.DealMetrics
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 260000.0, got.TotalInvestment)
	assert.Equal(t, 11.67, got.GrossRentMultiplier)
}

func TestAnalyzeCmd_Errors(t *testing.T) {
	_, err := runAnalyze(t, "{not json", "-")
	assert.Error(t, err)

	_, err = runAnalyze(t, "", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = runAnalyze(t, "")
	assert.Error(t, err)
}
