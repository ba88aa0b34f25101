package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"adviseek/internal/advisor"
	"adviseek/internal/catalog"
	"adviseek/internal/config"
	"adviseek/internal/domain"
	"adviseek/internal/sftpclient"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "data")

	writeFile(t, filepath.Join(data, filepath.FromSlash(catalog.OccupationMappingsPath)), `[
		{"occupation": "Software Developer", "RIASEC_code": "IRC", "work_value_code": "AIW", "majors": ["Computer Science at NUS"]},
		{"occupation": "Accountant", "RIASEC_code": "CEI", "work_value_code": null, "majors": ["Accountancy at SMU"]}
	]`)
	writeFile(t, filepath.Join(data, filepath.FromSlash(catalog.PrefixMappingsPath)), `{
		"nus_prefix_to_major": {"CS": "Computer Science"},
		"ntu_prefix_to_major": {},
		"smu_prefix_to_major": {"ACCT": "Accountancy"}
	}`)
	writeFile(t, filepath.Join(data, filepath.FromSlash(catalog.ModulesPath(domain.SchoolNUS))), `[
		{"modulecode": "CS2030", "title": "Programming Methodology II", "description": "OOP"},
		{"modulecode": "MA1521", "title": "Calculus for Computing"}
	]`)

	return config.Config{
		DataDir:      data,
		DBPath:       filepath.Join(dir, "adviseek.db"),
		MajorLimit:   5,
		HTTPAttempts: 1,
		SFTPHost:     "sftp.test",
		SFTPDir:      "/inbound",
	}
}

func run(t *testing.T, cfg config.Config, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp(cfg, &out).Run(append([]string{name}, args...))
	return out.String(), err
}

func TestModuleIDCommand(t *testing.T) {
	out, err := run(t, testConfig(t), "module-id", "CS2030", "MA1521")
	require.NoError(t, err)

	var list []moduleIDResult
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Equal(t, []moduleIDResult{
		{Code: "CS2030", ID: 1996342667},
		{Code: "MA1521", ID: 2028981513},
	}, list)
}

func TestCodeCommand(t *testing.T) {
	cfg := testConfig(t)

	out, err := run(t, cfg, "code", "Investigative", "Realistic", "Conventional", "Social")
	require.NoError(t, err)
	var res codeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "IRC", res.Code)

	out, err = run(t, cfg, "--format", "yaml", "code", "--kind", "work-value", "Recognition", "Altruism")
	require.NoError(t, err)
	require.NoError(t, yaml.Unmarshal([]byte(out), &res))
	assert.Equal(t, "RcAl", res.Code)
	assert.Equal(t, "work-value", res.Kind)

	_, err = run(t, cfg, "code", "--kind", "mbti", "INTJ")
	assert.Error(t, err)
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := run(t, testConfig(t), "--format", "xml", "module-id", "CS2030")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestMajorsCommand(t *testing.T) {
	out, err := run(t, testConfig(t), "majors", "--riasec", "RCI", "--work-value", "WAI")
	require.NoError(t, err)

	var res domain.MajorRecommendations
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.MatchPermutation, res.MatchType)
	assert.Equal(t, []string{"Computer Science at NUS"}, res.PermutationMatches)
}

func TestMajorsCommandWithoutData(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataDir = ""

	_, err := run(t, cfg, "majors", "--riasec", "IRC")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reference data not configured")
}

func importResponses(t *testing.T, cfg config.Config) {
	t.Helper()
	file := filepath.Join(t.TempDir(), "responses.json")
	writeFile(t, file, `[
		{"user_id": "u1", "quiz_type": "interest-part 1", "component": "Investigative", "score": 5},
		{"user_id": "u1", "quiz_type": "competence", "component": "Realistic", "score": 4},
		{"user_id": "u1", "quiz_type": "competence", "component": "Conventional", "score": 3},
		{"user_id": "u1", "quiz_type": "work-values", "component": "Achievement", "score": 5},
		{"user_id": "u1", "quiz_type": "work-values", "component": "Independence", "score": 4},
		{"user_id": "u1", "quiz_type": "work-values", "component": "Working Conditions", "score": 3}
	]`)

	out, err := run(t, cfg, "import", "--file", file)
	require.NoError(t, err)

	var res importResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 6, res.Imported)
	assert.Equal(t, 1, res.Users)
}

func TestRecommendCommand(t *testing.T) {
	cfg := testConfig(t)
	importResponses(t, cfg)
	csvPath := filepath.Join(t.TempDir(), "modules.csv")

	out, err := run(t, cfg, "recommend", "--user", "u1", "--out", csvPath)
	require.NoError(t, err)

	var res advisor.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "IRC", res.RiasecCode)
	assert.Equal(t, "AIW", res.WorkValueCode)
	assert.Equal(t, domain.MatchExact, res.Majors.MatchType)
	require.Len(t, res.Modules, 1)
	assert.Equal(t, "CS2030", res.Modules[0].Code)
	assert.Equal(t, int64(1996342667), res.Modules[0].ID)

	b, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "1996342667,CS2030,Programming Methodology II,NUS,OOP\r\n")
}

func TestRecommendCommandUpload(t *testing.T) {
	cfg := testConfig(t)
	importResponses(t, cfg)
	csvPath := filepath.Join(t.TempDir(), "modules.csv")

	var got sftpclient.Config
	var remote string
	uploader = func(_ context.Context, c sftpclient.Config, local, name string) error {
		got, remote = c, name
		assert.Equal(t, csvPath, local)
		return nil
	}
	t.Cleanup(func() { uploader = sftpclient.UploadFile })

	_, err := run(t, cfg, "recommend", "--user", "u1", "--out", csvPath, "--sftp")
	require.NoError(t, err)
	assert.Equal(t, "sftp.test", got.Host)
	assert.Equal(t, "/inbound", got.RemoteDir)
	assert.Equal(t, "modules.csv", remote)
}

func TestRecommendCommandFlagErrors(t *testing.T) {
	cfg := testConfig(t)

	_, err := run(t, cfg, "recommend", "--user", "u1", "--sftp")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--sftp requires --out")

	_, err = run(t, cfg, "recommend", "--user", "u1", "--postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestRank(t *testing.T) {
	got := rank([]string{"Social", "Artistic"})
	require.Len(t, got, 2)
	assert.Greater(t, got[0].Score, got[1].Score)
	assert.Empty(t, rank(nil))
}
