package runner_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-acfjson/internal/loader"
	"github.com/goliatone/go-acfjson/internal/prompt"
	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/runner"
	"github.com/goliatone/go-acfjson/pkg/scan"
	"github.com/goliatone/go-acfjson/pkg/testsupport"
)

func newRunner(out *bytes.Buffer, opts ...runner.Option) *runner.Runner {
	return runner.New(append([]runner.Option{runner.WithOutput(out)}, opts...)...)
}

func TestRun_DirectoryIsolatesParseFailures(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	var out bytes.Buffer

	report, err := newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: dir},
		Task:    runner.TaskFixExhaustive,
	})
	require.NoError(t, err)

	want := "Skipping group_broken.json due to load error.\n" +
		"Fixed 13 properties in group_hero.json.\n" +
		"Fixed 63 properties in group_offers.json.\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, loader.ModeDirectory, report.Mode)
	assert.Equal(t, 1, report.Count(runner.StatusSkipped))
	assert.Equal(t, 2, report.Count(runner.StatusWritten))
	assert.Equal(t, 76, report.Fixed())

	var parseErr *fieldtree.ParseError
	assert.True(t, errors.As(report.Documents[0].Err, &parseErr))

	for _, name := range []string{"group_hero.json", "group_offers.json"} {
		goldenPath := filepath.Join("testdata", "golden", trimExt(name)+".exhaustive.json")
		got := testsupport.MustReadFile(t, filepath.Join(dir, name))
		if testsupport.WriteMaybeGolden(t, goldenPath, []byte(got)) {
			continue
		}
		golden := testsupport.MustReadGolden(t, goldenPath)
		if diff := testsupport.CompareGolden(string(golden), got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", name, diff)
		}
	}

	out.Reset()
	report, err = newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: dir},
		Task:    runner.TaskFixExhaustive,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Fixed(), "second run must not insert anything")
	assert.Equal(t, "Skipping group_broken.json due to load error.\n", out.String())
}

func TestRun_SingleDocumentParseFailureIsFatal(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	var out bytes.Buffer

	_, err := newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: filepath.Join(dir, "group_broken.json")},
		Task:    runner.TaskFixSelect,
	})

	var parseErr *fieldtree.ParseError
	require.True(t, errors.As(err, &parseErr), "expected ParseError, got %v", err)
	assert.Empty(t, out.String())
}

func TestRun_SingleDocumentSelectFill(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	path := filepath.Join(dir, "group_offers.json")
	var out bytes.Buffer
	r := newRunner(&out)

	report, err := r.Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: path},
		Task:    runner.TaskFixSelect,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fixed 2 select fields.\n", out.String())
	assert.Equal(t, runner.StatusWritten, report.Documents[0].Status)

	doc := testsupport.LoadDocument(t, path)
	assert.Empty(t, normalize.MissingMultiple(doc.Fields(), false))
	assert.Equal(t, []string{"blocks/style"}, normalize.MissingMultiple(doc.Fields(), true))

	out.Reset()
	_, err = r.Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: path},
		Task:    runner.TaskFixSelect,
	})
	require.NoError(t, err)
	assert.Equal(t, "No select fields needed fixing.\n", out.String())

	out.Reset()
	_, err = r.Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: path},
		Task:    runner.TaskFixSelectLayouts,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fixed 1 select fields.\n", out.String())
}

func TestRun_DryRunLeavesFilesUntouched(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	before := testsupport.MustReadFile(t, filepath.Join(dir, "group_offers.json"))
	var out bytes.Buffer

	report, err := newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: dir},
		Task:    runner.TaskFixSelectLayouts,
		DryRun:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Fixed())
	assert.Equal(t, 1, report.Count(runner.StatusDryRun))
	assert.Contains(t, out.String(), "Would fix 3 select fields in group_offers.json.\n")
	assert.Equal(t, before, testsupport.MustReadFile(t, filepath.Join(dir, "group_offers.json")))
}

func TestRun_ConfirmDeclined(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	path := filepath.Join(dir, "group_hero.json")
	before := testsupport.MustReadFile(t, path)
	var out bytes.Buffer

	report, err := newRunner(&out, runner.WithPrompt(prompt.Static(false))).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: path},
		Task:    runner.TaskFixExhaustive,
		Confirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, runner.StatusDeclined, report.Documents[0].Status)
	assert.Equal(t, "Skipped writing group_hero.json.\n", out.String())
	assert.Equal(t, before, testsupport.MustReadFile(t, path))

	_, err = runner.New().Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: path},
		Task:    runner.TaskFixExhaustive,
		Confirm: true,
	})
	assert.Error(t, err, "confirm without a driver must be rejected")
}

func TestRun_Check(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	var out bytes.Buffer
	r := newRunner(&out)

	report, err := r.Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: filepath.Join(dir, "group_offers.json")},
		Task:    runner.TaskCheck,
	})
	require.NoError(t, err)
	assert.Equal(t, "Fields missing 'multiple': ['offer_type']\n", out.String())
	assert.Equal(t, 1, report.Findings())

	out.Reset()
	report, err = r.Run(context.Background(), runner.Request{
		Locator:      loader.Locator{Path: dir},
		Task:         runner.TaskCheck,
		CheckLayouts: true,
	})
	require.NoError(t, err)
	want := "Skipping group_broken.json due to load error.\n" +
		"Fields missing 'multiple' in group_offers.json: ['offer_type', 'blocks/style']\n"
	assert.Equal(t, want, out.String())
	assert.Equal(t, 2, report.Findings())
}

func TestRun_CheckQuotesNamesLikeRepr(t *testing.T) {
	dir := testsupport.WriteDocuments(t, map[string]string{
		"group.json": `{"fields":[{"type":"select","name":"it's"},{"type":"select","name":"a\\b"},{"type":"select","name":null}]}`,
	})
	var out bytes.Buffer

	_, err := newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: filepath.Join(dir, "group.json")},
		Task:    runner.TaskCheck,
	})
	require.NoError(t, err)
	assert.Equal(t, `Fields missing 'multiple': ["it's", 'a\\b', 'None']`+"\n", out.String())
}

func TestRun_Scan(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	var out bytes.Buffer
	r := newRunner(&out)

	report, err := r.Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: dir},
		Task:    runner.TaskScan,
	})
	require.NoError(t, err)
	assert.Equal(t, `MISSING 'multiple' in group_offers.json at line 44 for field "name": "style",`+"\n", out.String())
	assert.Equal(t, 0, report.Count(runner.StatusSkipped), "the line heuristic never parses JSON")

	out.Reset()
	_, err = r.Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: filepath.Join(dir, "group_offers.json")},
		Task:    runner.TaskScan,
	})
	require.NoError(t, err)
	assert.Equal(t, `MISSING 'multiple' at line 44 for field "name": "style",`+"\n", out.String())
}

func TestRun_ScanFillsUnsetBoundFromModePreset(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	zero := 0

	var out bytes.Buffer
	_, err := newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: dir},
		Task:    runner.TaskScan,
		Window:  scan.Bounds{LookBack: &zero},
	})
	require.NoError(t, err)
	assert.Equal(t, "MISSING 'multiple' in group_offers.json at line 44 for field unknown\n", out.String())
}

func TestRun_Inventory(t *testing.T) {
	dir := testsupport.CopyDir(t, filepath.Join("testdata", "groups"))
	var out bytes.Buffer

	report, err := newRunner(&out).Run(context.Background(), runner.Request{
		Locator: loader.Locator{Path: filepath.Join(dir, "group_hero.json")},
		Task:    runner.TaskInventory,
	})
	require.NoError(t, err)
	require.NotNil(t, report.Inventory)
	assert.Equal(t, "Type: text\n  Props: ['key', 'label', 'name', 'type']\n", out.String())
}

func TestRunTarget_WriteFailureDoesNotStopDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"acf/a.json": &fstest.MapFile{Data: []byte(`{"fields":[{"type":"select","name":"a"}]}`)},
		"acf/b.json": &fstest.MapFile{Data: []byte(`{"fields":[{"type":"select","name":"b"}]}`)},
	}
	ld := loader.New(loader.WithFS(fsys))
	target, err := ld.ResolveFS("acf", "")
	require.NoError(t, err)

	var out bytes.Buffer
	report, err := newRunner(&out, runner.WithLoader(ld)).RunTarget(context.Background(), target, runner.Request{
		Task: runner.TaskFixSelect,
	})
	require.NoError(t, err)
	require.Len(t, report.Documents, 2)
	assert.Equal(t, 2, report.Count(runner.StatusFailed))

	var writeErr *runner.WriteError
	assert.True(t, errors.As(report.Documents[1].Err, &writeErr))
	assert.Contains(t, out.String(), "Failed to write a.json")
	assert.Contains(t, out.String(), "Failed to write b.json")
}

func TestRun_RejectsUnknownTask(t *testing.T) {
	_, err := runner.New().Run(context.Background(), runner.Request{Task: "polish"})
	assert.Error(t, err)
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
