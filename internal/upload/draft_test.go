package upload_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockscan/internal/inventory"
	"stockscan/internal/upload"
)

// fakePreviewer tracks how many previews are live so tests can assert that
// every acquire is paired with a release.
type fakePreviewer struct {
	acquired int
	live     int
}

func (p *fakePreviewer) Acquire(path string) (upload.Preview, error) {
	p.acquired++
	p.live++

	return &fakePreview{owner: p, path: "preview-of-" + path}, nil
}

type fakePreview struct {
	owner    *fakePreviewer
	path     string
	released bool
}

func (p *fakePreview) Path() string { return p.path }

func (p *fakePreview) Release() error {
	if !p.released {
		p.released = true
		p.owner.live--
	}

	return nil
}

type fakeSubmitter struct {
	calls int
	err   error
}

func (s *fakeSubmitter) SubmitBill(_ context.Context, _ string, _ inventory.BillType) error {
	s.calls++
	return s.err
}

func TestDraft_SelectFile(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("bill.jpg"))
	assert.Equal(t, "bill.jpg", d.File())
	assert.Equal(t, "preview-of-bill.jpg", d.Preview().Path())
	assert.Equal(t, 1, previewer.live)
}

func TestDraft_SelectFile_FirstOfManyWins(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("first.jpg", "second.png", "third.jpeg"))
	assert.Equal(t, "first.jpg", d.File())
	assert.Equal(t, 1, previewer.live)
}

func TestDraft_SelectFile_NoFiles(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	err := d.SelectFile()
	assert.ErrorIs(t, err, upload.ErrNoFile)
	assert.Empty(t, d.File())
	assert.Equal(t, 0, previewer.acquired)
}

func TestDraft_SelectFile_UnsupportedType(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	err := d.SelectFile("notes.pdf")
	assert.ErrorIs(t, err, upload.ErrUnsupportedFile)
	assert.Empty(t, d.File())
	assert.Equal(t, 0, previewer.acquired)
}

func TestDraft_Reselect_ReleasesOldPreview(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("one.jpg"))
	require.NoError(t, d.SelectFile("two.png"))

	assert.Equal(t, "two.png", d.File())
	assert.Equal(t, 2, previewer.acquired)
	assert.Equal(t, 1, previewer.live)
}

func TestDraft_Submit_NoFile(t *testing.T) {
	d := upload.NewDraft(&fakePreviewer{})
	s := &fakeSubmitter{}

	err := d.Submit(context.Background(), s)
	assert.ErrorIs(t, err, upload.ErrNoFile)
	assert.Equal(t, 0, s.calls)
	assert.Equal(t, upload.StatusIdle, d.Status())
}

func TestDraft_Submit_Success(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)
	s := &fakeSubmitter{}

	require.NoError(t, d.SelectFile("bill.jpg"))
	d.SetBillType(inventory.BillTypeSale)

	require.NoError(t, d.Submit(context.Background(), s))

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, upload.StatusSucceeded, d.Status())
	assert.True(t, d.Succeeded())
	assert.NoError(t, d.Err())

	// Success clears the file and releases the preview.
	assert.Empty(t, d.File())
	assert.Nil(t, d.Preview())
	assert.Equal(t, 0, previewer.live)
}

func TestDraft_Submit_FailureKeepsSelection(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)
	s := &fakeSubmitter{err: errors.New("invalid bill type")}

	require.NoError(t, d.SelectFile("bill.jpg"))

	err := d.Submit(context.Background(), s)
	assert.Error(t, err)
	assert.Equal(t, upload.StatusFailed, d.Status())
	assert.False(t, d.Succeeded())
	assert.EqualError(t, d.Err(), "invalid bill type")

	// The file and preview survive a failure so the user can retry.
	assert.Equal(t, "bill.jpg", d.File())
	assert.NotNil(t, d.Preview())
	assert.Equal(t, 1, previewer.live)
}

func TestDraft_RetryAfterFailure(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("bill.jpg"))

	failing := &fakeSubmitter{err: errors.New("boom")}
	require.Error(t, d.Submit(context.Background(), failing))

	// Retry without re-selecting; no new preview is acquired.
	ok := &fakeSubmitter{}
	require.NoError(t, d.Submit(context.Background(), ok))

	assert.Equal(t, 1, ok.calls)
	assert.True(t, d.Succeeded())
	assert.Equal(t, 1, previewer.acquired)
	assert.Equal(t, 0, previewer.live)
}

func TestDraft_SingleSubmissionInFlight(t *testing.T) {
	d := upload.NewDraft(&fakePreviewer{})

	require.NoError(t, d.SelectFile("bill.jpg"))

	req, err := d.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, "bill.jpg", req.Path)
	assert.Equal(t, upload.StatusSubmitting, d.Status())

	// A second begin while the first is pending is rejected.
	_, err = d.BeginSubmit()
	assert.ErrorIs(t, err, upload.ErrSubmitInFlight)

	d.CompleteSubmit(nil)
	assert.Equal(t, upload.StatusSucceeded, d.Status())
}

func TestDraft_CompleteSubmit_IgnoredWhenNotSubmitting(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("bill.jpg"))

	// A stray outcome with no pending submission changes nothing.
	d.CompleteSubmit(errors.New("late arrival"))

	assert.Equal(t, upload.StatusIdle, d.Status())
	assert.NoError(t, d.Err())
	assert.Equal(t, "bill.jpg", d.File())
	assert.Equal(t, 1, previewer.live)
}

func TestDraft_SelectAfterFailure_ClearsError(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("bill.jpg"))
	require.Error(t, d.Submit(context.Background(), &fakeSubmitter{err: errors.New("boom")}))

	require.NoError(t, d.SelectFile("other.png"))

	assert.Equal(t, upload.StatusIdle, d.Status())
	assert.NoError(t, d.Err())
	assert.False(t, d.Succeeded())
	assert.Equal(t, 1, previewer.live)
}

func TestDraft_Close_ReleasesEverything(t *testing.T) {
	previewer := &fakePreviewer{}
	d := upload.NewDraft(previewer)

	require.NoError(t, d.SelectFile("bill.jpg"))
	d.Close()

	assert.Empty(t, d.File())
	assert.Nil(t, d.Preview())
	assert.Equal(t, 0, previewer.live)

	// Closing an already-empty draft is harmless.
	d.Close()
	assert.Equal(t, 0, previewer.live)
}

func TestTempPreviewer(t *testing.T) {
	dir := t.TempDir()

	previewer, err := upload.NewTempPreviewer(dir)
	require.NoError(t, err)

	src := filepath.Join(dir, "bill.jpg")
	require.NoError(t, os.WriteFile(src, []byte("fake image bytes"), 0o644))

	preview, err := previewer.Acquire(src)
	require.NoError(t, err)
	assert.FileExists(t, preview.Path())

	require.NoError(t, preview.Release())
	assert.NoFileExists(t, preview.Path())
}
