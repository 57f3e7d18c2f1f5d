// Package upload owns the bill-upload lifecycle: file selection, preview
// management, bill-type choice and submission outcome.
package upload

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"stockscan/internal/inventory"
)

// Status is the submission state of a draft.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

var (
	// ErrNoFile is returned by BeginSubmit when no file has been selected;
	// no backend call is made in that case.
	ErrNoFile = errors.New("no file selected")

	// ErrSubmitInFlight guards against a second submission while one is
	// still pending. Callers treat it as a no-op.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrUnsupportedFile rejects selections outside the image whitelist.
	ErrUnsupportedFile = errors.New("unsupported file type")
)

// imageExts is the whitelist of accepted bill image extensions.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Submitter sends a selected bill image to the backend.
type Submitter interface {
	SubmitBill(ctx context.Context, path string, billType inventory.BillType) error
}

// Request is a snapshot of what BeginSubmit will send.
type Request struct {
	Path     string
	BillType inventory.BillType
}

// Draft is the transient, client-only state of a not-yet-confirmed bill
// upload. A draft holds at most one file and at most one live preview; the
// preview is released on every path that clears or replaces the file.
// Draft is not safe for concurrent use; it lives on the UI event loop.
type Draft struct {
	previewer Previewer

	filePath string
	preview  Preview
	billType inventory.BillType

	status    Status
	err       error
	succeeded bool
}

func NewDraft(previewer Previewer) *Draft {
	return &Draft{
		previewer: previewer,
		billType:  inventory.BillTypePurchase,
		status:    StatusIdle,
	}
}

// SelectFile stores the first offered file and acquires a fresh preview for
// it. Any previously held preview is released before the new one is created,
// so the draft never owns two previews at once. Selection clears any earlier
// error or success outcome. Allowed from any state.
func (d *Draft) SelectFile(paths ...string) error {
	if len(paths) == 0 {
		return ErrNoFile
	}

	// Only the first file of a multi-file selection is retained.
	path := paths[0]

	ext := strings.ToLower(filepath.Ext(path))
	if !imageExts[ext] {
		return fmt.Errorf("%w: %q is not a jpg, jpeg or png image", ErrUnsupportedFile, filepath.Base(path))
	}

	d.releasePreview()

	preview, err := d.previewer.Acquire(path)
	if err != nil {
		return fmt.Errorf("acquiring preview: %w", err)
	}

	d.filePath = path
	d.preview = preview
	d.status = StatusIdle
	d.err = nil
	d.succeeded = false

	return nil
}

// SetBillType updates the bill type. The type may be changed up to
// submission time.
func (d *Draft) SetBillType(t inventory.BillType) {
	d.billType = t
}

// BeginSubmit transitions the draft to submitting and returns what to send.
// With no file selected it fails synchronously with ErrNoFile; while a
// submission is pending it fails with ErrSubmitInFlight. Neither failure
// issues a backend call.
func (d *Draft) BeginSubmit() (Request, error) {
	if d.status == StatusSubmitting {
		return Request{}, ErrSubmitInFlight
	}

	if d.filePath == "" {
		return Request{}, ErrNoFile
	}

	d.status = StatusSubmitting
	d.err = nil
	d.succeeded = false

	return Request{Path: d.filePath, BillType: d.billType}, nil
}

// CompleteSubmit records the submission outcome. Success clears the file and
// releases its preview, returning the draft to an empty, re-usable state.
// Failure keeps the file and preview so the user can retry without
// re-selecting. Outcomes arriving outside a pending submission are discarded.
func (d *Draft) CompleteSubmit(err error) {
	if d.status != StatusSubmitting {
		return
	}

	if err != nil {
		d.status = StatusFailed
		d.err = err

		return
	}

	d.status = StatusSucceeded
	d.succeeded = true
	d.filePath = ""
	d.releasePreview()
}

// Submit runs the full begin/send/complete cycle against s.
func (d *Draft) Submit(ctx context.Context, s Submitter) error {
	req, err := d.BeginSubmit()
	if err != nil {
		return err
	}

	err = s.SubmitBill(ctx, req.Path, req.BillType)
	d.CompleteSubmit(err)

	return err
}

// Close releases all resources held by the draft. Called on view unmount.
func (d *Draft) Close() {
	d.filePath = ""
	d.releasePreview()
	d.status = StatusIdle
	d.err = nil
	d.succeeded = false
}

func (d *Draft) releasePreview() {
	if d.preview == nil {
		return
	}

	_ = d.preview.Release()
	d.preview = nil
}

func (d *Draft) Status() Status               { return d.status }
func (d *Draft) File() string                 { return d.filePath }
func (d *Draft) Preview() Preview             { return d.preview }
func (d *Draft) BillType() inventory.BillType { return d.billType }
func (d *Draft) Err() error                   { return d.err }
func (d *Draft) Succeeded() bool              { return d.succeeded }
