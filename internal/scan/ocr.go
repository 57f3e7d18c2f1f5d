package scan

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Extractor pulls raw text out of a bill image.
type Extractor interface {
	ExtractText(ctx context.Context, imagePath string) (string, error)
}

// CommandExtractor shells out to a tesseract-compatible OCR binary that
// writes recognized text to stdout.
type CommandExtractor struct {
	Command string
	Lang    string
}

func NewCommandExtractor(command, lang string) *CommandExtractor {
	return &CommandExtractor{Command: command, Lang: lang}
}

func (e *CommandExtractor) ExtractText(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, e.Command, imagePath, "stdout", "-l", e.Lang)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w: %s", e.Command, err, stderr.String())
	}

	return stdout.String(), nil
}
