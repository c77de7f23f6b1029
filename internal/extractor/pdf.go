package extractor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// PDFTextExtractor extracts text from PDF bytes up to a page limit. The
// production implementation shells out to pdftotext; tests substitute a mock.
type PDFTextExtractor interface {
	ExtractText(ctx context.Context, data []byte, maxPages int) (string, error)
}

// PageRenderer renders one page of a document to a raster surrogate, for
// document-type attachments that yield no machine text. Injected, optional.
type PageRenderer interface {
	RenderPageToImage(ctx context.Context, data []byte, pageIndex int) ([]byte, error)
}

// CommandPDFExtractor implements PDFTextExtractor using the pdftotext
// command-line tool, which must be installed.
type CommandPDFExtractor struct{}

// NewCommandPDFExtractor creates a new CommandPDFExtractor instance.
func NewCommandPDFExtractor() *CommandPDFExtractor {
	return &CommandPDFExtractor{}
}

// ExtractText writes the payload to a temporary file and runs pdftotext with
// a layout-preserving flag and a last-page cap.
func (e *CommandPDFExtractor) ExtractText(ctx context.Context, data []byte, maxPages int) (string, error) {
	dir, err := os.MkdirTemp("", "clearledgr-pdf")
	if err != nil {
		return "", fmt.Errorf("error creating temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	pdfFile := filepath.Join(dir, "attachment.pdf")
	if err := os.WriteFile(pdfFile, data, 0o600); err != nil {
		return "", fmt.Errorf("error writing temp pdf: %w", err)
	}

	textFile := pdfFile + ".txt"
	args := []string{"-layout"}
	if maxPages > 0 {
		args = append(args, "-l", fmt.Sprint(maxPages))
	}
	args = append(args, pdfFile, textFile)

	if err := exec.CommandContext(ctx, "pdftotext", args...).Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	output, err := os.ReadFile(textFile)
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}
	return string(output), nil
}

// MockPDFExtractor implements PDFTextExtractor for testing purposes,
// returning predefined data instead of shelling out.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{MockText: mockText, MockErr: mockErr}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(_ context.Context, _ []byte, _ int) (string, error) {
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
