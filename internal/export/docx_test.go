package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DocSummaryAPI/internal/domain/summaryModel"
	"github.com/lu4p/cat"
)

func TestSummaryToDocx(t *testing.T) {
	result := summaryModel.Result{
		Label:    summaryModel.LegalDocument,
		Depth:    summaryModel.Detailed,
		Language: "English",
		Summary: "## Summary\n**Acme Ltd** leases the premises to **Beta LLP**.\n\n" +
			"### Key Highlights\n- Rent is due monthly\n* Term is five years",
	}

	data, err := SummaryToDocx("lease.pdf", result)
	if err != nil {
		t.Fatalf("SummaryToDocx failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("output is not a zip container")
	}

	path := filepath.Join(t.TempDir(), "out.docx")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	text, err := cat.File(path)
	if err != nil {
		t.Fatalf("could not read generated docx: %v", err)
	}

	for _, want := range []string{"lease.pdf", "Acme Ltd", "Key Highlights", "Rent is due monthly", "Legal document"} {
		if !strings.Contains(text, want) {
			t.Errorf("docx text missing %q", want)
		}
	}
	if strings.Contains(text, "**") || strings.Contains(text, "## ") {
		t.Errorf("markdown markers leaked into docx: %q", text)
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	if got := cleanMarkdownInline("**a** __b__ `c`"); got != "a b c" {
		t.Errorf("got %q", got)
	}
}
