package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/messijoe-pos/api/internal/service"
)

// FileSink persists receipts as plain-text files named
// Transaction#<id>.txt inside a fixed directory. Files are opened with
// O_EXCL: a duplicate transaction id is surfaced as an error, never an
// overwrite.
type FileSink struct {
	dir string
}

// NewFileSink creates the receipt directory if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create receipt dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Path returns where the receipt for the given transaction id lives.
func (s *FileSink) Path(transactionID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("Transaction#%s.txt", transactionID))
}

// Write renders and persists the receipt, returning the file path.
func (s *FileSink) Write(rec service.PaymentRecord) (string, error) {
	path := s.Path(rec.TransactionID)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open receipt %s: %w", path, err)
	}
	if _, err := f.WriteString(Render(rec)); err != nil {
		f.Close()
		return "", fmt.Errorf("write receipt %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close receipt %s: %w", path, err)
	}
	return path, nil
}

// Render formats the receipt: header with the table id, itemized lines in
// guest-entry order, then subtotal, tip, tax, total.
func Render(rec service.PaymentRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*** RECEIPT FOR TABLE %d ***\n", rec.TableID)
	b.WriteString("-------------------------\n")
	for _, item := range rec.Items {
		fmt.Fprintf(&b, "%s - $%d\n", item.Name, item.Price)
	}
	b.WriteString("-------------------------\n")
	fmt.Fprintf(&b, "Subtotal: $%s\n", rec.Bill.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Tip (20%%): $%s\n", rec.Bill.Tip.StringFixed(2))
	fmt.Fprintf(&b, "Tax (10%%): $%s\n", rec.Bill.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n", rec.Bill.Total.StringFixed(2))
	return b.String()
}
