// Package scan turns an uploaded bill image into structured line items: an
// external OCR engine extracts the text, and the parser picks out the
// "name quantity price" lines the inventory update consumes.
package scan

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	enc "stockscan/internal/encoding"
)

// LineItem is one recognized bill line.
type LineItem struct {
	Name      string
	Quantity  int64
	UnitPrice int64 // cents
}

// lineRe matches "<name> <quantity> <price>" with a dot or comma decimal
// separator. OCR noise lines (headers, totals, smudges) simply don't match.
var lineRe = regexp.MustCompile(`^\s*(\S+)\s+(\d+)\s+(\d+(?:[.,]\d+)?)\s*$`)

// Parse reads OCR output and returns the recognized line items in order.
// Lines that don't match the item pattern are skipped, not reported as
// errors; a fully unreadable bill yields an empty slice.
func Parse(r io.Reader) ([]LineItem, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var items []LineItem

	scanner := bufio.NewScanner(utf8r)
	for scanner.Scan() {
		match := lineRe.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}

		qty, err := decimal.NewFromString(match[2])
		if err != nil {
			continue
		}

		price, err := parsePrice(match[3])
		if err != nil {
			continue
		}

		items = append(items, LineItem{
			Name:      match[1],
			Quantity:  qty.IntPart(),
			UnitPrice: price,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	return items, nil
}

// parsePrice parses a decimal price string into cents.
func parsePrice(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
