package extractor

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// extractWithPDFCPU walks each page's content stream with pdfcpu and
// rebuilds text lines from the text-showing operators.
func extractWithPDFCPU(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu crashed: %v", r)
		}
	}()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	cmap := toUnicodeMaps(ctx)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil || r == nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, textFromContentStream([]byte(readAllString(r)), cmap))
	}
	if totalTextLen(pages) == 0 {
		return nil, fmt.Errorf("pdfcpu found no text operators")
	}
	return pages, nil
}

// pdfStringRe matches literal (text) and hex <0041> strings.
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)|<([0-9A-Fa-f\s]*)>`)

// textFromContentStream handles Tj, TJ, ' and the line-moving operators.
// Each Td/TD/T*/' starts a new output line so that label/value pairs stay
// on separate lines as they are printed. Hex strings are read through cmap.
func textFromContentStream(data []byte, cmap *CMap) string {
	var lines []string
	var cur strings.Builder

	flush := func() {
		line := strings.TrimSpace(cur.String())
		if line != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			writeStrings(&cur, line, cmap)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			flush()
			writeStrings(&cur, line, cmap)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")),
			bytes.Equal(line, []byte("T*")), bytes.Equal(line, []byte("ET")):
			flush()
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

func writeStrings(sb *strings.Builder, line []byte, cmap *CMap) {
	for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
		if m[2] == nil {
			sb.WriteString(decodeLiteral(decodePDFString(m[1]), cmap))
			continue
		}
		sb.WriteString(decodeHex(m[2], cmap))
	}
}

// decodeLiteral reads a literal string through cmap when it holds raw
// glyph codes rather than printable text.
func decodeLiteral(s string, cmap *CMap) string {
	if cmap.Len() > 0 && !isPrintableASCII(s) {
		if text := cmap.Decode([]byte(s)); text != "" {
			return text
		}
	}
	return s
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

func decodeHex(h []byte, cmap *CMap) string {
	digits := strings.Join(strings.Fields(string(h)), "")
	if len(digits)%2 != 0 {
		digits += "0"
	}
	raw, err := hex.DecodeString(digits)
	if err != nil {
		return ""
	}
	if cmap.Len() > 0 {
		return cmap.Decode(raw)
	}
	if len(raw) >= 2 && raw[0] == 0 {
		return hexToUnicode(digits)
	}
	return string(raw)
}

// decodePDFString handles the PDF literal-string escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] < '0' || raw[i] > '7' {
				sb.WriteByte(raw[i])
				continue
			}
			// Octal escape, up to three digits.
			val := int(raw[i] - '0')
			for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}
