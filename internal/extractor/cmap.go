package extractor

import (
	"encoding/hex"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// CMap maps glyph codes to Unicode. Report PDFs built on Type0 fonts show
// text as hex glyph codes that only read through the font's ToUnicode map.
type CMap struct {
	// codes maps upper-case hex glyph codes to their text.
	codes   map[string]string
	codeLen int
}

// NewCMap returns an empty map.
func NewCMap() *CMap {
	return &CMap{codes: make(map[string]string)}
}

var (
	bfCharBlockRe  = regexp.MustCompile(`(?s)beginbfchar\s*(.*?)\s*endbfchar`)
	bfRangeBlockRe = regexp.MustCompile(`(?s)beginbfrange\s*(.*?)\s*endbfrange`)
	hexTokenRe     = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// ParseCMap reads the bfchar and bfrange sections of a ToUnicode stream.
func ParseCMap(content string) *CMap {
	cm := NewCMap()

	// <src> <dst>
	for _, block := range bfCharBlockRe.FindAllStringSubmatch(content, -1) {
		tokens := hexTokenRe.FindAllStringSubmatch(block[1], -1)
		for i := 0; i+1 < len(tokens); i += 2 {
			cm.set(tokens[i][1], hexToUnicode(tokens[i+1][1]))
		}
	}

	// <start> <end> <dst> or <start> <end> [<dst1> <dst2> ...]
	for _, block := range bfRangeBlockRe.FindAllStringSubmatch(content, -1) {
		for _, line := range strings.Split(block[1], "\n") {
			head, list, isList := strings.Cut(line, "[")
			tokens := hexTokenRe.FindAllStringSubmatch(head, -1)
			if len(tokens) < 2 {
				continue
			}
			start, end := hexToInt(tokens[0][1]), hexToInt(tokens[1][1])
			width := len(tokens[0][1])
			if start < 0 || end < start {
				continue
			}

			if isList {
				for i, t := range hexTokenRe.FindAllStringSubmatch(list, -1) {
					cm.set(intToHex(start+i, width), hexToUnicode(t[1]))
				}
				continue
			}
			if len(tokens) < 3 {
				continue
			}
			dst := hexToInt(tokens[2][1])
			if dst < 0 {
				continue
			}
			for code := start; code <= end; code++ {
				cm.set(intToHex(code, width), hexToUnicode(intToHex(dst+code-start, len(tokens[2][1]))))
			}
		}
	}
	return cm
}

func (cm *CMap) set(srcHex, text string) {
	if text == "" {
		return
	}
	cm.codes[strings.ToUpper(srcHex)] = text
	if cm.codeLen == 0 {
		cm.codeLen = max(len(srcHex)/2, 1)
	}
}

// Len is the number of mapped codes.
func (cm *CMap) Len() int {
	if cm == nil {
		return 0
	}
	return len(cm.codes)
}

// Merge copies other's mappings into cm.
func (cm *CMap) Merge(other *CMap) {
	for k, v := range other.codes {
		cm.codes[k] = v
	}
	if cm.codeLen == 0 {
		cm.codeLen = other.codeLen
	}
}

// Decode maps raw glyph codes to text. Codes with no mapping are dropped,
// except printable ASCII in one-byte maps.
func (cm *CMap) Decode(raw []byte) string {
	if cm == nil || len(cm.codes) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 0; i+cm.codeLen <= len(raw); {
		chunk := raw[i : i+cm.codeLen]
		if text, ok := cm.codes[strings.ToUpper(hex.EncodeToString(chunk))]; ok {
			sb.WriteString(text)
			i += cm.codeLen
			continue
		}
		if cm.codeLen > 1 {
			if text, ok := cm.codes[strings.ToUpper(hex.EncodeToString(chunk[:1]))]; ok {
				sb.WriteString(text)
				i++
				continue
			}
		} else if chunk[0] >= 32 && chunk[0] < 127 {
			sb.WriteByte(chunk[0])
		}
		i += cm.codeLen
	}
	return sb.String()
}

// toUnicodeMaps merges every ToUnicode stream in the document.
func toUnicodeMaps(ctx *model.Context) *CMap {
	merged := NewCMap()
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if err := sd.Decode(); err != nil || len(sd.Content) == 0 {
			continue
		}
		content := string(sd.Content)
		if !strings.Contains(content, "beginbfchar") && !strings.Contains(content, "beginbfrange") {
			continue
		}
		merged.Merge(ParseCMap(content))
	}
	return merged
}

func hexToInt(h string) int {
	val := 0
	for _, c := range strings.ToUpper(h) {
		val <<= 4
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'A' && c <= 'F':
			val += int(c-'A') + 10
		default:
			return -1
		}
	}
	return val
}

// intToHex renders val as upper-case hex, zero-padded to width digits.
func intToHex(val, width int) string {
	h := strings.ToUpper(hex.EncodeToString([]byte{byte(val >> 8), byte(val)}))
	if len(h) > width {
		h = h[len(h)-width:]
	}
	return strings.Repeat("0", width-len(h)) + h
}

// hexToUnicode decodes a UTF-16BE hex string, surrogate pairs included.
func hexToUnicode(h string) string {
	if len(h)%2 != 0 {
		h = "0" + h
	}
	data, err := hex.DecodeString(h)
	if err != nil || len(data) < 2 {
		return ""
	}
	units := make([]uint16, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		units = append(units, uint16(data[i])<<8|uint16(data[i+1]))
	}
	return string(utf16.Decode(units))
}
