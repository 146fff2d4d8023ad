package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
	"github.com/insightdelivered/credit-report-parser/internal/normalize"
)

var inquiryDateLabel = regexp.MustCompile(`(?i)\s*Inquiry\s*Date\s*:?\s*$`)

// scanInquiries reads one inquiry per dated line. The name is the text
// before the date, else the nearest non-empty line above. Lines without a
// name or a parseable date are skipped.
func scanInquiries(section string, date *regexp.Regexp, kind models.InquiryKind) ([]models.Inquiry, []string) {
	var (
		found  []models.Inquiry
		chunks []string
	)
	if strings.TrimSpace(section) == "" {
		return found, chunks
	}

	lines := splitLines(section)
	for i, ln := range lines {
		if strings.TrimSpace(ln) == "" {
			continue
		}
		loc := date.FindStringSubmatchIndex(ln)
		if loc == nil {
			continue
		}
		dt := parseDateToken(ln[loc[2]:loc[3]])
		name := trimName(inquiryDateLabel.ReplaceAllString(ln[:loc[0]], ""))
		if name == "" {
			name = trimName(nearestAbove(lines, i, 0, nil))
		}
		chunks = append(chunks, ln)
		if name == "" || dt == nil {
			continue
		}
		found = append(found, models.Inquiry{Name: name, Kind: kind, Date: models.NewDate(*dt)})
	}
	return found, chunks
}

var (
	exInquiryNoise = regexp.MustCompile(`(?i)Hard\s+Inquiries|Soft\s+Inquiries|Inquiries|help|about`)
	exNotAName     = regexp.MustCompile(`(?i)^Inquiry|Date|^\$|\d{3}[-\s]?\d{3}`)
	letter         = regexp.MustCompile(`[A-Za-z]`)

	exPlaceholderSkip = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Hard\s+Inquiries|help|about|Your\s+report|This\s+section`),
		regexp.MustCompile(`\d{1,2}/\d{1,2}/|\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`(?i)^Inquiry|^Date`),
	}
)

// looksLikeName accepts lines with letters that are not labels, amounts or
// phone numbers.
func looksLikeName(s string) bool {
	s = trimName(s)
	return letter.MatchString(s) && !exNotAName.MatchString(s)
}

// lookAheadInquiries handles hard-inquiry listings where the name and date
// sit on separate lines. For each line with a date on it or within the next
// two lines, the name is the line itself, one of the two lines above, or
// the line after the date, whichever first looks like a name.
func lookAheadInquiries(section string) ([]models.Inquiry, []string) {
	var (
		found  []models.Inquiry
		chunks []string
	)
	seen := map[string]bool{}
	lines := splitLines(section)
	for i, ln := range lines {
		if exInquiryNoise.MatchString(ln) {
			continue
		}
		token, at := "", -1
		for k := i; k < i+3 && k < len(lines); k++ {
			if m := dateAnyForm.FindStringSubmatch(lines[k]); m != nil {
				token, at = m[1], k
				break
			}
		}
		if at < 0 {
			continue
		}

		var candidates []string
		if looksLikeName(ln) {
			candidates = append(candidates, ln)
		}
		for j := 1; j <= 2; j++ {
			if i-j >= 0 && looksLikeName(lines[i-j]) {
				candidates = append(candidates, lines[i-j])
			}
		}
		if at+1 < len(lines) && looksLikeName(lines[at+1]) {
			candidates = append(candidates, lines[at+1])
		}
		if len(candidates) == 0 {
			continue
		}
		name := trimName(candidates[0])
		dt := parseDateToken(token)
		if name == "" || dt == nil {
			continue
		}
		inq := models.Inquiry{Name: name, Kind: models.InquiryHard, Date: models.NewDate(*dt)}
		if key := inq.Name + "|" + inq.Date.String(); !seen[key] {
			seen[key] = true
			found = append(found, inq)
			chunks = append(chunks, name+" "+token)
		}
	}
	return found, chunks
}

// placeholderInquiry records a single hard inquiry for a section that shows
// a date but whose entries could not be read. The name is the first line
// that looks like one, else "Hard Inquiry".
func placeholderInquiry(section string) (models.Inquiry, bool) {
	m := dateAnyForm.FindStringSubmatch(section)
	if m == nil {
		return models.Inquiry{}, false
	}
	dt := parseDateToken(m[1])
	if dt == nil {
		return models.Inquiry{}, false
	}

	name := "Hard Inquiry"
lines:
	for _, ln := range splitLines(section) {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		for _, re := range exPlaceholderSkip {
			if re.MatchString(ln) {
				continue lines
			}
		}
		if letter.MatchString(ln) {
			name = ln
			break
		}
	}
	return models.Inquiry{Name: name, Kind: models.InquiryHard, Date: models.NewDate(*dt)}, true
}

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	recordKind     = regexp.MustCompile(`(?i)(bankruptcy|lien|judgment|foreclosure)`)
	noRecords      = regexp.MustCompile(`(?i)^(?:you have )?no public records|^none reported`)
)

// publicRecords reads one record per blank-line separated paragraph. The
// type is the first record keyword found, else generic; the date is the
// first M/D/YYYY token.
func publicRecords(section string) ([]models.PublicRecord, []string) {
	records := []models.PublicRecord{}
	var chunks []string
	for _, para := range paragraphBreak.Split(section, -1) {
		para = strings.TrimSpace(para)
		if para == "" || noRecords.MatchString(para) {
			continue
		}
		rec := models.PublicRecord{
			Type:    models.RecordGeneric,
			Details: map[string]any{"text": para},
		}
		if m := recordKind.FindStringSubmatch(para); m != nil {
			rec.Type = strings.ToLower(m[1])
		}
		if m := dateSlashLong.FindStringSubmatch(para); m != nil {
			rec.Date = models.DateOf(normalize.ParseDate(m[1]))
		}
		records = append(records, rec)
		chunks = append(chunks, para)
	}
	return records, chunks
}

var pulledLabel = regexp.MustCompile(`(?im)^[ \t]*(?:Report Date|Date of Report|Date Pulled|Report Created|Date Generated)[ \t]*:?[ \t]*(.+)$`)

// pulledOn finds the date the report was generated from its header labels.
func pulledOn(text string) *models.Date {
	for _, m := range pulledLabel.FindAllStringSubmatch(text, -1) {
		val := strings.TrimSpace(m[1])
		if tok := dateAnyForm.FindString(val); tok != "" {
			val = tok
		}
		if dt := parseDateToken(val); dt != nil {
			return models.DateOf(dt)
		}
	}
	return nil
}

// personField is a labelled line of the personal information section.
type personField struct {
	key  string
	re   *regexp.Regexp
	many bool
	date bool
}

func personLabel(key, label string, many, date bool) personField {
	return personField{
		key:  key,
		re:   regexp.MustCompile(`(?im)^[ \t]*` + label + `[ \t]*:?[ \t]*(\S.*)$`),
		many: many,
		date: date,
	}
}

var personFields = []personField{
	personLabel("name", `Name`, false, false),
	personLabel("also_known_as", `(?:Also Known As|Other Names?)`, true, false),
	personLabel("date_of_birth", `(?:Date of Birth|DOB)`, false, true),
	personLabel("address", `(?:Current )?Address`, false, false),
	personLabel("previous_addresses", `(?:Previous|Former) Address(?:es)?`, true, false),
	personLabel("employer", `(?:Current )?Employer`, false, false),
}

// personInfo reads the labelled lines of a personal information section.
func personInfo(section string) map[string]any {
	person := map[string]any{}
	for _, f := range personFields {
		matches := f.re.FindAllStringSubmatch(section, -1)
		if len(matches) == 0 {
			continue
		}
		if f.many {
			vals := make([]string, 0, len(matches))
			for _, m := range matches {
				vals = append(vals, strings.TrimSpace(m[1]))
			}
			person[f.key] = vals
			continue
		}
		val := strings.TrimSpace(matches[0][1])
		if f.date {
			if dt := normalize.ParseDate(val); dt != nil {
				val = models.NewDate(*dt).String()
			}
		}
		person[f.key] = val
	}
	return person
}
