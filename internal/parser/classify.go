package parser

import (
	"errors"
	"strings"

	"github.com/insightdelivered/credit-report-parser/internal/models"
)

// ErrUnknownFormat is returned when no bureau signal is present at all.
var ErrUnknownFormat = errors.New("could not detect credit bureau")

// Scores is the per-bureau signal total.
type Scores map[models.Bureau]int

// Max returns the highest score.
func (s Scores) Max() int {
	best := 0
	for _, v := range s {
		if v > best {
			best = v
		}
	}
	return best
}

// signal adds weight to bureau when every phrase occurs in the text, or
// any one of them when anyOf is set.
type signal struct {
	bureau        models.Bureau
	phrases       []string
	weight        int
	caseSensitive bool
	anyOf         bool
}

// bureauSignals are literal phrases and glyph signatures, weighted by how
// specific they are to one layout.
var bureauSignals = []signal{
	{bureau: models.BureauTransUnion, phrases: []string{"satisfactory accounts"}, weight: 2},
	{bureau: models.BureauTransUnion, phrases: []string{"payment/remarks key"}, weight: 2},
	{bureau: models.BureauTransUnion, phrases: []string{"satisfactory accounts / account information"}, weight: 3},
	{bureau: models.BureauTransUnion, phrases: []string{"annualcreditreport.transunion.com"}, weight: 3},

	{bureau: models.BureauExperian, phrases: []string{"annual credit report - experian"}, weight: 3},
	{bureau: models.BureauExperian, phrases: []string{"balance histories"}, weight: 2},
	{bureau: models.BureauExperian, phrases: []string{"account info"}, weight: 1},
	// Icon glyphs as they come out of Experian's embedded font.
	{bureau: models.BureauExperian, phrases: []string{"î§Ż", "î§¬"}, weight: 2, caseSensitive: true, anyOf: true},

	{bureau: models.BureauEquifax, phrases: []string{"your credit report summary"}, weight: 3},
	{bureau: models.BureauEquifax, phrases: []string{"narrative code"}, weight: 2},
	{bureau: models.BureauEquifax, phrases: []string{"credit accounts"}, weight: 2},
	{bureau: models.BureauEquifax, phrases: []string{"narrative code", "description"}, weight: 1},
}

// Score computes the signal total for every known bureau.
func Score(text string) Scores {
	scores := Scores{}
	for _, b := range models.Bureaus {
		scores[b] = 0
	}
	if text == "" {
		return scores
	}

	lower := strings.ToLower(text)
	for _, sig := range bureauSignals {
		hay := lower
		if sig.caseSensitive {
			hay = text
		}
		if sig.matches(hay) {
			scores[sig.bureau] += sig.weight
		}
	}
	return scores
}

// Classify picks the bureau with the strictly highest score. Ties on a
// positive score resolve in models.Bureaus order. A zero maximum fails
// with ErrUnknownFormat.
func Classify(text string) (models.Bureau, Scores, error) {
	scores := Score(text)
	best := scores.Max()
	if best == 0 {
		return "", scores, ErrUnknownFormat
	}
	for _, b := range models.Bureaus {
		if scores[b] == best {
			return b, scores, nil
		}
	}
	return "", scores, ErrUnknownFormat
}

func (s signal) matches(hay string) bool {
	if s.anyOf {
		return containsAny(hay, s.phrases...)
	}
	return containsAll(hay, s.phrases)
}

func containsAll(hay string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(hay, n) {
			return false
		}
	}
	return true
}

func containsAny(hay string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(hay, n) {
			return true
		}
	}
	return false
}
