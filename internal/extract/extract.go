package extract

import (
	"regexp"
	"slices"
	"strings"
)

// Field is a canonical pattern field name
type Field string

const (
	FieldName         Field = "name"
	FieldNotation     Field = "notation"
	FieldInstructions Field = "instructions"
	FieldDifficulty   Field = "difficulty"
	FieldMaterials    Field = "materials"
	FieldTime         Field = "time"
)

// Order lists the canonical fields in form order
var Order = []Field{FieldName, FieldNotation, FieldInstructions, FieldDifficulty, FieldMaterials, FieldTime}

// Aliases holds the accepted headers per field, highest priority first.
// Matching is case-insensitive.
var Aliases = map[Field][]string{
	FieldName:         {"NAME", "Pattern Name", "Name"},
	FieldNotation:     {"NOTATION", "Pattern Notation", "Notation"},
	FieldInstructions: {"INSTRUCTIONS", "Pattern Instructions", "Instructions", "Steps"},
	FieldDifficulty:   {"DIFFICULTY", "Difficulty Level", "Difficulty", "Skill Level"},
	FieldMaterials:    {"MATERIALS", "Materials Needed", "Materials", "Supplies"},
	FieldTime:         {"TIME", "Estimated Time", "Time Estimate", "Time"},
}

// Fields maps canonical fields to captured text. Unmatched fields are
// missing, never empty.
type Fields map[Field]string

// Get returns the captured text for f
func (fs Fields) Get(f Field) (string, bool) {
	v, ok := fs[f]
	return v, ok
}

// header matches one alias: an optional bullet or numbered list marker and
// emphasis, the alias, then a colon. Group 1 spans the header itself without
// the boundary char, so a marker never trails the previous field.
const header = `(?i)(?:^|[^\p{L}\p{N}*_#])((?:[-*+•][ \t]+)?(?:\d+[.)][ \t]*)?[*_#]*[ \t]*%s[*_]*[ \t]*:[*_]*)`

type alias struct {
	field Field
	re    *regexp.Regexp
}

// Extractor parses assistant text into Fields. It is immutable and safe for
// concurrent use.
type Extractor struct {
	byField map[Field][]*regexp.Regexp
	all     []alias
	order   []Field
}

// New compiles an extractor for the given alias table
func New(aliases map[Field][]string) *Extractor {
	e := &Extractor{byField: make(map[Field][]*regexp.Regexp, len(aliases))}
	for _, f := range Order {
		if _, ok := aliases[f]; ok {
			e.order = append(e.order, f)
		}
	}
	var extra []Field
	for f := range aliases {
		if !slices.Contains(e.order, f) {
			extra = append(extra, f)
		}
	}
	slices.Sort(extra)
	e.order = append(e.order, extra...)

	for _, f := range e.order {
		for _, a := range aliases[f] {
			re := regexp.MustCompile(strings.Replace(header, "%s", regexp.QuoteMeta(a), 1))
			e.byField[f] = append(e.byField[f], re)
			e.all = append(e.all, alias{field: f, re: re})
		}
	}
	return e
}

var defaultExtractor = New(Aliases)

// Extract parses text with the default alias table
func Extract(text string) Fields {
	return defaultExtractor.Extract(text)
}

// Extract returns every field whose header appears in text. Content runs
// from the header's colon to the next recognised header of any field, or
// to the end of text.
func (e *Extractor) Extract(text string) Fields {
	fields := make(Fields)
	if strings.TrimSpace(text) == "" {
		return fields
	}

	starts := e.headerStarts(text)
	for _, f := range e.order {
		for _, re := range e.byField[f] {
			loc := re.FindStringSubmatchIndex(text)
			if loc == nil {
				continue
			}
			from := loc[1]
			to := nextAfter(starts, from, len(text))
			if content := strings.TrimSpace(text[from:to]); content != "" {
				fields[f] = content
			}
			break
		}
	}
	return fields
}

// headerStarts collects the start offset of every header in text
func (e *Extractor) headerStarts(text string) []int {
	var starts []int
	for _, a := range e.all {
		for _, loc := range a.re.FindAllStringSubmatchIndex(text, -1) {
			starts = append(starts, loc[2])
		}
	}
	return starts
}

func nextAfter(starts []int, from, end int) int {
	next := end
	for _, s := range starts {
		if s >= from && s < next {
			next = s
		}
	}
	return next
}
