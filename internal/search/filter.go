package search

import "strings"

// DateWindow restricts results to offers published within a recent window.
type DateWindow int

const (
	DateAny DateWindow = iota
	DateLast24h
	DateLast3Days
	DateLast7Days
)

var dateTokens = map[DateWindow]string{
	DateLast24h:   "last_24h",
	DateLast3Days: "last_3_days",
	DateLast7Days: "last_7_days",
}

// Token returns the literal understood by the remote search endpoint, or "" for DateAny.
func (w DateWindow) Token() string {
	return dateTokens[w]
}

// ParseDateWindow maps a token back to a window. Empty or unknown tokens mean no date filter.
func ParseDateWindow(token string) DateWindow {
	token = strings.TrimSpace(token)
	for w, t := range dateTokens {
		if t == token {
			return w
		}
	}
	return DateAny
}

// FilterState holds the user's current search criteria and page index.
type FilterState struct {
	Cities      []string   `json:"cities,omitempty"`
	Departments []string   `json:"departments,omitempty"`
	Regions     []string   `json:"regions,omitempty"`
	Skills      []string   `json:"skills,omitempty"`
	Contracts   []string   `json:"contracts,omitempty"`
	DateWindow  DateWindow `json:"date_window,omitempty"`
	Page        int        `json:"page"`
}

func (f *FilterState) SetCities(values []string)      { f.Cities = orderedSet(values) }
func (f *FilterState) SetDepartments(values []string) { f.Departments = orderedSet(values) }
func (f *FilterState) SetRegions(values []string)     { f.Regions = orderedSet(values) }
func (f *FilterState) SetSkills(values []string)      { f.Skills = orderedSet(values) }
func (f *FilterState) SetContracts(values []string)   { f.Contracts = orderedSet(values) }
func (f *FilterState) SetDateWindow(w DateWindow)     { f.DateWindow = w }

// TriggerSearch starts a new search from the first page.
func (f *FilterState) TriggerSearch() {
	f.Page = 0
}

// NextPage advances one page when allowed and reports whether the page changed.
func (f *FilterState) NextPage(totalPages int) bool {
	if !CanGoNext(f.Page, totalPages) {
		return false
	}
	f.Page++
	return true
}

// PrevPage goes back one page when allowed and reports whether the page changed.
func (f *FilterState) PrevPage() bool {
	if !CanGoPrev(f.Page) {
		return false
	}
	f.Page--
	return true
}

// Clone returns a deep copy so candidate states can be built without touching the original.
func (f FilterState) Clone() FilterState {
	out := f
	out.Cities = cloneStrings(f.Cities)
	out.Departments = cloneStrings(f.Departments)
	out.Regions = cloneStrings(f.Regions)
	out.Skills = cloneStrings(f.Skills)
	out.Contracts = cloneStrings(f.Contracts)
	return out
}

// orderedSet keeps first-seen order, dropping blanks and duplicates.
func orderedSet(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
