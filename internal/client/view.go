package client

import (
	"strings"
	"sync"
	"time"

	"github.com/demanddesk/api/internal/core/domain"
)

const defaultDebounce = 300 * time.Millisecond

// Row is a rendered table row. Rows carry the fields the table and the
// in-memory filter need; presentation (labels, icons) stays out.
type Row struct {
	ID          string
	Title       string
	Category    string
	Description string
	Status      domain.DemandStatus
	CreatedAt   time.Time
}

// View holds the ephemeral page state of the dashboard: the single active
// section, the rendered rows with their filter, and the (at most one) open
// detail modal. Filtering re-evaluates visibility over already-fetched rows;
// no network call happens per keystroke.
type View struct {
	mu sync.Mutex

	activeSection string
	rows          []Row
	searchTerm    string
	statusFilter  string
	modal         *domain.Demand
	inFlight      bool

	debounce      *time.Timer
	debounceDelay time.Duration
	pendingSearch string
}

// NewView creates a view with the given initial section active.
func NewView(initialSection string) *View {
	return &View{
		activeSection: initialSection,
		debounceDelay: defaultDebounce,
	}
}

// ActivateSection makes the named section the only active one.
func (v *View) ActivateSection(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeSection = name
}

// ActiveSection returns the currently active section.
func (v *View) ActiveSection() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeSection
}

// RenderDemands fully replaces the rendered rows with the given records.
// Rendering the same record set twice yields the same visible table.
func (v *View) RenderDemands(demands []*domain.Demand) {
	rows := make([]Row, 0, len(demands))
	for _, d := range demands {
		rows = append(rows, Row{
			ID:          d.ID,
			Title:       d.Title,
			Category:    d.Category,
			Description: d.Description,
			Status:      d.Status,
			CreatedAt:   d.CreatedAt,
		})
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.rows = rows
}

// SetSearch schedules the search term to be applied after the debounce
// delay. Rapid successive calls collapse into one application of the last
// term. Debouncing bounds re-render frequency; it is not needed for
// correctness.
func (v *View) SetSearch(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pendingSearch = term
	if v.debounce != nil {
		v.debounce.Stop()
	}
	v.debounce = time.AfterFunc(v.debounceDelay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		v.searchTerm = v.pendingSearch
	})
}

// SetStatusFilter applies the status filter immediately ("" or "all" = none).
func (v *View) SetStatusFilter(status string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if status == "all" {
		status = ""
	}
	v.statusFilter = status
}

// VisibleRows returns the rows matching the current search term and status
// filter, in render order. The search is a case-insensitive substring match
// over title and description, mirroring the server-side admin search.
func (v *View) VisibleRows() []Row {
	v.mu.Lock()
	defer v.mu.Unlock()

	term := strings.ToLower(v.searchTerm)
	visible := make([]Row, 0, len(v.rows))
	for _, r := range v.rows {
		if v.statusFilter != "" && string(r.Status) != v.statusFilter {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

// OpenModal shows the detail modal for one demand, replacing any open one.
func (v *View) OpenModal(d *domain.Demand) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = d
}

// CloseModal discards the open modal, if any.
func (v *View) CloseModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.modal = nil
}

// Modal returns the currently open modal, or nil.
func (v *View) Modal() *domain.Demand {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.modal
}

// BeginRequest marks a mutation as in flight and reports whether the caller
// may proceed. A second submission while one is pending is refused, which is
// the double-click guard on the submitting control.
func (v *View) BeginRequest() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inFlight {
		return false
	}
	v.inFlight = true
	return true
}

// EndRequest re-enables submissions after the in-flight call completed or failed.
func (v *View) EndRequest() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.inFlight = false
}
