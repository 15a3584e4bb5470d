package portalclient

import (
	"context"
	"sort"
	"strings"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec is a single-column sort; an empty Column means no sorting.
type SortSpec struct {
	Column    string
	Direction SortDirection
}

// ListView is the list screen's state: the fetched rows plus the search
// string and sort column the user has applied. Filtering and sorting are
// local; the server always hands over the full list.
type ListView struct {
	client *Client
	rows   []Employee
	search string
	sort   SortSpec
}

func NewListView(client *Client) *ListView {
	return &ListView{client: client}
}

// Load fetches the full employee list. A fetch failure degrades to an
// empty list rather than surfacing an error, as the list screen does.
func (v *ListView) Load(ctx context.Context) {
	rows, err := v.client.ListEmployees(ctx)
	if err != nil {
		v.rows = nil
		return
	}
	v.rows = rows
}

// Total is the unfiltered row count (the "Total Count" header).
func (v *ListView) Total() int {
	return len(v.rows)
}

func (v *ListView) SetSearch(q string) {
	v.search = q
}

func (v *ListView) SetSort(column string, direction SortDirection) {
	v.sort = SortSpec{Column: column, Direction: direction}
}

// Rows applies the current search and sort and returns the visible rows.
// Ties keep their encounter order.
func (v *ListView) Rows() []Employee {
	filtered := make([]Employee, 0, len(v.rows))
	q := strings.ToLower(strings.TrimSpace(v.search))
	for _, e := range v.rows {
		if q == "" || matchesSearch(e, q) {
			filtered = append(filtered, e)
		}
	}

	if v.sort.Column == "" {
		return filtered
	}

	col := strings.ToLower(v.sort.Column)
	desc := v.sort.Direction == SortDesc
	sort.SliceStable(filtered, func(i, j int) bool {
		if desc {
			i, j = j, i
		}
		return rowLess(filtered[i], filtered[j], col)
	})

	return filtered
}

// Delete removes the employee remotely and, on success, drops the row
// from local state so no reload is needed.
func (v *ListView) Delete(ctx context.Context, id int64) error {
	if err := v.client.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	kept := v.rows[:0]
	for _, e := range v.rows {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	v.rows = kept
	return nil
}

// matchesSearch is a case-insensitive substring OR-match across the
// visible text fields.
func matchesSearch(e Employee, q string) bool {
	for _, field := range []string{e.Name, e.Email, e.Designation, e.Mobile, e.Gender, e.Course} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// rowLess compares one column: ids numerically, date columns as
// timestamps, everything else as case-insensitive strings.
func rowLess(a, b Employee, col string) bool {
	if strings.Contains(col, "date") {
		return a.CreateDate.Before(b.CreateDate)
	}
	switch col {
	case "id":
		return a.ID < b.ID
	case "email":
		return strings.ToLower(a.Email) < strings.ToLower(b.Email)
	case "mobile":
		return a.Mobile < b.Mobile
	case "designation":
		return strings.ToLower(a.Designation) < strings.ToLower(b.Designation)
	case "gender":
		return strings.ToLower(a.Gender) < strings.ToLower(b.Gender)
	case "course":
		return strings.ToLower(a.Course) < strings.ToLower(b.Course)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}
