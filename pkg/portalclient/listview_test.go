package portalclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"emp-portal/pkg/portalclient"

	"github.com/stretchr/testify/assert"
)

func listViewFixture(t *testing.T, rows []portalclient.Employee) (*portalclient.ListView, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(rows)
		case http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]string{"message": "Employee deleted successfully"})
		}
	}))
	t.Cleanup(srv.Close)

	view := portalclient.NewListView(portalclient.New(srv.URL))
	view.Load(context.Background())
	return view, srv
}

func sampleRows() []portalclient.Employee {
	day := func(d int) time.Time {
		return time.Date(2023, 2, d, 0, 0, 0, 0, time.UTC)
	}
	return []portalclient.Employee{
		{ID: 1, Name: "Hukum", Email: "hcgupta@cstech.in", Mobile: "9540416622", Designation: "HR", Gender: "Male", Course: "MCA", CreateDate: day(13)},
		{ID: 2, Name: "Manish", Email: "manish@cstech.in", Mobile: "7406986806", Designation: "Sales", Gender: "Male", Course: "BCA", CreateDate: day(12)},
		{ID: 3, Name: "Yash", Email: "yash@cstech.in", Mobile: "9177812061", Designation: "Manager", Gender: "Male", Course: "BSC", CreateDate: day(21)},
		{ID: 4, Name: "Abhishek", Email: "abhishek@cstech.in", Mobile: "9367788755", Designation: "HR", Gender: "Male", Course: "MCA", CreateDate: day(13)},
	}
}

func names(rows []portalclient.Employee) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestListView_Search(t *testing.T) {
	view, _ := listViewFixture(t, sampleRows())

	t.Run("matches any visible field, case-insensitive", func(t *testing.T) {
		view.SetSearch("hr")

		rows := view.Rows()

		assert.Equal(t, []string{"Hukum", "Abhishek"}, names(rows))
	})

	t.Run("email fragment", func(t *testing.T) {
		view.SetSearch("MANISH@")

		rows := view.Rows()

		assert.Equal(t, []string{"Manish"}, names(rows))
	})

	t.Run("no match", func(t *testing.T) {
		view.SetSearch("zzz")

		assert.Empty(t, view.Rows())
	})

	t.Run("total count ignores the filter", func(t *testing.T) {
		view.SetSearch("zzz")

		assert.Equal(t, 4, view.Total())
	})

	t.Run("clearing the search restores every row", func(t *testing.T) {
		view.SetSearch("")

		assert.Len(t, view.Rows(), 4)
	})
}

func TestListView_Sort(t *testing.T) {
	view, _ := listViewFixture(t, sampleRows())

	t.Run("name ascending", func(t *testing.T) {
		view.SetSort("Name", portalclient.SortAsc)

		rows := view.Rows()

		assert.Equal(t, []string{"Abhishek", "Hukum", "Manish", "Yash"}, names(rows))
	})

	t.Run("name descending reverses exactly", func(t *testing.T) {
		view.SetSort("Name", portalclient.SortDesc)

		rows := view.Rows()

		assert.Equal(t, []string{"Yash", "Manish", "Hukum", "Abhishek"}, names(rows))
	})

	t.Run("id numeric, not lexicographic", func(t *testing.T) {
		view.SetSort("Id", portalclient.SortDesc)

		rows := view.Rows()

		assert.Equal(t, int64(4), rows[0].ID)
		assert.Equal(t, int64(1), rows[3].ID)
	})

	t.Run("create date as a timestamp", func(t *testing.T) {
		view.SetSort("CreateDate", portalclient.SortAsc)

		rows := view.Rows()

		assert.Equal(t, "Manish", rows[0].Name)
		assert.Equal(t, "Yash", rows[3].Name)
	})

	t.Run("sort applies after the search filter", func(t *testing.T) {
		view.SetSearch("mca")
		view.SetSort("Name", portalclient.SortAsc)
		defer view.SetSearch("")

		rows := view.Rows()

		assert.Equal(t, []string{"Abhishek", "Hukum"}, names(rows))
	})
}

func TestListView_Delete(t *testing.T) {
	t.Run("removes the row locally after a remote delete", func(t *testing.T) {
		view, _ := listViewFixture(t, sampleRows())

		err := view.Delete(context.Background(), 2)

		assert.NoError(t, err)
		assert.Equal(t, 3, view.Total())
		for _, row := range view.Rows() {
			assert.NotEqual(t, int64(2), row.ID)
		}
	})

	t.Run("keeps the row when the server rejects the delete", func(t *testing.T) {
		rows := sampleRows()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				json.NewEncoder(w).Encode(rows)
			case http.MethodDelete:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"message": "Employee not found"})
			}
		}))
		defer srv.Close()

		view := portalclient.NewListView(portalclient.New(srv.URL))
		view.Load(context.Background())

		err := view.Delete(context.Background(), 2)

		assert.Error(t, err)
		assert.Equal(t, 4, view.Total())
	})
}

func TestListView_LoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	view := portalclient.NewListView(portalclient.New(srv.URL))
	view.Load(context.Background())

	// The list screen renders empty instead of erroring.
	assert.Equal(t, 0, view.Total())
	assert.Empty(t, view.Rows())
}
