package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUploadTextValidation(t *testing.T) {
	rt, _ := newTestRouter(t)
	token := registerAndLogin(t, rt, "alice", "hunter22")

	cases := []struct {
		name    string
		title   string
		content string
	}{
		{"content too short", "Title", "ab"},
		{"content too long", "Title", strings.Repeat("x", 10001)},
		{"title too long", strings.Repeat("t", 1201), "valid content"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, rt, http.MethodPost, "/entries/text", token, map[string]string{
				"title":   tc.title,
				"content": tc.content,
			})
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestEntriesAreOwnerScoped(t *testing.T) {
	rt, _ := newTestRouter(t)

	aliceToken := registerAndLogin(t, rt, "alice", "hunter22")
	malloryToken := registerAndLogin(t, rt, "mallory", "hunter22")

	rec := doJSON(t, rt, http.MethodPost, "/entries/text", aliceToken, map[string]string{
		"title":   "Private",
		"content": "only alice should see this",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created entryIDResponse
	decodeBody(t, rec, &created)

	t.Run("foreign get is a 404", func(t *testing.T) {
		rec := doJSON(t, rt, http.MethodGet, "/entries/"+itoa(created.ID), malloryToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("foreign progress update is a 404", func(t *testing.T) {
		rec := doJSON(t, rt, http.MethodPost, "/entries/text/"+itoa(created.ID)+"/progress", malloryToken, map[string]int64{
			"progress": 1,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("foreign delete is a 404 and the entry survives", func(t *testing.T) {
		rec := doJSON(t, rt, http.MethodDelete, "/entries/"+itoa(created.ID), malloryToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)

		rec = doJSON(t, rt, http.MethodGet, "/entries/"+itoa(created.ID), aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("listings do not leak", func(t *testing.T) {
		rec := doJSON(t, rt, http.MethodGet, "/entries/list/me", malloryToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var list listEntriesResponse
		decodeBody(t, rec, &list)
		require.Empty(t, list.Entries)
	})
}

func TestEntryIDMustBeNumeric(t *testing.T) {
	rt, _ := newTestRouter(t)
	token := registerAndLogin(t, rt, "alice", "hunter22")

	rec := doJSON(t, rt, http.MethodGet, "/entries/not-a-number", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var detail detailResponse
	decodeBody(t, rec, &detail)
	require.Equal(t, "Entry not found", detail.Detail)
}

func TestListEntriesEmptyIsAnEmptyList(t *testing.T) {
	rt, _ := newTestRouter(t)
	token := registerAndLogin(t, rt, "alice", "hunter22")

	rec := doJSON(t, rt, http.MethodGet, "/entries/list/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"entries": []}`, rec.Body.String())
}
